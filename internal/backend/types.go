package backend

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the normalized login response. The backend answers either
// {"token": "...", "role": "..."} or the bare token; Role is optional.
type LoginResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// CustomerRegistration is the POST /User/CreateUser payload.
type CustomerRegistration struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
	Pincode     string `json:"pincode"`
	Password    string `json:"password"`
}

// VendorRegistration is the POST /Vendor/CreateVendor payload: the common
// registration fields plus the vendor business fields, flattened on the wire.
type VendorRegistration struct {
	CustomerRegistration
	VendorName    string `json:"vendorName"`
	BusinessName  string `json:"businessName"`
	Description   string `json:"description"`
	ContactNumber string `json:"contactNumber"`
}

// ServiceFilter narrows the service search; any subset of fields may be set.
// Empty means "list everything".
type ServiceFilter struct {
	CategoryID string
	City       string
	Pincode    string
}

// Empty reports whether no filter criteria are set.
func (f ServiceFilter) Empty() bool {
	return f.CategoryID == "" && f.City == "" && f.Pincode == ""
}

// ServicePayload is the create/update body for a vendor service listing.
type ServicePayload struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	CategoryID  int64   `json:"categoryId"`
	BasePrice   float64 `json:"basePrice"`
	PriceUnit   string  `json:"priceUnit"`
	City        string  `json:"city"`
	Pincode     string  `json:"pincode"`
}

// BookingRequest is the POST /Booking/bookings body.
type BookingRequest struct {
	ServiceID         int64  `json:"serviceId"`
	ScheduledDate     string `json:"scheduledDate"`
	ScheduledTimeSlot string `json:"scheduledTimeSlot"`
	UserNotes         string `json:"userNotes"`
}

// BookingDetailsUpdate is the PUT /Booking/UpdatebookingDetails body.
type BookingDetailsUpdate struct {
	BookingID         int64  `json:"bookingId"`
	ScheduledDate     string `json:"scheduledDate"`
	ScheduledTimeSlot string `json:"scheduledTimeSlot"`
}
