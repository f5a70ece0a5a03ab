package domain

// Service is a vendor listing. Older backend deployments return the
// identifier under "id" instead of "serviceId"; Key folds the two.
type Service struct {
	ServiceID   int64   `json:"serviceId"`
	ID          int64   `json:"id"`
	VendorID    int64   `json:"vendorId"`
	CategoryID  int64   `json:"categoryId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"basePrice"`
	PriceUnit   string  `json:"priceUnit"`
	City        string  `json:"city"`
	Pincode     string  `json:"pincode"`
}

// Key returns the effective service identifier.
func (s Service) Key() int64 {
	if s.ServiceID != 0 {
		return s.ServiceID
	}
	return s.ID
}
