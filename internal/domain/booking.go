package domain

// BookingStatus enumerates lifecycle states the backend assigns to bookings.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "Pending"
	BookingStatusAccepted   BookingStatus = "Accepted"
	BookingStatusRejected   BookingStatus = "Rejected"
	BookingStatusInProgress BookingStatus = "InProgress"
	BookingStatusCompleted  BookingStatus = "Completed"
)

// ParseBookingStatus validates a raw status string.
func ParseBookingStatus(raw string) (BookingStatus, bool) {
	switch BookingStatus(raw) {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusRejected,
		BookingStatusInProgress, BookingStatusCompleted:
		return BookingStatus(raw), true
	}
	return "", false
}

// Terminal reports whether no further vendor action applies.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusRejected || s == BookingStatusCompleted
}

// NextStatuses lists the statuses a vendor may move a booking to from s.
// Pending requests are accepted or rejected, accepted work is started,
// started work is completed.
func (s BookingStatus) NextStatuses() []BookingStatus {
	switch s {
	case BookingStatusPending:
		return []BookingStatus{BookingStatusAccepted, BookingStatusRejected}
	case BookingStatusAccepted:
		return []BookingStatus{BookingStatusInProgress}
	case BookingStatusInProgress:
		return []BookingStatus{BookingStatusCompleted}
	}
	return nil
}

// Booking is the backend's booking record as the client consumes it. The
// backend owns all integrity rules; fields beyond the ones rendered are
// ignored on decode.
type Booking struct {
	BookingID         int64         `json:"bookingId"`
	ServiceID         int64         `json:"serviceId"`
	ServiceTitle      string        `json:"serviceTitle"`
	CustomerName      string        `json:"customerName"`
	VendorName        string        `json:"vendorName"`
	ScheduledDate     string        `json:"scheduledDate"`
	ScheduledTimeSlot string        `json:"scheduledTimeSlot"`
	UserNotes         string        `json:"userNotes"`
	Status            BookingStatus `json:"status"`
}
