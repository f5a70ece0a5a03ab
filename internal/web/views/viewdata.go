package views

import (
	"github.com/spec-kit/vendorflow-web/internal/backend"
	"github.com/spec-kit/vendorflow-web/internal/domain"
	"github.com/spec-kit/vendorflow-web/internal/session"
)

// TimeSlots are the bookable slots offered by the booking form.
var TimeSlots = []string{
	"09:00 AM - 10:00 AM",
	"10:00 AM - 11:00 AM",
	"11:00 AM - 12:00 PM",
	"02:00 PM - 03:00 PM",
	"03:00 PM - 04:00 PM",
	"04:00 PM - 05:00 PM",
}

// HomeData feeds the public landing page.
type HomeData struct {
	Title string
}

// LoginData feeds the login form, preserving the email on failure.
type LoginData struct {
	Title string
	Error string
	Email string
}

// RegisterData feeds the registration form. Form holds whatever form struct
// the handler parsed so a failed submission re-renders with values intact.
type RegisterData struct {
	Title string
	Error string
	Form  any
}

// Dashboard carries the fields every dashboard page shares. Active selects
// the highlighted sidebar entry.
type Dashboard struct {
	Title    string
	Identity *session.Identity
	Active   string
	Flash    string
	Error    string
}

// OverviewData feeds the dashboard index.
type OverviewData struct {
	Dashboard
}

// BrowseData feeds the customer service-browsing and booking page.
type BrowseData struct {
	Dashboard
	Categories []domain.Category
	Services   []domain.Service
	Filter     backend.ServiceFilter
	TimeSlots  []string
}

// MyBookingsData feeds the customer's booking list.
type MyBookingsData struct {
	Dashboard
	Bookings  []domain.Booking
	TimeSlots []string
}

// VendorServicesData feeds the vendor's listing management page.
type VendorServicesData struct {
	Dashboard
	Services   []domain.Service
	Categories []domain.Category
}

// VendorBookingsData feeds the vendor's incoming request queue.
type VendorBookingsData struct {
	Dashboard
	Bookings []domain.Booking
}

// HistoryData feeds the completed/rejected booking history.
type HistoryData struct {
	Dashboard
	Bookings []domain.Booking
}

// ErrorData feeds the shared error page.
type ErrorData struct {
	Title   string
	Status  int
	Code    string
	Message string
}
