package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/vendorflow-web/internal/backend"
	"github.com/spec-kit/vendorflow-web/internal/domain"
	"github.com/spec-kit/vendorflow-web/internal/web/views"
)

// BookingsHandler serves the customer booking pages and the vendor request
// queue.
type BookingsHandler struct {
	api    *backend.Client
	guard  *Guard
	logger *zap.Logger
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(api *backend.Client, guard *Guard, logger *zap.Logger) *BookingsHandler {
	return &BookingsHandler{api: api, guard: guard, logger: logger}
}

// Browse handles GET /dashboard/bookings: the service catalog with optional
// category/city/pincode filtering and a booking form per service.
func (h *BookingsHandler) Browse(c *fiber.Ctx) error {
	filter := backend.ServiceFilter{
		CategoryID: c.Query("categoryId"),
		City:       c.Query("city"),
		Pincode:    c.Query("pincode"),
	}
	return h.renderBrowse(c, filter, "", "")
}

func (h *BookingsHandler) renderBrowse(c *fiber.Ctx, filter backend.ServiceFilter, flash, errMsg string) error {
	ident, _ := IdentityFromContext(c)
	token := h.guard.Token(c)

	categories, err := h.api.Categories(c.UserContext(), token, true)
	if err != nil {
		h.logger.Warn("category fetch failed", zap.Error(err))
	}

	services, err := h.api.FilterServices(c.UserContext(), token, filter)
	if err != nil {
		if errMsg == "" {
			errMsg = pageErrorMessage(err, "Failed to load services.")
		}
		h.logger.Warn("service fetch failed", zap.Error(err))
	}

	return views.Render(c, "bookings", views.BrowseData{
		Dashboard: views.Dashboard{
			Title:    "Book Services",
			Identity: ident,
			Active:   "bookings",
			Flash:    flash,
			Error:    errMsg,
		},
		Categories: categories,
		Services:   services,
		Filter:     filter,
		TimeSlots:  views.TimeSlots,
	})
}

// Create handles POST /dashboard/bookings. One submission issues exactly one
// booking call; validation failures issue none.
func (h *BookingsHandler) Create(c *fiber.Ctx) error {
	serviceID, err := strconv.ParseInt(c.FormValue("serviceId"), 10, 64)
	date := c.FormValue("scheduledDate")
	slot := c.FormValue("scheduledTimeSlot")
	if err != nil || serviceID == 0 || date == "" || slot == "" {
		c.Status(http.StatusBadRequest)
		return h.renderBrowse(c, backend.ServiceFilter{}, "", "Please pick a service, date and time slot.")
	}

	req := backend.BookingRequest{
		ServiceID:         serviceID,
		ScheduledDate:     date,
		ScheduledTimeSlot: slot,
		UserNotes:         c.FormValue("userNotes"),
	}
	if err := h.api.CreateBooking(c.UserContext(), h.guard.Token(c), req); err != nil {
		c.Status(http.StatusBadRequest)
		return h.renderBrowse(c, backend.ServiceFilter{}, "", pageErrorMessage(err, "Booking failed."))
	}

	return c.Redirect("/dashboard/mybooking", fiber.StatusSeeOther)
}

// MyBookings handles GET /dashboard/mybooking.
func (h *BookingsHandler) MyBookings(c *fiber.Ctx) error {
	return h.renderMyBookings(c, "")
}

func (h *BookingsHandler) renderMyBookings(c *fiber.Ctx, errMsg string) error {
	ident, _ := IdentityFromContext(c)

	bookings, err := h.api.MyBookings(c.UserContext(), h.guard.Token(c))
	if err != nil {
		if errMsg == "" {
			errMsg = pageErrorMessage(err, "Failed to load your bookings.")
		}
		h.logger.Warn("booking fetch failed", zap.Error(err))
	}

	return views.Render(c, "mybooking", views.MyBookingsData{
		Dashboard: views.Dashboard{
			Title:    "My Bookings",
			Identity: ident,
			Active:   "mybooking",
			Error:    errMsg,
		},
		Bookings:  bookings,
		TimeSlots: views.TimeSlots,
	})
}

// UpdateDetails handles POST /dashboard/mybooking/update: reschedule a
// booking's date and time slot.
func (h *BookingsHandler) UpdateDetails(c *fiber.Ctx) error {
	bookingID, err := strconv.ParseInt(c.FormValue("bookingId"), 10, 64)
	date := c.FormValue("scheduledDate")
	slot := c.FormValue("scheduledTimeSlot")
	if err != nil || date == "" || slot == "" {
		c.Status(http.StatusBadRequest)
		return h.renderMyBookings(c, "Please pick a date and time slot.")
	}

	upd := backend.BookingDetailsUpdate{
		BookingID:         bookingID,
		ScheduledDate:     date,
		ScheduledTimeSlot: slot,
	}
	if err := h.api.UpdateBookingDetails(c.UserContext(), h.guard.Token(c), upd); err != nil {
		c.Status(http.StatusBadRequest)
		return h.renderMyBookings(c, pageErrorMessage(err, "Failed to update the booking."))
	}
	return c.Redirect("/dashboard/mybooking", fiber.StatusSeeOther)
}

// Delete handles POST /dashboard/mybooking/delete.
func (h *BookingsHandler) Delete(c *fiber.Ctx) error {
	bookingID, err := strconv.ParseInt(c.FormValue("bookingId"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return h.renderMyBookings(c, "Unknown booking.")
	}
	if err := h.api.DeleteBooking(c.UserContext(), h.guard.Token(c), bookingID); err != nil {
		c.Status(http.StatusBadRequest)
		return h.renderMyBookings(c, pageErrorMessage(err, "Failed to cancel the booking."))
	}
	return c.Redirect("/dashboard/mybooking", fiber.StatusSeeOther)
}

// VendorRequests handles GET /dashboard/vendor-bookings: the vendor's
// incoming booking queue, scoped by the identity's vendor id.
func (h *BookingsHandler) VendorRequests(c *fiber.Ctx) error {
	return h.renderVendorRequests(c, "")
}

func (h *BookingsHandler) renderVendorRequests(c *fiber.Ctx, errMsg string) error {
	ident, _ := IdentityFromContext(c)

	bookings, err := h.api.VendorBookings(c.UserContext(), h.guard.Token(c), *ident.VendorID)
	if err != nil {
		if errMsg == "" {
			errMsg = pageErrorMessage(err, "Failed to load booking requests.")
		}
		h.logger.Warn("vendor booking fetch failed", zap.Error(err))
	}

	return views.Render(c, "vendor_bookings", views.VendorBookingsData{
		Dashboard: views.Dashboard{
			Title:    "Client Requests",
			Identity: ident,
			Active:   "vendor-bookings",
			Error:    errMsg,
		},
		Bookings: bookings,
	})
}

// UpdateStatus handles POST /dashboard/vendor-bookings/status.
func (h *BookingsHandler) UpdateStatus(c *fiber.Ctx) error {
	bookingID, err := strconv.ParseInt(c.FormValue("bookingId"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return h.renderVendorRequests(c, "Unknown booking.")
	}
	status, ok := domain.ParseBookingStatus(c.FormValue("status"))
	if !ok {
		c.Status(http.StatusBadRequest)
		return h.renderVendorRequests(c, "Unknown booking status.")
	}

	if err := h.api.UpdateBookingStatus(c.UserContext(), h.guard.Token(c), bookingID, status); err != nil {
		c.Status(http.StatusBadRequest)
		return h.renderVendorRequests(c, pageErrorMessage(err, "Failed to update status."))
	}
	return c.Redirect("/dashboard/vendor-bookings", fiber.StatusSeeOther)
}

// History handles GET /dashboard/history for both roles: bookings that
// reached a terminal status.
func (h *BookingsHandler) History(c *fiber.Ctx) error {
	ident, _ := IdentityFromContext(c)
	token := h.guard.Token(c)

	var (
		bookings []domain.Booking
		err      error
	)
	if ident.IsVendor() && ident.VendorID != nil {
		bookings, err = h.api.VendorBookings(c.UserContext(), token, *ident.VendorID)
	} else {
		bookings, err = h.api.MyBookings(c.UserContext(), token)
	}

	errMsg := ""
	if err != nil {
		errMsg = pageErrorMessage(err, "Failed to load history.")
		h.logger.Warn("history fetch failed", zap.Error(err))
	}

	past := bookings[:0:0]
	for _, b := range bookings {
		if b.Status.Terminal() {
			past = append(past, b)
		}
	}

	return views.Render(c, "history", views.HistoryData{
		Dashboard: views.Dashboard{
			Title:    "History",
			Identity: ident,
			Active:   "history",
			Error:    errMsg,
		},
		Bookings: past,
	})
}

// pageErrorMessage maps remote-call failures to the inline message a page
// shows: connectivity message for transport failures, the server's message
// verbatim when present, else the given fallback.
func pageErrorMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if msg := backend.ServerMessage(err); msg != "" {
		return msg
	}
	if errors.Is(err, backend.ErrUnreachable) {
		return "Cannot reach the server. Please check your connection."
	}
	return fallback
}
