package web

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/vendorflow-web/internal/backend"
	"github.com/spec-kit/vendorflow-web/internal/web/views"
)

// ServicesHandler serves the vendor's listing management page.
type ServicesHandler struct {
	api    *backend.Client
	guard  *Guard
	logger *zap.Logger
}

// NewServicesHandler constructs handler.
func NewServicesHandler(api *backend.Client, guard *Guard, logger *zap.Logger) *ServicesHandler {
	return &ServicesHandler{api: api, guard: guard, logger: logger}
}

// List handles GET /dashboard/services.
func (h *ServicesHandler) List(c *fiber.Ctx) error {
	return h.renderList(c, "")
}

func (h *ServicesHandler) renderList(c *fiber.Ctx, errMsg string) error {
	ident, _ := IdentityFromContext(c)
	token := h.guard.Token(c)

	services, err := h.api.VendorServices(c.UserContext(), token, *ident.VendorID)
	if err != nil {
		if errMsg == "" {
			errMsg = pageErrorMessage(err, "Failed to load your services.")
		}
		h.logger.Warn("vendor service fetch failed", zap.Error(err))
	}

	categories, err := h.api.Categories(c.UserContext(), token, true)
	if err != nil {
		h.logger.Warn("category fetch failed", zap.Error(err))
	}

	return views.Render(c, "services", views.VendorServicesData{
		Dashboard: views.Dashboard{
			Title:    "My Services",
			Identity: ident,
			Active:   "services",
			Error:    errMsg,
		},
		Services:   services,
		Categories: categories,
	})
}

// servicePayload parses the shared create/update form fields. The returned
// message is non-empty when a required field is missing, in which case no
// backend call may be made.
func servicePayload(c *fiber.Ctx) (backend.ServicePayload, string) {
	var payload backend.ServicePayload
	payload.Title = c.FormValue("title")
	payload.Description = c.FormValue("description")
	payload.PriceUnit = c.FormValue("priceUnit")
	payload.City = c.FormValue("city")
	payload.Pincode = c.FormValue("pincode")

	if payload.Title == "" {
		return payload, "Title is required."
	}
	if payload.Description == "" {
		return payload, "Description is required."
	}

	categoryID, err := strconv.ParseInt(c.FormValue("categoryId"), 10, 64)
	if err != nil || categoryID == 0 {
		return payload, "Category is required."
	}
	payload.CategoryID = categoryID

	basePrice, err := strconv.ParseFloat(c.FormValue("basePrice"), 64)
	if err != nil {
		return payload, "Base price is required."
	}
	payload.BasePrice = basePrice

	return payload, ""
}

// Create handles POST /dashboard/services.
func (h *ServicesHandler) Create(c *fiber.Ctx) error {
	ident, _ := IdentityFromContext(c)

	payload, msg := servicePayload(c)
	if msg != "" {
		c.Status(http.StatusBadRequest)
		return h.renderList(c, msg)
	}

	if err := h.api.CreateService(c.UserContext(), h.guard.Token(c), *ident.VendorID, payload); err != nil {
		c.Status(http.StatusBadRequest)
		return h.renderList(c, pageErrorMessage(err, "Failed to create the service."))
	}
	return c.Redirect("/dashboard/services", fiber.StatusSeeOther)
}

// Update handles POST /dashboard/services/update.
func (h *ServicesHandler) Update(c *fiber.Ctx) error {
	ident, _ := IdentityFromContext(c)

	serviceID, err := strconv.ParseInt(c.FormValue("serviceId"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return h.renderList(c, "Unknown service.")
	}
	payload, msg := servicePayload(c)
	if msg != "" {
		c.Status(http.StatusBadRequest)
		return h.renderList(c, msg)
	}

	if err := h.api.UpdateService(c.UserContext(), h.guard.Token(c), *ident.VendorID, serviceID, payload); err != nil {
		c.Status(http.StatusBadRequest)
		return h.renderList(c, pageErrorMessage(err, "Failed to update the service."))
	}
	return c.Redirect("/dashboard/services", fiber.StatusSeeOther)
}

// Delete handles POST /dashboard/services/delete.
func (h *ServicesHandler) Delete(c *fiber.Ctx) error {
	ident, _ := IdentityFromContext(c)

	serviceID, err := strconv.ParseInt(c.FormValue("serviceId"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return h.renderList(c, "Unknown service.")
	}

	if err := h.api.DeleteService(c.UserContext(), h.guard.Token(c), *ident.VendorID, serviceID); err != nil {
		c.Status(http.StatusBadRequest)
		return h.renderList(c, pageErrorMessage(err, "Failed to delete the service."))
	}
	return c.Redirect("/dashboard/services", fiber.StatusSeeOther)
}
