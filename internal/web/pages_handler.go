package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/vendorflow-web/internal/web/views"
)

// PagesHandler serves the public landing page and the dashboard overview.
type PagesHandler struct{}

// NewPagesHandler constructs handler.
func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// Home handles GET /.
func (h *PagesHandler) Home(c *fiber.Ctx) error {
	return views.Render(c, "home", views.HomeData{Title: "Home"})
}

// Overview handles GET /dashboard.
func (h *PagesHandler) Overview(c *fiber.Ctx) error {
	ident, _ := IdentityFromContext(c)
	return views.Render(c, "overview", views.OverviewData{
		Dashboard: views.Dashboard{
			Title:    "Overview",
			Identity: ident,
			Active:   "overview",
		},
	})
}
