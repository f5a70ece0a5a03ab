package web

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/vendorflow-web/internal/backend"
	"github.com/spec-kit/vendorflow-web/internal/service"
	"github.com/spec-kit/vendorflow-web/internal/session"
	"github.com/spec-kit/vendorflow-web/internal/web/views"
)

// AuthHandler serves the login and registration pages and their submissions.
type AuthHandler struct {
	flows  *service.AuthService
	guard  *Guard
	logger *zap.Logger
}

// NewAuthHandler constructs handler.
func NewAuthHandler(flows *service.AuthService, guard *Guard, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{flows: flows, guard: guard, logger: logger}
}

// registerForm mirrors the registration fields; the role tab decides which
// backend endpoint the submission targets.
type registerForm struct {
	Role          string `form:"role"`
	FirstName     string `form:"firstName"`
	LastName      string `form:"lastName"`
	Email         string `form:"email"`
	PhoneNumber   string `form:"phoneNumber"`
	Address1      string `form:"address1"`
	Address2      string `form:"address2"`
	City          string `form:"city"`
	State         string `form:"state"`
	Country       string `form:"country"`
	Pincode       string `form:"pincode"`
	Password      string `form:"password"`
	VendorName    string `form:"vendorName"`
	BusinessName  string `form:"businessName"`
	Description   string `form:"description"`
	ContactNumber string `form:"contactNumber"`
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return views.Render(c, "login", views.LoginData{Title: "Sign In"})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")
	if email == "" || password == "" {
		c.Status(http.StatusBadRequest)
		return views.Render(c, "login", views.LoginData{
			Title: "Sign In",
			Error: "Email and password are required.",
			Email: email,
		})
	}

	sid := h.guard.EnsureSession(c)
	err := h.flows.Login(c.UserContext(), sid, backend.Credentials{Email: email, Password: password})
	if err != nil {
		status, message := loginFailure(err)
		h.logger.Info("login failed", zap.String("email", email), zap.Error(err))
		c.Status(status)
		return views.Render(c, "login", views.LoginData{Title: "Sign In", Error: message, Email: email})
	}

	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// loginFailure maps a login error to a response status and the user-facing
// message the original client shows for it.
func loginFailure(err error) (int, string) {
	switch {
	case errors.Is(err, backend.ErrUnreachable):
		return http.StatusBadGateway, "Cannot reach the server. Please check your connection."
	case errors.Is(err, session.ErrNoToken):
		return http.StatusBadGateway, "Login failed: no token received."
	case backend.HasStatus(err, http.StatusNotFound):
		return http.StatusUnauthorized, "This email address does not exist."
	case backend.HasStatus(err, http.StatusUnauthorized):
		return http.StatusUnauthorized, "Incorrect email or password. Please try again."
	}
	if msg := backend.ServerMessage(err); msg != "" {
		return http.StatusBadRequest, msg
	}
	return http.StatusInternalServerError, "Login failed."
}

// RegisterPage handles GET /register.
func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	return views.Render(c, "register", views.RegisterData{
		Title: "Create Account",
		Form:  registerForm{Role: "Customer"},
	})
}

// Register handles POST /register. Required fields are checked before any
// network call; a vendor registration without its business fields never
// reaches the backend.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var form registerForm
	if err := c.BodyParser(&form); err != nil {
		c.Status(http.StatusBadRequest)
		return views.Render(c, "register", views.RegisterData{
			Title: "Create Account",
			Error: "Invalid form submission.",
			Form:  registerForm{Role: "Customer"},
		})
	}
	if form.Role == "" {
		form.Role = "Customer"
	}

	if msg := validateRegistration(form); msg != "" {
		c.Status(http.StatusBadRequest)
		return views.Render(c, "register", views.RegisterData{
			Title: "Create Account",
			Error: msg,
			Form:  form,
		})
	}

	sid := h.guard.EnsureSession(c)
	common := backend.CustomerRegistration{
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		Email:       form.Email,
		PhoneNumber: form.PhoneNumber,
		Address1:    form.Address1,
		Address2:    form.Address2,
		City:        form.City,
		State:       form.State,
		Country:     form.Country,
		Pincode:     form.Pincode,
		Password:    form.Password,
	}

	var err error
	if form.Role == "Vendor" {
		err = h.flows.RegisterVendor(c.UserContext(), sid, backend.VendorRegistration{
			CustomerRegistration: common,
			VendorName:           form.VendorName,
			BusinessName:         form.BusinessName,
			Description:          form.Description,
			ContactNumber:        form.ContactNumber,
		})
	} else {
		err = h.flows.RegisterCustomer(c.UserContext(), sid, common)
	}

	if err != nil {
		status, message := registrationFailure(err)
		c.Status(status)
		return views.Render(c, "register", views.RegisterData{
			Title: "Create Account",
			Error: message,
			Form:  form,
		})
	}

	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func validateRegistration(form registerForm) string {
	if form.Role != "Customer" && form.Role != "Vendor" {
		return "Please choose Customer or Vendor."
	}
	switch {
	case form.FirstName == "":
		return "First name is required."
	case form.LastName == "":
		return "Last name is required."
	case form.Email == "":
		return "Email is required."
	case form.Password == "":
		return "Password is required."
	}
	if form.Role == "Vendor" {
		switch {
		case form.VendorName == "":
			return "Vendor name is required."
		case form.BusinessName == "":
			return "Business name is required."
		case form.Description == "":
			return "Description is required."
		case form.ContactNumber == "":
			return "Contact number is required."
		}
	}
	return ""
}

func registrationFailure(err error) (int, string) {
	if errors.Is(err, backend.ErrUnreachable) {
		return http.StatusBadGateway, "Registration failed. Please check your connection and details."
	}
	if msg := backend.ServerMessage(err); msg != "" {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			return apiErr.StatusCode, msg
		}
		return http.StatusBadRequest, msg
	}
	return http.StatusBadRequest, "Registration failed."
}

// Logout handles POST /logout: the token is removed and the session cookie
// expired before the redirect.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.guard.ClearSession(c); err != nil {
		h.logger.Warn("logout failed to clear session", zap.Error(err))
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}
