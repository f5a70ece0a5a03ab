package web

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/vendorflow-web/internal/config"
	"github.com/spec-kit/vendorflow-web/internal/session"
	"github.com/spec-kit/vendorflow-web/pkg/util"
)

const identityKey = "session_identity"

// Guard applies the role-gated view pattern: resolve the identity, bounce
// anonymous visitors to the login page, and refuse views whose role or
// vendor linkage requirement the identity does not meet.
type Guard struct {
	sessions   *session.Manager
	cookieName string
	secure     bool
	ttl        time.Duration
}

// NewGuard builds a guard over the session manager.
func NewGuard(sessions *session.Manager, cfg config.SessionConfig) *Guard {
	return &Guard{
		sessions:   sessions,
		cookieName: cfg.CookieName,
		secure:     cfg.CookieSecure,
		ttl:        cfg.TTL(),
	}
}

// SessionID returns the browser's session id, or "" for a first visit.
func (g *Guard) SessionID(c *fiber.Ctx) string {
	return c.Cookies(g.cookieName)
}

// EnsureSession returns the browser's session id, minting one and setting
// the cookie when none exists yet.
func (g *Guard) EnsureSession(c *fiber.Ctx) string {
	if sid := c.Cookies(g.cookieName); sid != "" {
		return sid
	}
	sid := session.NewSessionID()
	c.Cookie(&fiber.Cookie{
		Name:     g.cookieName,
		Value:    sid,
		Expires:  time.Now().Add(g.ttl),
		HTTPOnly: true,
		Secure:   g.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return sid
}

// ClearSession invalidates the stored session and expires the cookie.
func (g *Guard) ClearSession(c *fiber.Ctx) error {
	sid := c.Cookies(g.cookieName)
	if sid == "" {
		return nil
	}
	if err := g.sessions.Invalidate(c.UserContext(), sid); err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     g.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   g.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// Token returns the session's bearer token for outgoing API calls.
func (g *Guard) Token(c *fiber.Ctx) string {
	return g.sessions.Token(c.UserContext(), g.SessionID(c))
}

// RequireIdentity resolves the session's identity before any dashboard view.
// Anonymous visitors are redirected to the login page and nothing else is
// rendered. A session whose token no longer decodes is cleared so the next
// request starts cleanly anonymous.
func (g *Guard) RequireIdentity(c *fiber.Ctx) error {
	sid := g.SessionID(c)
	ident := g.sessions.Resolve(c.UserContext(), sid)
	if ident == nil {
		if sid != "" {
			_ = g.sessions.Invalidate(c.UserContext(), sid)
		}
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	c.Locals(identityKey, ident)
	return c.Next()
}

// RequireCustomer refuses vendor identities with an explicit access-denied
// page rather than a blank screen.
func RequireCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, ok := IdentityFromContext(c)
		if !ok || !ident.IsCustomer() {
			return util.NewForbidden("this page is only available to customer accounts")
		}
		return c.Next()
	}
}

// RequireVendor refuses non-vendor identities, and vendor identities whose
// token carries no vendor linkage, since every view behind it scopes its API
// calls by vendor id.
func RequireVendor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, ok := IdentityFromContext(c)
		if !ok || !ident.IsVendor() {
			return util.NewForbidden("this page is only available to vendor accounts")
		}
		if ident.VendorID == nil {
			return util.NewForbidden("this account is not linked to a vendor profile")
		}
		return c.Next()
	}
}

// IdentityFromContext retrieves the identity stored by RequireIdentity.
func IdentityFromContext(c *fiber.Ctx) (*session.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	ident, ok := val.(*session.Identity)
	return ident, ok
}
