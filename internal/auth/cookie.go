package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieAdapter is the only place token material touches the HTTP
// layer. The cookie is HttpOnly and session-scoped; the signed token
// inside it carries its own expiry.
type CookieAdapter struct {
	name   string
	secure bool
}

// NewCookieAdapter constructs the adapter.
func NewCookieAdapter(name string, secure bool) *CookieAdapter {
	if name == "" {
		name = "auth_token"
	}
	return &CookieAdapter{name: name, secure: secure}
}

// Set stores the token in the session cookie.
func (a *CookieAdapter) Set(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     a.name,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   a.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Read returns the stored token, or empty when no session cookie is
// present.
func (a *CookieAdapter) Read(c *fiber.Ctx) string {
	return c.Cookies(a.name)
}

// Clear removes the session cookie.
func (a *CookieAdapter) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     a.name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   a.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
