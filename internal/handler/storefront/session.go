// Package storefront holds the shopper-facing JSON handlers.
package storefront

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SessionCookieName keys the shopper's cart and wishlist. The token is
// opaque; carts are deliberately per-device, never synced to an account.
const SessionCookieName = "lorean_session"

const sessionMaxAge = 30 * 24 * 60 * 60

// sessionID returns the shopper's session token, minting one on first
// contact.
func sessionID(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.New().String()
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
