// Package cookies centralizes auth cookie construction so handlers set and
// clear the access/refresh cookies consistently.
package cookies

import (
	"net/http"
	"time"
)

const (
	AccessTokenName  = "access_token"
	RefreshTokenName = "refresh_token"

	accessPath  = "/"
	refreshPath = "/auth"
)

// Config carries transport-level cookie settings from the environment.
type Config struct {
	Domain string
	Secure bool
}

// Access builds the HTTP-only access token cookie.
func (c Config) Access(token string, ttl time.Duration) *http.Cookie {
	return c.build(AccessTokenName, token, accessPath, ttl)
}

// Refresh builds the HTTP-only refresh token cookie, scoped to the auth
// routes so the long-lived token is not sent with every request.
func (c Config) Refresh(token string, ttl time.Duration) *http.Cookie {
	return c.build(RefreshTokenName, token, refreshPath, ttl)
}

// ClearAccess builds an expired access cookie to clear the browser value.
func (c Config) ClearAccess() *http.Cookie {
	return c.build(AccessTokenName, "", accessPath, -time.Hour)
}

// ClearRefresh builds an expired refresh cookie to clear the browser value.
func (c Config) ClearRefresh() *http.Cookie {
	return c.build(RefreshTokenName, "", refreshPath, -time.Hour)
}

func (c Config) build(name, value, path string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	}
	if ttl > 0 {
		cookie.MaxAge = int(ttl.Seconds())
	} else {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	}
	return cookie
}
