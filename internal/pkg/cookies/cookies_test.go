package cookies

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessAndRefreshCookies(t *testing.T) {
	cfg := Config{Domain: "giglog.app", Secure: true}

	access := cfg.Access("token-a", 15*time.Minute)
	assert.Equal(t, AccessTokenName, access.Name)
	assert.Equal(t, "/", access.Path)
	assert.Equal(t, 15*60, access.MaxAge)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	assert.Equal(t, http.SameSiteStrictMode, access.SameSite)
	assert.Equal(t, "giglog.app", access.Domain)

	refresh := cfg.Refresh("token-r", 168*time.Hour)
	assert.Equal(t, RefreshTokenName, refresh.Name)
	// The refresh cookie only travels to the auth routes.
	assert.Equal(t, "/auth", refresh.Path)
	assert.Equal(t, 168*3600, refresh.MaxAge)
}

func TestClearCookies(t *testing.T) {
	cfg := Config{}

	for _, cookie := range []*http.Cookie{cfg.ClearAccess(), cfg.ClearRefresh()} {
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge)
		assert.True(t, cookie.Expires.Before(time.Now()))
	}
	assert.Equal(t, "/", cfg.ClearAccess().Path)
	assert.Equal(t, "/auth", cfg.ClearRefresh().Path)
}
