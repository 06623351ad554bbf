package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giglog/internal/pkg/cookies"
	"giglog/internal/pkg/token"
)

func newAuthRouter(codec *token.Codec) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireAuth(codec), func(c *gin.Context) {
		userID, _ := UserID(c)
		email, _ := Email(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "email": email})
	})
	return router
}

func TestRequireAuthWithCookie(t *testing.T) {
	codec := token.NewCodec("secret", 15*time.Minute, time.Hour)
	router := newAuthRouter(codec)
	userID := uuid.New()

	access, err := codec.IssueAccess(userID, "mw@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: cookies.AccessTokenName, Value: access})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
	assert.Contains(t, rec.Body.String(), "mw@example.com")
}

func TestRequireAuthWithBearerHeader(t *testing.T) {
	codec := token.NewCodec("secret", 15*time.Minute, time.Hour)
	router := newAuthRouter(codec)

	access, err := codec.IssueAccess(uuid.New(), "bearer@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuthRejections(t *testing.T) {
	codec := token.NewCodec("secret", 15*time.Minute, time.Hour)
	expiredCodec := token.NewCodec("secret", -time.Minute, time.Hour)
	otherCodec := token.NewCodec("other", 15*time.Minute, time.Hour)
	router := newAuthRouter(codec)

	expired, err := expiredCodec.IssueAccess(uuid.New(), "a@example.com")
	require.NoError(t, err)
	wrongKey, err := otherCodec.IssueAccess(uuid.New(), "a@example.com")
	require.NoError(t, err)
	// Refresh tokens must not open protected routes.
	refresh, _, err := codec.IssueRefresh(uuid.New())
	require.NoError(t, err)

	cases := map[string]struct {
		token string
		want  string
	}{
		"no token":      {"", "UNAUTHORIZED"},
		"garbage":       {"nope", "UNAUTHORIZED"},
		"expired":       {expired, "TOKEN_EXPIRED"},
		"wrong key":     {wrongKey, "UNAUTHORIZED"},
		"refresh token": {refresh, "UNAUTHORIZED"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}
}
