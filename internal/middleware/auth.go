package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"giglog/internal/pkg/cookies"
	"giglog/internal/pkg/response"
	"giglog/internal/pkg/token"
)

const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
)

// RequireAuth authenticates requests by access token, read from the
// access_token cookie or an Authorization bearer header. On success the
// user id and email are placed in the request context.
func RequireAuth(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := accessTokenFrom(c)
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			c.Abort()
			return
		}

		claims, err := codec.VerifyAccess(tokenStr)
		if err != nil {
			code := "UNAUTHORIZED"
			if errors.Is(err, token.ErrTokenExpired) {
				code = "TOKEN_EXPIRED"
			}
			response.Error(c, http.StatusUnauthorized, code, "invalid or expired token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxEmail, claims.Email)
		c.Next()
	}
}

func accessTokenFrom(c *gin.Context) string {
	if cookie, err := c.Cookie(cookies.AccessTokenName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// UserID returns the authenticated user's id set by RequireAuth.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(ctxUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// Email returns the authenticated user's email set by RequireAuth.
func Email(c *gin.Context) (string, bool) {
	value, ok := c.Get(ctxEmail)
	if !ok {
		return "", false
	}
	email, ok := value.(string)
	return email, ok
}
