package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

var (
	// ErrTokenInvalid covers bad signatures, malformed tokens and
	// wrong token_type values.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired covers well-signed tokens past their exp claim.
	ErrTokenExpired = errors.New("token expired")
)

// AccessClaims are carried by short-lived access tokens.
type AccessClaims struct {
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwtlib.RegisteredClaims
}

// RefreshClaims are carried by long-lived refresh tokens. The jti
// (RegisteredClaims.ID) is hashed and stored for later revocation.
type RefreshClaims struct {
	TokenType string `json:"token_type"`
	jwtlib.RegisteredClaims
}

// Codec issues and validates HS256-signed, typed access/refresh tokens.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewCodec(secret string, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (c *Codec) AccessTTL() time.Duration  { return c.accessTTL }
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

// IssueAccess signs an access token for the user.
func (c *Codec) IssueAccess(userID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Email:     email,
		TokenType: typeAccess,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(c.accessTTL)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.secret)
}

// IssueRefresh signs a refresh token with a fresh jti and returns both the
// token and the raw jti so the caller can hash it for storage.
func (c *Codec) IssueRefresh(userID uuid.UUID) (token string, jti string, err error) {
	now := time.Now()
	jti = uuid.NewString()
	claims := RefreshClaims{
		TokenType: typeRefresh,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(c.refreshTTL)),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ID:        jti,
		},
	}
	token, err = jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", "", err
	}
	return token, jti, nil
}

// VerifyAccess checks signature and expiry, then requires
// token_type == "access". A valid refresh token presented here fails with
// ErrTokenInvalid: the type tag is a second gate beyond signature validity.
func (c *Codec) VerifyAccess(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := c.parse(tokenStr, claims); err != nil {
		return nil, err
	}
	if claims.TokenType != typeAccess {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// VerifyRefresh is the refresh-side counterpart of VerifyAccess.
func (c *Codec) VerifyRefresh(tokenStr string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := c.parse(tokenStr, claims); err != nil {
		return nil, err
	}
	if claims.TokenType != typeRefresh {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (c *Codec) parse(tokenStr string, claims jwtlib.Claims) error {
	parsed, err := jwtlib.ParseWithClaims(tokenStr, claims, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}
	if !parsed.Valid {
		return ErrTokenInvalid
	}
	return nil
}

// HashJTI returns the hex-encoded SHA-256 digest of a refresh token's jti,
// the form in which sessions are persisted.
func HashJTI(jti string) string {
	sum := sha256.Sum256([]byte(jti))
	return hex.EncodeToString(sum[:])
}
