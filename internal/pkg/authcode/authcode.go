// Package authcode generates and verifies the six-digit one-time codes
// used for email confirmation and password reset.
package authcode

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"io"
	"math/big"
	"strconv"
)

const (
	codeMin   = 100000
	codeRange = 900000
)

// Generator draws six-digit codes from a cryptographically secure source.
// The source is injectable so tests can substitute a deterministic reader;
// a predictable code here is an account-takeover vector, so production use
// must stick with the default crypto/rand source.
type Generator struct {
	source io.Reader
}

func NewGenerator() *Generator {
	return &Generator{source: rand.Reader}
}

// NewGeneratorWithSource is intended for tests.
func NewGeneratorWithSource(source io.Reader) *Generator {
	return &Generator{source: source}
}

// Generate returns a six-digit decimal code drawn uniformly from
// [100000, 999999].
func (g *Generator) Generate() (string, error) {
	n, err := rand.Int(g.source, big.NewInt(codeRange))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+codeMin, 10), nil
}

// Hash returns the hex-encoded SHA-256 digest of a code.
func Hash(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// Verify recomputes the digest of code and compares it against the stored
// digest in constant time. The comparison is constant-time on the hash
// values, not on the original code.
func Verify(code, storedDigest string) bool {
	digest := Hash(code)
	if len(digest) != len(storedDigest) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(digest), []byte(storedDigest)) == 1
}
