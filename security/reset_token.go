package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSigner issues and verifies self-contained password-reset tokens.
// The signing key comes from configuration once at startup and is fixed
// for the process lifetime.
type TokenSigner struct {
	secret []byte
}

func NewTokenSigner(secret []byte) *TokenSigner {
	return &TokenSigner{secret: secret}
}

type resetClaims struct {
	jwt.RegisteredClaims
	UserID uint `json:"reset_password"`
}

// IssueResetToken produces a signed token naming userID as its subject,
// valid for ttl from now. No server-side state is kept.
func (s *TokenSigner) IssueResetToken(userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, resetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	})

	return t.SignedString(s.secret)
}

// VerifyResetToken returns the subject user id iff the signature validates
// and the expiry has not passed. Malformed, forged and expired tokens are
// all reported identically as not ok.
func (s *TokenSigner) VerifyResetToken(token string) (uint, bool) {
	claims := &resetClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return s.secret, nil
	})
	if err != nil || !parsed.Valid || claims.UserID == 0 {
		return 0, false
	}

	return claims.UserID, true
}
