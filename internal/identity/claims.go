package identity

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the payload of an issued access token: registered claims
// carry subject=email, a fresh jti per issuance and the expiry; the custom
// fields mirror the stored identity.
type AccessClaims struct {
	Email  string            `json:"email"`
	UserID string            `json:"id"`
	Roles  []string          `json:"roles,omitempty"`
	Claims map[string]string `json:"claims,omitempty"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid token")

func hs256KeyFunc(secret []byte) jwt.Keyfunc {
	return func(t *jwt.Token) (any, error) {
		// Only HMAC-SHA256 is accepted, to block algorithm substitution.
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrInvalidToken
		}
		return secret, nil
	}
}

// ParseAccessToken validates signature, algorithm and expiry.
func ParseAccessToken(tokenStr string, secret []byte) (*AccessClaims, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, hs256KeyFunc(secret))
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// DecodeExpiredToken verifies signature and algorithm but skips claim
// validation, so an expired access token can still be decoded to recover its
// jti and expiry during refresh.
func DecodeExpiredToken(tokenStr string, secret []byte) (*AccessClaims, error) {
	var claims AccessClaims
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	tkn, err := parser.ParseWithClaims(tokenStr, &claims, hs256KeyFunc(secret))
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
