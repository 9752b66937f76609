package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by access tokens. Subject holds the numeric user id.
type Claims struct {
	Role      string `json:"role"`
	CompanyID int64  `json:"company_id,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 tokens against a shared secret and RS256 tokens against a JWKS.
type Verifier struct {
	secret []byte
	jwks   *Provider
}

// NewVerifier accepts an empty secret or a nil provider to disable that algorithm.
func NewVerifier(secret string, jwks *Provider) *Verifier {
	return &Verifier{secret: []byte(secret), jwks: jwks}
}

func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodRS256.Alg()}),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	if claims.ExpiresAt == nil {
		return nil, errors.New("token has no expiry")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

func (v *Verifier) keyFunc(token *jwt.Token) (interface{}, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodHMAC:
		if len(v.secret) == 0 {
			return nil, errors.New("HS256 token received but AUTH_JWT_SECRET is not configured")
		}
		return v.secret, nil
	case *jwt.SigningMethodRSA:
		if v.jwks == nil {
			return nil, errors.New("RS256 token received but AUTH_JWKS_URL is not configured")
		}
		return v.jwks.KeyFunc(token)
	default:
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
}
