package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/tbourn/go-survey-backend/internal/domain"
)

// ErrInvalidToken is returned for any token that fails parsing, signature or
// expiry checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims are carried by portal/admin tokens.
type Claims struct {
	Role       domain.Role `json:"role"`
	EmployeeID string      `json:"employee_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and parses HS256 portal tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer returns an issuer whose tokens live for ttl.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is the lifetime of issued tokens.
func (t *TokenIssuer) TTL() time.Duration { return t.ttl }

// Issue signs a token for userID with the given role.
func (t *TokenIssuer) Issue(userID string, role domain.Role, employeeID string) (string, error) {
	now := t.now()
	claims := Claims{
		Role:       role,
		EmployeeID: employeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse validates tok and returns its claims.
func (t *TokenIssuer) Parse(tok string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tok, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	c, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || c.Subject == "" || !c.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return c, nil
}
