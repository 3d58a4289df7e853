package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
)

// Claims represents the session claim set carried by every request.
// LoanNumbers is a snapshot of the user's authorized loans at issuance
// time; staleness is bounded by the token TTL.
type Claims struct {
	UserID      string   `json:"user_id"`
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	LoanNumbers []string `json:"loan_numbers"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the claim set carries the admin role
func (c *Claims) IsAdmin() bool {
	return c.Role == "ADMIN"
}

// GenerateToken generates a signed session token
func GenerateToken(userID, username, role string, loanNumbers []string, secret string, ttl time.Duration) (string, error) {
	if loanNumbers == nil {
		loanNumbers = []string{}
	}

	claims := Claims{
		UserID:      userID,
		Username:    username,
		Role:        role,
		LoanNumbers: loanNumbers,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "bizloan-dms",
			Subject:   username,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken validates a session token and returns its claims.
// Expired tokens are reported as ErrTokenExpired even when the signature
// is otherwise valid; unparseable input is ErrTokenMalformed.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenInvalid
		}
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}
