package medicaretest

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
)

var errInvalidToken = errors.New("medicaretest: invalid or expired token")

type tokenClaims struct {
	jwt.RegisteredClaims
	Role model.Role `json:"role"`
}

// mintToken issues an HS256 bearer token the way the real backend does:
// subject is the user ID, role rides along as a custom claim.
func mintToken(userID string, role model.Role, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseToken(tokenString, secret string) (*tokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, errInvalidToken
	}
	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, errInvalidToken
	}
	return claims, nil
}
