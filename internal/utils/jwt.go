package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	UserID    string `json:"uid"`
	UserType  string `json:"user_type"`
	Staff     bool   `json:"staff,omitempty"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func SignJWT(secret string, userID, userType string, staff bool, expiresMin int) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    userID,
		UserType:  userType,
		Staff:     staff,
		SessionID: uuid.New().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiresMin) * time.Minute)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// ParseJWT verifies the signature and expiry and returns the claims.
func ParseJWT(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
