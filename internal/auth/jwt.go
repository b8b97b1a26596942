// Package auth implements token issuance/verification and the request
// authentication middleware.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Token classes. Both carry the same claim shape and share the signing key;
// only the TTL differs.
const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

// Claims carries the subject email in the registered Subject claim plus the
// token class.
type Claims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// JWT signs and verifies tokens with an immutable key and TTLs fixed at
// construction.
type JWT struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWT builds a token manager from the process configuration.
func NewJWT(secret string, accessTTL, refreshTTL time.Duration) *JWT {
	return &JWT{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GenerateAccessToken issues a short-lived token for the given subject email.
func (j *JWT) GenerateAccessToken(email string) (string, error) {
	return j.generate(email, TokenAccess, j.accessTTL)
}

// GenerateRefreshToken issues a long-lived token for the given subject email.
func (j *JWT) GenerateRefreshToken(email string) (string, error) {
	return j.generate(email, TokenRefresh, j.refreshTTL)
}

func (j *JWT) generate(email, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "bragboard",
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

// VerifyToken checks signature and expiry and returns the claims. There is no
// fallback: any failure rejects the token.
func (j *JWT) VerifyToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
