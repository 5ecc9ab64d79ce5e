package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RoleType set member role
type RoleType string

// RoleMember is the member role
const RoleMember RoleType = "member"

// Claims structure for custom claims in JWT
type Claims struct {
	MemberID string `json:"user_id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Secret Key for JWT signing and validation, overridden by config at start
var (
	JWTSecret = []byte("secure_secret_key")
	// tokenExpiration 絕對有效期, 閒置逾時由 redis session ttl 控制
	tokenExpiration = 24 * time.Hour
)

// ErrInvalidToken token parse fail
var ErrInvalidToken = errors.New("invalid token")

// SetSecret replace signing secret, empty keeps default
func SetSecret(secret string) {
	if secret != "" {
		JWTSecret = []byte(secret)
	}
}

// SetExpiration replace token lifetime, non positive keeps current
func SetExpiration(d time.Duration) {
	if d > 0 {
		tokenExpiration = d
	}
}

// Expiration current token lifetime
func Expiration() time.Duration {
	return tokenExpiration
}

// GenerateJWTFunc / ParseJWTFunc replaceable in tests
var (
	GenerateJWTFunc = GenerateJWT
	ParseJWTFunc    = ParseJWT
)

// GenerateJWT generates a JWT token
func GenerateJWT(memberID, email, role, issuer string) (string, error) {
	now := time.Now()
	claims := Claims{
		MemberID: memberID,
		Email:    email,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

// ParseJWT parses a JWT and extracts the Claims, a "Bearer " prefix is accepted
func ParseJWT(tokenStr string) (*Claims, error) {
	tokenStr = strings.TrimPrefix(tokenStr, "Bearer ")

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return JWTSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
