package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	tk, err := GenerateJWT("member-1", "a@campus.edu", string(RoleMember), "lostfound_service")
	require.NoError(t, err)

	claims, err := ParseJWT(tk)
	require.NoError(t, err)
	assert.Equal(t, "member-1", claims.MemberID)
	assert.Equal(t, "a@campus.edu", claims.Email)
	assert.Equal(t, string(RoleMember), claims.Role)

	// Bearer header form
	claims, err = ParseJWT("Bearer " + tk)
	require.NoError(t, err)
	assert.Equal(t, "member-1", claims.MemberID)
}

func TestParseJWTWrongSecret(t *testing.T) {
	claims := Claims{
		MemberID: "member-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	tk, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other"))
	require.NoError(t, err)

	_, err = ParseJWT(tk)
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	claims := Claims{
		MemberID: "member-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	tk, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(JWTSecret)
	require.NoError(t, err)

	_, err = ParseJWT(tk)
	assert.Error(t, err)
}

func TestGenerateJWTExpiration(t *testing.T) {
	orig := Expiration()
	defer SetExpiration(orig)

	SetExpiration(12 * time.Hour)
	SetExpiration(0)
	assert.Equal(t, 12*time.Hour, Expiration())

	tk, err := GenerateJWT("member-1", "a@campus.edu", string(RoleMember), "lostfound_service")
	require.NoError(t, err)
	claims, err := ParseJWT(tk)
	require.NoError(t, err)
	assert.Equal(t, 12*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestGenerateJWTUniquePerLogin(t *testing.T) {
	a, err := GenerateJWT("member-1", "a@campus.edu", string(RoleMember), "lostfound_service")
	require.NoError(t, err)
	b, err := GenerateJWT("member-1", "a@campus.edu", string(RoleMember), "lostfound_service")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
