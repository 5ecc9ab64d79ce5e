package encrypt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePasswordStrength(t *testing.T) {
	weak := []string{
		"short1!",
		"alllowercase1!",
		"NoDigitsHere!!",
		"NoSpecial12345",
		"Aa1!Aa1!",
	}
	for _, pw := range weak {
		err := ValidatePasswordStrength(pw)
		assert.Error(t, err, pw)
		assert.True(t, errors.Is(err, ErrWeakPassword), pw)
	}

	assert.NoError(t, ValidatePasswordStrength("!!Securepassword111"))
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("!!Securepassword111")
	require.NoError(t, err)
	assert.NotEqual(t, "!!Securepassword111", hash)

	assert.NoError(t, CheckPassword(hash, "!!Securepassword111"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong"), ErrPasswordMismatch)
}
