package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("marie@example.org"))
	assert.NoError(t, ValidateEmail("  marie@example.org  "))

	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("marie"))
	assert.Error(t, ValidateEmail("marie@"))
	assert.Error(t, ValidateEmail("marie@example"))
	assert.Error(t, ValidateEmail("ma rie@example.org"))
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("marie"))
	assert.NoError(t, ValidateUsername("marie_2024"))

	assert.Error(t, ValidateUsername(""))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("marie dupont"))
	assert.Error(t, ValidateUsername("marie-dupont"))
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("abcd1"))
	assert.NoError(t, ValidatePassword("abcd12"))
	assert.NoError(t, ValidatePassword("un mot de passe long"))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("prénom", "Marie", MaxFirstNameLength))
	assert.Error(t, ValidateName("prénom", "", MaxFirstNameLength))
	assert.Error(t, ValidateName("prénom", "   ", MaxFirstNameLength))

	long := make([]byte, MaxFirstNameLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, ValidateName("prénom", string(long), MaxFirstNameLength))
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(25))
	assert.NoError(t, ValidateAmount(0.5))

	assert.Error(t, ValidateAmount(0))
	assert.Error(t, ValidateAmount(-5))
	assert.Error(t, ValidateAmount(2_000_000))
}
