// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type passwordPayload struct {
	Password string `validate:"required,strong_password"`
}

func TestStrongPassword(t *testing.T) {
	assert.NoError(t, ValidateStruct(&passwordPayload{Password: "Str0ng!pass"}))
	// Exactly eight characters with all classes passes.
	assert.NoError(t, ValidateStruct(&passwordPayload{Password: "short1!A"}))

	for _, weak := range []string{
		"alllower1!",
		"ALLUPPER1!",
		"NoNumbers!",
		"NoSpecial1",
		"Ab1!",
	} {
		assert.Error(t, ValidateStruct(&passwordPayload{Password: weak}), weak)
	}
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(&passwordPayload{Password: ""})
	assert.Error(t, err)

	details := GetValidationErrors(err)
	assert.Len(t, details, 1)
	assert.Equal(t, "password", details[0].Field)
	assert.Equal(t, "required", details[0].Tag)
}
