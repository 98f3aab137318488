package entity

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		contains string
	}{
		{name: "valid", username: "root", password: "sekret"},
		{name: "missing username", username: "", password: "sekret", contains: "is required"},
		{name: "short username", username: "ro", password: "sekret", contains: "is shorter than the minimum allowed length"},
		{name: "long username", username: strings.Repeat("x", MaxUsernameLength+1), password: "sekret", contains: "longer than the maximum"},
		{name: "short password", username: "roooooo", password: "sa", contains: "password too small"},
		{name: "longest password", username: "root", password: strings.Repeat("x", MaxPasswordLength)},
		{name: "long password", username: "root", password: strings.Repeat("x", MaxPasswordLength+1), contains: "password too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistration(tt.username, tt.password)
			if tt.contains == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.contains)
		})
	}
}

func TestValidationErrorIsTyped(t *testing.T) {
	err := ValidateRegistration("ro", "sekret")

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "username", verr.Field)
	assert.ErrorIs(t, ValidateRegistration("root", ""), ErrPasswordTooShort)
}
