package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{"válido", "trader_99", true},
		{"muy corto", "ab", false},
		{"caracteres inválidos", "trader-99!", false},
		{"reservado", "admin", false},
		{"reservado en mayúsculas", "Root", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateUsername(tt.username)
			if tt.valid {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestValidateEmailDomain(t *testing.T) {
	assert.Empty(t, validateEmailDomain("user@example.com"))
	assert.NotEmpty(t, validateEmailDomain("user@mailinator.com"))
	assert.NotEmpty(t, validateEmailDomain("sin-arroba"))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"fuerte", "Segura123!", true},
		{"tres criterios", "abcdef12", true},
		{"muy corta", "Ab1!", false},
		{"débil", "aaaaaa", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validatePassword(tt.password)
			if tt.valid {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestPasswordScore(t *testing.T) {
	assert.Equal(t, 5, passwordScore("Segura123!"))
	assert.Equal(t, 1, passwordScore("abcde"))
	assert.Equal(t, 0, passwordScore("___"))
}
