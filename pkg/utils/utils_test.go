package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", hash)
	assert.True(t, CheckPasswordHash("Sup3rSecret", hash))
	assert.False(t, CheckPasswordHash("sup3rsecret", hash))
	assert.False(t, CheckPasswordHash("Sup3rSecret", "not-a-hash"))

	again, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "bcrypt salts every hash")
}

func TestIsEmail(t *testing.T) {
	tests := map[string]bool{
		"ada@example.com":             true,
		"first.last@mail.example.org": true,
		"no-at-sign":                  false,
		"@example.com":                false,
		"Ada <ada@example.com>":       false,
		"":                            false,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, IsEmail(in))
		})
	}
}

func TestPasswordStrength(t *testing.T) {
	weak := PasswordStrength("Password1")
	strong := PasswordStrength("q7#Vt!mZ2@wLp9$Rk4^xBn")
	assert.Less(t, weak, strong)
	assert.GreaterOrEqual(t, strong, 3)
	assert.LessOrEqual(t, PasswordStrength("alice2024", "alice"), PasswordStrength("alice2024"))
}
