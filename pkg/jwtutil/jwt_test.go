package jwtutil

import (
	"testing"

	"farm-service/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	token, err := GenerateToken("farmer@smilefarm.example", 7, 3, 2)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "farmer@smilefarm.example", claims.Email)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, uint(3), claims.EmployeeID)
	assert.Equal(t, uint(2), claims.RoleID)
}

func TestValidateTokenWrongKey(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "first-key", ExpirationHours: 1})
	token, err := GenerateToken("farmer@smilefarm.example", 1, 1, 1)
	require.NoError(t, err)

	Initialize(&config.JWTConfig{SigningKey: "second-key", ExpirationHours: 1})
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}
