package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret-key-for-jwt-signing-minimum-32-bytes")
		t.Setenv("JWT_EXPIRATION_HOURS", "48")

		cfg, err := NewJWTConfig()
		require.NoError(t, err)
		assert.Equal(t, "test-secret-key-for-jwt-signing-minimum-32-bytes", cfg.Secret)
		assert.Equal(t, 48, cfg.ExpirationHours)
	})

	t.Run("default expiration", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret-key-for-jwt-signing-minimum-32-bytes")
		t.Setenv("JWT_EXPIRATION_HOURS", "")

		cfg, err := NewJWTConfig()
		require.NoError(t, err)
		assert.Equal(t, 24, cfg.ExpirationHours)
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := NewJWTConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("non-numeric expiration", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret-key-for-jwt-signing-minimum-32-bytes")
		t.Setenv("JWT_EXPIRATION_HOURS", "tomorrow")

		_, err := NewJWTConfig()
		assert.Error(t, err)
	})

	t.Run("zero expiration rejected", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret-key-for-jwt-signing-minimum-32-bytes")
		t.Setenv("JWT_EXPIRATION_HOURS", "0")

		_, err := NewJWTConfig()
		assert.Error(t, err)
	})
}
