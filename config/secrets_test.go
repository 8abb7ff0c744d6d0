package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func newTestSecrets(env map[string]string) *Secrets {
	keyring.MockInit()
	return &Secrets{
		userid: "tester",
		getenv: func(k string) string { return env[k] },
	}
}

func TestSecretsKeyring(t *testing.T) {
	s := newTestSecrets(nil)

	assert.False(t, s.HasStoredAPIKey())
	assert.Empty(t, s.GetAPIKey())

	require.NoError(t, s.SetAPIKey("  secret-key \n"))
	assert.True(t, s.HasStoredAPIKey())
	assert.Equal(t, "secret-key", s.GetAPIKey())

	require.NoError(t, s.SetAPIKey(""))
	assert.False(t, s.HasStoredAPIKey())
	require.NoError(t, s.SetAPIKey(""), "removing a missing key is not an error")
}

func TestSecretsEnvironmentFallback(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"primary", map[string]string{APIKeyEnv: "primary", FallbackAPIKeyEnv: "secondary"}, "primary"},
		{"secondary", map[string]string{FallbackAPIKeyEnv: "secondary"}, "secondary"},
		{"blank primary", map[string]string{APIKeyEnv: "  ", FallbackAPIKeyEnv: "secondary"}, "secondary"},
		{"none", map[string]string{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSecrets(tt.env)
			assert.Equal(t, tt.want, s.GetAPIKey())
		})
	}

	t.Run("keyring wins", func(t *testing.T) {
		s := newTestSecrets(map[string]string{APIKeyEnv: "env"})
		require.NoError(t, s.SetAPIKey("stored"))
		assert.Equal(t, "stored", s.GetAPIKey())
	})
}
