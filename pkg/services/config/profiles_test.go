package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadProfile(t *testing.T) {
	path := writeTempFile(t, "profile.yaml", `
ein_registry_url: https://registry.example.com/api/v2
gemini_api_key: test-key
gemini_model: gemini-2.5-flash
request_timeout_seconds: 20
`)

	profile, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://registry.example.com/api/v2", profile.EINRegistryURL)
	assert.Equal(t, "test-key", profile.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-flash", profile.GeminiModel)
	assert.Equal(t, 20*time.Second, profile.RequestTimeout())
}

func TestLoadProfile_MissingFile(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestProfileRequestTimeout_Unset(t *testing.T) {
	profile := Profile{}
	assert.Equal(t, time.Duration(0), profile.RequestTimeout())
}

func TestRegistryGetProfile(t *testing.T) {
	path := writeTempFile(t, "profiles.ini", `
[default]
ein_registry_url = https://registry.example.com/api/v2
request_timeout_seconds = 15

[staging]
gemini_api_key = staging-key
gemini_model = gemini-2.5-pro
`)

	reg, err := NewRegistry(path)
	require.NoError(t, err)

	ctx := context.Background()

	profile, err := reg.GetProfile(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "https://registry.example.com/api/v2", profile.EINRegistryURL)
	assert.Equal(t, 15, profile.RequestTimeoutSeconds)
	assert.Empty(t, profile.GeminiAPIKey)

	profile, err = reg.GetProfile(ctx, "staging")
	require.NoError(t, err)
	assert.Equal(t, "staging-key", profile.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-pro", profile.GeminiModel)
}

func TestRegistryGetProfile_Unknown(t *testing.T) {
	path := writeTempFile(t, "profiles.ini", `
[default]
ein_registry_url = https://registry.example.com/api/v2
`)

	reg, err := NewRegistry(path)
	require.NoError(t, err)

	_, err = reg.GetProfile(context.Background(), "production")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile production not found")
}

func TestRegistryGetProfiles(t *testing.T) {
	path := writeTempFile(t, "profiles.ini", `
[default]
ein_registry_url = https://registry.example.com/api/v2

[staging]
gemini_api_key = staging-key
`)

	reg, err := NewRegistry(path)
	require.NoError(t, err)

	profiles, err := reg.GetProfiles(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"default", "staging"}, profiles)
}

func TestRegistry_MissingFile(t *testing.T) {
	_, err := NewRegistry(filepath.Join(t.TempDir(), "absent.ini"))
	require.Error(t, err)
}
