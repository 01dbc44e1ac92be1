package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "versionbadge.yaml")
	content := `
user_agent: badges/1.0
timeout: 10s
max_retries: 0
github_token_env: GH_TOKEN
max_license_name_length: 64
concurrency: 4
debug: true
base_urls:
  pypi: https://pypi.example.com
  gem: https://gems.example.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "badges/1.0", cfg.UserAgent)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	require.NotNil(t, cfg.MaxRetries)
	assert.Equal(t, 0, *cfg.MaxRetries)
	assert.Equal(t, "GH_TOKEN", cfg.GithubTokenEnv)
	assert.Equal(t, 64, cfg.MaxLicenseNameLength)
	assert.Equal(t, 4, cfg.Concurrency)
	require.NotNil(t, cfg.Debug)
	assert.True(t, *cfg.Debug)
	assert.Equal(t, "https://pypi.example.com", cfg.BaseURLs["pypi"])
	assert.Equal(t, "https://gems.example.com", cfg.BaseURLs["gem"])
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Nil(t, cfg.MaxRetries)
	assert.Empty(t, cfg.BaseURLs)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFromStringInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "user_agent: [unclosed"},
		{"negative retries", "max_retries: -1"},
		{"negative concurrency", "concurrency: -2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromString(tt.yaml)
			assert.Error(t, err)
		})
	}
}
