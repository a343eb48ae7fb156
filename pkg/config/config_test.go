package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func validEnv() map[string]string {
	return map[string]string{
		EnvEmail:                "player@example.com",
		EnvPassword:             "secret",
		EnvBrowserbaseProjectID: "proj-123",
		EnvBrowserbaseAPIKey:    "bb-key",
		EnvOpenAIKey:            "sk-test",
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("", envMap(validEnv()), Overrides{})
	require.NoError(t, err)

	assert.Equal(t, DefaultTargetURL, cfg.Site.TargetURL)
	assert.Equal(t, DefaultNavigationTimeout, cfg.Site.NavigationTimeout)
	assert.Equal(t, BrowserBrowserbase, cfg.Browser.Provider)
	assert.Equal(t, DefaultRegion, cfg.Browser.Region)
	assert.Equal(t, 900*time.Second, cfg.Browser.Timeout)
	assert.Equal(t, DefaultModel, cfg.LLM.Model)
	assert.False(t, cfg.Debug)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvValues(t *testing.T) {
	env := validEnv()
	env[EnvDebug] = "true"
	env[EnvBrowserbaseRegion] = "eu-central-1"
	env[EnvBrowserbaseTimeout] = "300"
	env[EnvOpenAIBaseURL] = "https://gateway.example/v1"

	cfg, err := Load(writeFile(t, "{}"), envMap(env), Overrides{})
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "player@example.com", cfg.Credentials.Email)
	assert.Equal(t, "eu-central-1", cfg.Browser.Region)
	assert.Equal(t, 300*time.Second, cfg.Browser.Timeout)
	assert.Equal(t, "https://gateway.example/v1", cfg.LLM.BaseURL)
}

func TestLoad_DebugOnlyForLiteralTrue(t *testing.T) {
	env := validEnv()
	env[EnvDebug] = "1"

	cfg, err := Load(writeFile(t, "{}"), envMap(env), Overrides{})
	require.NoError(t, err)
	assert.False(t, cfg.Debug)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	env := validEnv()
	env[EnvBrowserbaseTimeout] = "soon"

	_, err := Load(writeFile(t, "{}"), envMap(env), Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvBrowserbaseTimeout)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, `
site:
  target_url: https://www.rec.us/organizations/test-park
  navigation_timeout: 30s
browser:
  provider: local
  headless: false
llm:
  model: file-model
  base_url: https://file.example/v1
  snapshot_tokens: 8000
artifacts:
  dir: ./runs
`)
	env := validEnv()
	env[EnvModel] = "env-model"

	cfg, err := Load(path, envMap(env), Overrides{Model: "cli-model"})
	require.NoError(t, err)

	assert.Equal(t, "cli-model", cfg.LLM.Model, "CLI beats env and file")
	assert.Equal(t, "https://file.example/v1", cfg.LLM.BaseURL, "file beats default")
	assert.Equal(t, 8000, cfg.LLM.SnapshotTokens)
	assert.Equal(t, "https://www.rec.us/organizations/test-park", cfg.Site.TargetURL)
	assert.Equal(t, 30*time.Second, cfg.Site.NavigationTimeout)
	assert.Equal(t, BrowserLocal, cfg.Browser.Provider)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, "./runs", cfg.ArtifactDir)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), envMap(validEnv()), Overrides{})
	require.Error(t, err)
}

func TestLoad_NegativeSnapshotTokens(t *testing.T) {
	_, err := Load(writeFile(t, "llm:\n  snapshot_tokens: -1\n"), envMap(validEnv()), Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm.snapshot_tokens")
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeFile(t, "site: [unclosed"), envMap(validEnv()), Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestValidate_MissingCredentialsNamesBothVariables(t *testing.T) {
	for _, drop := range []string{EnvEmail, EnvPassword} {
		t.Run(drop, func(t *testing.T) {
			env := validEnv()
			delete(env, drop)

			cfg, err := Load(writeFile(t, "{}"), envMap(env), Overrides{})
			require.NoError(t, err)

			err = cfg.Validate()
			require.Error(t, err)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Contains(t, err.Error(), EnvEmail)
			assert.Contains(t, err.Error(), EnvPassword)
		})
	}
}

func TestValidate_ProviderRequirements(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "browserbase needs project id",
			mutate:  func(c *Config) { c.Browser.ProjectID = "" },
			wantErr: EnvBrowserbaseProjectID,
		},
		{
			name:    "browserbase needs api key",
			mutate:  func(c *Config) { c.Browser.APIKey = "" },
			wantErr: EnvBrowserbaseAPIKey,
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Browser.Provider = "firefox-grid" },
			wantErr: "unknown browser provider",
		},
		{
			name:    "llm key",
			mutate:  func(c *Config) { c.LLM.APIKey = "" },
			wantErr: EnvOpenAIKey,
		},
		{
			name: "local provider needs no project",
			mutate: func(c *Config) {
				c.Browser.Provider = BrowserLocal
				c.Browser.ProjectID = ""
				c.Browser.APIKey = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, "{}"), envMap(validEnv()), Overrides{})
			require.NoError(t, err)
			tt.mutate(&cfg)

			err = cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuildProvider(t *testing.T) {
	t.Setenv("OPENAI_BASE_URL", "")

	_, err := BuildProvider(LLMConfig{})
	require.Error(t, err)

	p, err := BuildProvider(LLMConfig{APIKey: "sk-test", BaseURL: "https://gw.example/v1"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, p.GetModel())
	assert.Equal(t, "https://gw.example/v1", p.GetBaseURL())
}
