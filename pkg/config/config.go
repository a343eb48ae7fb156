// Package config resolves the run configuration once at startup.
//
// Values are layered with the precedence CLI flags > environment variables >
// config file > defaults. The resolved Config is an immutable value that is
// handed to the runner; nothing else in the program reads the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Environment variable names.
const (
	EnvEmail    = "SF_REC_PARK_EMAIL"
	EnvPassword = "SF_REC_PARK_PASSWORD"
	EnvDebug    = "DEBUG"

	EnvBrowser  = "COURTBOOK_BROWSER"
	EnvHeadless = "COURTBOOK_HEADLESS"

	EnvBrowserbaseProjectID = "BROWSERBASE_PROJECT_ID"
	EnvBrowserbaseAPIKey    = "BROWSERBASE_API_KEY"
	EnvBrowserbaseRegion    = "BROWSERBASE_REGION"
	EnvBrowserbaseTimeout   = "BROWSERBASE_TIMEOUT"

	EnvOpenAIKey     = "OPENAI_API_KEY"
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
	EnvModel         = "COURTBOOK_MODEL"
)

// Browser providers.
const (
	BrowserBrowserbase = "browserbase"
	BrowserLocal       = "local"
)

// Defaults.
const (
	DefaultTargetURL         = "https://www.rec.us/organizations/san-francisco-rec-park"
	DefaultAllowedURLs       = "https://www.rec.us/*"
	DefaultNavigationTimeout = 60 * time.Second
	DefaultRegion            = "us-west-2"
	DefaultSessionTimeout    = 900 * time.Second
	DefaultModel             = "gpt-4o"
)

// Credentials is the booking site login.
type Credentials struct {
	Email    string
	Password string
}

// BrowserConfig selects and configures the browser session provider.
type BrowserConfig struct {
	Provider  string
	ProjectID string
	APIKey    string
	Region    string
	Timeout   time.Duration
	Headless  bool
}

// LLMConfig configures the model behind the semantic executor.
type LLMConfig struct {
	Model   string
	BaseURL string
	APIKey  string

	// SnapshotTokens caps the page HTML sent per request; zero keeps the
	// executor default.
	SnapshotTokens int
}

// SiteConfig describes the booking site.
type SiteConfig struct {
	TargetURL         string
	AllowedURLs       string
	NavigationTimeout time.Duration
}

// Config is the fully resolved run configuration.
type Config struct {
	Credentials Credentials
	Browser     BrowserConfig
	LLM         LLMConfig
	Site        SiteConfig
	ArtifactDir string
	Debug       bool
}

// Overrides carries command line values. Empty fields leave lower layers in place.
type Overrides struct {
	Model       string
	BaseURL     string
	APIKey      string
	Browser     string
	ArtifactDir string
	Debug       bool
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Browser: BrowserConfig{
			Provider: BrowserBrowserbase,
			Region:   DefaultRegion,
			Timeout:  DefaultSessionTimeout,
			Headless: true,
		},
		LLM: LLMConfig{Model: DefaultModel},
		Site: SiteConfig{
			TargetURL:         DefaultTargetURL,
			AllowedURLs:       DefaultAllowedURLs,
			NavigationTimeout: DefaultNavigationTimeout,
		},
	}
}

// DefaultPath returns ~/.courtbook/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".courtbook", "config.yaml"), nil
}

// Load resolves the configuration. path may be empty, in which case the
// default file is used if present. getenv is usually os.Getenv.
func Load(path string, getenv func(string) string, cli Overrides) (Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		fc, err := ReadFile(path)
		switch {
		case err == nil:
			fc.apply(&cfg)
		case os.IsNotExist(err) && !explicit:
		default:
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}
	applyOverrides(&cfg, cli)
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	env := func(k string) string { return strings.TrimSpace(getenv(k)) }

	cfg.Credentials.Email = env(EnvEmail)
	cfg.Credentials.Password = getenv(EnvPassword)
	if env(EnvDebug) == "true" {
		cfg.Debug = true
	}

	if v := env(EnvBrowser); v != "" {
		cfg.Browser.Provider = strings.ToLower(v)
	}
	if v := env(EnvHeadless); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvHeadless, err)
		}
		cfg.Browser.Headless = b
	}
	if v := env(EnvBrowserbaseProjectID); v != "" {
		cfg.Browser.ProjectID = v
	}
	if v := env(EnvBrowserbaseAPIKey); v != "" {
		cfg.Browser.APIKey = v
	}
	if v := env(EnvBrowserbaseRegion); v != "" {
		cfg.Browser.Region = v
	}
	if v := env(EnvBrowserbaseTimeout); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs < 1 {
			return fmt.Errorf("invalid %s: want a positive number of seconds, got %q", EnvBrowserbaseTimeout, v)
		}
		cfg.Browser.Timeout = time.Duration(secs) * time.Second
	}

	if v := env(EnvOpenAIKey); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := env(EnvOpenAIBaseURL); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := env(EnvModel); v != "" {
		cfg.LLM.Model = v
	}
	return nil
}

func applyOverrides(cfg *Config, cli Overrides) {
	if cli.Model != "" {
		cfg.LLM.Model = cli.Model
	}
	if cli.BaseURL != "" {
		cfg.LLM.BaseURL = cli.BaseURL
	}
	if cli.APIKey != "" {
		cfg.LLM.APIKey = cli.APIKey
	}
	if cli.Browser != "" {
		cfg.Browser.Provider = strings.ToLower(cli.Browser)
	}
	if cli.ArtifactDir != "" {
		cfg.ArtifactDir = cli.ArtifactDir
	}
	if cli.Debug {
		cfg.Debug = true
	}
}

// ConfigError lists everything that keeps a run from starting.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + strings.Join(e.Problems, "; ")
}

// Validate checks that required credentials and provider settings are present.
// It returns *ConfigError.
func (c Config) Validate() error {
	var problems []string

	if c.Credentials.Email == "" || c.Credentials.Password == "" {
		problems = append(problems, fmt.Sprintf("missing %s or %s environment variables", EnvEmail, EnvPassword))
	}

	switch c.Browser.Provider {
	case BrowserBrowserbase:
		if c.Browser.ProjectID == "" {
			problems = append(problems, fmt.Sprintf("missing %s environment variable", EnvBrowserbaseProjectID))
		}
		if c.Browser.APIKey == "" {
			problems = append(problems, fmt.Sprintf("missing %s environment variable", EnvBrowserbaseAPIKey))
		}
	case BrowserLocal:
	default:
		problems = append(problems, fmt.Sprintf("unknown browser provider %q (want %q or %q)", c.Browser.Provider, BrowserBrowserbase, BrowserLocal))
	}

	if c.LLM.APIKey == "" {
		problems = append(problems, fmt.Sprintf("missing %s environment variable", EnvOpenAIKey))
	}
	if c.Site.TargetURL == "" {
		problems = append(problems, "site target URL is empty")
	}

	if len(problems) > 0 {
		return &ConfigError{Problems: problems}
	}
	return nil
}
