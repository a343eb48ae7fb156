package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the optional YAML configuration file.
//
//	site:
//	  target_url: https://www.rec.us/organizations/san-francisco-rec-park
//	  allowed_urls: "https://www.rec.us/*"
//	  navigation_timeout: 60s
//	browser:
//	  provider: local
//	  headless: false
//	llm:
//	  model: gpt-4o-mini
//	  snapshot_tokens: 12000
//	artifacts:
//	  dir: ./runs
type FileConfig struct {
	Site struct {
		TargetURL         string        `yaml:"target_url"`
		AllowedURLs       string        `yaml:"allowed_urls"`
		NavigationTimeout time.Duration `yaml:"navigation_timeout"`
	} `yaml:"site"`

	Browser struct {
		Provider string `yaml:"provider"`
		Region   string `yaml:"region"`
		Timeout  int    `yaml:"timeout"` // seconds
		Headless *bool  `yaml:"headless"`
	} `yaml:"browser"`

	LLM struct {
		Model   string `yaml:"model"`
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`

		SnapshotTokens int `yaml:"snapshot_tokens"`
	} `yaml:"llm"`

	Artifacts struct {
		Dir string `yaml:"dir"`
	} `yaml:"artifacts"`

	Debug bool `yaml:"debug"`
}

// ReadFile parses a YAML config file. A missing file returns an error
// satisfying os.IsNotExist.
func ReadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if fc.Browser.Timeout < 0 {
		return nil, fmt.Errorf("config file %s: browser.timeout must be positive", path)
	}
	if fc.LLM.SnapshotTokens < 0 {
		return nil, fmt.Errorf("config file %s: llm.snapshot_tokens must be positive", path)
	}
	return &fc, nil
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.Site.TargetURL != "" {
		cfg.Site.TargetURL = fc.Site.TargetURL
	}
	if fc.Site.AllowedURLs != "" {
		cfg.Site.AllowedURLs = fc.Site.AllowedURLs
	}
	if fc.Site.NavigationTimeout > 0 {
		cfg.Site.NavigationTimeout = fc.Site.NavigationTimeout
	}

	if fc.Browser.Provider != "" {
		cfg.Browser.Provider = fc.Browser.Provider
	}
	if fc.Browser.Region != "" {
		cfg.Browser.Region = fc.Browser.Region
	}
	if fc.Browser.Timeout > 0 {
		cfg.Browser.Timeout = time.Duration(fc.Browser.Timeout) * time.Second
	}
	if fc.Browser.Headless != nil {
		cfg.Browser.Headless = *fc.Browser.Headless
	}

	if fc.LLM.Model != "" {
		cfg.LLM.Model = fc.LLM.Model
	}
	if fc.LLM.BaseURL != "" {
		cfg.LLM.BaseURL = fc.LLM.BaseURL
	}
	if fc.LLM.APIKey != "" {
		cfg.LLM.APIKey = fc.LLM.APIKey
	}
	if fc.LLM.SnapshotTokens > 0 {
		cfg.LLM.SnapshotTokens = fc.LLM.SnapshotTokens
	}

	if fc.Artifacts.Dir != "" {
		cfg.ArtifactDir = fc.Artifacts.Dir
	}
	if fc.Debug {
		cfg.Debug = true
	}
}
