// Package config loads the optional YAML configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig mirrors the YAML file. Pointer fields distinguish "unset" from
// an explicit zero.
type FileConfig struct {
	UserAgent            string            `yaml:"user_agent"`
	Timeout              time.Duration     `yaml:"timeout"`
	MaxRetries           *int              `yaml:"max_retries"`
	GithubTokenEnv       string            `yaml:"github_token_env"`
	MaxLicenseNameLength int               `yaml:"max_license_name_length"`
	Concurrency          int               `yaml:"concurrency"`
	BaseURLs             map[string]string `yaml:"base_urls"`
	Debug                *bool             `yaml:"debug"`
	LogFile              string            `yaml:"log_file"`
}

// Load reads the config file at path. An empty path yields the zero config.
func Load(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("read config: %w", err)
	}

	return FromString(string(raw))
}

// FromString parses YAML config text.
func FromString(s string) (FileConfig, error) {
	var cfg FileConfig
	if err := yaml.Unmarshal([]byte(s), &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("parse config YAML: %w", err)
	}
	if cfg.MaxRetries != nil && *cfg.MaxRetries < 0 {
		return FileConfig{}, fmt.Errorf("max_retries must not be negative")
	}
	if cfg.Concurrency < 0 {
		return FileConfig{}, fmt.Errorf("concurrency must not be negative")
	}
	return cfg, nil
}
