// Package config provides configuration loading and validation for the API server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// DefaultPort matches the port the résumé frontend expects
const DefaultPort = 5000

// Config represents the server configuration. It can be loaded from a JSON or
// YAML file and overridden from the environment; all fields are optional.
type Config struct {
	Port         int      `json:"port,omitempty" yaml:"port,omitempty"`                   // HTTP listen port
	DatabaseURL  string   `json:"database_url,omitempty" yaml:"database_url,omitempty"`   // PostgreSQL connection URL (optional)
	ResumePath   string   `json:"resume_path,omitempty" yaml:"resume_path,omitempty"`     // Résumé JSON served by /api/resume
	SkillsPath   string   `json:"skills_path,omitempty" yaml:"skills_path,omitempty"`     // Vocabulary file replacing the built-in skills
	CORSOrigins  []string `json:"cors_origins,omitempty" yaml:"cors_origins,omitempty"`   // Allowed origins; empty means "*"
	AuthRequired bool     `json:"auth_required,omitempty" yaml:"auth_required,omitempty"` // Require a bearer token on /api routes
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port: DefaultPort,
	}
}

// LoadConfig loads configuration from a JSON (.json) or YAML (.yaml, .yml) file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv reads configuration overrides from environment variables:
// PORT, DATABASE_URL, RESUME_PATH, SKILLS_PATH, CORS_ORIGINS (comma-separated)
// and AUTH_REQUIRED. Unset or unparsable variables leave fields empty.
func FromEnv() Config {
	cfg := Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		ResumePath:  os.Getenv("RESUME_PATH"),
		SkillsPath:  os.Getenv("SKILLS_PATH"),
		CORSOrigins: splitList(os.Getenv("CORS_ORIGINS")),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	if required, err := strconv.ParseBool(os.Getenv("AUTH_REQUIRED")); err == nil {
		cfg.AuthRequired = required
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}

	if c.ResumePath != "" {
		if _, err := os.Stat(c.ResumePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.ResumePath)
		}
	}

	if c.SkillsPath != "" {
		if _, err := os.Stat(c.SkillsPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: skills file not found: %s", c.SkillsPath)
		}
	}

	for _, origin := range c.CORSOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("config error: invalid CORS origin %q", origin)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ResumePath == "" {
		result.ResumePath = defaults.ResumePath
	}
	if result.SkillsPath == "" {
		result.SkillsPath = defaults.SkillsPath
	}
	if len(result.CORSOrigins) == 0 {
		result.CORSOrigins = defaults.CORSOrigins
	}

	// Bools cannot distinguish unset from false; any layer can switch auth on
	result.AuthRequired = result.AuthRequired || defaults.AuthRequired

	return result
}

func splitList(list string) []string {
	var out []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
