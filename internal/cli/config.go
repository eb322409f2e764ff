package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	maxWalkDepth = 25
)

// Config represents the scoringctl configuration from scoring.yaml.
type Config struct {
	// Schema is the path to the course manifest file describing the
	// content-model tree used by validate/status (e.g. "course.yaml").
	Schema string `mapstructure:"schema"`

	// Database configuration for the optional Postgres-backed offline
	// storage binding.
	Database DatabaseConfig `mapstructure:"database"`

	// Passmark is the default applied to any TotalSet a loaded manifest
	// doesn't configure explicitly (spec.md §4.5).
	Passmark PassmarkConfig `mapstructure:"passmark"`

	// IsBackwardCompatible is loaded from configuration (spec.md §8);
	// nothing in this module reads it, and the pre-v2 scoring/100 and
	// isPercentageBased semantics are not implemented.
	IsBackwardCompatible bool `mapstructure:"is_backward_compatible"`

	// Renderer holds the lifecycle renderer's scheduling knobs.
	Renderer RendererConfig `mapstructure:"renderer"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// PassmarkConfig mirrors scoring.Passmark in mapstructure form.
type PassmarkConfig struct {
	IsEnabled             bool    `mapstructure:"is_enabled"`
	RequiresPassedSubsets bool    `mapstructure:"requires_passed_subsets"`
	Score                 float64 `mapstructure:"score"`
	Correctness           float64 `mapstructure:"correctness"`
	IsScaled              bool    `mapstructure:"is_scaled"`
}

// RendererConfig holds the internal/lifecycle.Renderer scheduling knobs.
type RendererConfig struct {
	FPS int `mapstructure:"fps"`
}

// LoadConfig discovers and loads configuration with proper precedence:
// flags > env > config file > defaults.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered.
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()

	// 1. Set defaults first (lowest precedence)
	setDefaults(v)

	// 2. Set up environment variable binding
	v.SetEnvPrefix("SCORINGCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 3. Find and load config file
	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	// 4. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	// Top-level defaults
	v.SetDefault("schema", "course.yaml")
	v.SetDefault("is_backward_compatible", false)

	// Database defaults
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.sslmode", "prefer")

	// Passmark defaults (disabled passmark: every TotalSet passes unless
	// a manifest opts in explicitly).
	v.SetDefault("passmark.is_enabled", false)
	v.SetDefault("passmark.requires_passed_subsets", false)
	v.SetDefault("passmark.score", 0.0)
	v.SetDefault("passmark.correctness", 0.0)
	v.SetDefault("passmark.is_scaled", true)

	// Renderer defaults
	v.SetDefault("renderer.fps", 30)
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for scoring.yaml or scoring.yml,
// stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	// Auto-discovery: walk up to .git or maxWalkDepth
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		// Try scoring.yaml then scoring.yml
		for _, name := range []string{"scoring.yaml", "scoring.yml"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		// Check for repo boundary (.git file or directory)
		gitPath := filepath.Join(dir, ".git")
		if _, err := os.Stat(gitPath); err == nil {
			break // Stop at repo root
		}

		// Move up
		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached filesystem root
		}
		dir = parent
	}

	return "", nil // No config found, use defaults
}

// DSN returns the database connection string.
// If database.url is set, it's returned directly.
// Otherwise, builds a DSN from discrete fields.
func (c *Config) DSN() (string, error) {
	db := c.Database

	if db.URL != "" {
		return db.URL, nil
	}

	// Build DSN from discrete fields
	if db.Host == "" {
		return "", fmt.Errorf("database.host is required when database.url is not set")
	}
	if db.Name == "" {
		return "", fmt.Errorf("database.name is required when database.url is not set")
	}
	if db.User == "" {
		return "", fmt.Errorf("database.user is required when database.url is not set")
	}

	// Build postgres:// URL
	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   "/" + db.Name,
	}

	if db.Password != "" {
		u.User = url.UserPassword(db.User, db.Password)
	} else {
		u.User = url.User(db.User)
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}
