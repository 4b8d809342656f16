package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/pixfetch/pixiv"
)

// EnvPrefix prefixes environment overrides, e.g. PIXFETCH_PIXIV_LANGUAGE
const EnvPrefix = "PIXFETCH"

// Load loads the configuration. A missing config file is not an error when
// configPath is empty; every setting has a default.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".pixfetch"))
		}

		// Check /etc
		v.AddConfigPath("/etc/pixfetch/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// pixiv defaults
	v.SetDefault("pixiv.scheme", pixiv.DefaultScheme)
	v.SetDefault("pixiv.host", pixiv.DefaultBaseURL)
	v.SetDefault("pixiv.user_agent", pixiv.DefaultUserAgent)
	v.SetDefault("pixiv.language", "")
	v.SetDefault("pixiv.timeout", pixiv.DefaultTimeout)

	// Download defaults
	v.SetDefault("download.dir", ".")
	v.SetDefault("download.size", string(pixiv.SizeOriginal))
	v.SetDefault("download.concurrency", 4)
	v.SetDefault("download.overwrite", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	switch strings.ToLower(cfg.Pixiv.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("invalid pixiv.scheme: %s (must be 'http' or 'https')", cfg.Pixiv.Scheme)
	}

	if cfg.Pixiv.Host == "" {
		return fmt.Errorf("pixiv.host is required")
	}

	if cfg.Pixiv.Timeout < 0 {
		return fmt.Errorf("pixiv.timeout must not be negative")
	}

	if _, err := pixiv.ParseImageSize(cfg.Download.Size); err != nil {
		return fmt.Errorf("invalid download.size: %w", err)
	}

	if cfg.Download.Concurrency < 1 {
		return fmt.Errorf("download.concurrency must be at least 1")
	}

	for name, expression := range cfg.Filter.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter preset '%s' has an empty expression", name)
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
