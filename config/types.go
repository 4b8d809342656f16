package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Pixiv    PixivConfig    `mapstructure:"pixiv"`
	Download DownloadConfig `mapstructure:"download"`
	Filter   FilterConfig   `mapstructure:"filter"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// PixivConfig holds connection details for the pixiv web API
type PixivConfig struct {
	Scheme    string        `mapstructure:"scheme"`
	Host      string        `mapstructure:"host"`
	UserAgent string        `mapstructure:"user_agent"`
	Language  string        `mapstructure:"language"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// DownloadConfig controls where and how pages are saved
type DownloadConfig struct {
	Dir         string `mapstructure:"dir"`
	Size        string `mapstructure:"size"`
	Concurrency int    `mapstructure:"concurrency"`
	Overwrite   bool   `mapstructure:"overwrite"`
}

// FilterConfig contains named page filter expressions
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
