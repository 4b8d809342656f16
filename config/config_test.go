package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Pixiv: PixivConfig{
			Scheme:  "https",
			Host:    "www.pixiv.net",
			Timeout: 30 * time.Second,
		},
		Download: DownloadConfig{
			Dir:         ".",
			Size:        "original",
			Concurrency: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:   "uppercase scheme",
			mutate: func(c *Config) { c.Pixiv.Scheme = "HTTP" },
		},
		{
			name:    "ftp scheme",
			mutate:  func(c *Config) { c.Pixiv.Scheme = "ftp" },
			wantErr: "invalid pixiv.scheme: ftp",
		},
		{
			name:    "empty host",
			mutate:  func(c *Config) { c.Pixiv.Host = "" },
			wantErr: "pixiv.host is required",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Pixiv.Timeout = -time.Second },
			wantErr: "pixiv.timeout",
		},
		{
			name:    "unknown size",
			mutate:  func(c *Config) { c.Download.Size = "huge" },
			wantErr: "invalid download.size",
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Download.Concurrency = 0 },
			wantErr: "download.concurrency",
		},
		{
			name:    "empty preset",
			mutate:  func(c *Config) { c.Filter.Presets = map[string]string{"big": " "} },
			wantErr: "filter preset 'big'",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid logging level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
pixiv:
  language: en
  timeout: 10s
download:
  dir: /tmp/pixiv
  size: regular
  concurrency: 8
filter:
  presets:
    wallpapers: landscape() and Width >= 1920
logging:
  level: debug
  format: json
`), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "https", cfg.Pixiv.Scheme)
		assert.Equal(t, "www.pixiv.net", cfg.Pixiv.Host)
		assert.Equal(t, "en", cfg.Pixiv.Language)
		assert.Equal(t, 10*time.Second, cfg.Pixiv.Timeout)
		assert.Equal(t, "/tmp/pixiv", cfg.Download.Dir)
		assert.Equal(t, "regular", cfg.Download.Size)
		assert.Equal(t, 8, cfg.Download.Concurrency)
		assert.Equal(t, "landscape() and Width >= 1920", cfg.Filter.Presets["wallpapers"])
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
	})

	t.Run("invalid file content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("pixiv:\n  scheme: ftp\n"), 0o644))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid pixiv.scheme")
	})

	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("defaults without file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("HOME", t.TempDir())
		t.Setenv("PIXFETCH_PIXIV_LANGUAGE", "ko")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "https", cfg.Pixiv.Scheme)
		assert.Equal(t, "ko", cfg.Pixiv.Language)
		assert.Equal(t, "original", cfg.Download.Size)
		assert.Equal(t, 4, cfg.Download.Concurrency)
		assert.Equal(t, "info", cfg.Logging.Level)
	})
}
