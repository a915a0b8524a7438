package site

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/Its-donkey/lander/logging"
)

// EnvPrefix marks environment overrides. Nested keys use a double underscore, so
// LANDER_LOG__LEVEL sets log.level.
const EnvPrefix = "LANDER_"

// Config is the server configuration, usually read from lander.yml.
type Config struct {
	Listen          string         `koanf:"listen"`
	AssetsDir       string         `koanf:"assets_dir"`
	ContentFile     string         `koanf:"content_file"`
	AllowAllOrigins bool           `koanf:"allow_all_origins"`
	ShutdownTimeout time.Duration  `koanf:"shutdown_timeout"`
	Log             LogConfig      `koanf:"log"`
	Purchase        PurchaseConfig `koanf:"purchase"`
}

// LogConfig controls server logging. An empty Dir logs to stdout only.
type LogConfig struct {
	Level     string `koanf:"level"`
	Dir       string `koanf:"dir"`
	MaxSizeMB int    `koanf:"max_size_mb"`
	MaxFiles  int    `koanf:"max_files"`
}

// PurchaseConfig overrides the purchase chat target baked into the page.
type PurchaseConfig struct {
	BaseURL string `koanf:"base_url"`
	Phone   string `koanf:"phone"`
	Message string `koanf:"message"`
}

// DefaultConfig returns the settings used when no file or environment overrides exist.
func DefaultConfig() *Config {
	return &Config{
		Listen:          "127.0.0.1:4173",
		AssetsDir:       "web",
		ShutdownTimeout: 5 * time.Second,
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 10,
			MaxFiles:  5,
		},
	}
}

// LoadConfig reads path if it exists, then overlays LANDER_* environment variables.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration can start a server.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Listen) == "" {
		return fmt.Errorf("listen address is required")
	}
	if strings.TrimSpace(c.AssetsDir) == "" {
		return fmt.Errorf("assets_dir is required")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Dir != "" && (c.Log.MaxSizeMB <= 0 || c.Log.MaxFiles <= 0) {
		return fmt.Errorf("log.max_size_mb and log.max_files must be positive when log.dir is set")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive")
	}
	return nil
}

// NewLogger builds the server logger described by c. The returned close function flushes
// the rotating file writer when one is configured.
func (c *Config) NewLogger(source string) (*logging.Logger, func() error, error) {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	if c.Log.Dir == "" {
		return logging.New(source, level, os.Stdout), func() error { return nil }, nil
	}
	fw, err := logging.NewFileWriter(c.Log.Dir, source+".log", c.Log.MaxSizeMB, c.Log.MaxFiles)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return logging.New(source, level, os.Stdout, fw), fw.Close, nil
}
