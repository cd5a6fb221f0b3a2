package bubbo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config is read from BUBBO_* environment variables.
type Config struct {
	Title       string `env:"BUBBO_TITLE" envDefault:"Bubbo Bubbo"`
	Width       int    `env:"BUBBO_WIDTH" envDefault:"428"`
	Height      int    `env:"BUBBO_HEIGHT" envDefault:"925"`
	AssetDir    string `env:"BUBBO_ASSET_DIR"`
	Manifest    string `env:"BUBBO_MANIFEST" envDefault:"manifest.yaml"`
	StoragePath string `env:"BUBBO_STORAGE_PATH"`
	LogLevel    string `env:"BUBBO_LOG_LEVEL" envDefault:"info"`
	Debug       bool   `env:"BUBBO_DEBUG"`
	Mobile      bool   `env:"BUBBO_MOBILE"`
	Audio       bool   `env:"BUBBO_AUDIO" envDefault:"true"`
	Seed        uint64 `env:"BUBBO_SEED"`
}

// ParseConfig loads the configuration and fills the storage path from the
// user config directory when it is not set.
func ParseConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.StoragePath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = os.TempDir()
		}
		cfg.StoragePath = filepath.Join(dir, "bubbo", "storage.json")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects sizes and names the app cannot start with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Width, c.Height)
	}
	if c.Manifest == "" {
		return errors.New("config: manifest path is required")
	}
	return nil
}
