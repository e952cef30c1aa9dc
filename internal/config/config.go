package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Export   ExportConfig
	Card     CardConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// ExportConfig controls where and how cards are written.
type ExportConfig struct {
	Dir          string
	Scale        int
	ImageTimeout time.Duration `mapstructure:"image_timeout"`
	WriteADIF    bool          `mapstructure:"write_adif"`
}

// CardConfig points at the optional theme file and background image.
type CardConfig struct {
	Theme      string
	Background string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Path  string
	Level string
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "qslcard")
}

// Load reads configuration from file and env. Env var overrides use prefix QSLCARD_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(dataDir(), "qslcard.db"))
	v.SetDefault("export.dir", filepath.Join(os.Getenv("HOME"), "QSL"))
	v.SetDefault("export.scale", 2)
	v.SetDefault("export.image_timeout", "15s")
	v.SetDefault("export.write_adif", false)
	v.SetDefault("card.theme", "")
	v.SetDefault("card.background", "")
	v.SetDefault("log.path", filepath.Join(dataDir(), "qslcard.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("QSLCARD_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "qslcard"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("QSLCARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Export.Scale < 1 {
		c.Export.Scale = 2
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("QSLCARD_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "qslcard", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("export.dir", cfg.Export.Dir)
	v.Set("export.scale", cfg.Export.Scale)
	v.Set("export.image_timeout", cfg.Export.ImageTimeout.String())
	v.Set("export.write_adif", cfg.Export.WriteADIF)
	v.Set("card.theme", cfg.Card.Theme)
	v.Set("card.background", cfg.Card.Background)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
