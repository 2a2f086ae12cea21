package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Catalog  CatalogConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// ServerConfig holds the items API settings.
type ServerConfig struct {
	Addr string
}

// CatalogConfig holds browser settings.
type CatalogConfig struct {
	PageSize   int    `mapstructure:"page_size"`
	DebounceMs int    `mapstructure:"debounce_ms"`
	SourceURL  string `mapstructure:"source_url"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

// Load reads configuration from file and env. Env var overrides use prefix BUILDWISE_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "buildwise", "catalog.db"))
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("catalog.page_size", 10)
	v.SetDefault("catalog.debounce_ms", 300)
	v.SetDefault("catalog.source_url", "")
	v.SetDefault("ui.currency_symbol", "$")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("BUILDWISE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "buildwise"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("BUILDWISE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
