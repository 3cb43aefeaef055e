package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application. Values come from
// config.yaml and/or FINDS_* environment variables; the token can also
// be stored via `finds auth` and is resolved at wiring time.
type Config struct {
	// Owner/Repo is the GitHub repository whose issues are the catalog.
	Owner string `mapstructure:"owner"`
	Repo  string `mapstructure:"repo"`

	// Branch is where uploaded images land.
	Branch string `mapstructure:"branch"`

	// Label marks issues that represent products.
	Label string `mapstructure:"label"`

	// Token is a write-capable personal access token. Optional; reads
	// work anonymously within GitHub's rate limits.
	Token string `mapstructure:"token"`

	// CacheMinutes is the freshness window for the persisted catalog
	// snapshot.
	CacheMinutes int `mapstructure:"cache_minutes"`

	// MaxItems bounds how many issues one listing requests (API max 100).
	MaxItems int `mapstructure:"max_items"`

	// DBPath is the BadgerDB directory for cache and token storage.
	DBPath string `mapstructure:"db_path"`

	// ListenAddr is the HTTP API bind address.
	ListenAddr string `mapstructure:"listen_addr"`

	// TelegramBotToken enables the admin bot when set.
	TelegramBotToken string `mapstructure:"telegram_bot_token"`

	// ScrapePreviews enables headless preview scraping for submissions
	// without an image URL.
	ScrapePreviews bool `mapstructure:"scrape_previews"`

	LogLevel string `mapstructure:"log_level"`
}

// Freshness returns the cache window as a duration.
func (c Config) Freshness() time.Duration {
	return time.Duration(c.CacheMinutes) * time.Minute
}

// Load reads configuration from config.yaml in path and from FINDS_*
// environment variables (e.g. FINDS_OWNER, FINDS_TELEGRAM_BOT_TOKEN).
func Load(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("FINDS")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("branch", "main")
	viper.SetDefault("label", "product")
	viper.SetDefault("cache_minutes", 10)
	viper.SetDefault("max_items", 100)
	viper.SetDefault("db_path", "./finds_data")
	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("scrape_previews", false)
	viper.SetDefault("log_level", "info")

	if err := viper.ReadInConfig(); err != nil {
		// Missing file is fine, env vars may carry everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if cfg.Owner == "" {
		return Config{}, fmt.Errorf("owner is not set (config.yaml or FINDS_OWNER)")
	}
	if cfg.Repo == "" {
		return Config{}, fmt.Errorf("repo is not set (config.yaml or FINDS_REPO)")
	}
	if cfg.CacheMinutes < 0 {
		return Config{}, fmt.Errorf("cache_minutes must not be negative")
	}

	return cfg, nil
}
