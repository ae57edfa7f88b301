package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"smartinvoice/internal/layout"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port         string   `mapstructure:"port"`
	Mode         string   `mapstructure:"mode"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type DatabaseConfig struct {
	Driver  string `mapstructure:"driver"` // sqlite or postgres
	DSN     string `mapstructure:"dsn"`
	LogMode bool   `mapstructure:"log_mode"`
}

type LayoutConfig struct {
	FirstPageCapacity int `mapstructure:"first_page_capacity"`
	PageCapacity      int `mapstructure:"page_capacity"`
}

type AutosaveConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

type AssistantConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LocaleConfig struct {
	Default string `mapstructure:"default"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Layout    LayoutConfig    `mapstructure:"layout"`
	Autosave  AutosaveConfig  `mapstructure:"autosave"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Locale    LocaleConfig    `mapstructure:"locale"`
}

// Capacity returns the pagination capacities.
func (c Config) Capacity() layout.Capacity {
	return layout.Capacity{First: c.Layout.FirstPageCapacity, Continuation: c.Layout.PageCapacity}
}

// Load reads configs/.env into the environment, then an optional YAML file at path, then
// SMARTINVOICE_* environment overrides (e.g. SMARTINVOICE_SERVER_PORT=9000).
func Load(path string) (*Config, error) {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SMARTINVOICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Bare PORT and API_KEY are honoured for hosting platforms and the Gemini SDK convention.
	_ = v.BindEnv("server.port", "SMARTINVOICE_SERVER_PORT", "PORT")
	_ = v.BindEnv("assistant.api_key", "SMARTINVOICE_ASSISTANT_API_KEY", "API_KEY")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
			log.Printf("No config file at %s, using defaults and environment", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := c.Capacity().Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout config: %w", err)
	}
	if c.Locale.Default != "en" && c.Locale.Default != "ms" {
		return nil, fmt.Errorf("unsupported default locale %q", c.Locale.Default)
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.allow_origins", []string{"http://localhost:5173", "http://127.0.0.1:5173"})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "data/smartinvoice.db")
	v.SetDefault("database.log_mode", false)

	v.SetDefault("layout.first_page_capacity", layout.DefaultCapacity.First)
	v.SetDefault("layout.page_capacity", layout.DefaultCapacity.Continuation)

	v.SetDefault("autosave.debounce", time.Second)

	v.SetDefault("assistant.api_key", "")
	v.SetDefault("assistant.model", "gemini-2.0-flash")
	v.SetDefault("assistant.timeout", time.Minute)

	v.SetDefault("locale.default", "en")
}
