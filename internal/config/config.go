// Package config loads application configuration from an optional
// vessel-studio.yaml next to the executable or in the working directory,
// with sane defaults for every key.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	LogLevel string

	WindowWidth  int
	WindowHeight int

	// Extraction service; empty endpoint selects the local OCR engine.
	ExtractEndpoint string
	ExtractTimeout  time.Duration

	DefaultMaterial string
	DefaultLighting string
}

// Load reads configuration, tolerating a missing config file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("vessel-studio")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/vessel-studio")

	v.SetDefault("logLevel", "info")
	v.SetDefault("window.width", 1440)
	v.SetDefault("window.height", 900)
	v.SetDefault("extract.endpoint", "")
	v.SetDefault("extract.timeoutSeconds", 60)
	v.SetDefault("defaults.material", "carbon-steel")
	v.SetDefault("defaults.lighting", "workshop")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return &Config{
		LogLevel:        v.GetString("logLevel"),
		WindowWidth:     v.GetInt("window.width"),
		WindowHeight:    v.GetInt("window.height"),
		ExtractEndpoint: v.GetString("extract.endpoint"),
		ExtractTimeout:  time.Duration(v.GetInt("extract.timeoutSeconds")) * time.Second,
		DefaultMaterial: v.GetString("defaults.material"),
		DefaultLighting: v.GetString("defaults.lighting"),
	}, nil
}
