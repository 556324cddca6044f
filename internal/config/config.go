// Package config provides Viper-based configuration management for contentctl
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Config represents the complete contentctl configuration
type Config struct {
	API           APIConfig          `mapstructure:"api"`
	Platforms     PlatformsConfig    `mapstructure:"platforms"`
	Progress      ProgressConfig     `mapstructure:"progress"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Schedule      ScheduleConfig     `mapstructure:"schedule"`
	Logging       LoggingConfig      `mapstructure:"logging"`
	Output        OutputConfig       `mapstructure:"output"`

	// File is the config file that was read, empty when running on defaults
	File string `mapstructure:"-" json:"-"`
}

// APIConfig contains the content service endpoint settings
type APIConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	GeneratePath string        `mapstructure:"generate_path"`
	Timeout      time.Duration `mapstructure:"timeout"` // 0 means no client-side timeout
}

// PlatformsConfig lists the platforms offered for selection
type PlatformsConfig struct {
	Available []string `mapstructure:"available"`
	Default   []string `mapstructure:"default"`
}

// ProgressConfig contains the cosmetic progress sequence settings
type ProgressConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Stages   []string      `mapstructure:"stages"`
}

// NotificationConfig contains transient notification timing
type NotificationConfig struct {
	DismissAfter time.Duration `mapstructure:"dismiss_after"`
	ExitDuration time.Duration `mapstructure:"exit_duration"`
}

// ScheduleConfig contains scheduling rules
type ScheduleConfig struct {
	MinLead  time.Duration `mapstructure:"min_lead"`
	Timezone string        `mapstructure:"timezone"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Colors   bool `mapstructure:"colors"`
	Progress bool `mapstructure:"progress"`
}

// Load reads configuration from file and environment variables
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".contentctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/contentctl")
	}

	v.SetEnvPrefix("CONTENTCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	return &cfg, nil
}

// Default returns the configuration used when no file or environment overrides exist
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:5000")
	v.SetDefault("api.generate_path", "/api/generate")
	v.SetDefault("api.timeout", time.Duration(0))

	v.SetDefault("platforms.available", []string{"facebook", "instagram", "linkedin", "twitter"})
	v.SetDefault("platforms.default", []string{})

	v.SetDefault("progress.interval", 1500*time.Millisecond)
	v.SetDefault("progress.stages", []string{
		"Crawling context",
		"Writing caption",
		"Writing content",
		"Generating image",
		"Finalizing",
	})

	v.SetDefault("notifications.dismiss_after", 5*time.Second)
	v.SetDefault("notifications.exit_duration", 300*time.Millisecond)

	v.SetDefault("schedule.min_lead", 20*time.Minute)
	v.SetDefault("schedule.timezone", "Asia/Dubai")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("output.colors", true)
	v.SetDefault("output.progress", true)
}

// Validate checks the configuration for errors
func Validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api.base_url: %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}

	if len(cfg.Platforms.Available) == 0 {
		return fmt.Errorf("platforms.available must list at least one platform")
	}
	available := make(map[string]bool, len(cfg.Platforms.Available))
	for _, p := range cfg.Platforms.Available {
		available[p] = true
	}
	for _, p := range cfg.Platforms.Default {
		if !available[p] {
			return fmt.Errorf("default platform %q is not in platforms.available", p)
		}
	}

	if cfg.Progress.Interval <= 0 {
		return fmt.Errorf("progress.interval must be positive")
	}
	if cfg.Notifications.DismissAfter <= 0 {
		return fmt.Errorf("notifications.dismiss_after must be positive")
	}
	if cfg.Notifications.ExitDuration < 0 {
		return fmt.Errorf("notifications.exit_duration must not be negative")
	}
	if cfg.Schedule.MinLead < 0 {
		return fmt.Errorf("schedule.min_lead must not be negative")
	}
	if _, err := time.LoadLocation(cfg.Schedule.Timezone); err != nil {
		return fmt.Errorf("invalid schedule.timezone %q: %w", cfg.Schedule.Timezone, err)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s (must be text or json)", cfg.Logging.Format)
	}

	return nil
}

// GenerateURL returns the full URL of the generate endpoint
func (c *Config) GenerateURL() string {
	return c.API.BaseURL + c.API.GeneratePath
}

// Location returns the time zone schedule times are entered in
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
