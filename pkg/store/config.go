package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config describes where the journal lives and how it behaves.
type Config interface {
	BasePath() string
	LogLevel() string
	// ReminderDefault is the time pre-filled for the daily reminder.
	ReminderDefault() (hour, minute int)
}

// LoadConfig reads .sleepdiary.yaml from $SLEEPDIARY_CONFIG_PATH or the
// working directory, with SLEEPDIARY_* environment overrides.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.sleepdiary")
	v.SetDefault("log.level", "warn")
	v.SetDefault("reminder.hour", 22)
	v.SetDefault("reminder.minute", 0)
	v.SetConfigName(".sleepdiary") // .yaml is implicit
	v.SetEnvPrefix("SLEEPDIARY")
	v.AutomaticEnv()

	if override := os.Getenv("SLEEPDIARY_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	cfg := &fileConfig{
		Path:           path,
		Level:          v.GetString("log.level"),
		ReminderHour:   v.GetInt("reminder.hour"),
		ReminderMinute: v.GetInt("reminder.minute"),
	}
	if cfg.ReminderHour < 0 || cfg.ReminderHour > 23 || cfg.ReminderMinute < 0 || cfg.ReminderMinute > 59 {
		return nil, fmt.Errorf("store: reminder default %02d:%02d out of range", cfg.ReminderHour, cfg.ReminderMinute)
	}
	return cfg, nil
}

type fileConfig struct {
	Path           string `json:"path"`
	Level          string `json:"logLevel"`
	ReminderHour   int    `json:"reminderHour"`
	ReminderMinute int    `json:"reminderMinute"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) LogLevel() string {
	return f.Level
}

func (f *fileConfig) ReminderDefault() (int, int) {
	return f.ReminderHour, f.ReminderMinute
}

// StaticConfig is a Config with fixed values, used by tests and embedders.
type StaticConfig struct {
	Path           string
	Level          string
	ReminderHour   int
	ReminderMinute int
}

func (s StaticConfig) BasePath() string { return s.Path }

func (s StaticConfig) LogLevel() string { return s.Level }

func (s StaticConfig) ReminderDefault() (int, int) { return s.ReminderHour, s.ReminderMinute }
