// Package config loads the hypnos settings from the config file, the
// first-run prompt and the command-line flags.
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ayoisaiah/hypnos/internal/record"
	"github.com/ayoisaiah/hypnos/internal/timetable"
)

type (
	// Config holds all configuration settings
	Config struct {
		Timetable TimetableConfig `mapstructure:"timetable"`
		Device    DeviceConfig    `mapstructure:"device"`
		Log       LogConfig       `mapstructure:"log"`
		Display   DisplayConfig   `mapstructure:"display"`
		CLI       CLIConfig       `mapstructure:"-"`
	}

	// TimetableConfig holds the schedule used until the device has stored
	// one of its own
	TimetableConfig struct {
		MorningCurfew string `mapstructure:"morning_curfew"`
		NightCurfew   string `mapstructure:"night_curfew"`
		WorkMinutes   int    `mapstructure:"work_minutes"`
		BreakMinutes  int    `mapstructure:"break_minutes"`
		Tokens        int    `mapstructure:"tokens"`
	}

	// DeviceConfig holds settings of the simulated accessory
	DeviceConfig struct {
		Timezone     string `mapstructure:"timezone"`
		PowerOffCmd  string `mapstructure:"power_off_cmd"`
		EEPROMOffset int    `mapstructure:"eeprom_offset"`
		Notify       bool   `mapstructure:"notify"`
	}

	// LogConfig holds logging settings
	LogConfig struct {
		Level     string `mapstructure:"level"`
		MaxSizeMB int    `mapstructure:"max_size_mb"`
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		DarkTheme bool `mapstructure:"dark_theme"`
	}

	// CLIConfig holds values that only come from command-line flags
	CLIConfig struct {
		Now     time.Time
		Verbose bool
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config with default values and applies options
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// DefaultTimetable builds the timetable used when the device has none
// stored. The config must have been validated.
func (c *Config) DefaultTimetable() (*timetable.Timetable, error) {
	morning, err := timetable.ParseHourMinute(c.Timetable.MorningCurfew)
	if err != nil {
		return nil, fmt.Errorf("morning curfew: %w", err)
	}

	night, err := timetable.ParseHourMinute(c.Timetable.NightCurfew)
	if err != nil {
		return nil, fmt.Errorf("night curfew: %w", err)
	}

	return &timetable.Timetable{
		MorningCurfew: morning,
		NightCurfew:   night,
		WorkMinutes:   record.Uint8(c.Timetable.WorkMinutes),
		BreakMinutes:  record.Uint8(c.Timetable.BreakMinutes),
		TokensLeft:    record.Uint8(c.Timetable.Tokens),
	}, nil
}

// Location returns the device time zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Device.Timezone)
	if err != nil {
		return time.Local
	}

	return loc
}

// Now returns the host time, or the time given with --now.
func (c *Config) Now() time.Time {
	if !c.CLI.Now.IsZero() {
		return c.CLI.Now
	}

	return time.Now()
}
