package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyMorningCurfew = "timetable.morning_curfew"
	keyNightCurfew   = "timetable.night_curfew"
	keyWorkMinutes   = "timetable.work_minutes"
	keyBreakMinutes  = "timetable.break_minutes"
	keyTokens        = "timetable.tokens"
	keyTimezone      = "device.timezone"
	keyPowerOffCmd   = "device.power_off_cmd"
	keyEEPROMOffset  = "device.eeprom_offset"
	keyNotify        = "device.notify"
	keyLogLevel      = "log.level"
	keyLogMaxSize    = "log.max_size_mb"
	keyDarkTheme     = "display.dark_theme"
)

const (
	defaultMorningCurfew = "07:00"
	defaultNightCurfew   = "22:00"
	defaultWorkMinutes   = 45
	defaultBreakMinutes  = 15
	defaultTokens        = 3
)

// WithViperConfig returns an Option that loads configuration from Viper.
// The file is created with the defaults when it does not exist.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults and prompt values.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyMorningCurfew, defaultMorningCurfew)
	v.SetDefault(keyNightCurfew, defaultNightCurfew)
	v.SetDefault(keyWorkMinutes, defaultWorkMinutes)
	v.SetDefault(keyBreakMinutes, defaultBreakMinutes)
	v.SetDefault(keyTokens, defaultTokens)
	v.SetDefault(keyTimezone, "Local")
	v.SetDefault(keyPowerOffCmd, "")
	v.SetDefault(keyEEPROMOffset, 0)
	v.SetDefault(keyNotify, true)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogMaxSize, 10)
	v.SetDefault(keyDarkTheme, true)

	// answers from the first-run prompt
	if c.Timetable.MorningCurfew != "" {
		v.SetDefault(keyMorningCurfew, c.Timetable.MorningCurfew)
	}

	if c.Timetable.NightCurfew != "" {
		v.SetDefault(keyNightCurfew, c.Timetable.NightCurfew)
	}

	if c.Timetable.WorkMinutes != 0 {
		v.SetDefault(keyWorkMinutes, c.Timetable.WorkMinutes)
	}

	if c.Timetable.BreakMinutes != 0 {
		v.SetDefault(keyBreakMinutes, c.Timetable.BreakMinutes)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	return nil
}
