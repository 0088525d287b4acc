package config

import (
	"log/slog"
	"time"

	"github.com/ayoisaiah/hypnos/internal/device"
	"github.com/ayoisaiah/hypnos/internal/nvram"
	"github.com/ayoisaiah/hypnos/internal/timetable"
)

const (
	minMinutes = 1
	maxMinutes = 255
	maxTokens  = 255
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateTimetable(); err != nil {
		return err
	}

	if err := c.validateDevice(); err != nil {
		return err
	}

	return c.validateLog()
}

func (c *Config) validateTimetable() error {
	t := c.Timetable

	morning, err := timetable.ParseHourMinute(t.MorningCurfew)
	if err != nil {
		return errInvalidCurfew.Fmt("morning", t.MorningCurfew).Wrap(err)
	}

	night, err := timetable.ParseHourMinute(t.NightCurfew)
	if err != nil {
		return errInvalidCurfew.Fmt("night", t.NightCurfew).Wrap(err)
	}

	// the curfew comparison has no midnight wraparound
	if timetable.DiffTime(night, morning) <= 0 {
		return errCurfewOrder.Fmt(morning, night)
	}

	if t.WorkMinutes < minMinutes || t.WorkMinutes > maxMinutes {
		return errInvalidMinutes.Fmt("work", minMinutes, maxMinutes)
	}

	if t.BreakMinutes < minMinutes || t.BreakMinutes > maxMinutes {
		return errInvalidMinutes.Fmt("break", minMinutes, maxMinutes)
	}

	if t.Tokens < 0 || t.Tokens > maxTokens {
		return errInvalidTokens.Fmt(maxTokens)
	}

	return nil
}

func (c *Config) validateDevice() error {
	off := c.Device.EEPROMOffset
	if off < 0 || off >= device.UserEEPROMSize {
		return errInvalidOffset.Fmt(off, device.UserEEPROMSize-1)
	}

	var tt timetable.Timetable

	if err := nvram.New(nil, uint8(off)).Fits(tt.Schema()); err != nil {
		return err
	}

	if _, err := time.LoadLocation(c.Device.Timezone); err != nil {
		return errInvalidTimezone.Fmt(c.Device.Timezone).Wrap(err)
	}

	return nil
}

func (c *Config) validateLog() error {
	var level slog.Level

	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return errInvalidLogLevel.Fmt(c.Log.Level)
	}

	if c.Log.MaxSizeMB < 1 {
		return errInvalidLogSize
	}

	return nil
}
