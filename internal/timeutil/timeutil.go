// Package timeutil provides utility functions for parsing and formatting
// device times.
package timeutil

import (
	"errors"
	"strconv"
	"strings"
	"time"

	dateparser "github.com/markusmobius/go-dateparser"
)

var errEmptyTime = errors.New("empty time value")

// Now is the clock used to resolve relative dates such as "in 2 hours".
var Now = time.Now

// FromStr parses a unix timestamp or a natural language date such as
// "2024-05-01 21:30", "tomorrow 8am" or "in 90 minutes".
func FromStr(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errEmptyTime
	}

	if secs, err := strconv.ParseUint(s, 10, 32); err == nil {
		return time.Unix(int64(secs), 0), nil
	}

	now := Now()

	cfg := &dateparser.Configuration{
		CurrentTime:     now,
		DefaultTimezone: now.Location(),
	}

	dt, err := dateparser.Parse(cfg, s)
	if err != nil {
		return time.Time{}, err
	}

	return dt.Time, nil
}

// Unix converts t to device seconds, clamping to the 32-bit range.
func Unix(t time.Time) uint32 {
	secs := t.Unix()

	switch {
	case secs < 0:
		return 0
	case secs > int64(^uint32(0)):
		return ^uint32(0)
	}

	return uint32(secs)
}

// Format renders a device timestamp in loc. Zero renders as "-".
func Format(ts uint32, loc *time.Location) string {
	if ts == 0 {
		return "-"
	}

	return time.Unix(int64(ts), 0).In(loc).Format("2006-01-02 15:04:05 MST")
}

// Countdown renders a duration as a rounded human readable span.
func Countdown(d time.Duration) string {
	if d <= 0 {
		return "now"
	}

	return d.Round(time.Second).String()
}

// ToKey converts a time value to a database key for Bolt.
func ToKey(t time.Time) []byte {
	return []byte(t.UTC().Format(time.RFC3339Nano))
}
