// Package timetable holds the device schedule: the curfew times, work and
// break durations, exception windows and the remaining tokens. These values
// are exposed as characteristics and persisted as one record.
package timetable

import (
	"fmt"

	"github.com/ayoisaiah/hypnos/internal/record"
)

// SchemaVersion is written in front of every persisted timetable. Bump it
// whenever a field is added, removed, reordered or resized.
const SchemaVersion uint8 = 1

// Characteristic identifiers. They match the low byte of the 16-bit
// characteristic UUIDs of the timetable service (0x1401-0x1407).
const (
	IDMorningCurfew record.ID = 0x01
	IDNightCurfew   record.ID = 0x02
	IDWorkMinutes   record.ID = 0x03
	IDBreakMinutes  record.ID = 0x04
	IDExceptions    record.ID = 0x05
	IDTokensLeft    record.ID = 0x06
	IDUnixTime      record.ID = 0x07
)

// Timetable is the persisted configuration block.
type Timetable struct {
	Exceptions    ExceptionList
	MorningCurfew HourMinute
	NightCurfew   HourMinute
	WorkMinutes   record.Uint8
	BreakMinutes  record.Uint8
	TokensLeft    record.Uint8
}

// Schema returns the single definition of the persisted field order. Both
// the characteristic path and the non-volatile store go through it.
func (t *Timetable) Schema() *record.Schema {
	s, err := record.NewSchema(SchemaVersion,
		record.Entry{ID: IDMorningCurfew, Name: "morning_curfew", Field: &t.MorningCurfew},
		record.Entry{ID: IDNightCurfew, Name: "night_curfew", Field: &t.NightCurfew},
		record.Entry{ID: IDWorkMinutes, Name: "work_minutes", Field: &t.WorkMinutes},
		record.Entry{ID: IDBreakMinutes, Name: "break_minutes", Field: &t.BreakMinutes},
		record.Entry{ID: IDExceptions, Name: "exceptions", Field: &t.Exceptions},
		record.Entry{ID: IDTokensLeft, Name: "tokens_left", Field: &t.TokensLeft},
	)
	if err != nil {
		// the entries above are static
		panic(err)
	}

	return s
}

// WorkSeconds returns the length of a work period in seconds.
func (t *Timetable) WorkSeconds() uint32 {
	return uint32(t.WorkMinutes) * 60
}

// BreakSeconds returns the length of a break in seconds.
func (t *Timetable) BreakSeconds() uint32 {
	return uint32(t.BreakMinutes) * 60
}

// Validate checks the values a local edit may set. The curfew comparison
// has no midnight wraparound, so the allowed hours must lie within one day.
func (t *Timetable) Validate() error {
	if DiffTime(t.NightCurfew, t.MorningCurfew) <= 0 {
		return ErrCurfewOrder.Fmt(t.MorningCurfew, t.NightCurfew)
	}

	if t.WorkMinutes == 0 {
		return ErrZeroDuration.Fmt("work period")
	}

	if t.BreakMinutes == 0 {
		return ErrZeroDuration.Fmt("break")
	}

	return nil
}

// Equal compares every persisted field.
func (t *Timetable) Equal(other *Timetable) bool {
	return t.MorningCurfew == other.MorningCurfew &&
		t.NightCurfew == other.NightCurfew &&
		t.WorkMinutes == other.WorkMinutes &&
		t.BreakMinutes == other.BreakMinutes &&
		t.TokensLeft == other.TokensLeft &&
		t.Exceptions.Equal(&other.Exceptions)
}

func (t *Timetable) String() string {
	return fmt.Sprintf(
		"allowed %s-%s, work %dm, break %dm, %d exceptions, %d tokens",
		t.MorningCurfew,
		t.NightCurfew,
		t.WorkMinutes,
		t.BreakMinutes,
		t.Exceptions.Len(),
		t.TokensLeft,
	)
}
