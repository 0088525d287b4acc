package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHourMinutePacking(t *testing.T) {
	for hour := uint8(0); hour < 24; hour++ {
		for minute := uint8(0); minute < 60; minute++ {
			hm := NewHourMinute(hour, minute)

			h, m := hm.Get()
			if h != hour || m != minute {
				t.Fatalf("%02d:%02d unpacked as %02d:%02d", hour, minute, h, m)
			}

			if uint16(hm) != uint16(hour)<<6|uint16(minute) {
				t.Fatalf("%02d:%02d packed as %#x", hour, minute, uint16(hm))
			}
		}
	}
}

func TestDiffTime(t *testing.T) {
	table := []struct {
		end, start HourMinute
		want       int
	}{
		{NewHourMinute(12, 0), NewHourMinute(6, 0), 6 * 3600},
		{NewHourMinute(6, 0), NewHourMinute(12, 0), -6 * 3600},
		{NewHourMinute(23, 45), NewHourMinute(23, 50), -300},
		{NewHourMinute(2, 30), NewHourMinute(2, 30), 0},
		{NewHourMinute(0, 1), NewHourMinute(23, 59), -(23*3600 + 58*60)},
	}

	for _, v := range table {
		got := DiffTime(v.end, v.start)
		if got != v.want {
			t.Errorf("DiffTime(%s, %s): expected %d, but got %d", v.end, v.start, v.want, got)
		}
	}
}

func TestHourMinuteReplace(t *testing.T) {
	hm := NewHourMinute(23, 45)

	b := hm.Bytes()
	require.Len(t, b, 2)

	var restored HourMinute

	require.NoError(t, restored.Replace(b))
	assert.Equal(t, hm, restored)

	err := restored.Replace([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidLength)
	assert.Equal(t, hm, restored)
}

func TestParseHourMinute(t *testing.T) {
	table := []struct {
		in   string
		want HourMinute
		err  bool
	}{
		{"06:00", NewHourMinute(6, 0), false},
		{"23:45", NewHourMinute(23, 45), false},
		{"7:05", NewHourMinute(7, 5), false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
	}

	for _, v := range table {
		got, err := ParseHourMinute(v.in)
		if v.err {
			assert.Error(t, err, v.in)
			continue
		}

		require.NoError(t, err, v.in)
		assert.Equal(t, v.want, got, v.in)
	}
}

func TestTimetableValidate(t *testing.T) {
	valid := func() *Timetable {
		return &Timetable{
			MorningCurfew: NewHourMinute(6, 0),
			NightCurfew:   NewHourMinute(22, 0),
			WorkMinutes:   45,
			BreakMinutes:  15,
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("Expected no error, but got: %v", err)
	}

	cases := map[string]func(tt *Timetable){
		"equal curfews":  func(tt *Timetable) { tt.NightCurfew = tt.MorningCurfew },
		"crossing night": func(tt *Timetable) { tt.MorningCurfew = NewHourMinute(23, 0) },
		"zero work":      func(tt *Timetable) { tt.WorkMinutes = 0 },
		"zero break":     func(tt *Timetable) { tt.BreakMinutes = 0 },
	}

	for name, modify := range cases {
		tt := valid()
		modify(tt)

		if err := tt.Validate(); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
