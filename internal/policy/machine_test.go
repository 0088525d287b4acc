package policy_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/hypnos/internal/device"
	"github.com/ayoisaiah/hypnos/internal/nvram"
	"github.com/ayoisaiah/hypnos/internal/policy"
	"github.com/ayoisaiah/hypnos/internal/timetable"
	"github.com/ayoisaiah/hypnos/internal/wakeup"
)

type timerCall struct {
	Repeat          bool
	Frequency       uint16
	Value           uint16
	EnableInterrupt bool
	Start           bool
	ClockOutput     bool
}

type alarmCall struct {
	Minute, Hour, Day uint8
	Weekday           bool
	Mode              uint8
	ClockOutput       bool
}

// hardware records every call made by the machine in order.
type hardware struct {
	err      error
	timer    *timerCall
	alarm    *alarmCall
	calls    []string
	eeprom   [device.UserEEPROMSize]byte
	now      uint32
	stamp    uint32
	hour     uint8
	minute   uint8
	user     bool
	schedule bool
}

func (h *hardware) Unix() (uint32, error)   { return h.now, h.err }
func (h *hardware) Hours() (uint8, error)   { return h.hour, h.err }
func (h *hardware) Minutes() (uint8, error) { return h.minute, h.err }

func (h *hardware) SetUnix(ts uint32) error {
	h.now = ts
	return nil
}

func (h *hardware) SetTimer(
	repeat bool,
	frequency, value uint16,
	enableInterrupt, start, enableClockOutput bool,
) error {
	h.calls = append(h.calls, "timer")
	h.timer = &timerCall{repeat, frequency, value, enableInterrupt, start, enableClockOutput}

	return nil
}

func (h *hardware) EnableAlarmInterrupt(
	minute, hour, day uint8,
	weekday bool,
	mode uint8,
	enableClockOutput bool,
) error {
	h.calls = append(h.calls, "alarm")
	h.alarm = &alarmCall{minute, hour, day, weekday, mode, enableClockOutput}

	return nil
}

func (h *hardware) DisableAlarmInterrupt() error {
	h.alarm = nil
	return nil
}

func (h *hardware) CreateTimeStamp() error {
	h.calls = append(h.calls, "stamp")
	h.stamp = h.now

	return nil
}

func (h *hardware) TimeStampUnix() (uint32, error) { return h.stamp, nil }

func (h *hardware) ReadUserEEPROM(addr uint8, buf []byte) error {
	if h.err != nil {
		return h.err
	}

	copy(buf, h.eeprom[addr:])

	return nil
}

func (h *hardware) WriteUserEEPROM(addr uint8, data []byte) error {
	h.calls = append(h.calls, "save")
	copy(h.eeprom[addr:], data)

	return nil
}

func (h *hardware) Sleep(user, schedule bool) error {
	switch {
	case user && schedule:
		h.calls = append(h.calls, "sleep(user,schedule)")
	case user:
		h.calls = append(h.calls, "sleep(user)")
	case schedule:
		h.calls = append(h.calls, "sleep(schedule)")
	default:
		h.calls = append(h.calls, "sleep()")
	}

	return nil
}

func (h *hardware) Off() error {
	h.calls = append(h.calls, "off")
	return nil
}

func (h *hardware) ReadLatches() (bool, bool, error) {
	return h.user, h.schedule, nil
}

func (h *hardware) ClearLatches() error {
	h.user, h.schedule = false, false
	return nil
}

func defaults() *timetable.Timetable {
	return &timetable.Timetable{
		MorningCurfew: timetable.NewHourMinute(6, 0),
		NightCurfew:   timetable.NewHourMinute(22, 30),
		WorkMinutes:   45,
		BreakMinutes:  15,
	}
}

func newMachine(h *hardware, tt *timetable.Timetable) *policy.Machine {
	return &policy.Machine{
		RTC:       h,
		Power:     h,
		Switch:    h,
		Timetable: tt,
		Wake:      wakeup.NewClassifier(h),
	}
}

func TestStartWorkPeriod(t *testing.T) {
	cases := []struct {
		exception *timetable.TimeException
		name      string
		want      uint16
	}{
		{name: "work minutes", want: 45 * 60},
		{
			name:      "until exception end",
			exception: &timetable.TimeException{Start: 9000, End: 10200},
			want:      200,
		},
		{
			name:      "clamped to timer range",
			exception: &timetable.TimeException{Start: 9000, End: 200000},
			want:      device.MaxTimerValue,
		},
		{
			name:      "exception ending now",
			exception: &timetable.TimeException{Start: 9000, End: 10000},
			want:      1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := &hardware{now: 10000}
			tt := defaults()

			if tc.exception != nil {
				require.NoError(t, tt.Exceptions.Push(*tc.exception))
			}

			m := newMachine(h, tt)
			require.NoError(t, m.StartWorkPeriod(context.Background()))

			wantTimer := &timerCall{
				Frequency:       device.TimerFrequency1Hz,
				Value:           tc.want,
				EnableInterrupt: true,
				Start:           true,
				ClockOutput:     true,
			}
			if diff := cmp.Diff(wantTimer, h.timer); diff != "" {
				t.Errorf("timer mismatch (-want +got):\n%s", diff)
			}

			wantAlarm := &alarmCall{
				Minute:      30,
				Hour:        22,
				Mode:        device.AlarmModeHoursMinutes,
				ClockOutput: true,
			}
			if diff := cmp.Diff(wantAlarm, h.alarm); diff != "" {
				t.Errorf("alarm mismatch (-want +got):\n%s", diff)
			}

			assert.Equal(t, []string{"timer", "alarm", "sleep(schedule)"}, h.calls)
		})
	}
}

func TestEndWorkPeriod(t *testing.T) {
	cases := []struct {
		name  string
		want  []string
		stamp bool
	}{
		{name: "with stamp", stamp: true, want: []string{"stamp", "off", "sleep(user)"}},
		{name: "without stamp", stamp: false, want: []string{"off", "sleep(user)"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := &hardware{now: 777}
			m := newMachine(h, defaults())

			require.NoError(t, m.EndWorkPeriod(context.Background(), tc.stamp))
			assert.Equal(t, tc.want, h.calls)

			if tc.stamp {
				assert.Equal(t, uint32(777), h.stamp)
			}
		})
	}
}

func TestIsInBreakUsesCachedWakeReason(t *testing.T) {
	h := &hardware{now: 5000, hour: 12, schedule: true}
	m := newMachine(h, defaults())

	inBreak, err := m.IsInBreak(context.Background())
	require.NoError(t, err)
	assert.True(t, inBreak)

	// the latches were consumed by the first read
	assert.False(t, h.schedule)

	inBreak, err = m.IsInBreak(context.Background())
	require.NoError(t, err)
	assert.True(t, inBreak)
}

func TestBoot(t *testing.T) {
	cases := []struct {
		name     string
		rule     policy.Rule
		want     []string
		hour     uint8
		schedule bool
		user     bool
	}{
		{
			name: "cold boot during the day starts work",
			hour: 12,
			rule: policy.RuleNone,
			want: []string{"save", "timer", "alarm", "sleep(schedule)"},
		},
		{
			name: "user press during the day starts work",
			hour: 12,
			user: true,
			rule: policy.RuleNone,
			want: []string{"save", "timer", "alarm", "sleep(schedule)"},
		},
		{
			name:     "schedule end starts a stamped break",
			hour:     12,
			schedule: true,
			rule:     policy.RuleScheduleEnd,
			want:     []string{"save", "stamp", "off", "sleep(user)"},
		},
		{
			name: "curfew switches off without a stamp",
			hour: 23,
			user: true,
			rule: policy.RuleCurfew,
			want: []string{"save", "off", "sleep(user)"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := &hardware{
				now:      50000,
				hour:     tc.hour,
				user:     tc.user,
				schedule: tc.schedule,
			}
			tt := defaults()
			m := newMachine(h, tt)

			d, err := m.Boot(context.Background(), nvram.New(h, 0))
			require.NoError(t, err)

			assert.Equal(t, tc.rule, d.Rule)
			assert.Equal(t, tc.want, h.calls)
			assert.True(t, defaults().Equal(tt))
		})
	}
}

func TestBootRestoresStoredTimetable(t *testing.T) {
	h := &hardware{now: 50000, hour: 12}

	stored := defaults()
	stored.WorkMinutes = 10
	stored.NightCurfew = timetable.NewHourMinute(21, 0)
	require.NoError(t, nvram.New(h, 0).Save(stored.Schema()))

	h.calls = nil

	tt := defaults()
	m := newMachine(h, tt)

	_, err := m.Boot(context.Background(), nvram.New(h, 0))
	require.NoError(t, err)

	assert.True(t, stored.Equal(tt))
	assert.Equal(t, uint16(600), h.timer.Value)
	assert.Equal(t, uint8(21), h.alarm.Hour)
}

func TestBootKeepsDefaultsOnCorruptBlock(t *testing.T) {
	h := &hardware{now: 50000, hour: 12}

	stored := defaults()
	stored.WorkMinutes = 10
	require.NoError(t, nvram.New(h, 0).Save(stored.Schema()))

	h.eeprom[3] ^= 0xff

	tt := defaults()
	m := newMachine(h, tt)

	_, err := m.Boot(context.Background(), nvram.New(h, 0))
	require.NoError(t, err)

	assert.True(t, defaults().Equal(tt))
}

func TestBootFailsOnDeviceError(t *testing.T) {
	errBus := errors.New("i2c bus stuck")
	h := &hardware{now: 50000, hour: 12, err: errBus}

	m := newMachine(h, defaults())

	_, err := m.Boot(context.Background(), nvram.New(h, 0))
	require.ErrorIs(t, err, errBus)
	assert.Empty(t, h.calls)
}
