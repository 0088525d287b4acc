package policy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/hypnos/internal/device"
	"github.com/ayoisaiah/hypnos/internal/nvram"
	"github.com/ayoisaiah/hypnos/internal/record"
	"github.com/ayoisaiah/hypnos/internal/timetable"
	"github.com/ayoisaiah/hypnos/internal/wakeup"
)

// Persister saves and restores the timetable record.
type Persister interface {
	Load(schema *record.Schema) error
	Save(schema *record.Schema) error
}

// Machine applies decisions to the hardware. It is not safe for concurrent
// use: one boot runs one machine to completion.
type Machine struct {
	RTC       device.RTC
	Power     device.Power
	Switch    device.Switch
	Timetable *timetable.Timetable
	Wake      *wakeup.Classifier
	Logger    *slog.Logger
}

func (m *Machine) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}

	return slog.Default()
}

// Inputs reads the clock and the wake reason.
func (m *Machine) Inputs() (Inputs, error) {
	now, err := m.RTC.Unix()
	if err != nil {
		return Inputs{}, fmt.Errorf("reading clock: %w", err)
	}

	hour, err := m.RTC.Hours()
	if err != nil {
		return Inputs{}, fmt.Errorf("reading clock hours: %w", err)
	}

	minute, err := m.RTC.Minutes()
	if err != nil {
		return Inputs{}, fmt.Errorf("reading clock minutes: %w", err)
	}

	breakStart, err := m.RTC.TimeStampUnix()
	if err != nil {
		return Inputs{}, fmt.Errorf("reading break timestamp: %w", err)
	}

	reason, err := m.Wake.Reason()
	if err != nil {
		return Inputs{}, err
	}

	tt := m.Timetable

	return Inputs{
		Now:           now,
		TimeOfDay:     timetable.NewHourMinute(hour, minute),
		Exceptions:    &tt.Exceptions,
		MorningCurfew: tt.MorningCurfew,
		NightCurfew:   tt.NightCurfew,
		BreakStart:    breakStart,
		BreakSeconds:  tt.BreakSeconds(),
		Wake:          reason,
	}, nil
}

// Decide evaluates the current inputs.
func (m *Machine) Decide(ctx context.Context) (Decision, error) {
	in, err := m.Inputs()
	if err != nil {
		return Decision{}, err
	}

	d := Evaluate(in)

	m.logger().DebugContext(ctx, "evaluated policy",
		slog.String("decision", d.String()),
		slog.String("time_of_day", in.TimeOfDay.String()),
		slog.String("wake", in.Wake.String()),
		slog.Uint64("now", uint64(in.Now)),
		slog.Uint64("break_start", uint64(in.BreakStart)),
	)

	return d, nil
}

// IsInBreak reports whether the computer must stay off.
func (m *Machine) IsInBreak(ctx context.Context) (bool, error) {
	d, err := m.Decide(ctx)
	if err != nil {
		return false, err
	}

	return d.InBreak, nil
}

// WorkTimerSeconds returns the countdown for a work period starting at now.
// Inside an exception the period runs until the window closes.
func WorkTimerSeconds(tt *timetable.Timetable, now uint32) uint32 {
	if e, ok := tt.Exceptions.Active(now); ok {
		return e.End - now
	}

	return tt.WorkSeconds()
}

// StartWorkPeriod arms the work timer and the night curfew alarm, then
// sleeps until the clock wakes the device. The user button is not armed.
func (m *Machine) StartWorkPeriod(ctx context.Context) error {
	now, err := m.RTC.Unix()
	if err != nil {
		return fmt.Errorf("reading clock: %w", err)
	}

	seconds := WorkTimerSeconds(m.Timetable, now)

	value := uint16(device.MaxTimerValue)

	switch {
	case seconds > device.MaxTimerValue:
		m.logger().WarnContext(ctx, "work period exceeds timer range",
			slog.Uint64("seconds", uint64(seconds)),
			slog.Int("max", device.MaxTimerValue),
		)
	case seconds == 0:
		value = 1
	default:
		value = uint16(seconds)
	}

	if err := m.RTC.SetTimer(false, device.TimerFrequency1Hz, value, true, true, true); err != nil {
		return fmt.Errorf("arming work timer: %w", err)
	}

	night := m.Timetable.NightCurfew

	err = m.RTC.EnableAlarmInterrupt(
		night.Minute(),
		night.Hour(),
		0,
		false,
		device.AlarmModeHoursMinutes,
		true,
	)
	if err != nil {
		return fmt.Errorf("arming curfew alarm: %w", err)
	}

	m.logger().InfoContext(ctx, "work period started",
		slog.Uint64("timer_seconds", uint64(value)),
		slog.String("curfew_alarm", night.String()),
	)

	if err := m.Power.Sleep(false, true); err != nil {
		return fmt.Errorf("entering sleep: %w", err)
	}

	return nil
}

// EndWorkPeriod switches the computer off and sleeps until the user button
// is pressed. With stamp set the current time is recorded as the start of
// a break.
func (m *Machine) EndWorkPeriod(ctx context.Context, stamp bool) error {
	if stamp {
		if err := m.RTC.CreateTimeStamp(); err != nil {
			return fmt.Errorf("stamping break start: %w", err)
		}
	}

	if err := m.Switch.Off(); err != nil {
		return fmt.Errorf("switching computer off: %w", err)
	}

	m.logger().InfoContext(ctx, "work period ended", slog.Bool("break_stamped", stamp))

	if err := m.Power.Sleep(true, false); err != nil {
		return fmt.Errorf("entering sleep: %w", err)
	}

	return nil
}

// Boot runs one wake cycle: restore the timetable, decide, persist it and
// start either a work period or a break. A stored block that cannot be
// trusted leaves the timetable at its current values.
func (m *Machine) Boot(ctx context.Context, p Persister) (Decision, error) {
	log := m.logger()

	restored := *m.Timetable

	err := p.Load(restored.Schema())

	switch {
	case err == nil:
		*m.Timetable = restored

		log.DebugContext(ctx, "timetable restored", slog.String("dump", spew.Sdump(restored)))
	case nvram.IsCorrupt(err):
		log.WarnContext(ctx, "keeping default timetable", slog.Any("error", err))
	default:
		return Decision{}, fmt.Errorf("restoring timetable: %w", err)
	}

	reason, err := m.Wake.Reason()
	if err != nil {
		return Decision{}, err
	}

	log.InfoContext(ctx, "woke up", slog.String("reason", reason.String()))

	d, err := m.Decide(ctx)
	if err != nil {
		return Decision{}, err
	}

	if err := p.Save(m.Timetable.Schema()); err != nil {
		return Decision{}, fmt.Errorf("storing timetable: %w", err)
	}

	if d.InBreak {
		return d, m.EndWorkPeriod(ctx, reason == wakeup.ScheduleEnd)
	}

	return d, m.StartWorkPeriod(ctx)
}
