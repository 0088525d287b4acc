// Package sim simulates the accessory hardware on the host: the RV3028
// clock with its user EEPROM, the power manager, the computer switch and the
// wake latches. Every change is written through to the store so that each
// CLI invocation sees the device as the previous one left it.
package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/hypnos/internal/apperr"
	"github.com/ayoisaiah/hypnos/internal/device"
	"github.com/ayoisaiah/hypnos/internal/models"
	"github.com/ayoisaiah/hypnos/store"
)

var (
	errUnknownFrequency = &apperr.Error{
		Message: "unsupported timer frequency %d",
	}

	errUnsupportedAlarmMode = &apperr.Error{
		Message: "unsupported alarm mode %d",
	}

	errInvalidAlarm = &apperr.Error{
		Message: "invalid alarm time %02d:%02d",
	}

	errPowerOffCmd = &apperr.Error{
		Message: "unable to run power_off_cmd",
	}
)

// Options configures the simulation.
type Options struct {
	// Now is the host clock. Defaults to time.Now.
	Now func() time.Time
	// Location is the time zone of the device clock. Defaults to UTC.
	Location *time.Location
	Logger   *slog.Logger
	// PowerOffCmd runs whenever the computer is switched off
	PowerOffCmd string
	// Notify shows a desktop notification when the computer is switched off
	Notify bool
}

// Device is the simulated accessory.
type Device struct {
	db    store.DB
	state *models.DeviceState
	opts  Options
}

var (
	_ device.RTC     = (*Device)(nil)
	_ device.EEPROM  = (*Device)(nil)
	_ device.Power   = (*Device)(nil)
	_ device.Switch  = (*Device)(nil)
	_ device.Latches = (*Device)(nil)
)

// New loads the saved device state from db.
func New(db store.DB, opts Options) (*Device, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	if opts.Location == nil {
		opts.Location = time.UTC
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	state, err := db.DeviceState()
	if err != nil {
		return nil, fmt.Errorf("loading device state: %w", err)
	}

	return &Device{
		db:    db,
		state: state,
		opts:  opts,
	}, nil
}

// State returns a copy of the current device state.
func (d *Device) State() models.DeviceState {
	return *d.state
}

// Time returns the device clock as a time.Time in the device time zone.
func (d *Device) Time() time.Time {
	return time.Unix(int64(d.unix()), 0).In(d.opts.Location)
}

func (d *Device) save() error {
	return d.db.UpdateDeviceState(d.state)
}

func (d *Device) unix() uint32 {
	return uint32(d.opts.Now().Unix() + d.state.ClockOffset)
}

func (d *Device) Unix() (uint32, error) {
	return d.unix(), nil
}

// SetUnix moves the device clock. The host clock is left alone.
func (d *Device) SetUnix(ts uint32) error {
	d.state.ClockOffset = int64(ts) - d.opts.Now().Unix()

	return d.save()
}

func (d *Device) Hours() (uint8, error) {
	return uint8(d.Time().Hour()), nil
}

func (d *Device) Minutes() (uint8, error) {
	return uint8(d.Time().Minute()), nil
}

// TimerDuration converts a countdown of value ticks at frequency into a
// duration.
func TimerDuration(frequency, value uint16) (time.Duration, error) {
	v := time.Duration(value)

	switch frequency {
	case device.TimerFrequency4096Hz:
		return v * time.Second / 4096, nil
	case device.TimerFrequency64Hz:
		return v * time.Second / 64, nil
	case device.TimerFrequency1Hz:
		return v * time.Second, nil
	case device.TimerFrequencyMinutes:
		return v * time.Minute, nil
	}

	return 0, errUnknownFrequency.Fmt(frequency)
}

// SetTimer arms the countdown. Only a started timer with its interrupt
// enabled can wake the device. Repeat mode is ignored: the device sleeps
// again after every wake.
func (d *Device) SetTimer(
	_ bool,
	frequency, value uint16,
	enableInterrupt, start, _ bool,
) error {
	dur, err := TimerDuration(frequency, value)
	if err != nil {
		return err
	}

	d.state.TimerDeadline = 0

	if start && enableInterrupt {
		// round partial seconds up so the timer never fires early
		secs := uint32((dur + time.Second - 1) / time.Second)
		d.state.TimerDeadline = d.unix() + secs
	}

	return d.save()
}

// EnableAlarmInterrupt programs the calendar alarm. Only the hours and
// minutes match mode is supported.
func (d *Device) EnableAlarmInterrupt(
	minute, hour, _ uint8,
	_ bool,
	mode uint8,
	_ bool,
) error {
	switch mode {
	case device.AlarmModeDisabled:
		return d.DisableAlarmInterrupt()
	case device.AlarmModeHoursMinutes:
	default:
		return errUnsupportedAlarmMode.Fmt(mode)
	}

	if hour > 23 || minute > 59 {
		return errInvalidAlarm.Fmt(hour, minute)
	}

	d.state.Alarm = &models.Alarm{
		Hour:   hour,
		Minute: minute,
		Mode:   mode,
	}

	return d.save()
}

func (d *Device) DisableAlarmInterrupt() error {
	d.state.Alarm = nil

	return d.save()
}

func (d *Device) CreateTimeStamp() error {
	d.state.TimeStamp = d.unix()

	return d.save()
}

func (d *Device) TimeStampUnix() (uint32, error) {
	return d.state.TimeStamp, nil
}

func (d *Device) ReadUserEEPROM(addr uint8, buf []byte) error {
	return d.db.ReadEEPROM(addr, buf)
}

func (d *Device) WriteUserEEPROM(addr uint8, data []byte) error {
	return d.db.WriteEEPROM(addr, data)
}

// Sleep records the armed wake sources. On the host it returns so that the
// process can exit; the next Wake decides whether the device woke up.
func (d *Device) Sleep(enableUserWake, enableScheduleWake bool) error {
	d.state.UserWake = enableUserWake
	d.state.ScheduleWake = enableScheduleWake
	d.state.SleepingSince = d.unix()
	d.state.Pressed = false

	d.opts.Logger.Info("device asleep",
		slog.Bool("user_wake", enableUserWake),
		slog.Bool("schedule_wake", enableScheduleWake),
	)

	return d.save()
}

// Off cuts power to the computer, then runs the configured command and
// shows a notification.
func (d *Device) Off() error {
	d.state.ComputerOn = false

	if err := d.save(); err != nil {
		return err
	}

	if d.opts.Notify {
		err := beeep.Notify("hypnos", "Break time: the computer has been switched off", "")
		if err != nil {
			d.opts.Logger.Warn("unable to display notification", slog.Any("error", err))
		}
	}

	return d.runPowerOffCmd()
}

func (d *Device) runPowerOffCmd() error {
	if d.opts.PowerOffCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(d.opts.PowerOffCmd)
	if err != nil {
		return errPowerOffCmd.Wrap(err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	cmd := exec.Command(cmdSlice[0], cmdSlice[1:]...)

	if err := cmd.Run(); err != nil {
		return errPowerOffCmd.Wrap(err)
	}

	return nil
}

func (d *Device) ReadLatches() (userInput, schedule bool, err error) {
	return d.state.UserLatch, d.state.ScheduleLatch, nil
}

func (d *Device) ClearLatches() error {
	d.state.UserLatch = false
	d.state.ScheduleLatch = false

	return d.save()
}

// Press simulates the user button. It only has an effect while the device
// sleeps with the user source armed.
func (d *Device) Press() (bool, error) {
	if !d.state.UserWake {
		return false, nil
	}

	d.state.Pressed = true

	return true, d.save()
}

// Reset simulates pulling the power. Sleep, latches and timers are lost.
// The battery backed clock, its timestamp and the EEPROM survive.
func (d *Device) Reset() error {
	*d.state = models.DeviceState{
		ClockOffset: d.state.ClockOffset,
		TimeStamp:   d.state.TimeStamp,
	}

	return d.save()
}

// ErrAsleep is returned by Wake when no armed source has fired.
var ErrAsleep = errors.New("the device is asleep and nothing has woken it")

// Wake works out whether an armed source fired since the device went to
// sleep and sets the matching latches. A device that is not asleep boots
// cold with no latch set.
func (d *Device) Wake() error {
	if !d.state.Asleep() {
		d.state.ComputerOn = true

		return d.save()
	}

	now := d.unix()

	if d.state.ScheduleWake && d.scheduleFired(now) {
		d.state.ScheduleLatch = true
	}

	if d.state.UserWake && d.state.Pressed {
		d.state.UserLatch = true
	}

	if !d.state.UserLatch && !d.state.ScheduleLatch {
		return ErrAsleep
	}

	d.state.UserWake = false
	d.state.ScheduleWake = false
	d.state.Pressed = false
	d.state.ComputerOn = true

	return d.save()
}

// NextWake returns when the schedule source fires next, or the zero time
// when it is not armed.
func (d *Device) NextWake() time.Time {
	if !d.state.ScheduleWake {
		return time.Time{}
	}

	var next time.Time

	if d.state.TimerDeadline != 0 {
		next = time.Unix(int64(d.state.TimerDeadline), 0)
	}

	if alarm, ok := d.nextAlarm(d.state.SleepingSince); ok {
		if next.IsZero() || alarm.Before(next) {
			next = alarm
		}
	}

	return next.In(d.opts.Location)
}

func (d *Device) scheduleFired(now uint32) bool {
	if d.state.TimerDeadline != 0 && now >= d.state.TimerDeadline {
		return true
	}

	alarm, ok := d.nextAlarm(d.state.SleepingSince)

	return ok && alarm.Unix() <= int64(now)
}

// nextAlarm returns the first alarm match strictly after since.
func (d *Device) nextAlarm(since uint32) (time.Time, bool) {
	a := d.state.Alarm
	if a == nil || a.Mode == device.AlarmModeDisabled {
		return time.Time{}, false
	}

	s := time.Unix(int64(since), 0).In(d.opts.Location)

	next := time.Date(
		s.Year(),
		s.Month(),
		s.Day(),
		int(a.Hour),
		int(a.Minute),
		0,
		0,
		d.opts.Location,
	)

	if !next.After(s) {
		next = next.AddDate(0, 0, 1)
	}

	return next, true
}
