package models

import (
	"time"
)

// Alarm is the calendar alarm programmed into the clock.
type Alarm struct {
	Hour   uint8 `json:"hour"`
	Minute uint8 `json:"minute"`
	Mode   uint8 `json:"mode"`
}

// DeviceState is the volatile state of the simulated accessory. It is kept
// between invocations so that a later boot can work out what woke it.
type DeviceState struct {
	Alarm *Alarm `json:"alarm,omitempty"`
	// ClockOffset is added to the host clock to get the device clock
	ClockOffset int64 `json:"clock_offset"`
	// TimerDeadline is when the countdown timer fires, zero when stopped
	TimerDeadline uint32 `json:"timer_deadline"`
	TimeStamp     uint32 `json:"time_stamp"`
	SleepingSince uint32 `json:"sleeping_since"`
	UserWake      bool   `json:"user_wake"`
	ScheduleWake  bool   `json:"schedule_wake"`
	// Pressed records a button press while asleep
	Pressed       bool `json:"pressed"`
	UserLatch     bool `json:"user_latch"`
	ScheduleLatch bool `json:"schedule_latch"`
	ComputerOn    bool `json:"computer_on"`
}

// Asleep reports whether the device is waiting on a wake source.
func (s *DeviceState) Asleep() bool {
	return s.UserWake || s.ScheduleWake
}

// BootRecord is one completed wake cycle.
type BootRecord struct {
	Time         time.Time `json:"time"`
	Reason       string    `json:"reason"`
	Rule         string    `json:"rule"`
	TimerSeconds uint32    `json:"timer_seconds"`
	InBreak      bool      `json:"in_break"`
}
