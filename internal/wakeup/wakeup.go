// Package wakeup works out why the device left sleep.
package wakeup

import (
	"fmt"
	"sync"

	"github.com/ayoisaiah/hypnos/internal/device"
)

// Reason is the cause of the current boot.
type Reason uint8

const (
	// None means a cold boot: no wake latch was set.
	None Reason = iota
	// UserInput means the user button woke the device.
	UserInput
	// ScheduleEnd means the clock's timer or alarm fired.
	ScheduleEnd
)

func (r Reason) String() string {
	switch r {
	case None:
		return "none"
	case UserInput:
		return "user_input"
	case ScheduleEnd:
		return "schedule_end"
	}

	return fmt.Sprintf("Reason(%d)", uint8(r))
}

// Classify reads both latches, clears them and returns the reason. When
// both are set the schedule wins so that a scheduled check-in is never
// missed.
func Classify(l device.Latches) (Reason, error) {
	user, schedule, err := l.ReadLatches()
	if err != nil {
		return None, fmt.Errorf("reading wake latches: %w", err)
	}

	if err := l.ClearLatches(); err != nil {
		return None, fmt.Errorf("clearing wake latches: %w", err)
	}

	switch {
	case schedule:
		return ScheduleEnd, nil
	case user:
		return UserInput, nil
	default:
		return None, nil
	}
}

// Classifier classifies the wake once and returns the cached result for the
// rest of the boot.
type Classifier struct {
	latches device.Latches
	err     error
	once    sync.Once
	reason  Reason
}

// NewClassifier returns a classifier reading from l.
func NewClassifier(l device.Latches) *Classifier {
	return &Classifier{latches: l}
}

// Reason returns the wake reason. Only the first call touches the hardware.
func (c *Classifier) Reason() (Reason, error) {
	c.once.Do(func() {
		c.reason, c.err = Classify(c.latches)
	})

	return c.reason, c.err
}
