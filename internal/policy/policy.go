// Package policy decides whether the monitored computer may run and drives
// the clock and power collaborators accordingly. The work/break state is
// never stored: it is recomputed on every boot from the clock, the
// timetable and the wake reason.
package policy

import (
	"fmt"

	"github.com/ayoisaiah/hypnos/internal/timetable"
	"github.com/ayoisaiah/hypnos/internal/wakeup"
)

// Rule names the check that produced a decision.
type Rule uint8

const (
	// RuleNone means no check matched: the computer may run.
	RuleNone Rule = iota
	// RuleException means an exception window covers the current time.
	RuleException
	// RuleCurfew means the time of day is outside the allowed hours.
	RuleCurfew
	// RuleScheduleEnd means the work timer or the curfew alarm woke the
	// device.
	RuleScheduleEnd
	// RuleBreakWindow means a break started less than a break length ago.
	RuleBreakWindow
)

func (r Rule) String() string {
	switch r {
	case RuleNone:
		return "none"
	case RuleException:
		return "exception"
	case RuleCurfew:
		return "curfew"
	case RuleScheduleEnd:
		return "schedule_end"
	case RuleBreakWindow:
		return "break_window"
	}

	return fmt.Sprintf("Rule(%d)", uint8(r))
}

// Inputs is everything a decision depends on.
type Inputs struct {
	Exceptions    *timetable.ExceptionList
	Now           uint32
	BreakStart    uint32
	BreakSeconds  uint32
	TimeOfDay     timetable.HourMinute
	MorningCurfew timetable.HourMinute
	NightCurfew   timetable.HourMinute
	Wake          wakeup.Reason
}

// Decision is the outcome of Evaluate.
type Decision struct {
	Rule    Rule
	InBreak bool
}

func (d Decision) String() string {
	state := "work"
	if d.InBreak {
		state = "break"
	}

	return state + " (" + d.Rule.String() + ")"
}

// InCurfew reports whether tod lies outside the allowed hours. The morning
// boundary itself is still curfew; the night boundary starts it.
func InCurfew(tod, morning, night timetable.HourMinute) bool {
	return timetable.DiffTime(tod, morning) <= 0 ||
		timetable.DiffTime(tod, night) >= 0
}

// InBreakWindow reports whether now is at most breakSeconds after
// breakStart. A zero stamp or one in the future never counts.
func InBreakWindow(now, breakStart, breakSeconds uint32) bool {
	if breakStart == 0 {
		return false
	}

	elapsed := int64(now) - int64(breakStart)
	if elapsed < 0 {
		return false
	}

	return elapsed <= int64(breakSeconds)
}

// Evaluate runs the checks in order and returns the first that matches.
// An exception always allows work, even during curfew.
func Evaluate(in Inputs) Decision {
	if in.Exceptions != nil && in.Exceptions.Contains(in.Now) {
		return Decision{Rule: RuleException}
	}

	if InCurfew(in.TimeOfDay, in.MorningCurfew, in.NightCurfew) {
		return Decision{Rule: RuleCurfew, InBreak: true}
	}

	if in.Wake == wakeup.ScheduleEnd {
		return Decision{Rule: RuleScheduleEnd, InBreak: true}
	}

	if InBreakWindow(in.Now, in.BreakStart, in.BreakSeconds) {
		return Decision{Rule: RuleBreakWindow, InBreak: true}
	}

	return Decision{Rule: RuleNone}
}
