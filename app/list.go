package app

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/hypnos/internal/models"
	"github.com/ayoisaiah/hypnos/internal/timetable"
	"github.com/ayoisaiah/hypnos/internal/timeutil"
	"github.com/ayoisaiah/hypnos/internal/ui"
)

const (
	noBootsMsg      = "No boots found for the specified time range"
	noExceptionsMsg = "No exceptions stored"
	timeLayout      = "Jan 02, 2006 15:04:05"
)

func stateText(inBreak bool) string {
	if inBreak {
		return ui.Red("break")
	}

	return ui.Green("work")
}

func onOff(on bool) string {
	if on {
		return ui.Green("on")
	}

	return ui.Red("off")
}

// printBoot summarises a boot that just ran.
func printBoot(rec *models.BootRecord, next time.Time) {
	if rec.InBreak {
		pterm.Warning.Printfln("Break (%s): the computer has been switched off", rec.Rule)
	} else {
		pterm.Success.Printfln(
			"Work period started: %s until the clock ends it",
			timeutil.Countdown(time.Duration(rec.TimerSeconds)*time.Second),
		)
	}

	fields := [][2]string{
		{"Woke because", rec.Reason},
		{"Device time", rec.Time.Format(timeLayout)},
	}

	if !next.IsZero() {
		fields = append(fields, [2]string{"Next wake", next.Format(timeLayout)})
	} else {
		fields = append(fields, [2]string{"Next wake", "when the button is pressed"})
	}

	ui.PrintFields([2]string{"BOOT", ""}, fields, os.Stdout)
}

// printStatus prints the status table.
func printStatus(st *status, loc *time.Location) {
	dev := st.Device

	sleeping := "awake"

	if dev.Asleep() {
		var sources []string
		if dev.UserWake {
			sources = append(sources, "button")
		}

		if dev.ScheduleWake {
			sources = append(sources, "clock")
		}

		sleeping = "asleep, woken by " + strings.Join(sources, " or ")
	}

	next := "-"
	if !st.NextWake.IsZero() {
		next = st.NextWake.Format(timeLayout)
	}

	alarm := "-"
	if dev.Alarm != nil {
		alarm = timetable.NewHourMinute(dev.Alarm.Hour, dev.Alarm.Minute).String()
	}

	stored := "configured defaults"
	if st.StoredBlock {
		stored = "stored on device"
	}

	fields := [][2]string{
		{"Device time", st.DeviceTime.Format(timeLayout)},
		{"Computer", onOff(dev.ComputerOn)},
		{"Device", sleeping},
		{"Next wake", next},
		{"Timer fires", timeutil.Format(dev.TimerDeadline, loc)},
		{"Curfew alarm", alarm},
		{"Break started", timeutil.Format(dev.TimeStamp, loc)},
		{"Timetable", st.Timetable + " (" + stored + ")"},
		{"Cold boot now", stateText(st.InBreak) + " (" + st.Decision + ")"},
	}

	ui.PrintFields([2]string{"STATUS", ""}, fields, os.Stdout)
}

// printTimetable prints the timetable fields and exceptions.
func printTimetable(w io.Writer, v *timetableView) {
	fields := [][2]string{
		{"Allowed from", v.MorningCurfew},
		{"Allowed until", v.NightCurfew},
		{"Work period", fmt.Sprintf("%d minutes", v.WorkMinutes)},
		{"Break", fmt.Sprintf("%d minutes", v.BreakMinutes)},
		{"Tokens left", fmt.Sprintf("%d", v.TokensLeft)},
		{"Exceptions", fmt.Sprintf("%d of %d", len(v.Exceptions), timetable.MaxExceptions)},
	}

	ui.PrintFields([2]string{"TIMETABLE", ""}, fields, w)
}

// printExceptionsTable prints the exception windows, marking the one in
// effect.
func printExceptionsTable(
	w io.Writer,
	views []exceptionView,
	active timetable.TimeException,
) {
	rows := [][]string{{"#", "FROM", "TO", "STATUS"}}

	for i, v := range views {
		status := ""
		if v.Start == active.Start && v.End == active.End && active.End != 0 {
			status = ui.Green("active")
		}

		rows = append(rows, []string{fmt.Sprintf("%d", i+1), v.From, v.To, status})
	}

	ui.PrintTable(rows, w)
}

// printBootsTable prints a table of boots.
func printBootsTable(w io.Writer, boots []models.BootRecord, loc *time.Location) {
	rows := make([][]string, 0, len(boots)+1)
	rows = append(rows, []string{"#", "TIME", "WOKE BECAUSE", "DECISION", "TIMER"})

	for i := range boots {
		b := boots[i]

		timer := "-"
		if !b.InBreak {
			timer = timeutil.Countdown(time.Duration(b.TimerSeconds) * time.Second)
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			b.Time.In(loc).Format(timeLayout),
			b.Reason,
			stateText(b.InBreak) + " (" + b.Rule + ")",
			timer,
		})
	}

	ui.PrintTable(rows, w)
}
