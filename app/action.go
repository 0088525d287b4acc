package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/hypnos/internal/apperr"
	"github.com/ayoisaiah/hypnos/internal/device/sim"
	"github.com/ayoisaiah/hypnos/internal/models"
	"github.com/ayoisaiah/hypnos/internal/osutil"
	"github.com/ayoisaiah/hypnos/internal/pathutil"
	"github.com/ayoisaiah/hypnos/internal/policy"
	"github.com/ayoisaiah/hypnos/internal/timetable"
	"github.com/ayoisaiah/hypnos/internal/timeutil"
	"github.com/ayoisaiah/hypnos/internal/wakeup"
)

var errInvalidEditor = &apperr.Error{
	Message: "unable to run editor %q",
}

const (
	envNoColor       = "NO_COLOR"
	envHypnosNoColor = "HYPNOS_NO_COLOR"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	pterm.Println(string(b))

	return nil
}

// bootAction handles the boot command. It runs one wake cycle of the
// device and records it in the history.
func bootAction(ctx *cli.Context, e *environment) error {
	if ctx.Bool("cold") {
		if err := e.dev.Reset(); err != nil {
			return err
		}
	}

	err := e.dev.Wake()
	if errors.Is(err, sim.ErrAsleep) {
		next := e.dev.NextWake()

		if next.IsZero() {
			pterm.Info.Println("The device is asleep until the button is pressed")
		} else {
			pterm.Info.Printfln(
				"The device is asleep until %s",
				next.Format("Jan 02, 2006 15:04:05"),
			)
		}

		return nil
	}

	if err != nil {
		return err
	}

	m := &policy.Machine{
		RTC:       e.dev,
		Power:     e.dev,
		Switch:    e.dev,
		Timetable: e.tt,
		Wake:      wakeup.NewClassifier(e.dev),
		Logger:    e.log,
	}

	d, err := m.Boot(ctx.Context, e.nv)
	if err != nil {
		return err
	}

	reason, _ := m.Wake.Reason()

	rec := &models.BootRecord{
		Time:    e.dev.Time(),
		Reason:  reason.String(),
		Rule:    d.Rule.String(),
		InBreak: d.InBreak,
	}

	if !d.InBreak {
		rec.TimerSeconds = policy.WorkTimerSeconds(e.tt, timeutil.Unix(rec.Time))
	}

	if err := e.db.SaveBoot(rec); err != nil {
		return err
	}

	if ctx.Bool("json") {
		return printJSON(rec)
	}

	printBoot(rec, e.dev.NextWake())

	return nil
}

// pressAction handles the press command.
func pressAction(ctx *cli.Context, e *environment) error {
	pressed, err := e.dev.Press()
	if err != nil {
		return err
	}

	if !pressed {
		pterm.Warning.Println("The button does nothing right now: only the clock can end a work period")
		return nil
	}

	slog.InfoContext(ctx.Context, "button pressed")

	pterm.Success.Println("Button pressed. Run 'hypnos boot' to wake the device")

	return nil
}

// status is the machine readable form of the status command.
type status struct {
	DeviceTime  time.Time          `json:"device_time"`
	NextWake    time.Time          `json:"next_wake,omitzero"`
	Decision    string             `json:"decision"`
	Timetable   string             `json:"timetable"`
	Device      models.DeviceState `json:"device"`
	InBreak     bool               `json:"in_break"`
	StoredBlock bool               `json:"stored_block"`
}

// statusAction handles the status command. The decision shown is what a
// cold boot would decide right now.
func statusAction(ctx *cli.Context, e *environment) error {
	stored, err := e.restore(ctx.Context)
	if err != nil {
		return err
	}

	now, _ := e.dev.Unix()
	hour, _ := e.dev.Hours()
	minute, _ := e.dev.Minutes()
	stamp, _ := e.dev.TimeStampUnix()

	d := policy.Evaluate(policy.Inputs{
		Now:           now,
		TimeOfDay:     timetable.NewHourMinute(hour, minute),
		Exceptions:    &e.tt.Exceptions,
		MorningCurfew: e.tt.MorningCurfew,
		NightCurfew:   e.tt.NightCurfew,
		BreakStart:    stamp,
		BreakSeconds:  e.tt.BreakSeconds(),
	})

	st := status{
		DeviceTime:  e.dev.Time(),
		NextWake:    e.dev.NextWake(),
		Decision:    d.String(),
		InBreak:     d.InBreak,
		Timetable:   e.tt.String(),
		Device:      e.dev.State(),
		StoredBlock: stored,
	}

	if ctx.Bool("json") {
		return printJSON(st)
	}

	printStatus(&st, e.cfg.Location())

	return nil
}

// historyAction handles the history command.
func historyAction(ctx *cli.Context, e *environment) error {
	until := e.dev.Time()
	since := until.AddDate(0, 0, -7)

	var err error

	if s := ctx.String("since"); s != "" {
		if since, err = timeutil.FromStr(s); err != nil {
			return err
		}
	}

	if s := ctx.String("until"); s != "" {
		if until, err = timeutil.FromStr(s); err != nil {
			return err
		}
	}

	boots, err := e.db.GetBoots(since, until)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		return printJSON(boots)
	}

	if len(boots) == 0 {
		pterm.Info.Println(noBootsMsg)
		return nil
	}

	printBootsTable(os.Stdout, boots, e.cfg.Location())

	return nil
}

// editConfigAction handles the edit-config command which opens the hypnos
// config file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	args, err := shellquote.Split(editor)
	if err != nil || len(args) == 0 {
		return errInvalidEditor.Fmt(editor)
	}

	args = append(args, pathutil.ConfigFilePath())

	cmd := exec.Command(args[0], args[1:]...)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	if err := pathutil.Initialize(); err != nil {
		return err
	}

	// Override the default help template
	cli.AppHelpTemplate = helpText()

	// Override the default version printer
	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf(
			"https://github.com/ayoisaiah/hypnos/releases/%s\n",
			c.App.Version,
		)
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if HYPNOS_NO_COLOR is set
	if _, exists := os.LookupEnv(envHypnosNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting hypnos")

	return nil
}
