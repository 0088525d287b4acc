package app

import (
	"math"
	"os"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/ayoisaiah/hypnos/internal/apperr"
	"github.com/ayoisaiah/hypnos/internal/record"
	"github.com/ayoisaiah/hypnos/internal/timetable"
	"github.com/ayoisaiah/hypnos/internal/timeutil"
)

var errFlagRange = &apperr.Error{
	Message: "--%s must be between %d and %d",
}

type exceptionView struct {
	From  string `json:"from"  yaml:"from"`
	To    string `json:"to"    yaml:"to"`
	Start uint32 `json:"start" yaml:"start"`
	End   uint32 `json:"end"   yaml:"end"`
}

type timetableView struct {
	MorningCurfew string          `json:"morning_curfew" yaml:"morning_curfew"`
	NightCurfew   string          `json:"night_curfew"   yaml:"night_curfew"`
	Exceptions    []exceptionView `json:"exceptions"     yaml:"exceptions"`
	WorkMinutes   uint8           `json:"work_minutes"   yaml:"work_minutes"`
	BreakMinutes  uint8           `json:"break_minutes"  yaml:"break_minutes"`
	TokensLeft    uint8           `json:"tokens_left"    yaml:"tokens_left"`
}

func (e *environment) exceptionViews() []exceptionView {
	loc := e.cfg.Location()
	all := e.tt.Exceptions.All()

	views := make([]exceptionView, len(all))

	for i, exc := range all {
		views[i] = exceptionView{
			Start: exc.Start,
			End:   exc.End,
			From:  timeutil.Format(exc.Start, loc),
			To:    timeutil.Format(exc.End, loc),
		}
	}

	return views
}

func (e *environment) timetableView() timetableView {
	return timetableView{
		MorningCurfew: e.tt.MorningCurfew.String(),
		NightCurfew:   e.tt.NightCurfew.String(),
		WorkMinutes:   uint8(e.tt.WorkMinutes),
		BreakMinutes:  uint8(e.tt.BreakMinutes),
		TokensLeft:    uint8(e.tt.TokensLeft),
		Exceptions:    e.exceptionViews(),
	}
}

// timetableShowAction prints the timetable the next boot will use.
func timetableShowAction(ctx *cli.Context, e *environment) error {
	stored, err := e.restore(ctx.Context)
	if err != nil {
		return err
	}

	view := e.timetableView()

	switch {
	case ctx.Bool("json"):
		return printJSON(view)
	case ctx.Bool("yaml"):
		b, err := yaml.Marshal(view)
		if err != nil {
			return err
		}

		pterm.Print(string(b))

		return nil
	}

	if !stored {
		pterm.Info.Println("Nothing stored on the device yet: showing the configured defaults")
	}

	printTimetable(os.Stdout, &view)

	return nil
}

func uintFlag(ctx *cli.Context, name string, low uint) (uint8, error) {
	v := ctx.Uint(name)
	if v < low || v > math.MaxUint8 {
		return 0, errFlagRange.Fmt(name, low, math.MaxUint8)
	}

	return uint8(v), nil
}

// timetableSetAction changes the flagged fields and stores the result.
func timetableSetAction(ctx *cli.Context, e *environment) error {
	if _, err := e.restore(ctx.Context); err != nil {
		return err
	}

	tt := *e.tt

	if ctx.IsSet("morning") {
		hm, err := timetable.ParseHourMinute(ctx.String("morning"))
		if err != nil {
			return err
		}

		tt.MorningCurfew = hm
	}

	if ctx.IsSet("night") {
		hm, err := timetable.ParseHourMinute(ctx.String("night"))
		if err != nil {
			return err
		}

		tt.NightCurfew = hm
	}

	for _, f := range []struct {
		dest *record.Uint8
		name string
		low  uint
	}{
		{dest: &tt.WorkMinutes, name: "work", low: 1},
		{dest: &tt.BreakMinutes, name: "break", low: 1},
		{dest: &tt.TokensLeft, name: "tokens", low: 0},
	} {
		if !ctx.IsSet(f.name) {
			continue
		}

		v, err := uintFlag(ctx, f.name, f.low)
		if err != nil {
			return err
		}

		*f.dest = record.Uint8(v)
	}

	if err := tt.Validate(); err != nil {
		return err
	}

	*e.tt = tt

	if err := e.save(ctx.Context); err != nil {
		return err
	}

	pterm.Success.Println("Timetable stored")

	view := e.timetableView()
	printTimetable(os.Stdout, &view)

	return nil
}

// exceptionAddAction stores a new exception window.
func exceptionAddAction(ctx *cli.Context, e *environment) error {
	if _, err := e.restore(ctx.Context); err != nil {
		return err
	}

	from, err := timeutil.FromStr(ctx.String("from"))
	if err != nil {
		return err
	}

	to, err := timeutil.FromStr(ctx.String("to"))
	if err != nil {
		return err
	}

	exc, err := timetable.NewTimeException(from, to)
	if err != nil {
		return err
	}

	if err := e.tt.Exceptions.Push(exc); err != nil {
		return err
	}

	if err := e.save(ctx.Context); err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Exception added: %s to %s",
		timeutil.Format(exc.Start, e.cfg.Location()),
		timeutil.Format(exc.End, e.cfg.Location()),
	)

	return nil
}

// exceptionListAction prints the stored exception windows.
func exceptionListAction(ctx *cli.Context, e *environment) error {
	if _, err := e.restore(ctx.Context); err != nil {
		return err
	}

	views := e.exceptionViews()

	if ctx.Bool("json") {
		return printJSON(views)
	}

	if len(views) == 0 {
		pterm.Info.Println(noExceptionsMsg)
		return nil
	}

	now, err := e.dev.Unix()
	if err != nil {
		return err
	}

	active, _ := e.tt.Exceptions.Active(now)

	printExceptionsTable(os.Stdout, views, active)

	return nil
}

// exceptionClearAction removes every exception window.
func exceptionClearAction(ctx *cli.Context, e *environment) error {
	if _, err := e.restore(ctx.Context); err != nil {
		return err
	}

	e.tt.Exceptions.Clear()

	if err := e.save(ctx.Context); err != nil {
		return err
	}

	pterm.Success.Println("All exceptions removed")

	return nil
}
