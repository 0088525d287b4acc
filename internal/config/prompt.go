package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/ayoisaiah/hypnos/internal/timetable"
)

const asciiLogo = `
██╗  ██╗██╗   ██╗██████╗ ███╗   ██╗ ██████╗ ███████╗
██║  ██║╚██╗ ██╔╝██╔══██╗████╗  ██║██╔═══██╗██╔════╝
███████║ ╚████╔╝ ██████╔╝██╔██╗ ██║██║   ██║███████╗
██╔══██║  ╚██╔╝  ██╔═══╝ ██║╚██╗██║██║   ██║╚════██║
██║  ██║   ██║   ██║     ██║ ╚████║╚██████╔╝███████║
╚═╝  ╚═╝   ╚═╝   ╚═╝     ╚═╝  ╚═══╝ ╚═════╝ ╚══════╝`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	MorningCurfew string
	NightCurfew   string
	WorkMinutes   int
	BreakMinutes  int
}

// WithPromptConfig returns an Option that configures settings via
// interactive prompts. It only runs when configPath does not exist yet.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		return applyPromptOptions(c, opts)
	}
}

func validateHourMinute(s string) error {
	_, err := timetable.ParseHourMinute(s)
	return err
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	opts := PromptOptions{
		MorningCurfew: defaultMorningCurfew,
		NightCurfew:   defaultNightCurfew,
	}

	// Display welcome message
	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure hypnos for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'hypnos edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Morning curfew ends at (HH:MM)").
				Value(&opts.MorningCurfew).
				Validate(validateHourMinute),
			huh.NewInput().
				Title("Night curfew starts at (HH:MM)").
				Value(&opts.NightCurfew).
				Validate(validateHourMinute),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Work period length").
				Options(
					huh.NewOption("25 minutes", 25),
					huh.NewOption("45 minutes", 45).Selected(true),
					huh.NewOption("60 minutes", 60),
					huh.NewOption("90 minutes", 90),
					huh.NewOption("120 minutes", 120),
				).
				Value(&opts.WorkMinutes),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Break length").
				Options(
					huh.NewOption("5 minutes", 5),
					huh.NewOption("10 minutes", 10),
					huh.NewOption("15 minutes", 15).Selected(true),
					huh.NewOption("30 minutes", 30),
				).
				Value(&opts.BreakMinutes),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) error {
	c.Timetable.MorningCurfew = opts.MorningCurfew
	c.Timetable.NightCurfew = opts.NightCurfew
	c.Timetable.WorkMinutes = opts.WorkMinutes
	c.Timetable.BreakMinutes = opts.BreakMinutes

	return nil
}
