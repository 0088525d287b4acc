package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/hypnos/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the hypnos app instance.
func Get() *cli.App {
	hypnosApp := &cli.App{
		Name: "hypnos",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		Hypnos drives a computer lockout accessory. It keeps the computer off
		outside the allowed hours, enforces a break after every work period and
		lets exception windows override both. The accessory is simulated on the
		host so the schedule can be tried out from the command-line.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "boot",
				Usage:  "Wake the device: decide between work and break, then go back to sleep",
				Flags:  []cli.Flag{coldFlag, jsonFlag},
				Action: withEnv(bootAction),
			},
			{
				Name:   "press",
				Usage:  "Press the user button on the device",
				Action: withEnv(pressAction),
			},
			{
				Name:   "status",
				Usage:  "Print the state of the device",
				Flags:  []cli.Flag{jsonFlag},
				Action: withEnv(statusAction),
			},
			{
				Name:  "timetable",
				Usage: "Show or change the stored timetable",
				Subcommands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "Print the stored timetable",
						Flags:  []cli.Flag{jsonFlag, yamlFlag},
						Action: withEnv(timetableShowAction),
					},
					{
						Name:  "set",
						Usage: "Change one or more timetable fields",
						Flags: []cli.Flag{
							morningFlag,
							nightFlag,
							workFlag,
							breakFlag,
							tokensFlag,
						},
						Action: withEnv(timetableSetAction),
					},
				},
			},
			{
				Name:    "exception",
				Aliases: []string{"exc"},
				Usage:   "Manage the windows in which the computer may always run",
				Subcommands: []*cli.Command{
					{
						Name:   "add",
						Usage:  "Add an exception window",
						Flags:  []cli.Flag{fromFlag, toFlag},
						Action: withEnv(exceptionAddAction),
					},
					{
						Name:   "list",
						Usage:  "List the exception windows",
						Flags:  []cli.Flag{jsonFlag},
						Action: withEnv(exceptionListAction),
					},
					{
						Name:   "clear",
						Usage:  "Remove every exception window",
						Action: withEnv(exceptionClearAction),
					},
				},
			},
			{
				Name:  "char",
				Usage: "Read and write the raw timetable characteristics",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List every characteristic with its raw value",
						Action: withEnv(charListAction),
					},
					{
						Name:      "read",
						Usage:     "Print the raw value of a characteristic in hex",
						ArgsUsage: "<name|id>",
						Action:    withEnv(charReadAction),
					},
					{
						Name:      "write",
						Usage:     "Write a hex encoded value to a characteristic",
						ArgsUsage: "<name|id> <hex>",
						Action:    withEnv(charWriteAction),
					},
				},
			},
			{
				Name:  "eeprom",
				Usage: "Inspect the user EEPROM of the clock",
				Subcommands: []*cli.Command{
					{
						Name:   "dump",
						Usage:  "Print the stored block and its field layout",
						Action: withEnv(eepromDumpAction),
					},
					{
						Name:   "erase",
						Usage:  "Erase the user EEPROM so the next boot uses the defaults",
						Action: withEnv(eepromEraseAction),
					},
				},
			},
			{
				Name:   "history",
				Usage:  "List recent boots and their decisions",
				Flags:  []cli.Flag{sinceFlag, untilFlag, jsonFlag},
				Action: withEnv(historyAction),
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags:  globalFlags,
		Before: beforeAction,
		After:  afterAction,
	}

	return hypnosApp
}
