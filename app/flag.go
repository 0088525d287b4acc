package app

import "github.com/urfave/cli/v2"

var (
	nowFlag = &cli.StringFlag{
		Name:  "now",
		Usage: "Pretend the host clock reads this time (e.g. '2024-05-01 22:15' or 'in 3 hours')",
	}

	tzFlag = &cli.StringFlag{
		Name:  "tz",
		Usage: "Time zone of the device clock (e.g. 'Europe/London'). Overrides device.timezone",
	}

	powerOffCmdFlag = &cli.StringFlag{
		Name:    "power-off-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command whenever the computer is switched off",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears when the computer is switched off",
	}

	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "Mirror the log to stderr",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}

	yamlFlag = &cli.BoolFlag{
		Name:  "yaml",
		Usage: "Print the output as YAML",
	}

	coldFlag = &cli.BoolFlag{
		Name:  "cold",
		Usage: "Simulate a power cycle before booting: pending wake sources and latches are lost",
	}

	morningFlag = &cli.StringFlag{
		Name:  "morning",
		Usage: "End of the morning curfew (HH:MM)",
	}

	nightFlag = &cli.StringFlag{
		Name:  "night",
		Usage: "Start of the night curfew (HH:MM)",
	}

	workFlag = &cli.UintFlag{
		Name:    "work",
		Aliases: []string{"w"},
		Usage:   "Work period length in minutes (1-255)",
	}

	breakFlag = &cli.UintFlag{
		Name:    "break",
		Aliases: []string{"b"},
		Usage:   "Break length in minutes (1-255)",
	}

	tokensFlag = &cli.UintFlag{
		Name:  "tokens",
		Usage: "Tokens left (0-255)",
	}

	fromFlag = &cli.StringFlag{
		Name:     "from",
		Aliases:  []string{"f"},
		Usage:    "Start of the exception window (e.g. 'today 23:00' or a unix timestamp)",
		Required: true,
	}

	toFlag = &cli.StringFlag{
		Name:     "to",
		Aliases:  []string{"t"},
		Usage:    "End of the exception window (e.g. 'tomorrow 1am' or a unix timestamp)",
		Required: true,
	}

	sinceFlag = &cli.StringFlag{
		Name:    "since",
		Aliases: []string{"s"},
		Usage:   "Only show boots after this time (defaults to 7 days ago)",
	}

	untilFlag = &cli.StringFlag{
		Name:    "until",
		Aliases: []string{"u"},
		Usage:   "Only show boots before this time (defaults to now)",
	}

	globalFlags = []cli.Flag{
		nowFlag,
		tzFlag,
		powerOffCmdFlag,
		disableNotificationFlag,
		verboseFlag,
		noColorFlag,
	}
)
