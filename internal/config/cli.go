package config

import (
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/hypnos/internal/timeutil"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Now         string
	Timezone    string
	PowerOffCmd string
	Verbose     bool
	NoNotify    bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Now:         ctx.String("now"),
			Timezone:    ctx.String("tz"),
			PowerOffCmd: ctx.String("power-off-cmd"),
			Verbose:     ctx.Bool("verbose"),
			NoNotify:    ctx.Bool("disable-notification"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if opts.Timezone != "" {
		c.Device.Timezone = opts.Timezone
	}

	if opts.PowerOffCmd != "" {
		c.Device.PowerOffCmd = opts.PowerOffCmd
	}

	if opts.NoNotify {
		c.Device.Notify = false
	}

	c.CLI.Verbose = opts.Verbose

	if opts.Now != "" {
		now, err := timeutil.FromStr(opts.Now)
		if err != nil {
			return errInvalidNow.Fmt(opts.Now).Wrap(err)
		}

		c.CLI.Now = now
	}

	return nil
}
