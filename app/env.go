package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/hypnos/internal/config"
	"github.com/ayoisaiah/hypnos/internal/device/sim"
	"github.com/ayoisaiah/hypnos/internal/logger"
	"github.com/ayoisaiah/hypnos/internal/nvram"
	"github.com/ayoisaiah/hypnos/internal/pathutil"
	"github.com/ayoisaiah/hypnos/internal/timetable"
	"github.com/ayoisaiah/hypnos/internal/ui"
	"github.com/ayoisaiah/hypnos/store"
)

// environment is everything a command needs to talk to the device.
type environment struct {
	cfg       *config.Config
	log       *slog.Logger
	logCloser io.Closer
	db        *store.Client
	dev       *sim.Device
	tt        *timetable.Timetable
	nv        *nvram.Store
}

// interactive reports whether stdin is a terminal.
func interactive() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}

	return fi.Mode()&os.ModeCharDevice != 0
}

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	configPath := pathutil.ConfigFilePath()

	opts := []config.Option{}

	if interactive() {
		opts = append(opts, config.WithPromptConfig(configPath))
	}

	opts = append(opts,
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	)

	return config.New(opts...)
}

// setup loads the config, opens the log and the device store, and builds
// the default timetable. The caller must call close.
func setup(ctx *cli.Context) (*environment, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	var stderr io.Writer
	if cfg.CLI.Verbose {
		stderr = config.Stderr
	}

	log, closer, err := logger.New(logger.Options{
		Path:      pathutil.LogFilePath(),
		Level:     cfg.Log.Level,
		MaxSizeMB: cfg.Log.MaxSizeMB,
		Stderr:    stderr,
	})
	if err != nil {
		return nil, err
	}

	slog.SetDefault(log)

	ui.DarkTheme = cfg.Display.DarkTheme

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	dev, err := sim.New(db, sim.Options{
		Now:         cfg.Now,
		Location:    cfg.Location(),
		Logger:      log,
		PowerOffCmd: cfg.Device.PowerOffCmd,
		Notify:      cfg.Device.Notify,
	})
	if err != nil {
		_ = db.Close()
		_ = closer.Close()

		return nil, err
	}

	tt, err := cfg.DefaultTimetable()
	if err != nil {
		_ = db.Close()
		_ = closer.Close()

		return nil, err
	}

	return &environment{
		cfg:       cfg,
		log:       log,
		logCloser: closer,
		db:        db,
		dev:       dev,
		tt:        tt,
		nv:        nvram.New(dev, uint8(cfg.Device.EEPROMOffset)),
	}, nil
}

func (e *environment) close() {
	_ = e.db.Close()
	_ = e.logCloser.Close()
}

// restore replaces the default timetable with the stored one and reports
// whether there was one. A blank or corrupt block keeps the defaults.
func (e *environment) restore(ctx context.Context) (bool, error) {
	restored := *e.tt

	err := e.nv.Load(restored.Schema())
	if err == nil {
		*e.tt = restored
		return true, nil
	}

	if nvram.IsCorrupt(err) {
		if !errors.Is(err, nvram.ErrBlank) {
			e.log.WarnContext(ctx, "keeping default timetable", slog.Any("error", err))
		}

		return false, nil
	}

	return false, err
}

func (e *environment) save(ctx context.Context) error {
	if err := e.nv.Save(e.tt.Schema()); err != nil {
		return err
	}

	e.log.InfoContext(ctx, "timetable stored", slog.String("timetable", e.tt.String()))

	return nil
}

func (e *environment) service() *timetable.Service {
	return &timetable.Service{
		Timetable: e.tt,
		Clock:     e.dev,
	}
}

// withEnv wraps a command action that needs the device.
func withEnv(fn func(ctx *cli.Context, e *environment) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		e, err := setup(ctx)
		if err != nil {
			return err
		}

		defer e.close()

		return fn(ctx, e)
	}
}
