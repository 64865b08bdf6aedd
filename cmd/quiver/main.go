package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Versifine/quiver/internal/audio"
	"github.com/Versifine/quiver/internal/config"
	"github.com/Versifine/quiver/internal/debug"
	"github.com/Versifine/quiver/internal/event"
	"github.com/Versifine/quiver/internal/logger"
	"github.com/Versifine/quiver/internal/session"
	"github.com/Versifine/quiver/internal/view"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		slog.Error("Failed to load .env", "error", err)
		os.Exit(1)
	}

	path := config.Path("configs/config.yaml")
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Config file not found, using defaults", "path", path)
		cfg, err = config.Default(), nil
	}
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.ApplyEnv(); err != nil {
		slog.Error("Invalid environment override", "error", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	}); err != nil {
		slog.Error("Failed to open log file", "error", err)
		os.Exit(1)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Range stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	settings, err := session.SettingsFromConfig(cfg)
	if err != nil {
		return err
	}

	bus := event.NewBus()
	if cfg.Audio.Enabled {
		sound := audio.Start(bus, cfg.Audio.Volume)
		defer sound.Close()
	}

	visuals := view.NewArrowVisuals()
	sim, err := session.New(settings, visuals, bus)
	if err != nil {
		return err
	}
	defer sim.Close()

	slog.Info("Range ready",
		"ui", cfg.Frontend.UI,
		"mode", settings.Mode.String(),
		"target", settings.Target.Center,
	)

	switch cfg.Frontend.UI {
	case "console":
		console := debug.NewConsole(sim, debug.Options{
			TickInterval: cfg.Frontend.TickInterval,
			Sensitivity:  settings.Sensitivity,
		})
		return console.Start(ctx)
	default:
		return view.Run(ctx, sim, visuals, view.Options{
			Title:  cfg.Frontend.Title,
			Width:  cfg.Frontend.Width,
			Height: cfg.Frontend.Height,
			TPS:    cfg.Frontend.TPS,
			FOV:    cfg.Frontend.FOV,
		})
	}
}
