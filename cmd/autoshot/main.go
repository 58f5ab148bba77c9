package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"

	"autoshot/internal/capture"
	"autoshot/internal/cmdline"
	"autoshot/internal/config"
	"autoshot/internal/instance"
	"autoshot/internal/logging"
	"autoshot/internal/logview"
	"autoshot/internal/session"
	"autoshot/internal/tray"
)

var version = "dev"

const shutdownTimeout = 3 * time.Second

func main() {
	app := &cli.App{
		Name:            "autoshot",
		Usage:           "take a screenshot every few seconds and save it to a folder",
		UsageText:       "autoshot [--folder DIR] [--interval SECONDS] [--format jpg|png|bmp]",
		Version:         version,
		Flags:           cmdline.Flags(),
		HideHelpCommand: true,
		Action:          run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "autoshot:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := cmdline.Load(c)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		return err
	}
	logger.Info("starting", "version", version, "config", cfg.Source)

	lock, err := instance.Acquire("AutoShot")
	if errors.Is(err, instance.ErrAlreadyRunning) {
		logger.Error("another instance of AutoShot is already running")
		return err
	}
	if err != nil {
		return fmt.Errorf("single instance lock: %w", err)
	}
	defer lock.Release()

	if cfg.Settings.Folder == config.DefaultFolder() {
		if err := config.EnsureFolder(cfg.Settings.Folder); err != nil {
			logger.Warn("failed to create default folder", "folder", cfg.Settings.Folder, "error", err)
		}
	}

	capturer := capture.New(capture.Options{Suffix: cfg.Labels.FileSuffix, Logger: logger})
	ctrl, err := session.New(session.Options{Capturer: capturer, Logger: logger})
	if err != nil {
		return err
	}

	hub := logview.NewHub(cfg.Labels.StoppedNotice)
	srv, logURL := startLogView(cfg, hub, logger)

	app := tray.New(tray.Options{
		Config:     cfg,
		Controller: ctrl,
		Sink:       hub,
		LogURL:     logURL,
		Logger:     logger,
		OnExit: func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := ctrl.Close(ctx); err != nil {
				logger.Warn("capture still running at exit", "error", err)
			}
			if srv != nil {
				if err := srv.Stop(ctx); err != nil {
					logger.Warn("failed to stop log view", "error", err)
				}
			}
			logger.Info("bye")
		},
	})
	app.Run()
	return nil
}

func startLogView(cfg *config.Config, hub *logview.Hub, logger *slog.Logger) (*logview.Server, string) {
	if !cfg.LogView.Enabled {
		return nil, ""
	}
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := logview.NewServer(cfg.LogView.Addr, hub, logger)
	if err := srv.Start(); err != nil {
		logger.Warn("log view disabled", "error", err)
		return nil, ""
	}
	return srv, srv.URL()
}
