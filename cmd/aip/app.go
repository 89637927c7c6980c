package main

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/aip/internal/bundle"
	"github.com/jackzampolin/aip/internal/caiga"
	"github.com/jackzampolin/aip/internal/config"
	"github.com/jackzampolin/aip/internal/home"
	"github.com/jackzampolin/aip/version"
)

// app holds what every command that talks to the site needs.
type app struct {
	logger  *slog.Logger
	builder *bundle.Builder
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))
}

func loadConfig() (*config.Config, string, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, "", err
	}
	mgr, err := config.NewManager(cfgFile, h.Path())
	if err != nil {
		return nil, "", err
	}
	return mgr.Get(), mgr.FileUsed(), nil
}

func newApp(cmd *cobra.Command) (*app, error) {
	logger := newLogger(cmd).With("run_id", uuid.New().String())

	cfg, file, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if file != "" {
		logger.Debug("loaded config", "file", file)
	}

	clientCfg := cfg.ToClientConfig()
	if clientCfg.UserAgent == "" {
		clientCfg.UserAgent = version.UserAgent()
	}
	clientCfg.Logger = logger
	client, err := caiga.NewClient(clientCfg)
	if err != nil {
		return nil, err
	}

	builder, err := bundle.New(bundle.Config{
		Fetcher:         client,
		Markers:         cfg.Markers(),
		MenuPath:        cfg.Source.MenuPath,
		DocumentDir:     cfg.Source.DocumentDir,
		AerodromesTitle: cfg.Menu.AerodromesTitle,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}

	return &app{logger: logger, builder: builder}, nil
}
