package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/pipeline"
	"git.home.luguber.info/inful/blogbuilder/internal/version"
)

var CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Build struct{} `cmd:"" help:"Publish the whole blog: render stale documents and regenerate aggregates"`

	Post struct {
		File string `arg:"" help:"Source document to publish"`
	} `cmd:"" help:"Publish a single document without touching aggregate pages"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`
}

func main() {
	ctx := kong.Parse(&CLI, kong.Vars{"version": version.Version})

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	adapter := errors.NewCLIErrorAdapter(CLI.Verbose, logger)

	// Execute command
	switch ctx.Command() {
	case "build":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			adapter.HandleError(err)
		}
		result, err := pipeline.New(cfg, nil).Publish()
		if err != nil {
			adapter.HandleError(err)
		}
		slog.Info("Build finished",
			slog.String("build_id", result.BuildID),
			slog.Int("rendered", result.Rendered),
			slog.Int("fresh", result.Fresh),
			slog.Bool("aggregates", result.AggregatesBuilt),
			slog.Duration("duration", result.Duration))
	case "post <file>":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			adapter.HandleError(err)
		}
		if err := pipeline.New(cfg, nil).PublishPost(CLI.Post.File); err != nil {
			adapter.HandleError(err)
		}
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			adapter.HandleError(err)
		}
		slog.Info("Configuration written", slog.String("path", CLI.Config))
	default:
		slog.Error("Unknown command", slog.String("command", ctx.Command()))
		os.Exit(1)
	}
}
