// Package commands implements the docsbuild CLI subcommands.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsbuild/internal/config"
	"git.home.luguber.info/inful/docsbuild/internal/project"
)

// LogLevelEnv overrides the configured log level when set.
const LogLevelEnv = "DOCSBUILD_LOG_LEVEL"

// Global carries state shared by all subcommands.
type Global struct {
	Context context.Context
}

func (g *Global) ctx() context.Context {
	if g == nil || g.Context == nil {
		return context.Background()
	}
	return g.Context
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docsbuild.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Build documentation for configured projects"`
	Sync     SyncCmd     `cmd:"" help:"Check out the branches of configured project versions"`
	Schedule ScheduleCmd `cmd:"" help:"Rebuild documentation periodically"`
	History  HistoryCmd  `cmd:"" help:"Show recent builds"`
	Data     DataCmd     `cmd:"" help:"Write web-layer data files"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; set up logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(newLogger(parseLogLevel(c.Verbose, ""), config.LogFormatText))
	return nil
}

// parseLogLevel picks the level from the verbose flag, then the environment,
// then the configured level.
func parseLogLevel(verbose bool, configured config.LogLevel) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	if env := os.Getenv(LogLevelEnv); env != "" {
		return config.NormalizeLogLevel(env).SlogLevel()
	}
	return config.NormalizeLogLevel(string(configured)).SlogLevel()
}

func newLogger(level slog.Level, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// loadConfig loads the configuration and re-applies logging with its settings.
func loadConfig(root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(newLogger(parseLogLevel(root.Verbose, cfg.Logging.Level), cfg.Logging.Format))
	return cfg, nil
}

// TargetArgs selects projects and versions; empty values select everything.
type TargetArgs struct {
	Project string `arg:"" optional:"" help:"Project slug (default: all projects)"`
	Version string `short:"V" name:"docs-version" help:"Version slug (default: all versions)"`
}

func (a TargetArgs) targets(cfg *config.Config) ([]project.Target, error) {
	return cfg.Catalog().Targets(a.Project, a.Version)
}
