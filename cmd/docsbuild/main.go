package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsbuild/cmd/docsbuild/commands"
	"git.home.luguber.info/inful/docsbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/docsbuild/internal/version"
)

func main() {
	var cli commands.CLI
	parser := kong.Parse(&cli,
		kong.Name("docsbuild"),
		kong.Description("Build versioned reStructuredText documentation into publishable HTML pages."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := parser.Run(&commands.Global{Context: ctx}, &cli)
	stop()

	errors.NewCLIErrorAdapter(cli.Verbose, nil).HandleError(err)
}
