package commands

import (
	"fmt"
	"io"
	"os"

	"git.home.luguber.info/inful/docsbuild/internal/build"
	"git.home.luguber.info/inful/docsbuild/internal/foundation/errors"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	TargetArgs `embed:""`

	Sync bool `help:"Check out each version's branch before building"`

	out io.Writer `kong:"-"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	targets, err := b.targets(cfg)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return errors.ValidationError("no build targets selected").
			WithContext("project", b.Project).
			WithContext("version", b.Version).
			Build()
	}

	ctx := g.ctx()
	a, err := newApp(ctx, cfg, appOptions{sync: b.Sync, verbose: root.Verbose})
	if err != nil {
		return err
	}
	defer a.Close()

	reports, err := a.service.BuildTargets(ctx, targets)
	printReports(b.writer(), reports)
	return err
}

func (b *BuildCmd) writer() io.Writer {
	if b.out != nil {
		return b.out
	}
	return os.Stdout
}

func printReports(w io.Writer, reports []*build.Report) {
	for _, r := range reports {
		_, _ = fmt.Fprintln(w, r.Summary())
	}
}
