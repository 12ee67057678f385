package commands

import (
	stdErrors "errors"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/docsbuild/internal/logfields"
)

// SyncCmd implements the 'sync' command.
type SyncCmd struct {
	TargetArgs `embed:""`
}

func (s *SyncCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	targets, err := s.targets(cfg)
	if err != nil {
		return err
	}

	ctx := g.ctx()
	a, err := newApp(ctx, cfg, appOptions{verbose: root.Verbose})
	if err != nil {
		return err
	}
	defer a.Close()

	var errs []error
	for _, t := range targets {
		if t.Project.RepositoryURL == "" {
			slog.Debug("Skipping project without repository url", logfields.Project(t.Project.Slug))
			continue
		}
		commit, err := a.syncer.Sync(ctx, t.Project, t.Version)
		if err != nil {
			errs = append(errs, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		fmt.Printf("%s@%s %s\n", t.Project.Slug, t.Version.Slug, commit)
	}
	return stdErrors.Join(errs...)
}
