package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/docsbuild/internal/eventstore"
	"git.home.luguber.info/inful/docsbuild/internal/foundation/errors"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit   int    `short:"n" help:"Number of builds to show" default:"20"`
	Project string `help:"Only show builds of this project"`
	JSON    bool   `name:"json" help:"Print JSON instead of a table"`

	out io.Writer `kong:"-"`
}

func (h *HistoryCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return errors.ConfigError("build history is disabled").
			WithContext("setting", "history.enabled").
			UserAction().
			Build()
	}

	ctx := g.ctx()
	store, err := eventstore.NewSQLiteStore(ctx, cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	proj := eventstore.NewBuildHistoryProjection(store, 0)
	if err := proj.Rebuild(ctx); err != nil {
		return err
	}

	var builds []*eventstore.BuildSummary
	for _, b := range proj.GetHistory(0) {
		if h.Project != "" && b.Project != h.Project {
			continue
		}
		builds = append(builds, b)
		if h.Limit > 0 && len(builds) == h.Limit {
			break
		}
	}

	w := h.out
	if w == nil {
		w = os.Stdout
	}
	if h.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(builds)
	}
	return printHistory(w, builds)
}

func printHistory(w io.Writer, builds []*eventstore.BuildSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "BUILD\tTARGET\tSTATUS\tSTARTED\tDURATION\tPAGES\tDETAIL")
	for _, b := range builds {
		detail := b.Fingerprint
		if len(detail) > 12 {
			detail = detail[:12]
		}
		if b.ErrorStage != "" {
			detail = b.ErrorStage + ": " + b.ErrorMessage
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			b.BuildID[:min(8, len(b.BuildID))],
			b.Target(),
			b.Status,
			b.StartedAt.Format(time.DateTime),
			b.Duration.Round(time.Millisecond),
			b.Pages,
			detail)
	}
	return tw.Flush()
}
