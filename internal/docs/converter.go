package docs

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/docsbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/docsbuild/internal/logfields"
	"git.home.luguber.info/inful/docsbuild/internal/project"
	"git.home.luguber.info/inful/docsbuild/internal/render"
)

// Converter renders a staged version into its output directory.
type Converter struct {
	Resolver *Resolver
	Verbose  bool
	builder  render.Builder
}

func NewConverter(resolver *Resolver, builder render.Builder) *Converter {
	return &Converter{Resolver: resolver, builder: builder}
}

// Builder returns the builder used by the most recent conversion.
func (c *Converter) Builder() render.Builder {
	return c.builder
}

// Convert clears the output directory and renders the staging directory into
// it with a freshly recreated builder.
func (c *Converter) Convert(ctx context.Context, p project.Project, v project.Version) ([]render.Rendered, error) {
	paths, err := c.Resolver.Resolve(p, v)
	if err != nil {
		return nil, err
	}
	if err := resetDir(paths.Output); err != nil {
		return nil, err
	}

	c.builder = c.builder.Recreate()
	rendered, err := c.builder.Build(ctx, paths.Staging, paths.Output, render.Options{Recursive: true, Verbose: c.Verbose})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.ConversionError("documentation conversion failed").
			WithRetry(errors.RetryNever).
			WithCause(err).
			WithContext("project", p.Slug).
			WithContext("version", v.Slug).
			WithContext("input", paths.Staging).
			WithContext("output", paths.Output).
			Build()
	}

	slog.Info("Converted documentation",
		logfields.Project(p.Slug),
		logfields.Version(v.Slug),
		logfields.Count(len(rendered)),
		logfields.Path(paths.Output))
	return rendered, nil
}
