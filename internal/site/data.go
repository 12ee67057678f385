package site

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docsbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/docsbuild/internal/logfields"
)

// WebsiteData is a named document produced by a DataBuilder.
type WebsiteData struct {
	Name string
	Data any
}

// DataBuilder produces one data document for the web layer.
type DataBuilder interface {
	Name() string
	Build(ctx context.Context) (WebsiteData, error)
}

// WriteData runs each builder and writes its result to <dir>/<name>.json.
func WriteData(ctx context.Context, dir string, builders ...DataBuilder) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.FileSystemError("cannot create data directory").WithCause(err).WithContext("path", dir).Build()
	}

	written := make([]string, 0, len(builders))
	for _, b := range builders {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		data, err := b.Build(ctx)
		if err != nil {
			return written, err
		}
		out, err := json.MarshalIndent(data.Data, "", "  ")
		if err != nil {
			return written, errors.InternalError("cannot encode website data").WithCause(err).WithContext("name", data.Name).Build()
		}
		path := filepath.Join(dir, data.Name+".json")
		if err := os.WriteFile(path, append(out, '\n'), 0o644); err != nil {
			return written, errors.FileSystemError("cannot write website data").WithCause(err).WithContext("path", path).Build()
		}
		slog.Info("Wrote website data", slog.String("name", data.Name), logfields.Path(path))
		written = append(written, path)
	}
	return written, nil
}
