package logfields

import "log/slog"

// Canonical log field names shared by every package.
const (
	KeyBuildID    = "build_id"
	KeyProject    = "project"
	KeyVersion    = "version"
	KeyDialect    = "dialect"
	KeyStage      = "stage"
	KeyPath       = "path"
	KeyFile       = "file"
	KeySource     = "source_file"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyRenderer   = "renderer"
	KeyCommit     = "commit"
	KeyURL        = "url"
	KeyJob        = "job"
	KeyError      = "error"
)

func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Project(slug string) slog.Attr   { return slog.String(KeyProject, slug) }
func Version(slug string) slog.Attr   { return slog.String(KeyVersion, slug) }
func Dialect(d string) slog.Attr      { return slog.String(KeyDialect, d) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Source(f string) slog.Attr       { return slog.String(KeySource, f) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Renderer(kind string) slog.Attr  { return slog.String(KeyRenderer, kind) }
func Commit(hash string) slog.Attr    { return slog.String(KeyCommit, hash) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Job(name string) slog.Attr       { return slog.String(KeyJob, name) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
