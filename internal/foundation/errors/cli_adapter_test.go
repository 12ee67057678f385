package errors

import (
	stderrors "errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation", ValidationError("bad flag").Build(), 2},
		{"not found", NotFoundError("unknown project").Build(), 4},
		{"config", ConfigError("bad config").Build(), 7},
		{"git", GitError("fetch failed").Build(), 8},
		{"resolution", ResolutionError("no docs").Build(), 11},
		{"conversion", ConversionError("render failed").Build(), 11},
		{"filesystem", FileSystemError("write failed").Build(), 11},
		{"history", HistoryError("insert failed").Build(), 12},
		{"unclassified", stderrors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())

	resolution := ResolutionError("cannot resolve docs path").WithCause(stderrors.New("no such file")).Build()
	if got := quiet.FormatError(resolution); !strings.Contains(got, "no such file") {
		t.Errorf("expected user-facing cause in %q", got)
	}

	conversion := ConversionError("renderer failed").WithCause(stderrors.New("exit status 2")).Build()
	got := quiet.FormatError(conversion)
	if !strings.Contains(got, "use -v for details") || strings.Contains(got, "exit status 2") {
		t.Errorf("unexpected non-verbose format %q", got)
	}
	if got := verbose.FormatError(conversion); !strings.Contains(got, "exit status 2") {
		t.Errorf("expected verbose format to include cause, got %q", got)
	}
	if quiet.FormatError(nil) != "" {
		t.Error("expected empty string for nil error")
	}
}
