package docs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	derrors "git.home.luguber.info/inful/docsbuild/internal/docs/errors"
	"git.home.luguber.info/inful/docsbuild/internal/foundation/errors"
)

// Filter selects files by base name. A file matches when it matches any
// Include pattern (or Include is empty) and no Exclude pattern.
type Filter struct {
	Include []string
	Exclude []string
}

// NewFilter validates the patterns and returns a filter.
func NewFilter(include, exclude []string) (Filter, error) {
	for _, p := range append(append([]string(nil), include...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return Filter{}, errors.ValidationError("invalid file pattern").WithContext("pattern", p).Build()
		}
	}
	return Filter{Include: include, Exclude: exclude}, nil
}

// SourceFilter matches reStructuredText sources except the legacy toc file.
var SourceFilter = Filter{Include: []string{"*.rst"}, Exclude: []string{"toc.rst"}}

// Match reports whether the base name passes the filter.
func (f Filter) Match(name string) bool {
	if len(f.Include) > 0 && !matchAny(f.Include, name) {
		return false
	}
	return !matchAny(f.Exclude, name)
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// Collector lists files below a directory.
type Collector struct{}

// Collect returns the absolute paths of the files below dir accepted by
// filter, in lexical order. A missing directory yields an empty result.
func (Collector) Collect(dir string, filter Filter) ([]string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, walkError(dir, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, walkError(dir, err)
	}
	if !info.IsDir() {
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filter.Match(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, walkError(dir, err)
	}
	sort.Strings(files)
	return files, nil
}

func walkError(dir string, err error) error {
	return errors.FileSystemError("cannot list directory").
		WithCause(fmt.Errorf("%w: %w", derrors.ErrDirWalkFailed, err)).
		WithContext("path", dir).
		Build()
}
