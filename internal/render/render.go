// Package render converts staged reStructuredText documents into HTML.
//
// A Builder keeps per-run state (the document registry it writes to the meta
// artifact), so callers obtain a fresh instance with Recreate before every
// build instead of reusing one across runs.
package render

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrRendererNotFound = errors.New("renderer executable not found")
	ErrRenderFailed     = errors.New("renderer execution failed")
)

// MetaFile is the per-build document registry a Builder leaves in the output
// root. It is not a publishable page.
const MetaFile = "meta.json"

// SourceExt is the extension of documents a Builder converts. Other files are
// copied through unchanged.
const SourceExt = ".rst"

// Options tune a single Build call.
type Options struct {
	Recursive bool
	Verbose   bool
}

// Rendered links one output file to the staged document it came from.
type Rendered struct {
	Output string // absolute path of the written file
	Source string // source path relative to the input root, slash separated
}

// Builder is the markup-to-HTML capability used by the conversion stage.
type Builder interface {
	// Recreate returns a fresh builder with no state carried over.
	Recreate() Builder
	// Build renders every document under inputDir into outputDir, mirroring
	// the directory layout.
	Build(ctx context.Context, inputDir, outputDir string, opts Options) ([]Rendered, error)
}

// Document is one entry of the meta registry.
type Document struct {
	Source string `json:"source"`
	Output string `json:"output"`
	Title  string `json:"title,omitempty"`
}

// listInputs returns input files relative to root in lexical order.
func listInputs(root string, recursive bool) ([]string, error) {
	var rels []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rels = append(rels, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(rels)
	return rels, nil
}

func isSource(rel string) bool {
	return strings.EqualFold(filepath.Ext(rel), SourceExt)
}

func outputRel(rel, ext string) string {
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + ext
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
