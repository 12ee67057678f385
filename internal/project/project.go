// Package project holds the read-only project and version reference data the
// build pipeline operates on.
package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docsbuild/internal/foundation/normalization"
)

// Dialect tags the markup flavour a project's documentation is written in.
// It selects the rule set applied before conversion.
type Dialect string

const (
	DialectCurrent Dialect = "current"
	DialectLegacy  Dialect = "legacy"
)

var dialectNormalizer = normalization.NewNormalizer(map[string]Dialect{
	"current": DialectCurrent,
	"legacy":  DialectLegacy,
}, DialectCurrent)

// ParseDialect converts a configuration string into a Dialect. Empty input
// selects DialectCurrent.
func ParseDialect(raw string) (Dialect, error) {
	return dialectNormalizer.Parse(raw)
}

// IsPathSegment reports whether s can be used as one directory name below a
// root: non-empty, free of separators, and neither "." nor "..".
func IsPathSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

// Project identifies a documented software project.
type Project struct {
	Slug           string    `json:"slug"`
	DocsSlug       string    `json:"docsSlug"`
	RepositoryName string    `json:"repositoryName"`
	RepositoryURL  string    `json:"repositoryUrl,omitempty"`
	DocsPath       string    `json:"docsPath"`
	Dialect        Dialect   `json:"dialect"`
	Versions       []Version `json:"versions"`
}

// Version is one documentation revision of a project.
type Version struct {
	Slug       string `json:"slug"`
	BranchName string `json:"branchName,omitempty"`
}

// CheckoutDir returns the directory holding the project's repository checkout.
func (p Project) CheckoutDir(projectsDir string) string {
	name := p.RepositoryName
	if name == "" {
		name = p.Slug
	}
	return filepath.Join(projectsDir, name)
}

// AbsoluteDocsPath returns the documentation root inside the checkout. The
// result is not canonicalized.
func (p Project) AbsoluteDocsPath(projectsDir string) string {
	return filepath.Join(p.CheckoutDir(projectsDir), p.DocsPath)
}

// Version looks up a version by slug.
func (p Project) Version(slug string) (Version, bool) {
	for _, v := range p.Versions {
		if v.Slug == slug {
			return v, true
		}
	}
	return Version{}, false
}

func (p Project) String() string { return p.Slug }

func (v Version) String() string { return v.Slug }

// Branch returns the git branch holding the version's sources; it defaults
// to the version slug.
func (v Version) Branch() string {
	if v.BranchName != "" {
		return v.BranchName
	}
	return v.Slug
}

// Key identifies a (project, version) build target in logs and history.
func Key(p Project, v Version) string {
	return fmt.Sprintf("%s@%s", p.Slug, v.Slug)
}
