package project

import (
	"sort"

	"git.home.luguber.info/inful/docsbuild/internal/foundation/errors"
)

// Catalog is an in-memory project repository, usually built from configuration.
type Catalog struct {
	projects map[string]Project
}

// NewCatalog indexes projects by slug. Later duplicates replace earlier ones.
func NewCatalog(projects []Project) *Catalog {
	c := &Catalog{projects: make(map[string]Project, len(projects))}
	for _, p := range projects {
		c.projects[p.Slug] = p
	}
	return c
}

// FindAll returns every project ordered by slug.
func (c *Catalog) FindAll() []Project {
	out := make([]Project, 0, len(c.projects))
	for _, p := range c.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// Find returns the project with the given slug.
func (c *Catalog) Find(slug string) (Project, error) {
	p, ok := c.projects[slug]
	if !ok {
		return Project{}, errors.NotFoundError("unknown project").WithContext("project", slug).Build()
	}
	return p, nil
}

// Target is a resolved (project, version) pair.
type Target struct {
	Project Project
	Version Version
}

// Targets expands a selection into build targets. An empty projectSlug selects
// every project and an empty versionSlug every version of the selected
// projects.
func (c *Catalog) Targets(projectSlug, versionSlug string) ([]Target, error) {
	var projects []Project
	if projectSlug == "" {
		projects = c.FindAll()
	} else {
		p, err := c.Find(projectSlug)
		if err != nil {
			return nil, err
		}
		projects = []Project{p}
	}

	var targets []Target
	for _, p := range projects {
		if versionSlug == "" {
			for _, v := range p.Versions {
				targets = append(targets, Target{Project: p, Version: v})
			}
			continue
		}
		v, ok := p.Version(versionSlug)
		if !ok {
			if projectSlug == "" {
				continue
			}
			return nil, errors.NotFoundError("unknown version").
				WithContext("project", p.Slug).
				WithContext("version", versionSlug).
				Build()
		}
		targets = append(targets, Target{Project: p, Version: v})
	}
	return targets, nil
}
