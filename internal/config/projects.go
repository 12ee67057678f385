package config

import "git.home.luguber.info/inful/docsbuild/internal/project"

// ProjectList converts the configured projects into the project model.
// Call after Validate; unknown dialects fall back to the default.
func (c *Config) ProjectList() []project.Project {
	out := make([]project.Project, 0, len(c.Projects))
	for _, pc := range c.Projects {
		dialect, err := project.ParseDialect(pc.Dialect)
		if err != nil {
			dialect = project.DialectCurrent
		}
		p := project.Project{
			Slug:           pc.Slug,
			DocsSlug:       pc.DocsSlug,
			RepositoryName: pc.RepositoryName,
			RepositoryURL:  pc.RepositoryURL,
			DocsPath:       pc.DocsPath,
			Dialect:        dialect,
		}
		for _, vc := range pc.Versions {
			p.Versions = append(p.Versions, project.Version{Slug: vc.Slug, BranchName: vc.Branch})
		}
		out = append(out, p)
	}
	return out
}

// Catalog builds a project catalog from the configuration.
func (c *Config) Catalog() *project.Catalog {
	return project.NewCatalog(c.ProjectList())
}
