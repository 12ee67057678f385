package site

import (
	"context"

	"git.home.luguber.info/inful/docsbuild/internal/project"
)

// ProjectRepository lists the documented projects.
type ProjectRepository interface {
	FindAll() []project.Project
}

// DocsChecker reports whether a project ships documentation.
type DocsChecker interface {
	HasDocs(p project.Project) bool
}

// ProjectData is the web-layer view of a project.
type ProjectData struct {
	Slug           string        `json:"slug"`
	DocsSlug       string        `json:"docsSlug"`
	RepositoryName string        `json:"repositoryName"`
	RepositoryURL  string        `json:"repositoryUrl,omitempty"`
	HasDocs        bool          `json:"hasDocs"`
	Versions       []VersionData `json:"versions"`
}

type VersionData struct {
	Slug       string `json:"slug"`
	BranchName string `json:"branchName,omitempty"`
	DocsURL    string `json:"docsUrl,omitempty"`
}

// ProjectsDataBuilder writes the project list with a has-docs flag per project.
type ProjectsDataBuilder struct {
	Projects ProjectRepository
	Docs     DocsChecker
}

func NewProjectsDataBuilder(projects ProjectRepository, docs DocsChecker) *ProjectsDataBuilder {
	return &ProjectsDataBuilder{Projects: projects, Docs: docs}
}

func (b *ProjectsDataBuilder) Name() string { return "projects" }

func (b *ProjectsDataBuilder) Build(context.Context) (WebsiteData, error) {
	projects := b.Projects.FindAll()
	out := make([]ProjectData, 0, len(projects))
	for _, p := range projects {
		pd := ProjectData{
			Slug:           p.Slug,
			DocsSlug:       p.DocsSlug,
			RepositoryName: p.RepositoryName,
			RepositoryURL:  p.RepositoryURL,
			HasDocs:        b.Docs.HasDocs(p),
			Versions:       make([]VersionData, 0, len(p.Versions)),
		}
		for _, v := range p.Versions {
			vd := VersionData{Slug: v.Slug, BranchName: v.BranchName}
			if pd.HasDocs {
				vd.DocsURL = DocsURL(p, v)
			}
			pd.Versions = append(pd.Versions, vd)
		}
		out = append(out, pd)
	}
	return WebsiteData{Name: b.Name(), Data: out}, nil
}

// DocsURL is the site path of a version's documentation index.
func DocsURL(p project.Project, v project.Version) string {
	return "/projects/" + p.DocsSlug + "/en/" + v.Slug + "/index.html"
}
