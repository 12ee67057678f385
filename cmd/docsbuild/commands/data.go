package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docsbuild/internal/docs"
	"git.home.luguber.info/inful/docsbuild/internal/site"
)

// DataCmd implements the 'data' command.
type DataCmd struct {
	Output string `short:"o" help:"Directory for the data files (default: paths.data_dir)" type:"path"`
}

func (d *DataCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	dir := cfg.Paths.DataDir
	if d.Output != "" {
		dir = d.Output
	}

	catalog := cfg.Catalog()
	resolver := docs.NewResolver(cfg.Paths.ProjectsDir, cfg.Paths.SourceDir, cfg.Paths.StagingDir)
	homepage := site.NewHomepageController(site.FileBlogPostRepository{Dir: cfg.Paths.BlogDir}, catalog)

	written, err := site.WriteData(g.ctx(), dir,
		site.NewProjectsDataBuilder(catalog, resolver),
		site.HomepageDataBuilder{Controller: homepage},
	)
	for _, path := range written {
		fmt.Println(path)
	}
	return err
}
