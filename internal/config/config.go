// Package config loads the docsbuild YAML configuration.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsbuild/internal/foundation/errors"
)

// Config is the root configuration document.
type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Renderer    RendererConfig    `yaml:"renderer"`
	FrontMatter FrontMatterConfig `yaml:"frontmatter"`
	Collect     CollectConfig     `yaml:"collect"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	History     HistoryConfig     `yaml:"history"`
	Schedule    ScheduleConfig    `yaml:"schedule"`
	Sync        SyncConfig        `yaml:"sync"`
	Logging     LoggingConfig     `yaml:"logging"`
	Projects    []ProjectConfig   `yaml:"projects"`
}

// PathsConfig locates the three directory roots the pipeline works with.
type PathsConfig struct {
	ProjectsDir string `yaml:"projects_dir"` // repository checkouts
	SourceDir   string `yaml:"source_dir"`   // site source root, output goes to <source_dir>/projects
	StagingDir  string `yaml:"staging_dir"`  // defaults to <source_dir>/../docs
	DataDir     string `yaml:"data_dir"`     // web-layer data files, defaults to <source_dir>/../data
	BlogDir     string `yaml:"blog_dir,omitempty"`
}

// RendererConfig selects the markup renderer.
type RendererConfig struct {
	Kind      RendererKind `yaml:"kind"`
	Command   []string     `yaml:"command,omitempty"` // argv with {input}/{output} placeholders
	Extension string       `yaml:"extension,omitempty"`
}

// FrontMatterConfig holds the constant fields of the generated front matter.
type FrontMatterConfig struct {
	Layout     string   `yaml:"layout"`
	MenuSlug   string   `yaml:"menu_slug"`
	Permalink  string   `yaml:"permalink"`
	Controller []string `yaml:"controller"`
}

// CollectConfig holds the base-name patterns used when collecting files.
type CollectConfig struct {
	SourceInclude []string `yaml:"source_include"`
	SourceExclude []string `yaml:"source_exclude"`
	// MetaPatterns name renderer artifacts removed from the output root.
	MetaPatterns []string `yaml:"meta_patterns"`
}

type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Textfile string `yaml:"textfile,omitempty"`
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

type ScheduleConfig struct {
	Interval string `yaml:"interval"`
}

type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// ProjectConfig describes one documented project.
type ProjectConfig struct {
	Slug           string          `yaml:"slug"`
	DocsSlug       string          `yaml:"docs_slug,omitempty"`
	RepositoryName string          `yaml:"repository_name,omitempty"`
	RepositoryURL  string          `yaml:"repository_url,omitempty"`
	DocsPath       string          `yaml:"docs_path,omitempty"`
	Dialect        string          `yaml:"dialect,omitempty"`
	Versions       []VersionConfig `yaml:"versions"`
}

type VersionConfig struct {
	Slug   string `yaml:"slug"`
	Branch string `yaml:"branch,omitempty"`
}

// Load reads the configuration file, expands ${VAR} references, applies
// defaults and validates the result. Relative paths are resolved against the
// directory containing the file.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFiles(filepath.Dir(configPath)); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").
				WithContext("path", configPath).
				UserAction().
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, err
	}
	cfg.resolvePaths(filepath.Dir(configPath))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML and applies defaults without validating.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Build()
	}
	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) resolvePaths(base string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.Paths.ProjectsDir = abs(c.Paths.ProjectsDir)
	c.Paths.SourceDir = abs(c.Paths.SourceDir)
	c.Paths.StagingDir = abs(c.Paths.StagingDir)
	c.Paths.DataDir = abs(c.Paths.DataDir)
	c.Paths.BlogDir = abs(c.Paths.BlogDir)
	c.Metrics.Textfile = abs(c.Metrics.Textfile)
	c.History.Path = abs(c.History.Path)
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			UserAction().
			Build()
	}

	example := Example()
	data, err := yaml.Marshal(example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}

// Example returns the configuration written by Init.
func Example() *Config {
	cfg := &Config{
		Paths: PathsConfig{
			ProjectsDir: "./projects",
			SourceDir:   "./source",
		},
		Metrics: MetricsConfig{Enabled: true, Textfile: "./docsbuild.prom"},
		History: HistoryConfig{Enabled: true, Path: "./docsbuild.db"},
		Projects: []ProjectConfig{
			{
				Slug:           "orm",
				DocsSlug:       "doctrine-orm",
				RepositoryName: "orm",
				RepositoryURL:  "https://github.com/doctrine/orm.git",
				DocsPath:       "docs",
				Versions: []VersionConfig{
					{Slug: "latest", Branch: "3.0.x"},
					{Slug: "2.7", Branch: "2.7"},
				},
			},
		},
	}
	_ = applyDefaults(cfg)
	return cfg
}
