package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/docsbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/docsbuild/internal/logfields"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads .env and .env.local from dir when present. Variables
// already set in the process environment are never overridden.
func loadEnvFiles(dir string) error {
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "failed to load env file").
				WithContext("path", path).
				Build()
		}
		slog.Debug("Loaded environment file", logfields.Path(path))
	}
	return nil
}
