package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	derrors "git.home.luguber.info/inful/docsbuild/internal/docs/errors"
	"git.home.luguber.info/inful/docsbuild/internal/foundation/errors"
)

// resetDir removes dir with everything below it and recreates it empty.
func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return ioError("cannot clear directory", derrors.ErrDirResetFailed, dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ioError("cannot create directory", derrors.ErrDirResetFailed, dir, err)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioError("cannot read file", derrors.ErrFileReadFailed, path, err)
	}
	return data, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ioError("cannot create directory", derrors.ErrFileWriteFailed, path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ioError("cannot write file", derrors.ErrFileWriteFailed, path, err)
	}
	return nil
}

func ioError(message string, sentinel error, path string, err error) error {
	return errors.FileSystemError(message).
		WithCause(fmt.Errorf("%w: %w", sentinel, err)).
		WithContext("path", path).
		Build()
}

// relativeTo returns file relative to root in slash form, refusing paths that
// escape root.
func relativeTo(root, file string) (string, error) {
	rel, err := filepath.Rel(root, file)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", errors.FileSystemError("file is not inside the locale root").
			WithCause(derrors.ErrOutsideLocale).
			WithContext("path", file).
			WithContext("root", root).
			Build()
	}
	return filepath.ToSlash(rel), nil
}
