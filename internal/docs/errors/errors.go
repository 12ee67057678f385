// Package errors provides sentinel errors for documentation staging and
// post-processing. They are wrapped into classified errors by package docs
// and stay reachable through errors.Is.
package errors

import (
	"errors"

	"git.home.luguber.info/inful/docsbuild/internal/transform"
)

var (
	// ErrSourceUnresolvable indicates the project's documentation root does not
	// exist or cannot be canonicalized.
	ErrSourceUnresolvable = errors.New("documentation source path cannot be resolved")

	// ErrInvalidTarget indicates a project or version lacks the slug needed to
	// derive staging and output paths.
	ErrInvalidTarget = errors.New("invalid build target")

	// ErrOutsideLocale indicates a collected file does not lie under the
	// locale root it was collected from.
	ErrOutsideLocale = errors.New("file lies outside the locale root")

	// ErrDirWalkFailed indicates traversal of a directory failed.
	ErrDirWalkFailed = errors.New("directory walk failed")

	// ErrFileReadFailed indicates reading a source or rendered file failed.
	ErrFileReadFailed = errors.New("file read failed")

	// ErrFileWriteFailed indicates writing a staged or rendered file failed.
	ErrFileWriteFailed = errors.New("file write failed")

	// ErrDirResetFailed indicates clearing or recreating a directory failed.
	ErrDirResetFailed = errors.New("directory reset failed")

	// ErrMissingSourceMarker indicates a rendered HTML page can no longer be
	// traced back to its source, meaning staging and post-processing fell out
	// of sync.
	ErrMissingSourceMarker = transform.ErrMissingSourceMarker
)
