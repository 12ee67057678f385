// Package docs implements the documentation build stages: path resolution,
// file collection, staging, conversion and post-processing.
//
// All stages operate on one (project, version) pair and fully regenerate the
// directories they own. Staging lives under <staging>/<docs-slug>/en/<version>
// and output under <source>/projects/<docs-slug>/en/<version>.
package docs
