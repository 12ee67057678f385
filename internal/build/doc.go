// Package build runs the documentation pipeline for a single project version.
//
// A build executes three stages strictly in order: stage_sources copies and
// pre-processes the sources into the staging directory, convert renders the
// staging directory into the output directory, and post_process rewrites the
// rendered pages. The first failing stage aborts the build. Every build gets
// its own ID and Report, and observers receive stage and build callbacks for
// metrics and history.
package build
