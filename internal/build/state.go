package build

import (
	"git.home.luguber.info/inful/docsbuild/internal/docs"
	"git.home.luguber.info/inful/docsbuild/internal/project"
	"git.home.luguber.info/inful/docsbuild/internal/render"
)

// BuildState carries the target and the intermediate results between stages.
type BuildState struct {
	Project project.Project
	Version project.Version
	Report  *Report

	Staged   docs.StageResult
	Rendered []render.Rendered
	Post     docs.PostResult
}

func newBuildState(p project.Project, v project.Version, report *Report) *BuildState {
	return &BuildState{Project: p, Version: v, Report: report}
}
