package build

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docsbuild/internal/logfields"
)

// runStages executes stages in order, recording timing and stopping on the
// first error.
func runStages(ctx context.Context, bs *BuildState, stages []StageDef, obs Observer) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := NewCanceledStageError(st.Name, ctx.Err())
			bs.Report.recordStage(st.Name, 0, StageResultCanceled)
			obs.OnStageComplete(bs.Report, st.Name, 0, StageResultCanceled, se)
			return se
		default:
		}

		obs.OnStageStart(bs.Report, st.Name)
		slog.Debug("Stage started", logfields.BuildID(bs.Report.BuildID), logfields.Stage(string(st.Name)))

		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)

		se := classifyStageError(ctx, st.Name, err)
		result := StageResultSuccess
		var stageErr error
		if se != nil {
			stageErr = se
			result = StageResultFatal
			if se.Kind == StageErrorCanceled {
				result = StageResultCanceled
			}
		}
		bs.Report.recordStage(st.Name, dur, result)
		obs.OnStageComplete(bs.Report, st.Name, dur, result, stageErr)

		slog.Debug("Stage completed",
			logfields.BuildID(bs.Report.BuildID),
			logfields.Stage(string(st.Name)),
			logfields.DurationMS(float64(dur.Microseconds())/1000),
			slog.String("result", string(result)))

		if se != nil {
			return se
		}
	}
	return nil
}

func classifyStageError(ctx context.Context, stage StageName, err error) *StageError {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil || stdErrors.Is(err, context.Canceled) || stdErrors.Is(err, context.DeadlineExceeded) {
		return NewCanceledStageError(stage, err)
	}
	return NewFatalStageError(stage, err)
}
