package eventstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendAll(t *testing.T, store Store, events ...*BaseEvent) {
	t.Helper()
	for _, e := range events {
		require.NoError(t, store.Append(t.Context(), e))
	}
}

func mustEvent(t *testing.T) func(*BaseEvent, error) *BaseEvent {
	return func(e *BaseEvent, err error) *BaseEvent {
		t.Helper()
		require.NoError(t, err)
		return e
	}
}

func TestBuildHistoryProjection_Rebuild(t *testing.T) {
	store := newStore(t)
	must := mustEvent(t)

	appendAll(t, store,
		must(NewBuildStarted("b1", BuildStartedPayload{Project: "orm", Version: "2.7"})),
		must(NewSourceSynced("b1", SourceSyncedPayload{Project: "orm", Version: "2.7", Branch: "2.7", Commit: "abc123"})),
		must(NewStageCompleted("b1", StageCompletedPayload{Stage: "stage_sources", Result: "success", DurationMS: 5})),
		must(NewBuildCompleted("b1", BuildCompletedPayload{DurationMS: 40, Staged: 3, Rendered: 3, Pages: 2, Fingerprint: "fp"})),
		must(NewBuildStarted("b2", BuildStartedPayload{Project: "orm", Version: "2.7"})),
		must(NewBuildFailed("b2", BuildFailedPayload{Stage: "convert", Error: "renderer exited 1", DurationMS: 9})),
	)

	proj := NewBuildHistoryProjection(store, 0)
	require.NoError(t, proj.Rebuild(t.Context()))

	history := proj.GetHistory(0)
	require.Len(t, history, 2)
	assert.Equal(t, "b2", history[0].BuildID)
	assert.Equal(t, StatusFailed, history[0].Status)
	assert.Equal(t, "convert", history[0].ErrorStage)

	b1, ok := proj.GetBuild("b1")
	require.True(t, ok)
	assert.Equal(t, StatusSucceeded, b1.Status)
	assert.Equal(t, 2, b1.Pages)
	assert.Equal(t, "abc123", b1.Commit)
	assert.Equal(t, "orm@2.7", b1.Target())
	require.Len(t, b1.Stages, 1)
	assert.Equal(t, "stage_sources", b1.Stages[0].Stage)

	last := proj.GetLastCompletedBuild("orm", "2.7")
	require.NotNil(t, last)
	assert.Equal(t, "b1", last.BuildID)
	assert.Nil(t, proj.GetLastCompletedBuild("dbal", "3.0"))
}

func TestBuildHistoryProjection_CanceledAndLimit(t *testing.T) {
	store := newStore(t)
	must := mustEvent(t)
	proj := NewBuildHistoryProjection(store, 2)

	for _, id := range []string{"a", "b", "c"} {
		proj.Apply(must(NewBuildStarted(id, BuildStartedPayload{Project: "p", Version: "v"})))
	}
	proj.Apply(must(NewBuildFailed("c", BuildFailedPayload{Stage: "post_process", Error: "context canceled", Canceled: true})))

	history := proj.GetHistory(10)
	require.Len(t, history, 2)
	assert.Equal(t, "c", history[0].BuildID)
	assert.Equal(t, StatusCanceled, history[0].Status)

	_, ok := proj.GetBuild("a")
	assert.False(t, ok)
	assert.Len(t, proj.GetHistory(1), 1)
}
