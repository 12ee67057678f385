package eventstore

import (
	"encoding/json"
	"time"

	"git.home.luguber.info/inful/docsbuild/internal/foundation/errors"
)

// BuildStartedPayload identifies the target of a build.
type BuildStartedPayload struct {
	Project string `json:"project"`
	Version string `json:"version"`
	Dialect string `json:"dialect,omitempty"`
}

// StageCompletedPayload records one stage outcome.
type StageCompletedPayload struct {
	Stage      string `json:"stage"`
	Result     string `json:"result"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// BuildCompletedPayload summarizes a successful build.
type BuildCompletedPayload struct {
	DurationMS  int64  `json:"duration_ms"`
	Staged      int    `json:"staged"`
	Rendered    int    `json:"rendered"`
	Pages       int    `json:"pages"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// BuildFailedPayload records where and why a build stopped.
type BuildFailedPayload struct {
	Stage      string `json:"stage"`
	Error      string `json:"error"`
	DurationMS int64  `json:"duration_ms"`
	Canceled   bool   `json:"canceled,omitempty"`
}

// SourceSyncedPayload records a repository checkout for a version.
type SourceSyncedPayload struct {
	Project string `json:"project"`
	Version string `json:"version"`
	Branch  string `json:"branch"`
	Commit  string `json:"commit"`
}

func newEvent(buildID, eventType string, payload any) (*BaseEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.HistoryError("failed to marshal event payload").
			WithCause(err).
			WithContext("build_id", buildID).
			WithContext("type", eventType).
			Build()
	}
	return &BaseEvent{
		EventBuildID:   buildID,
		EventType:      eventType,
		EventTimestamp: time.Now(),
		EventPayload:   data,
	}, nil
}

func NewBuildStarted(buildID string, p BuildStartedPayload) (*BaseEvent, error) {
	return newEvent(buildID, TypeBuildStarted, p)
}

func NewStageCompleted(buildID string, p StageCompletedPayload) (*BaseEvent, error) {
	return newEvent(buildID, TypeStageCompleted, p)
}

func NewBuildCompleted(buildID string, p BuildCompletedPayload) (*BaseEvent, error) {
	return newEvent(buildID, TypeBuildCompleted, p)
}

func NewBuildFailed(buildID string, p BuildFailedPayload) (*BaseEvent, error) {
	return newEvent(buildID, TypeBuildFailed, p)
}

func NewSourceSynced(buildID string, p SourceSyncedPayload) (*BaseEvent, error) {
	return newEvent(buildID, TypeSourceSynced, p)
}

// Decode unmarshals an event payload into out.
func Decode(e Event, out any) error {
	if err := json.Unmarshal(e.Payload(), out); err != nil {
		return errors.HistoryError("failed to unmarshal event payload").
			WithCause(err).
			WithContext("build_id", e.BuildID()).
			WithContext("type", e.Type()).
			Build()
	}
	return nil
}
