package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveStageDuration("convert", 150*time.Millisecond)
	pr.ObserveBuildDuration("orm", 500*time.Millisecond)
	pr.IncStageResult("convert", ResultSuccess)
	pr.IncStageResult("convert", ResultSuccess)
	pr.IncBuildOutcome("orm", BuildOutcomeSuccess)
	pr.SetPagesRendered("orm", "latest", 12)
	pr.ObserveSyncDuration("orm", time.Second, true)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 6)

	values := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[mf.GetName()] += m.GetGauge().GetValue()
			}
		}
	}
	assert.InDelta(t, 2, values["docsbuild_stage_results_total"], 0)
	assert.InDelta(t, 1, values["docsbuild_build_outcomes_total"], 0)
	assert.InDelta(t, 12, values["docsbuild_pages_rendered"], 0)
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncBuildOutcome("orm", BuildOutcomeFailed)

	path := filepath.Join(t.TempDir(), "docsbuild.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `docsbuild_build_outcomes_total{outcome="failed",project="orm"} 1`)
}

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncBuildOutcome("orm", BuildOutcomeSuccess)
	r.ObserveStageDuration("convert", time.Millisecond)
}
