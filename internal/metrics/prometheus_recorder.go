package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docsbuild"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	stageDuration *prom.HistogramVec
	buildDuration *prom.HistogramVec
	stageResults  *prom.CounterVec
	buildOutcome  *prom.CounterVec
	pages         *prom.GaugeVec
	syncDuration  *prom.HistogramVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total documentation build duration per project",
			Buckets:   prom.DefBuckets,
		}, []string{"project"}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"project", "outcome"}),
		pages: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "pages_rendered",
			Help:      "HTML pages produced by the last successful build",
		}, []string{"project", "version"}),
		syncDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "sync_duration_seconds",
			Help:      "Duration of repository synchronization",
			Buckets:   prom.DefBuckets,
		}, []string{"project", "result"}),
	}
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome, pr.pages, pr.syncDuration)
	return pr
}

// Registry returns the registry the metrics are registered with.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(project string, d time.Duration) {
	p.buildDuration.WithLabelValues(project).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(project string, outcome BuildOutcomeLabel) {
	p.buildOutcome.WithLabelValues(project, string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetPagesRendered(project, version string, n int) {
	p.pages.WithLabelValues(project, version).Set(float64(n))
}

func (p *PrometheusRecorder) ObserveSyncDuration(project string, d time.Duration, success bool) {
	res := "failed"
	if success {
		res = "success"
	}
	p.syncDuration.WithLabelValues(project, res).Observe(d.Seconds())
}

// WriteTextfile writes the current metric values in the text exposition
// format, replacing path atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.registry)
}
