// Package metrics records build and stage metrics.
//
// Components receive a Recorder through injection and default to
// NoopRecorder, so metrics never need nil checks at call sites:
//
//	svc := build.NewService(stages...).WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// The CLI has no HTTP surface; PrometheusRecorder output is exported with
// WriteTextfile for collection by the node exporter textfile collector.
package metrics
