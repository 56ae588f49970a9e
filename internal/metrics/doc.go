// Package metrics records generation-run metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics never
// need nil checks. When a metrics file is configured, the CLI swaps in a
// PrometheusRecorder and writes its registry in the node-exporter textfile
// format after the run:
//
//	rec := metrics.NewPrometheusRecorder(nil)
//	// ... run ...
//	_ = rec.WriteTextfile("/var/lib/node_exporter/docsite.prom")
package metrics
