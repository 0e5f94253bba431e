// Package metrics provides the observability hooks of a tagpages build.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	recorder := metrics.Recorder(metrics.NoopRecorder{})
//	if cfg.Metrics.Textfile != "" {
//	    recorder = metrics.NewPrometheusRecorder(nil)
//	}
//
// PrometheusRecorder keeps its own registry. A one-shot CLI build has nothing to
// scrape it, so WriteTextfile dumps the registry in the text exposition format
// for the node exporter textfile collector.
package metrics
