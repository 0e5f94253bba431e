package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "tagpages"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry       *prom.Registry
	buildDuration  prom.Histogram
	buildOutcome   *prom.CounterVec
	pluginDuration *prom.HistogramVec
	pluginResults  *prom.CounterVec
	collectionTags *prom.GaugeVec
	tagPages       *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg. A nil
// registry gets a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Duration of a full build pass",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		pluginDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "plugin_duration_seconds",
			Help:      "Duration of individual plugin executions",
			Buckets:   prom.DefBuckets,
		}, []string{"plugin"}),
		pluginResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "plugin_results_total",
			Help:      "Plugin results by outcome",
		}, []string{"plugin", "result"}),
		collectionTags: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "collection_tags",
			Help:      "Distinct tags per collection in the last pass",
		}, []string{"collection"}),
		tagPages: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "tag_pages_total",
			Help:      "Generated tag listing pages",
		}, []string{"collection"}),
	}
	reg.MustRegister(pr.buildDuration, pr.buildOutcome, pr.pluginDuration, pr.pluginResults, pr.collectionTags, pr.tagPages)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

// WriteTextfile writes the registry in the Prometheus text exposition format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.registry)
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObservePluginDuration(plugin string, d time.Duration) {
	if p == nil || p.pluginDuration == nil {
		return
	}
	p.pluginDuration.WithLabelValues(plugin).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPluginResult(plugin string, result ResultLabel) {
	if p == nil || p.pluginResults == nil {
		return
	}
	p.pluginResults.WithLabelValues(plugin, string(result)).Inc()
}

func (p *PrometheusRecorder) SetCollectionTags(collection string, n int) {
	if p == nil || p.collectionTags == nil {
		return
	}
	p.collectionTags.WithLabelValues(collection).Set(float64(n))
}

func (p *PrometheusRecorder) AddTagPages(collection string, n int) {
	if p == nil || p.tagPages == nil {
		return
	}
	p.tagPages.WithLabelValues(collection).Add(float64(n))
}
