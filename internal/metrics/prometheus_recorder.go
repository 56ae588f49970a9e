package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics on a private registry.
type PrometheusRecorder struct {
	reg              *prom.Registry
	stageDuration    *prom.HistogramVec
	runDuration      prom.Histogram
	stageResults     *prom.CounterVec
	runOutcome       *prom.CounterVec
	docInstances     prom.Gauge
	navItems         prom.Gauge
	validationIssues prom.Counter
	outputBytes      *prom.GaugeVec
}

// NewPrometheusRecorder constructs and registers the docsite metrics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "docsite",
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual generation stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "docsite",
		Name:      "run_duration_seconds",
		Help:      "Total duration of a generation run",
		Buckets:   prom.DefBuckets,
	})
	pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "docsite",
		Name:      "stage_results_total",
		Help:      "Stage result counts by outcome",
	}, []string{"stage", "result"})
	pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "docsite",
		Name:      "run_outcomes_total",
		Help:      "Generation runs by outcome",
	}, []string{"outcome"})
	pr.docInstances = prom.NewGauge(prom.GaugeOpts{
		Namespace: "docsite",
		Name:      "doc_instances",
		Help:      "Documentation instances in the emitted configuration",
	})
	pr.navItems = prom.NewGauge(prom.GaugeOpts{
		Namespace: "docsite",
		Name:      "navbar_items",
		Help:      "Navbar items in the emitted configuration",
	})
	pr.validationIssues = prom.NewCounter(prom.CounterOpts{
		Namespace: "docsite",
		Name:      "validation_issues_total",
		Help:      "Validation issues found across runs",
	})
	pr.outputBytes = prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "docsite",
		Name:      "output_bytes",
		Help:      "Size of the emitted configuration file",
	}, []string{"format"})
	reg.MustRegister(pr.stageDuration, pr.runDuration, pr.stageResults, pr.runOutcome,
		pr.docInstances, pr.navItems, pr.validationIssues, pr.outputBytes)
	return pr
}

// Registry exposes the underlying registry for gathering.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.reg
}

// WriteTextfile writes the current metrics in the node-exporter textfile format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncRunOutcome(outcome ResultLabel) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetDocInstances(n int) {
	if p == nil || p.docInstances == nil {
		return
	}
	p.docInstances.Set(float64(n))
}

func (p *PrometheusRecorder) SetNavItems(n int) {
	if p == nil || p.navItems == nil {
		return
	}
	p.navItems.Set(float64(n))
}

func (p *PrometheusRecorder) AddValidationIssues(n int) {
	if p == nil || p.validationIssues == nil || n <= 0 {
		return
	}
	p.validationIssues.Add(float64(n))
}

func (p *PrometheusRecorder) SetOutputBytes(format string, n int) {
	if p == nil || p.outputBytes == nil {
		return
	}
	p.outputBytes.WithLabelValues(format).Set(float64(n))
}
