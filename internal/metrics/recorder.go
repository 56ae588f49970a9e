package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
	ResultDrift   ResultLabel = "drift"
)

// Recorder defines observability hooks for a generation run. Implementations
// may forward to Prometheus; NoopRecorder is the default.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncRunOutcome(outcome ResultLabel)
	SetDocInstances(n int)
	SetNavItems(n int)
	AddValidationIssues(n int)
	SetOutputBytes(format string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncRunOutcome(ResultLabel)                  {}
func (NoopRecorder) SetDocInstances(int)                        {}
func (NoopRecorder) SetNavItems(int)                            {}
func (NoopRecorder) AddValidationIssues(int)                    {}
func (NoopRecorder) SetOutputBytes(string, int)                 {}
