package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("validate", 150*time.Millisecond)
	pr.ObserveRunDuration(500 * time.Millisecond)
	pr.IncStageResult("validate", ResultSuccess)
	pr.IncRunOutcome(ResultSuccess)
	pr.SetDocInstances(3)
	pr.SetNavItems(5)
	pr.AddValidationIssues(2)
	pr.AddValidationIssues(0)
	pr.SetOutputBytes("json", 4096)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)

	values := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetGauge() != nil:
				values[mf.GetName()] = m.GetGauge().GetValue()
			case m.GetCounter() != nil:
				values[mf.GetName()] += m.GetCounter().GetValue()
			}
		}
	}
	require.InDelta(t, 3, values["docsite_doc_instances"], 0)
	require.InDelta(t, 5, values["docsite_navbar_items"], 0)
	require.InDelta(t, 2, values["docsite_validation_issues_total"], 0)
	require.InDelta(t, 1, values["docsite_run_outcomes_total"], 0)
	require.InDelta(t, 4096, values["docsite_output_bytes"], 0)
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.SetDocInstances(3)

	path := filepath.Join(t.TempDir(), "docsite.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "docsite_doc_instances 3"))
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.SetDocInstances(1)
	pr.IncRunOutcome(ResultFailed)
	pr.ObserveRunDuration(time.Second)
}

func TestRecorderImplementations(t *testing.T) {
	var _ Recorder = NoopRecorder{}
	var _ Recorder = NewPrometheusRecorder(nil)
}
