package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestCronJobMetricsRecordsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCronJobMetrics(reg)

	m.ObserveDuration("state-retention", 20*time.Millisecond)
	m.IncSuccess("state-retention")
	m.IncFailure("")
	m.AddAffected("state-retention", 4)
	m.AddAffected("state-retention", 0)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	values := map[string]float64{}
	for _, mf := range mfs {
		for _, metric := range mf.GetMetric() {
			job := ""
			for _, lp := range metric.GetLabel() {
				if lp.GetName() == "job" {
					job = lp.GetValue()
				}
			}
			if c := metric.GetCounter(); c != nil {
				values[mf.GetName()+"/"+job] = c.GetValue()
			}
		}
	}
	if values["job_success_total/state-retention"] != 1 {
		t.Fatalf("unexpected success count %v", values)
	}
	if values["job_failure_total/unknown"] != 1 {
		t.Fatalf("unexpected failure count %v", values)
	}
	if values["job_rows_affected_total/state-retention"] != 4 {
		t.Fatalf("unexpected affected count %v", values)
	}
}

func TestCronJobMetricsNilRegistererIsNoop(t *testing.T) {
	m := NewCronJobMetrics(nil)
	m.IncSuccess("x")
	m.AddAffected("x", 3)
}
