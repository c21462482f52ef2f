package cron

import (
	"context"
	"testing"

	"github.com/angelmondragon/secondnest/pkg/logger"
)

type stubJob struct {
	name string
}

func (s *stubJob) Name() string              { return s.name }
func (s *stubJob) Run(context.Context) error { return nil }

func TestRegistryKeepsOrderAndCopies(t *testing.T) {
	retention, err := NewStateRetentionJob(StateRetentionJobParams{Logger: logger.Nop(), Store: failingPurger{}})
	if err != nil {
		t.Fatalf("new retention job: %v", err)
	}
	other := &stubJob{name: "warm-catalog"}

	registry := NewRegistry(retention, nil)
	if !registry.Register(other) {
		t.Fatalf("expected %s to register", other.name)
	}

	jobs := registry.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0] != retention || jobs[1] != other {
		t.Fatalf("jobs returned out of order")
	}
	jobs[0] = nil
	if registry.Jobs()[0] == nil {
		t.Fatalf("internal slice leaked")
	}

	names := registry.Names()
	if len(names) != 2 || names[0] != stateRetentionJobName || names[1] != "warm-catalog" {
		t.Fatalf("unexpected names %v", names)
	}
}

func TestRegistryRejectsDuplicateNames(t *testing.T) {
	registry := NewRegistry(&stubJob{name: stateRetentionJobName})

	retention, err := NewStateRetentionJob(StateRetentionJobParams{Logger: logger.Nop(), Store: failingPurger{}})
	if err != nil {
		t.Fatalf("new retention job: %v", err)
	}
	if registry.Register(retention) {
		t.Fatalf("duplicate %s registered", stateRetentionJobName)
	}
	if got := len(registry.Jobs()); got != 1 {
		t.Fatalf("expected 1 job, got %d", got)
	}

	var zero Registry
	if !zero.Register(retention) {
		t.Fatalf("zero registry should accept jobs")
	}
}
