package scheduler

import (
	"context"
	"testing"

	"github.com/wonny/dgi/pkg/logger"
)

type stubJob struct {
	name     string
	schedule string
	err      error
	runs     int
}

func (j *stubJob) Name() string                  { return j.name }
func (j *stubJob) Schedule() string              { return j.schedule }
func (j *stubJob) Run(ctx context.Context) error { j.runs++; return j.err }

func TestAddJob(t *testing.T) {
	s := New(logger.Nop())

	if err := s.AddJob(&stubJob{name: "refresh", schedule: "0 0 7 * * MON-FRI"}); err != nil {
		t.Fatalf("AddJob failed: %v", err)
	}

	// duplicate name rejected
	if err := s.AddJob(&stubJob{name: "refresh", schedule: "@daily"}); err == nil {
		t.Error("expected duplicate job error")
	}
}

func TestAddJobBadSchedule(t *testing.T) {
	s := New(logger.Nop())

	if err := s.AddJob(&stubJob{name: "bad", schedule: "not a cron expr"}); err == nil {
		t.Error("expected schedule parse error")
	}
}

func TestRunJobUnknown(t *testing.T) {
	s := New(logger.Nop())

	if err := s.RunJob("missing"); err == nil {
		t.Error("expected unknown job error")
	}
}

func TestGetJobHistoryUnknown(t *testing.T) {
	s := New(logger.Nop())

	if _, err := s.GetJobHistory("missing"); err == nil {
		t.Error("expected unknown job error")
	}
}

func TestJobHistory(t *testing.T) {
	h := &JobHistory{}
	h.AddResult(JobResult{JobName: "j", Success: true})
	h.AddResult(JobResult{JobName: "j", Success: false, Error: "boom"})

	if got := h.GetSuccessRate(); got != 0.5 {
		t.Errorf("expected success rate 0.5, got %g", got)
	}

	latest := h.GetLatestResults(1)
	if len(latest) != 1 || latest[0].Success {
		t.Errorf("expected latest result to be the failure, got %+v", latest)
	}
}

func TestJobHistoryBounded(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{JobName: "j", Success: true})
	}

	if len(h.Results) != 100 {
		t.Errorf("expected history capped at 100, got %d", len(h.Results))
	}
}
