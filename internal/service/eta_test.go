package service

import (
	"testing"

	"github.com/mediamirror/dashboard/internal/domain"
)

func doneJob(id, started, updated string) domain.Job {
	return domain.Job{"id": id, "status": "done", "started": started, "updated": updated}
}

func TestComputeETAWorkedExample(t *testing.T) {
	// Two done jobs at 100s and 300s elapsed, one skipped, inventory 10/2.
	st := domain.NewState()
	st.Jobs = []domain.Job{
		doneJob("a", "2026-08-01T10:00:00", "2026-08-01T10:01:40"),
		doneJob("b", "2026-08-01T11:00:00", "2026-08-01T11:05:00"),
		{"id": "c", "status": "skipped"},
	}
	st.Inventory = domain.Inventory{SourceTotal: 10, DestDone: 2}

	eta := ComputeETA(st)
	if eta == nil {
		t.Fatal("expected an ETA")
	}
	if eta.AvgPerFileSecs != 200 {
		t.Errorf("expected avg 200s, got %d", eta.AvgPerFileSecs)
	}
	if eta.Completed != 5 {
		t.Errorf("expected completed 5, got %d", eta.Completed)
	}
	if eta.Remaining != 5 {
		t.Errorf("expected remaining 5, got %d", eta.Remaining)
	}
	if eta.EstRemainingHours != 0.3 {
		t.Errorf("expected 0.3h, got %v", eta.EstRemainingHours)
	}
	if eta.EstRemainingDays != 0.0 {
		t.Errorf("expected 0.0d, got %v", eta.EstRemainingDays)
	}
	if eta.SourceTotal != 10 {
		t.Errorf("expected source_total 10, got %d", eta.SourceTotal)
	}
}

func TestComputeETAOmitted(t *testing.T) {
	tests := []struct {
		name string
		jobs []domain.Job
	}{
		{"no jobs", nil},
		{"no done jobs", []domain.Job{{"id": "a", "status": "failed"}}},
		{"done without timestamps", []domain.Job{{"id": "a", "status": "done"}}},
		{"done with started only", []domain.Job{{"id": "a", "status": "done", "started": "2026-08-01T10:00:00"}}},
		{
			"one stamp unparseable aborts the batch",
			[]domain.Job{
				doneJob("a", "2026-08-01T10:00:00", "2026-08-01T10:01:40"),
				doneJob("b", "bogus", "2026-08-01T11:05:00"),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := domain.NewState()
			st.Jobs = tt.jobs
			st.Inventory = domain.Inventory{SourceTotal: 10, DestDone: 2}
			if eta := ComputeETA(st); eta != nil {
				t.Errorf("expected no ETA, got %+v", eta)
			}
		})
	}
}

func TestComputeETARemainingClamps(t *testing.T) {
	st := domain.NewState()
	st.Jobs = []domain.Job{
		doneJob("a", "2026-08-01T10:00:00", "2026-08-01T10:01:40"),
	}

	// completed exceeds source_total: remaining clamps to 0.
	st.Inventory = domain.Inventory{SourceTotal: 1, DestDone: 5}
	eta := ComputeETA(st)
	if eta == nil {
		t.Fatal("expected an ETA")
	}
	if eta.Remaining != 0 {
		t.Errorf("expected remaining clamped to 0, got %d", eta.Remaining)
	}

	// source_total absent: remaining is 0, not negative.
	st.Inventory = domain.Inventory{}
	eta = ComputeETA(st)
	if eta == nil {
		t.Fatal("expected an ETA")
	}
	if eta.Remaining != 0 || eta.EstRemainingHours != 0 {
		t.Errorf("expected zero remaining without a source total, got %+v", eta)
	}
}
