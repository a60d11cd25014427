package render

import (
	"testing"

	api "github.com/shopfloor/schedboard/api/v1"
)

func TestSchedule_ConfiguredOrderThenExtras(t *testing.T) {
	t.Parallel()
	jobs := []api.Job{
		{ID: "a", Type: api.JobTypeJob, Machine: "55", SortOrder: 1, TotalHours: 2},
		{ID: "b", Type: api.JobTypeJob, Machine: "99", SortOrder: 1, TotalHours: 1},
	}

	board := Schedule([]string{"22", "55"}, jobs, nil, false)

	if len(board.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(board.Columns))
	}
	want := []string{"22", "55", "99"}
	for i, machine := range want {
		if board.Columns[i].Machine != machine {
			t.Errorf("column %d: expected %s, got %s", i, machine, board.Columns[i].Machine)
		}
	}
	if len(board.Columns[0].Cards) != 0 {
		t.Errorf("idle configured machine must still get an empty column")
	}
}

func TestSchedule_ColumnTotalsAndTitles(t *testing.T) {
	t.Parallel()
	jobs := []api.Job{
		{ID: "a", Type: api.JobTypeJob, Machine: "22", SortOrder: 1, TotalHours: 10, JobName: "bezel run"},
		{ID: "s", Type: api.JobTypeSetup, Machine: "22", SortOrder: 2, SetupHours: 2, ToolNumber: "T-9"},
	}

	board := Schedule([]string{"22"}, jobs, map[string]api.Priority{"22": api.PriorityHigh}, true)

	col := board.Columns[0]
	if col.Priority != api.PriorityHigh {
		t.Errorf("expected high priority column, got %s", col.Priority)
	}
	if col.TotalHours != 12 {
		t.Errorf("expected total 12 hours, got %v", col.TotalHours)
	}
	if col.Cards[0].Title != "bezel run" {
		t.Errorf("job card title: got %q", col.Cards[0].Title)
	}
	if col.Cards[1].Title != "Tool T-9" {
		t.Errorf("setup card title: got %q", col.Cards[1].Title)
	}
	if !board.Degraded {
		t.Error("degraded flag must pass through")
	}
}

func TestPriorities_CriticalFirstAllColumnsPresent(t *testing.T) {
	t.Parallel()
	jobs := []api.Job{
		{ID: "a", Type: api.JobTypeJob, Machine: "22", SortOrder: 1, TotalHours: 1},
	}

	board := Priorities(jobs, map[string]api.Priority{"22": api.PriorityCritical}, false)

	if len(board.Columns) != 4 {
		t.Fatalf("expected 4 priority columns, got %d", len(board.Columns))
	}
	if board.Columns[0].Priority != api.PriorityCritical {
		t.Errorf("expected critical first, got %s", board.Columns[0].Priority)
	}
	if len(board.Columns[0].Cards) != 1 {
		t.Errorf("expected the job in the critical column")
	}
}
