package drag

import (
	"testing"

	api "github.com/shopfloor/schedboard/api/v1"
)

func cards(ids ...string) []CardBox {
	boxes := make([]CardBox, 0, len(ids))
	for i, id := range ids {
		boxes = append(boxes, CardBox{ID: id, Top: float64(i * 100), Height: 80})
	}
	return boxes
}

func orders(ids ...string) map[string]int {
	m := map[string]int{}
	for i, id := range ids {
		m[id] = i + 1
	}
	return m
}

func TestInsertionIndex(t *testing.T) {
	t.Parallel()
	column := cards("a", "b", "c") // midpoints 40, 140, 240

	tests := []struct {
		name     string
		pointerY float64
		dragged  string
		want     int
	}{
		{"above first midpoint", 10, "x", 0},
		{"between first and second", 100, "x", 1},
		{"below every midpoint", 500, "x", 3},
		{"dragged card is skipped", 100, "b", 1},
		{"exactly on a midpoint falls after", 140, "x", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InsertionIndex(tt.pointerY, column, tt.dragged); got != tt.want {
				t.Errorf("expected index %d, got %d", tt.want, got)
			}
		})
	}
}

func TestInsertionIndex_EmptyColumn(t *testing.T) {
	t.Parallel()
	if got := InsertionIndex(50, nil, "x"); got != 0 {
		t.Errorf("expected append at 0 for an empty column, got %d", got)
	}
}

func TestPlanDrop_ReorderWithinColumn(t *testing.T) {
	t.Parallel()
	// Move c to the front of a,b,c. Every position shifts.
	target := Column{Machine: "22", Cards: cards("a", "b", "c")}
	updates := PlanDrop(target, "c", "22", 0, orders("a", "b", "c"))

	if len(updates) != 3 {
		t.Fatalf("expected 3 updates, got %d", len(updates))
	}
	want := map[string]int{"c": 1, "a": 2, "b": 3}
	for _, u := range updates {
		if u.Patch.SortOrder == nil || *u.Patch.SortOrder != want[u.JobID] {
			t.Errorf("%s: expected sortOrder %d, got %v", u.JobID, want[u.JobID], u.Patch.SortOrder)
		}
		if u.Patch.Machine != nil {
			t.Errorf("%s: same-column drop must not write machine", u.JobID)
		}
	}
}

func TestPlanDrop_OnlyChangedPositionsWritten(t *testing.T) {
	t.Parallel()
	// Swap b and c in a,b,c: a keeps position 1 and gets no write.
	target := Column{Machine: "22", Cards: cards("a", "b", "c")}
	updates := PlanDrop(target, "c", "22", 1, orders("a", "b", "c"))

	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(updates))
	}
	for _, u := range updates {
		if u.JobID == "a" {
			t.Error("unchanged job must not be written")
		}
	}
}

func TestPlanDrop_DropInPlaceIsNoOp(t *testing.T) {
	t.Parallel()
	target := Column{Machine: "22", Cards: cards("a", "b")}
	updates := PlanDrop(target, "b", "22", 1, orders("a", "b"))
	if len(updates) != 0 {
		t.Errorf("expected no updates, got %d", len(updates))
	}
}

func TestPlanDrop_CrossMachineCarriesMachinePatch(t *testing.T) {
	t.Parallel()
	target := Column{Machine: "55", Cards: cards("x", "y")}
	updates := PlanDrop(target, "moved", "22", 2, map[string]int{"x": 1, "y": 2})

	if len(updates) != 1 {
		t.Fatalf("expected only the dragged job to change, got %d updates", len(updates))
	}
	u := updates[0]
	if u.JobID != "moved" {
		t.Fatalf("unexpected update target %s", u.JobID)
	}
	if u.Patch.Machine == nil || *u.Patch.Machine != "55" {
		t.Errorf("expected machine patch to 55, got %v", u.Patch.Machine)
	}
	if u.Patch.SortOrder == nil || *u.Patch.SortOrder != 3 {
		t.Errorf("expected sortOrder 3 at the end of the new queue, got %v", u.Patch.SortOrder)
	}
}

func TestPlanDrop_IndexClamped(t *testing.T) {
	t.Parallel()
	target := Column{Machine: "22", Cards: cards("a")}
	updates := PlanDrop(target, "b", "22", 99, map[string]int{"a": 1})
	if len(updates) != 1 || updates[0].JobID != "b" {
		t.Fatalf("expected the dragged job appended, got %v", updates)
	}
	if *updates[0].Patch.SortOrder != 2 {
		t.Errorf("expected sortOrder 2, got %d", *updates[0].Patch.SortOrder)
	}
}

func TestSession_Lifecycle(t *testing.T) {
	t.Parallel()
	s := NewSession()

	if _, err := s.Drop(Column{Machine: "22"}, 0, nil); err != ErrNotDragging {
		t.Errorf("expected ErrNotDragging, got %v", err)
	}
	if err := s.Start("a", "22"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Start("b", "22"); err != ErrAlreadyDragging {
		t.Errorf("expected ErrAlreadyDragging, got %v", err)
	}

	s.Cancel()
	if s.State() != StateIdle {
		t.Errorf("expected idle after cancel, got %v", s.State())
	}
	if _, err := s.Drop(Column{Machine: "22"}, 0, nil); err != ErrNotDragging {
		t.Errorf("cancelled drag must not plan updates, got %v", err)
	}
}

func TestSession_DropReturnsToIdle(t *testing.T) {
	t.Parallel()
	s := NewSession()
	if err := s.Start("a", "22"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := s.Drop(Column{Machine: "22", Cards: cards("a", "b")}, 500, orders("a", "b")); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if s.State() != StateIdle {
		t.Errorf("expected idle after drop, got %v", s.State())
	}
}

func TestPrioritySession_Drop(t *testing.T) {
	t.Parallel()
	s := NewPrioritySession()
	if err := s.Start("a", api.PriorityMedium); err != nil {
		t.Fatalf("start: %v", err)
	}

	updates, err := s.Drop(PriorityColumn{Priority: api.PriorityCritical})
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	if len(updates) != 1 {
		t.Fatalf("expected one override write, got %d", len(updates))
	}
	u := updates[0]
	if u.Patch.PriorityOverride == nil || *u.Patch.PriorityOverride != api.PriorityCritical {
		t.Errorf("expected critical override, got %v", u.Patch.PriorityOverride)
	}
	if u.Patch.Machine != nil || u.Patch.SortOrder != nil {
		t.Error("priority drop must not touch machine or sortOrder")
	}
}

func TestPrioritySession_SameColumnIsNoOp(t *testing.T) {
	t.Parallel()
	s := NewPrioritySession()
	if err := s.Start("a", api.PriorityHigh); err != nil {
		t.Fatalf("start: %v", err)
	}
	updates, err := s.Drop(PriorityColumn{Priority: api.PriorityHigh})
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	if updates != nil {
		t.Errorf("expected no writes, got %v", updates)
	}
}
