// Package drag implements the board's drag-and-drop reordering: an explicit
// state machine over a single active drag, pure geometry-to-index resolution,
// and a planning step that turns a drop into the minimal batch of record
// updates. Committing the batch lives in Controller so the ordering logic is
// testable without a rendering surface.
package drag

import (
	"errors"

	api "github.com/shopfloor/schedboard/api/v1"
)

// State of the drag state machine. Dropped and Cancelled are transient, both
// return to Idle.
type State int

const (
	StateIdle State = iota
	StateDragging
)

var (
	ErrNotDragging     = errors.New("no drag in progress")
	ErrAlreadyDragging = errors.New("a drag is already in progress")
)

// CardBox is the vertical bounding box of a rendered card in a column.
type CardBox struct {
	ID     string
	Top    float64
	Height float64
}

// Midpoint is the vertical center of the card, the anchor line drops are
// resolved against.
func (b CardBox) Midpoint() float64 {
	return b.Top + b.Height/2
}

// InsertionIndex resolves where a drop at pointerY lands in a column: the
// position of the first non-dragged card whose midpoint lies below the
// pointer, or the end when none qualifies. Empty columns therefore resolve to
// append, as do pointers below every midpoint.
func InsertionIndex(pointerY float64, cards []CardBox, draggedID string) int {
	index := 0
	for _, card := range cards {
		if card.ID == draggedID {
			continue
		}
		if pointerY < card.Midpoint() {
			return index
		}
		index++
	}
	return index
}

// Update is one record write produced by a drop plan.
type Update struct {
	JobID string
	Patch api.JobPatch
}

// Column is the target of a drop: a machine and its cards in current visual
// order.
type Column struct {
	Machine string
	Cards   []CardBox
}

// Session tracks the single active drag. The visual layer marks the card
// lifted on Start and reverts to the last rendered snapshot on Cancel.
type Session struct {
	state         State
	jobID         string
	originMachine string
}

func NewSession() *Session {
	return &Session{state: StateIdle}
}

func (s *Session) State() State { return s.state }

// Start captures the dragged job and its originating machine.
func (s *Session) Start(jobID, originMachine string) error {
	if s.state != StateIdle {
		return ErrAlreadyDragging
	}
	s.state = StateDragging
	s.jobID = jobID
	s.originMachine = originMachine
	return nil
}

// Cancel ends the drag without producing any writes.
func (s *Session) Cancel() {
	s.state = StateIdle
	s.jobID = ""
	s.originMachine = ""
}

// Drop resolves the insertion point in the target column and plans the update
// batch. The session returns to Idle whether or not the caller commits the
// plan.
func (s *Session) Drop(target Column, pointerY float64, currentOrders map[string]int) ([]Update, error) {
	if s.state != StateDragging {
		return nil, ErrNotDragging
	}
	jobID, origin := s.jobID, s.originMachine
	s.Cancel()

	index := InsertionIndex(pointerY, target.Cards, jobID)
	return PlanDrop(target, jobID, origin, index, currentOrders), nil
}

// PlanDrop computes the new ordered id list for the target column (existing
// order with the dragged id removed, then spliced in at index) and emits one
// update per job whose persisted position changed. Positions are 1-based in
// sortOrder. The dragged job additionally carries the machine change when it
// crossed columns.
func PlanDrop(target Column, draggedID, originMachine string, index int, currentOrders map[string]int) []Update {
	ids := make([]string, 0, len(target.Cards)+1)
	for _, card := range target.Cards {
		if card.ID == draggedID {
			continue
		}
		ids = append(ids, card.ID)
	}
	if index < 0 {
		index = 0
	}
	if index > len(ids) {
		index = len(ids)
	}
	ids = append(ids[:index:index], append([]string{draggedID}, ids[index:]...)...)

	machineChanged := target.Machine != originMachine

	var updates []Update
	for pos, id := range ids {
		sortOrder := pos + 1
		changed := currentOrders[id] != sortOrder
		if id == draggedID {
			if !changed && !machineChanged {
				continue
			}
			patch := api.JobPatch{}
			order := sortOrder
			patch.SortOrder = &order
			if machineChanged {
				machine := target.Machine
				patch.Machine = &machine
			}
			updates = append(updates, Update{JobID: id, Patch: patch})
			continue
		}
		if changed {
			order := sortOrder
			updates = append(updates, Update{JobID: id, Patch: api.JobPatch{SortOrder: &order}})
		}
	}
	return updates
}
