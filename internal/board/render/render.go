// Package render turns repository snapshots into the visual column and card
// layout. It is stateless with respect to scheduling logic: everything here
// is presentation of values the derive package already computed.
package render

import (
	"sort"

	api "github.com/shopfloor/schedboard/api/v1"
	"github.com/shopfloor/schedboard/internal/board/derive"
)

// Card is one rendered job or setup on the board.
type Card struct {
	ID              string
	Title           string
	Setup           bool
	WorkOrder       string
	DueDate         string
	PercentComplete int
	RemainingHours  float64
	CumulativeHours float64
}

// Column is one machine's rendered queue.
type Column struct {
	Machine    string
	Priority   api.Priority
	Cards      []Card
	TotalHours float64
}

// Board is the full schedule board layout.
type Board struct {
	Columns  []Column
	Degraded bool
}

// Schedule lays out the board: one column per configured machine in
// configured order, then any machine present in the data but missing from the
// configuration, so nothing silently disappears.
func Schedule(machines []string, jobs []api.Job, priorities map[string]api.Priority, degraded bool) Board {
	queues := derive.MachineQueues(jobs)

	known := make(map[string]bool, len(machines))
	ordered := make([]string, 0, len(queues))
	for _, m := range machines {
		known[m] = true
		ordered = append(ordered, m)
	}
	var extra []string
	for m := range queues {
		if !known[m] {
			extra = append(extra, m)
		}
	}
	sort.Strings(extra)
	ordered = append(ordered, extra...)

	board := Board{Degraded: degraded}
	for _, machine := range ordered {
		entries := queues[machine]
		col := Column{Machine: machine, Priority: api.DefaultPriority}
		if p, ok := priorities[machine]; ok && p.IsValid() {
			col.Priority = p
		}
		for _, e := range entries {
			col.Cards = append(col.Cards, newCard(e))
			col.TotalHours = e.CumulativeHours
		}
		board.Columns = append(board.Columns, col)
	}
	return board
}

// PriorityBoard lays out the four fixed priority columns, critical first.
type PriorityBoard struct {
	Columns  []PriorityColumn
	Degraded bool
}

type PriorityColumn struct {
	Priority api.Priority
	Cards    []Card
}

// Priorities renders the priority board from the same snapshot.
func Priorities(jobs []api.Job, machinePriorities map[string]api.Priority, degraded bool) PriorityBoard {
	groups := derive.GroupByPriority(jobs, machinePriorities)

	board := PriorityBoard{Degraded: degraded}
	for _, p := range api.Priorities() {
		col := PriorityColumn{Priority: p}
		for _, entry := range derive.CumulativeHours(derive.SortQueue(groups[p])) {
			col.Cards = append(col.Cards, newCard(entry))
		}
		board.Columns = append(board.Columns, col)
	}
	return board
}

func newCard(e derive.QueueEntry) Card {
	j := e.Job
	card := Card{
		ID:              j.ID,
		Setup:           j.IsSetup(),
		WorkOrder:       j.WorkOrder,
		DueDate:         j.DueDate,
		PercentComplete: j.PercentComplete,
		RemainingHours:  e.RemainingHours,
		CumulativeHours: e.CumulativeHours,
	}
	if card.Setup {
		card.Title = "Tool " + j.ToolNumber
	} else {
		card.Title = j.JobName
	}
	return card
}
