package drag

import (
	"context"

	api "github.com/shopfloor/schedboard/api/v1"
	"github.com/shopfloor/schedboard/internal/board"
	"github.com/shopfloor/schedboard/pkg/metrics"
	"go.uber.org/zap"
)

// Controller commits drop plans against the job repository. Writes in a batch
// are independent, there is no transaction spanning them: on any failure the
// already-applied writes stand and the caller gets a ConsistencyError, the
// board re-fetches to restore a known-consistent view either way.
type Controller struct {
	repo *board.Repository
}

func NewController(repo *board.Repository) *Controller {
	return &Controller{repo: repo}
}

// Commit issues the batch, waits for every update to settle, then triggers a
// full re-fetch to reconcile against the authoritative state.
func (c *Controller) Commit(ctx context.Context, updates []Update) error {
	var failed []string
	var lastErr error

	for _, u := range updates {
		if _, err := c.repo.Update(ctx, u.JobID, u.Patch); err != nil {
			failed = append(failed, u.JobID)
			lastErr = err
			zap.S().Named("drag").Warnw("reorder update failed", "job", u.JobID, "error", err)
		}
	}

	// Reconcile regardless of outcome, optimistic local order is never
	// trusted past the drop.
	if _, err := c.repo.FetchAll(ctx); err != nil {
		zap.S().Named("drag").Warnw("post-reorder refetch failed", "error", err)
	}

	if len(failed) > 0 {
		metrics.IncreaseReorderBatchesMetric("failed")
		return &board.ConsistencyError{FailedIDs: failed, Err: lastErr}
	}
	metrics.IncreaseReorderBatchesMetric("ok")
	return nil
}

// PriorityColumn is a drop target on the priority board, one of the four
// fixed levels.
type PriorityColumn struct {
	Priority api.Priority
	Cards    []CardBox
}

// PrioritySession is the priority-board variant of the drag state machine.
// Dropping a card writes only the per-job priority override, never machine or
// sortOrder, so re-prioritizing cannot scramble the schedule board.
type PrioritySession struct {
	state  State
	jobID  string
	origin api.Priority
}

func NewPrioritySession() *PrioritySession {
	return &PrioritySession{state: StateIdle}
}

func (s *PrioritySession) State() State { return s.state }

func (s *PrioritySession) Start(jobID string, origin api.Priority) error {
	if s.state != StateIdle {
		return ErrAlreadyDragging
	}
	s.state = StateDragging
	s.jobID = jobID
	s.origin = origin
	return nil
}

func (s *PrioritySession) Cancel() {
	s.state = StateIdle
	s.jobID = ""
	s.origin = ""
}

// Drop plans the override write. A drop back onto the origin column is a
// no-op.
func (s *PrioritySession) Drop(target PriorityColumn) ([]Update, error) {
	if s.state != StateDragging {
		return nil, ErrNotDragging
	}
	jobID, origin := s.jobID, s.origin
	s.Cancel()

	if !target.Priority.IsValid() || target.Priority == origin {
		return nil, nil
	}
	override := target.Priority
	return []Update{{JobID: jobID, Patch: api.JobPatch{PriorityOverride: &override}}}, nil
}
