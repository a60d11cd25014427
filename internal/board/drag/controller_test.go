package drag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/shopfloor/schedboard/api/v1"
	"github.com/shopfloor/schedboard/internal/board"
	"github.com/shopfloor/schedboard/internal/board/cache"
	"github.com/shopfloor/schedboard/internal/board/client"
)

// reorderGateway serves a fixed job set and lets tests fail updates for
// chosen ids.
type reorderGateway struct {
	jobs    map[string]api.Job
	failIDs map[string]bool
	listed  int
	patched []string
}

var _ client.Gateway = (*reorderGateway)(nil)

func newReorderGateway(jobs ...api.Job) *reorderGateway {
	g := &reorderGateway{jobs: map[string]api.Job{}, failIDs: map[string]bool{}}
	for _, j := range jobs {
		g.jobs[j.ID] = j
	}
	return g
}

func (g *reorderGateway) ListJobs(ctx context.Context) ([]api.Job, error) {
	g.listed++
	out := make([]api.Job, 0, len(g.jobs))
	for _, j := range g.jobs {
		out = append(out, j)
	}
	return out, nil
}

func (g *reorderGateway) GetJob(ctx context.Context, id string) (*api.Job, error) {
	j, ok := g.jobs[id]
	if !ok {
		return nil, &client.NotFoundError{Op: "get " + id}
	}
	return &j, nil
}

func (g *reorderGateway) CreateJob(ctx context.Context, job api.Job) (*api.Job, error) {
	g.jobs[job.ID] = job
	return &job, nil
}

func (g *reorderGateway) UpdateJob(ctx context.Context, id string, patch api.JobPatch) (*api.Job, error) {
	if g.failIDs[id] {
		return nil, &client.GatewayError{Op: "update " + id, Err: errors.New("connection reset")}
	}
	j, ok := g.jobs[id]
	if !ok {
		return nil, &client.NotFoundError{Op: "update " + id}
	}
	if patch.Machine != nil {
		j.Machine = *patch.Machine
	}
	if patch.SortOrder != nil {
		j.SortOrder = *patch.SortOrder
	}
	if patch.PriorityOverride != nil {
		j.PriorityOverride = *patch.PriorityOverride
	}
	g.jobs[id] = j
	g.patched = append(g.patched, id)
	return &j, nil
}

func (g *reorderGateway) ArchiveJob(ctx context.Context, id string, completeDate string) (*api.Job, error) {
	j := g.jobs[id]
	j.Archived = true
	j.CompleteDate = completeDate
	g.jobs[id] = j
	return &j, nil
}

func (g *reorderGateway) DeleteJob(ctx context.Context, id string) error {
	delete(g.jobs, id)
	return nil
}

func (g *reorderGateway) ListPriorities(ctx context.Context) (map[string]api.Priority, error) {
	return map[string]api.Priority{}, nil
}

func (g *reorderGateway) SetPriority(ctx context.Context, machine string, priority api.Priority) error {
	return nil
}

func queueJob(id, machine string, sortOrder int) api.Job {
	return api.Job{ID: id, Type: api.JobTypeJob, Machine: machine, SortOrder: sortOrder}
}

func newControllerUnderTest(t *testing.T, gw *reorderGateway) (*Controller, *board.Repository) {
	t.Helper()
	repo := board.NewRepository(gw, cache.New(t.TempDir()))
	_, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	return NewController(repo), repo
}

func TestCommit_AppliesBatchAndRefetches(t *testing.T) {
	gw := newReorderGateway(queueJob("a", "22", 1), queueJob("b", "22", 2))
	ctrl, repo := newControllerUnderTest(t, gw)
	listsBefore := gw.listed

	one, two := 2, 1
	err := ctrl.Commit(context.Background(), []Update{
		{JobID: "a", Patch: api.JobPatch{SortOrder: &one}},
		{JobID: "b", Patch: api.JobPatch{SortOrder: &two}},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, gw.patched)
	assert.Equal(t, listsBefore+1, gw.listed, "commit must re-fetch after the batch")

	for _, j := range repo.Jobs() {
		switch j.ID {
		case "a":
			assert.Equal(t, 2, j.SortOrder)
		case "b":
			assert.Equal(t, 1, j.SortOrder)
		}
	}
}

func TestCommit_PartialFailureReportsConsistencyError(t *testing.T) {
	gw := newReorderGateway(queueJob("a", "22", 1), queueJob("b", "22", 2), queueJob("c", "22", 3))
	gw.failIDs["b"] = true
	ctrl, _ := newControllerUnderTest(t, gw)
	listsBefore := gw.listed

	one, two, three := 3, 1, 2
	err := ctrl.Commit(context.Background(), []Update{
		{JobID: "a", Patch: api.JobPatch{SortOrder: &one}},
		{JobID: "b", Patch: api.JobPatch{SortOrder: &two}},
		{JobID: "c", Patch: api.JobPatch{SortOrder: &three}},
	})

	var ce *board.ConsistencyError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, []string{"b"}, ce.FailedIDs)
	// The surviving writes stand and the board still reconciles.
	assert.ElementsMatch(t, []string{"a", "c"}, gw.patched)
	assert.Equal(t, listsBefore+1, gw.listed)
}

func TestCommit_EmptyBatchStillRefetches(t *testing.T) {
	gw := newReorderGateway(queueJob("a", "22", 1))
	ctrl, _ := newControllerUnderTest(t, gw)
	listsBefore := gw.listed

	require.NoError(t, ctrl.Commit(context.Background(), nil))
	assert.Empty(t, gw.patched)
	assert.Equal(t, listsBefore+1, gw.listed)
}
