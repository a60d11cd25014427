package service

import (
	"context"
	"sort"

	api "github.com/shopfloor/schedboard/api/v1"
	"github.com/shopfloor/schedboard/internal/store"
)

// memStore is an in-memory store.Store used across the service tests.
type memStore struct {
	jobs       *memJobStore
	priorities *memPriorityStore
}

func newMemStore() *memStore {
	return &memStore{
		jobs:       &memJobStore{jobs: map[string]api.Job{}},
		priorities: &memPriorityStore{priorities: map[string]api.Priority{}},
	}
}

var _ store.Store = (*memStore)(nil)

func (s *memStore) Job() store.Job                         { return s.jobs }
func (s *memStore) MachinePriority() store.MachinePriority { return s.priorities }
func (s *memStore) InitialMigration() error                { return nil }
func (s *memStore) Close() error                           { return nil }

type memJobStore struct {
	jobs map[string]api.Job
	seq  int
}

var _ store.Job = (*memJobStore)(nil)

func (s *memJobStore) InitialMigration() error { return nil }

func (s *memJobStore) List(ctx context.Context) ([]api.Job, error) {
	out := make([]api.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].Machine != out[k].Machine {
			return out[i].Machine < out[k].Machine
		}
		return out[i].SortOrder < out[k].SortOrder
	})
	return out, nil
}

func (s *memJobStore) ListByMachine(ctx context.Context, machine string) ([]api.Job, error) {
	all, _ := s.List(ctx)
	var out []api.Job
	for _, j := range all {
		if j.Machine == machine {
			out = append(out, j)
		}
	}
	return out, nil
}

func (s *memJobStore) Get(ctx context.Context, id string) (*api.Job, error) {
	j, ok := s.jobs[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	return &j, nil
}

func (s *memJobStore) Create(ctx context.Context, job api.Job) (*api.Job, error) {
	if _, ok := s.jobs[job.ID]; ok {
		return nil, store.ErrDuplicateKey
	}
	s.jobs[job.ID] = job
	return &job, nil
}

func (s *memJobStore) Update(ctx context.Context, id string, patch api.JobPatch) (*api.Job, error) {
	j, ok := s.jobs[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	if patch.Machine != nil {
		j.Machine = *patch.Machine
	}
	if patch.SortOrder != nil {
		j.SortOrder = *patch.SortOrder
	}
	if patch.JobName != nil {
		j.JobName = *patch.JobName
	}
	if patch.PercentComplete != nil {
		j.PercentComplete = *patch.PercentComplete
	}
	if patch.PriorityOverride != nil {
		j.PriorityOverride = *patch.PriorityOverride
	}
	if patch.TotalMaterial != nil {
		j.TotalMaterial = *patch.TotalMaterial
	}
	s.jobs[id] = j
	return &j, nil
}

func (s *memJobStore) Archive(ctx context.Context, id string, completeDate string) (*api.Job, error) {
	j, ok := s.jobs[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	j.Archived = true
	j.CompleteDate = completeDate
	s.jobs[id] = j
	return &j, nil
}

func (s *memJobStore) Delete(ctx context.Context, id string) error {
	delete(s.jobs, id)
	return nil
}

func (s *memJobStore) MaxSortOrder(ctx context.Context, machine string) (int, error) {
	max := 0
	for _, j := range s.jobs {
		if j.Machine == machine && !j.Archived && j.SortOrder > max {
			max = j.SortOrder
		}
	}
	return max, nil
}

type memPriorityStore struct {
	priorities map[string]api.Priority
}

var _ store.MachinePriority = (*memPriorityStore)(nil)

func (s *memPriorityStore) InitialMigration() error { return nil }

func (s *memPriorityStore) List(ctx context.Context) (map[string]api.Priority, error) {
	out := map[string]api.Priority{}
	for k, v := range s.priorities {
		out[k] = v
	}
	return out, nil
}

func (s *memPriorityStore) Get(ctx context.Context, machine string) (*api.Priority, error) {
	p, ok := s.priorities[machine]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	return &p, nil
}

func (s *memPriorityStore) Upsert(ctx context.Context, machine string, priority api.Priority) error {
	s.priorities[machine] = priority
	return nil
}
