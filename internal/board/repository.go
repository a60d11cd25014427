package board

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	api "github.com/shopfloor/schedboard/api/v1"
	"github.com/shopfloor/schedboard/internal/board/cache"
	"github.com/shopfloor/schedboard/internal/board/client"
	"github.com/shopfloor/schedboard/pkg/metrics"
	"go.uber.org/zap"
)

// Repository owns the authoritative in-memory copy of all jobs and machine
// priorities. It is the sole writer of that state; derivations and renderers
// only ever see snapshots. Mutations write through to the gateway first and
// touch memory only after the gateway confirms, except in the recognized
// fallback branches below.
type Repository struct {
	mu         sync.RWMutex
	gateway    client.Gateway
	cache      *cache.Cache
	jobs       []api.Job
	priorities map[string]api.Priority
	degraded   bool
}

// localIDPrefix marks records created while the gateway was unreachable.
// They live only in this process until a successful full fetch replaces the
// snapshot, so no request for such an id may ever reach the gateway.
const localIDPrefix = "local-"

func NewRepository(gateway client.Gateway, c *cache.Cache) *Repository {
	return &Repository{
		gateway:    gateway,
		cache:      c,
		priorities: map[string]api.Priority{},
	}
}

// FetchAll retrieves the full job collection from the gateway. When the
// gateway is unreachable it falls back to the last cached snapshot and marks
// the connection degraded.
func (r *Repository) FetchAll(ctx context.Context) ([]api.Job, error) {
	jobs, err := r.gateway.ListJobs(ctx)
	if err != nil {
		metrics.IncreaseGatewayFallbacksMetric("jobs")
		cached, cacheErr := r.cache.LoadJobs()
		if cacheErr != nil {
			zap.S().Named("board").Warnw("gateway unreachable and no cached jobs", "error", err)
			r.setDegraded(true)
			return nil, err
		}
		zap.S().Named("board").Warnw("gateway unreachable, serving cached jobs", "error", err, "cached", len(cached))
		r.mu.Lock()
		r.jobs = cached
		r.degraded = true
		r.mu.Unlock()
		return copyJobs(cached), nil
	}

	r.mu.Lock()
	r.jobs = jobs
	r.degraded = false
	r.mu.Unlock()

	if err := r.cache.SaveJobs(jobs); err != nil {
		zap.S().Named("board").Warnw("failed to refresh jobs cache", "error", err)
	}
	return copyJobs(jobs), nil
}

// FetchPriorities retrieves machine priorities with the same fallback
// behavior as FetchAll.
func (r *Repository) FetchPriorities(ctx context.Context) (map[string]api.Priority, error) {
	priorities, err := r.gateway.ListPriorities(ctx)
	if err != nil {
		metrics.IncreaseGatewayFallbacksMetric("priorities")
		cached, cacheErr := r.cache.LoadPriorities()
		if cacheErr != nil {
			zap.S().Named("board").Warnw("gateway unreachable and no cached priorities", "error", err)
			r.setDegraded(true)
			return nil, err
		}
		r.mu.Lock()
		r.priorities = cached
		r.degraded = true
		r.mu.Unlock()
		return copyPriorities(cached), nil
	}
	if priorities == nil {
		priorities = map[string]api.Priority{}
	}

	r.mu.Lock()
	r.priorities = priorities
	r.mu.Unlock()

	if err := r.cache.SavePriorities(priorities); err != nil {
		zap.S().Named("board").Warnw("failed to refresh priorities cache", "error", err)
	}
	return copyPriorities(priorities), nil
}

// Jobs returns a snapshot copy of the current job collection.
func (r *Repository) Jobs() []api.Job {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyJobs(r.jobs)
}

// Priorities returns a snapshot copy of the machine priorities.
func (r *Repository) Priorities() map[string]api.Priority {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyPriorities(r.priorities)
}

// Degraded reports whether the last gateway read failed and the board is
// showing possibly-stale cached state.
func (r *Repository) Degraded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.degraded
}

// Create validates and persists a new job or setup. The machine is mandatory
// and checked before any network call. The record is queued at the end of its
// machine's queue. If the gateway is down the record is kept locally with a
// synthesized id so shop-floor entry is never lost, and the connection is
// marked degraded.
func (r *Repository) Create(ctx context.Context, job api.Job) (*api.Job, error) {
	if strings.TrimSpace(job.Machine) == "" {
		return nil, NewValidationError("machine is required")
	}
	if job.Type == "" {
		job.Type = api.JobTypeJob
	}
	if job.Type == api.JobTypeJob {
		if job.NumCavities == 0 {
			job.NumCavities = 1
		}
		if job.TotalHours == 0 {
			job.TotalHours = api.ComputeTotalHours(job.NumParts, job.CycleTime, job.NumCavities)
		}
	}
	if job.PercentComplete < 0 || job.PercentComplete > 100 {
		return nil, NewValidationError("percentComplete must be between 0 and 100")
	}
	if job.SortOrder == 0 {
		job.SortOrder = r.nextSortOrder(job.Machine)
	}

	created, err := r.gateway.CreateJob(ctx, job)
	if err != nil {
		if !client.IsUnreachable(err) {
			return nil, err
		}
		// Soft fail: keep the record locally, queued for the next
		// reconciling re-fetch to sort out.
		job.ID = localIDPrefix + uuid.NewString()
		zap.S().Named("board").Warnw("gateway rejected create, keeping job locally", "id", job.ID, "error", err)
		r.mu.Lock()
		r.jobs = append(r.jobs, job)
		r.degraded = true
		r.mu.Unlock()
		r.saveJobsCache()
		return &job, nil
	}

	r.mu.Lock()
	r.jobs = append(r.jobs, *created)
	r.mu.Unlock()
	r.saveJobsCache()
	return created, nil
}

// Update applies a partial update, gateway first. A machine change without an
// explicit sortOrder re-queues the job at the end of the new machine.
func (r *Repository) Update(ctx context.Context, id string, patch api.JobPatch) (*api.Job, error) {
	current, ok := r.find(id)
	if !ok {
		return nil, &client.NotFoundError{Op: "update " + id}
	}

	if patch.Machine != nil && *patch.Machine != current.Machine && patch.SortOrder == nil {
		end := r.nextSortOrder(*patch.Machine)
		patch.SortOrder = &end
	}

	// A pending-sync record exists only in memory; the gateway has never
	// heard of its id, so the patch is applied locally.
	if strings.HasPrefix(id, localIDPrefix) {
		patch.Apply(&current)
		r.replace(current)
		r.saveJobsCache()
		return &current, nil
	}

	updated, err := r.gateway.UpdateJob(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	r.replace(*updated)
	r.saveJobsCache()
	return updated, nil
}

// Archive stamps the job complete and removes it from the active views. The
// completion date is mandatory.
func (r *Repository) Archive(ctx context.Context, id string, completeDate string) (*api.Job, error) {
	if strings.TrimSpace(completeDate) == "" {
		return nil, NewValidationError("completeDate is required to archive a job")
	}

	if strings.HasPrefix(id, localIDPrefix) {
		current, ok := r.find(id)
		if !ok {
			return nil, &client.NotFoundError{Op: "archive " + id}
		}
		current.Archived = true
		current.CompleteDate = completeDate
		r.replace(current)
		r.saveJobsCache()
		return &current, nil
	}

	archived, err := r.gateway.ArchiveJob(ctx, id, completeDate)
	if err != nil {
		return nil, err
	}

	r.replace(*archived)
	r.saveJobsCache()
	return archived, nil
}

// Remove deletes the job from the gateway and from memory. Removing an id
// that is already gone is not an error.
func (r *Repository) Remove(ctx context.Context, id string) error {
	if !strings.HasPrefix(id, localIDPrefix) {
		if err := r.gateway.DeleteJob(ctx, id); err != nil && !client.IsNotFound(err) {
			return err
		}
	}

	r.mu.Lock()
	kept := r.jobs[:0]
	for _, j := range r.jobs {
		if j.ID != id {
			kept = append(kept, j)
		}
	}
	r.jobs = kept
	r.mu.Unlock()
	r.saveJobsCache()
	return nil
}

// SetPriority writes a machine's priority through to the gateway and then to
// memory.
func (r *Repository) SetPriority(ctx context.Context, machine string, priority api.Priority) error {
	if !priority.IsValid() {
		return NewValidationError("invalid priority %q", priority)
	}
	if err := r.gateway.SetPriority(ctx, machine, priority); err != nil {
		return err
	}

	r.mu.Lock()
	r.priorities[machine] = priority
	r.mu.Unlock()

	if err := r.cache.SavePriorities(r.Priorities()); err != nil {
		zap.S().Named("board").Warnw("failed to refresh priorities cache", "error", err)
	}
	return nil
}

// nextSortOrder scans the in-memory snapshot for the machine's current
// maximum, end-of-queue placement for new arrivals.
func (r *Repository) nextSortOrder(machine string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	max := 0
	for _, j := range r.jobs {
		if j.Machine == machine && !j.Archived && j.SortOrder > max {
			max = j.SortOrder
		}
	}
	return max + 1
}

func (r *Repository) find(id string) (api.Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, j := range r.jobs {
		if j.ID == id {
			return j, true
		}
	}
	return api.Job{}, false
}

func (r *Repository) replace(job api.Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.jobs {
		if r.jobs[i].ID == job.ID {
			r.jobs[i] = job
			return
		}
	}
	r.jobs = append(r.jobs, job)
}

func (r *Repository) setDegraded(v bool) {
	r.mu.Lock()
	r.degraded = v
	r.mu.Unlock()
}

func (r *Repository) saveJobsCache() {
	if err := r.cache.SaveJobs(r.Jobs()); err != nil {
		zap.S().Named("board").Warnw("failed to refresh jobs cache", "error", err)
	}
}

func copyJobs(jobs []api.Job) []api.Job {
	out := make([]api.Job, len(jobs))
	copy(out, jobs)
	return out
}

func copyPriorities(priorities map[string]api.Priority) map[string]api.Priority {
	out := make(map[string]api.Priority, len(priorities))
	for k, v := range priorities {
		out[k] = v
	}
	return out
}
