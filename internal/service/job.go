package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	api "github.com/shopfloor/schedboard/api/v1"
	"github.com/shopfloor/schedboard/internal/auth"
	"github.com/shopfloor/schedboard/internal/store"
	"go.uber.org/zap"
)

type JobService struct {
	store  store.Store
	policy auth.Policy
}

func NewJobService(s store.Store, policy auth.Policy) *JobService {
	if policy == nil {
		policy = auth.AllowAll{}
	}
	return &JobService{store: s, policy: policy}
}

func (s *JobService) ListJobs(ctx context.Context) ([]api.Job, error) {
	return s.store.Job().List(ctx)
}

func (s *JobService) ListJobsByMachine(ctx context.Context, machine string) ([]api.Job, error) {
	return s.store.Job().ListByMachine(ctx, machine)
}

func (s *JobService) GetJob(ctx context.Context, id string) (*api.Job, error) {
	job, err := s.store.Job().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(id)
		}
		return nil, err
	}
	return job, nil
}

// CreateJob validates the record, fills derived fields and queues it at the
// end of its machine's queue unless the caller supplied a sort order.
func (s *JobService) CreateJob(ctx context.Context, job api.Job, user string) (*api.Job, error) {
	if !s.policy.CanEdit(user) {
		return nil, NewErrForbidden(user, "edit")
	}
	if strings.TrimSpace(job.Machine) == "" {
		return nil, NewErrMachineRequired()
	}
	if job.Type == "" {
		job.Type = api.JobTypeJob
	}
	if job.Type == api.JobTypeJob && job.NumCavities == 0 {
		job.NumCavities = 1
	}
	if err := validateJob(job); err != nil {
		return nil, err
	}

	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Type == api.JobTypeJob && job.TotalHours == 0 {
		job.TotalHours = api.ComputeTotalHours(job.NumParts, job.CycleTime, job.NumCavities)
	}
	if job.SortOrder == 0 {
		max, err := s.store.Job().MaxSortOrder(ctx, job.Machine)
		if err != nil {
			return nil, err
		}
		job.SortOrder = max + 1
	}

	created, err := s.store.Job().Create(ctx, job)
	if err != nil {
		return nil, err
	}
	zap.S().Named("job_service").Infow("job created", "id", created.ID, "machine", created.Machine, "sortOrder", created.SortOrder)
	return created, nil
}

// UpdateJob applies a partial update. When the machine changes and the caller
// did not pick a position, the job moves to the end of the new machine's
// queue.
func (s *JobService) UpdateJob(ctx context.Context, id string, patch api.JobPatch, user string) (*api.Job, error) {
	if !s.policy.CanEdit(user) {
		return nil, NewErrForbidden(user, "edit")
	}
	current, err := s.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Machine != nil && *patch.Machine != current.Machine && patch.SortOrder == nil {
		max, err := s.store.Job().MaxSortOrder(ctx, *patch.Machine)
		if err != nil {
			return nil, err
		}
		end := max + 1
		patch.SortOrder = &end
	}
	if patch.PercentComplete != nil && (*patch.PercentComplete < 0 || *patch.PercentComplete > 100) {
		return nil, NewErrValidation("percentComplete must be between 0 and 100")
	}
	if patch.PriorityOverride != nil && *patch.PriorityOverride != "" && !patch.PriorityOverride.IsValid() {
		return nil, NewErrInvalidPriority(string(*patch.PriorityOverride))
	}

	updated, err := s.store.Job().Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(id)
		}
		return nil, err
	}
	return updated, nil
}

// ArchiveJob marks the job complete. The completion date is mandatory, an
// archived job without one would be unaccountable in the archive listing.
func (s *JobService) ArchiveJob(ctx context.Context, id string, completeDate string, user string) (*api.Job, error) {
	if !s.policy.CanEdit(user) {
		return nil, NewErrForbidden(user, "edit")
	}
	if strings.TrimSpace(completeDate) == "" {
		return nil, NewErrCompleteDateRequired()
	}
	archived, err := s.store.Job().Archive(ctx, id, completeDate)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(id)
		}
		return nil, err
	}
	return archived, nil
}

// DeleteJob removes the job. Idempotent, deleting a missing id succeeds.
func (s *JobService) DeleteJob(ctx context.Context, id string, user string) error {
	if !s.policy.CanEdit(user) {
		return NewErrForbidden(user, "edit")
	}
	return s.store.Job().Delete(ctx, id)
}
