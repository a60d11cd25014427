package store

import (
	"context"
	"errors"

	api "github.com/shopfloor/schedboard/api/v1"
	"github.com/shopfloor/schedboard/internal/store/model"
	"gorm.io/gorm"
)

type Job interface {
	List(ctx context.Context) ([]api.Job, error)
	ListByMachine(ctx context.Context, machine string) ([]api.Job, error)
	Get(ctx context.Context, id string) (*api.Job, error)
	Create(ctx context.Context, job api.Job) (*api.Job, error)
	Update(ctx context.Context, id string, patch api.JobPatch) (*api.Job, error)
	Archive(ctx context.Context, id string, completeDate string) (*api.Job, error)
	Delete(ctx context.Context, id string) error
	MaxSortOrder(ctx context.Context, machine string) (int, error)
	InitialMigration() error
}

type JobStore struct {
	db *gorm.DB
}

// Make sure we conform to Job interface
var _ Job = (*JobStore)(nil)

func NewJobStore(db *gorm.DB) Job {
	return &JobStore{db: db}
}

func (s *JobStore) InitialMigration() error {
	return s.db.AutoMigrate(&model.Job{})
}

func (s *JobStore) List(ctx context.Context) ([]api.Job, error) {
	var jobs model.JobList
	result := s.db.WithContext(ctx).Order("machine, sort_order, created_at").Find(&jobs)
	if result.Error != nil {
		return nil, result.Error
	}
	return jobs.ToApiResource(), nil
}

func (s *JobStore) ListByMachine(ctx context.Context, machine string) ([]api.Job, error) {
	var jobs model.JobList
	result := s.db.WithContext(ctx).Where("machine = ?", machine).Order("sort_order, created_at").Find(&jobs)
	if result.Error != nil {
		return nil, result.Error
	}
	return jobs.ToApiResource(), nil
}

func (s *JobStore) Get(ctx context.Context, id string) (*api.Job, error) {
	var job model.Job
	result := s.db.WithContext(ctx).First(&job, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	apiJob := job.ToApiResource()
	return &apiJob, nil
}

func (s *JobStore) Create(ctx context.Context, job api.Job) (*api.Job, error) {
	record := model.NewJobFromApiResource(&job)
	result := s.db.WithContext(ctx).Create(record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	created := record.ToApiResource()
	return &created, nil
}

func (s *JobStore) Update(ctx context.Context, id string, patch api.JobPatch) (*api.Job, error) {
	var job model.Job
	if err := s.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	job.ApplyPatch(patch)
	if err := s.db.WithContext(ctx).Save(&job).Error; err != nil {
		return nil, err
	}

	updated := job.ToApiResource()
	return &updated, nil
}

func (s *JobStore) Archive(ctx context.Context, id string, completeDate string) (*api.Job, error) {
	var job model.Job
	if err := s.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	job.Archived = true
	job.CompleteDate = completeDate
	if err := s.db.WithContext(ctx).Save(&job).Error; err != nil {
		return nil, err
	}

	archived := job.ToApiResource()
	return &archived, nil
}

// Delete removes the record. Deleting an id that is already gone is not an
// error, the gateway treats deletes as idempotent.
func (s *JobStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&model.Job{}, "id = ?", id)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return nil
}

// MaxSortOrder returns the highest sort order currently assigned on the
// machine, zero when the machine has no jobs.
func (s *JobStore) MaxSortOrder(ctx context.Context, machine string) (int, error) {
	var max *int
	result := s.db.WithContext(ctx).Model(&model.Job{}).
		Where("machine = ? AND archived = ?", machine, false).
		Select("MAX(sort_order)").Scan(&max)
	if result.Error != nil {
		return 0, result.Error
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}
