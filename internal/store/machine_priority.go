package store

import (
	"context"
	"errors"

	api "github.com/shopfloor/schedboard/api/v1"
	"github.com/shopfloor/schedboard/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MachinePriority interface {
	List(ctx context.Context) (map[string]api.Priority, error)
	Get(ctx context.Context, machine string) (*api.Priority, error)
	Upsert(ctx context.Context, machine string, priority api.Priority) error
	InitialMigration() error
}

type MachinePriorityStore struct {
	db *gorm.DB
}

// Make sure we conform to MachinePriority interface
var _ MachinePriority = (*MachinePriorityStore)(nil)

func NewMachinePriorityStore(db *gorm.DB) MachinePriority {
	return &MachinePriorityStore{db: db}
}

func (s *MachinePriorityStore) InitialMigration() error {
	return s.db.AutoMigrate(&model.MachinePriority{})
}

func (s *MachinePriorityStore) List(ctx context.Context) (map[string]api.Priority, error) {
	var priorities model.MachinePriorityList
	result := s.db.WithContext(ctx).Order("machine").Find(&priorities)
	if result.Error != nil {
		return nil, result.Error
	}
	return priorities.ToApiResource(), nil
}

func (s *MachinePriorityStore) Get(ctx context.Context, machine string) (*api.Priority, error) {
	var record model.MachinePriority
	result := s.db.WithContext(ctx).First(&record, "machine = ?", machine)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	priority := api.Priority(record.Priority)
	return &priority, nil
}

func (s *MachinePriorityStore) Upsert(ctx context.Context, machine string, priority api.Priority) error {
	record := model.MachinePriority{Machine: machine, Priority: string(priority)}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "machine"}},
		DoUpdates: clause.AssignmentColumns([]string{"priority", "updated_at"}),
	}).Create(&record).Error
}
