package service

import (
	"context"

	api "github.com/shopfloor/schedboard/api/v1"
	"github.com/shopfloor/schedboard/internal/auth"
	"github.com/shopfloor/schedboard/internal/store"
	"go.uber.org/zap"
)

type PriorityService struct {
	store  store.Store
	policy auth.Policy
}

func NewPriorityService(s store.Store, policy auth.Policy) *PriorityService {
	if policy == nil {
		policy = auth.AllowAll{}
	}
	return &PriorityService{store: s, policy: policy}
}

func (s *PriorityService) ListPriorities(ctx context.Context) (map[string]api.Priority, error) {
	return s.store.MachinePriority().List(ctx)
}

// SetPriority upserts the priority record of one machine.
func (s *PriorityService) SetPriority(ctx context.Context, machine string, priority api.Priority, user string) error {
	if !s.policy.CanChangePriority(user) {
		return NewErrForbidden(user, "change-priority")
	}
	if !priority.IsValid() {
		return NewErrInvalidPriority(string(priority))
	}
	if err := s.store.MachinePriority().Upsert(ctx, machine, priority); err != nil {
		return err
	}
	zap.S().Named("priority_service").Infow("priority updated", "machine", machine, "priority", priority)
	return nil
}

// BatchSetPriorities upserts a set of machine priorities and reports how many
// records were written. Invalid levels fail the whole batch before any write.
func (s *PriorityService) BatchSetPriorities(ctx context.Context, priorities map[string]api.Priority, user string) (int, error) {
	if !s.policy.CanChangePriority(user) {
		return 0, NewErrForbidden(user, "change-priority")
	}
	for _, priority := range priorities {
		if !priority.IsValid() {
			return 0, NewErrInvalidPriority(string(priority))
		}
	}

	updated := 0
	for machine, priority := range priorities {
		if err := s.store.MachinePriority().Upsert(ctx, machine, priority); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}
