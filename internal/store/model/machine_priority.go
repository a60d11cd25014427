package model

import (
	"time"

	api "github.com/shopfloor/schedboard/api/v1"
)

// MachinePriority holds the priority level of one machine. At most one record
// per machine, enforced by the primary key.
type MachinePriority struct {
	Machine   string `gorm:"primaryKey"`
	Priority  string `gorm:"not null"`
	UpdatedAt time.Time
}

type MachinePriorityList []MachinePriority

// ToApiResource converts the list into the canonical map form served by the
// priorities endpoint.
func (l MachinePriorityList) ToApiResource() map[string]api.Priority {
	priorities := make(map[string]api.Priority, len(l))
	for i := range l {
		priorities[l[i].Machine] = api.Priority(l[i].Priority)
	}
	return priorities
}
