package v1

// Priority is the four-level machine priority scale.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// DefaultPriority is applied when a machine has no priority record.
const DefaultPriority = PriorityMedium

// Priorities lists the valid levels from most to least urgent, the order the
// priority board renders its columns in.
func Priorities() []Priority {
	return []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}
}

// StringToPriority maps s onto the priority scale, falling back to the
// default for unknown values.
func StringToPriority(s string) Priority {
	switch s {
	case string(PriorityLow):
		return PriorityLow
	case string(PriorityMedium):
		return PriorityMedium
	case string(PriorityHigh):
		return PriorityHigh
	case string(PriorityCritical):
		return PriorityCritical
	default:
		return DefaultPriority
	}
}

// IsValid reports whether p is one of the four known levels.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Rank orders priorities, critical first. Lower rank sorts earlier.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}
