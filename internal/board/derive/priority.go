package derive

import (
	api "github.com/shopfloor/schedboard/api/v1"
)

// EffectivePriority resolves a job's priority: an explicit per-job override
// wins, then the machine's priority record, then the default.
func EffectivePriority(j api.Job, machinePriorities map[string]api.Priority) api.Priority {
	if j.PriorityOverride != "" && j.PriorityOverride.IsValid() {
		return j.PriorityOverride
	}
	if p, ok := machinePriorities[j.Machine]; ok && p.IsValid() {
		return p
	}
	return api.DefaultPriority
}

// GroupByPriority buckets active jobs into the four priority levels. The
// returned map always contains all four keys so the priority board renders
// empty columns rather than dropping them.
func GroupByPriority(jobs []api.Job, machinePriorities map[string]api.Priority) map[api.Priority][]api.Job {
	groups := map[api.Priority][]api.Job{}
	for _, p := range api.Priorities() {
		groups[p] = []api.Job{}
	}
	for _, j := range jobs {
		if j.Archived {
			continue
		}
		p := EffectivePriority(j, machinePriorities)
		groups[p] = append(groups[p], j)
	}
	return groups
}
