// Package derive computes the read-side views of the schedule board: ordered
// machine queues, cumulative-hours projections, material consumption
// forecasts and priority groupings. Everything here is a pure function of a
// repository snapshot.
package derive

import (
	"math"
	"sort"

	api "github.com/shopfloor/schedboard/api/v1"
)

// RemainingHours is the work left on a record: total hours scaled by the
// uncompleted fraction, setup hours for setup tasks. Never negative.
func RemainingHours(j api.Job) float64 {
	hours := j.TotalHours
	if j.IsSetup() {
		hours = j.SetupHours
	}
	remaining := hours * (1 - float64(j.PercentComplete)/100)
	if remaining < 0 || math.IsNaN(remaining) {
		return 0
	}
	return remaining
}

// RemainingMaterial is the pounds of material a job has yet to consume.
// Setups hold no material.
func RemainingMaterial(j api.Job) float64 {
	if j.IsSetup() {
		return 0
	}
	remaining := j.TotalMaterial * (1 - float64(j.PercentComplete)/100)
	if remaining < 0 || math.IsNaN(remaining) {
		return 0
	}
	return remaining
}

// sortKey treats a missing sortOrder as end-of-queue; fetch order breaks
// ties because the sort is stable.
func sortKey(j api.Job) int {
	if j.SortOrder > 0 {
		return j.SortOrder
	}
	return math.MaxInt
}

// SortQueue orders one machine's jobs by sortOrder ascending, stable.
func SortQueue(jobs []api.Job) []api.Job {
	out := make([]api.Job, len(jobs))
	copy(out, jobs)
	sort.SliceStable(out, func(i, k int) bool {
		return sortKey(out[i]) < sortKey(out[k])
	})
	return out
}

// GroupByMachine partitions active (non-archived) jobs by machine, each
// queue ordered by sortOrder ascending.
func GroupByMachine(jobs []api.Job) map[string][]api.Job {
	groups := map[string][]api.Job{}
	for _, j := range jobs {
		if j.Archived {
			continue
		}
		groups[j.Machine] = append(groups[j.Machine], j)
	}
	for machine, queue := range groups {
		groups[machine] = SortQueue(queue)
	}
	return groups
}

// QueueEntry is one job in a machine queue with its scheduling projection.
// CumulativeHours is the running total of remaining work up to and including
// this job, the "hours out" signal shown to operators.
type QueueEntry struct {
	Job             api.Job
	RemainingHours  float64
	CumulativeHours float64
}

// CumulativeHours walks an ordered queue front to back, accumulating
// remaining hours. Completed jobs contribute zero without breaking the
// running total.
func CumulativeHours(ordered []api.Job) []QueueEntry {
	entries := make([]QueueEntry, 0, len(ordered))
	total := 0.0
	for _, j := range ordered {
		remaining := RemainingHours(j)
		total += remaining
		entries = append(entries, QueueEntry{
			Job:             j,
			RemainingHours:  remaining,
			CumulativeHours: total,
		})
	}
	return entries
}

// MachineQueues computes the cumulative-hours projection for every machine in
// the snapshot.
func MachineQueues(jobs []api.Job) map[string][]QueueEntry {
	queues := map[string][]QueueEntry{}
	for machine, queue := range GroupByMachine(jobs) {
		queues[machine] = CumulativeHours(queue)
	}
	return queues
}

// ArchivedJobs returns the archive listing, jobs only leave the board, they
// are never lost.
func ArchivedJobs(jobs []api.Job) []api.Job {
	var archived []api.Job
	for _, j := range jobs {
		if j.Archived {
			archived = append(archived, j)
		}
	}
	return archived
}
