package derive

import (
	"math"

	api "github.com/shopfloor/schedboard/api/v1"
)

// UnknownMaterial is the forecast key for jobs without a recognized material
// value. They are surfaced, not dropped.
const UnknownMaterial = "Unknown"

// Bucket is a named future time window, hours from now, half-open
// [Start, End).
type Bucket struct {
	Label string
	Start float64
	End   float64
}

// DefaultBuckets covers two production weeks with a catch-all beyond.
func DefaultBuckets() []Bucket {
	return []Bucket{
		{Label: "0-168h", Start: 0, End: 168},
		{Label: "168-336h", Start: 168, End: 336},
		{Label: "beyond", Start: 336, End: math.Inf(1)},
	}
}

// Forecast maps material key to bucket label to accumulated pounds.
type Forecast map[string]map[string]float64

func (f Forecast) add(material, bucket string, pounds float64) {
	if f[material] == nil {
		f[material] = map[string]float64{}
	}
	f[material][bucket] += pounds
}

// MaterialForecast projects how many pounds of each material will be consumed
// within each bucket, assuming jobs run sequentially per machine starting now
// and consume material at a uniform rate over their remaining duration.
//
// Machines run in parallel: every machine value in the snapshot, including
// ones outside the configured set, carries its own independent cumulative
// clock from hour zero. Setups advance their machine's clock but never
// consume material. Jobs with no remaining hours are zero-width, they
// contribute nothing anywhere.
func MaterialForecast(jobs []api.Job, buckets []Bucket) Forecast {
	forecast := Forecast{}

	for _, queue := range GroupByMachine(jobs) {
		clock := 0.0
		for _, j := range queue {
			remaining := RemainingHours(j)
			if remaining <= 0 {
				continue
			}
			start := clock
			end := clock + remaining
			clock = end

			material := RemainingMaterial(j)
			if material <= 0 {
				continue
			}
			key := j.Material
			if key == "" {
				key = UnknownMaterial
			}

			for _, b := range buckets {
				overlap := math.Min(end, b.End) - math.Max(start, b.Start)
				if overlap <= 0 {
					continue
				}
				forecast.add(key, b.Label, material*(overlap/remaining))
			}
		}
	}

	return forecast
}
