package board

import (
	"context"
	"time"

	jitterbug "github.com/lthibault/jitterbug/v2"
	"github.com/shopfloor/schedboard/pkg/metrics"
	"go.uber.org/zap"
)

// Refresher periodically re-fetches jobs and priorities so divergent views
// converge: the board has no push channel, last-writer-wins at the gateway
// plus this poll is the whole consistency story. It stops when its context is
// cancelled.
type Refresher struct {
	repo     *Repository
	interval time.Duration

	// OnRefresh, when set, runs after every completed cycle. The dashboard
	// hangs its re-render here.
	OnRefresh func()
}

func NewRefresher(repo *Repository, interval time.Duration) *Refresher {
	return &Refresher{repo: repo, interval: interval}
}

// Run blocks until ctx is done. The tick is jittered so a fleet of dashboards
// does not stampede the gateway in lockstep.
func (r *Refresher) Run(ctx context.Context) {
	ticker := jitterbug.New(r.interval, &jitterbug.Norm{Stdev: r.interval / 10})
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.S().Named("board").Info("refresh loop stopped")
			return
		case <-ticker.C:
		}

		r.RefreshOnce(ctx)
	}
}

// RefreshOnce performs a single reconciling fetch of both collections.
func (r *Refresher) RefreshOnce(ctx context.Context) {
	start := time.Now()
	if _, err := r.repo.FetchAll(ctx); err != nil {
		zap.S().Named("board").Warnw("refresh: jobs fetch failed", "error", err)
	}
	if _, err := r.repo.FetchPriorities(ctx); err != nil {
		zap.S().Named("board").Warnw("refresh: priorities fetch failed", "error", err)
	}
	metrics.ObserveRefreshDuration(time.Since(start).Seconds())

	if r.OnRefresh != nil {
		r.OnRefresh()
	}
}
