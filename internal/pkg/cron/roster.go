package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/medroster/roster-backend-go/internal/pkg/snapshot"
)

// RosterJobs watches the in-memory roster snapshot. Ward screens poll
// the presence endpoint continuously, so a snapshot nobody has refreshed
// in a while means the screens are showing yesterday's board.
type RosterJobs struct {
	store      *snapshot.Store
	staleAfter time.Duration
}

func NewRosterJobs(store *snapshot.Store, staleAfter time.Duration) *RosterJobs {
	return &RosterJobs{
		store:      store,
		staleAfter: staleAfter,
	}
}

func (j *RosterJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("snapshot_staleness_check", 15*time.Minute, j.CheckSnapshotStaleness)
}

func (j *RosterJobs) CheckSnapshotStaleness(ctx context.Context) error {
	age, ok := j.store.Age()
	if !ok {
		slog.Warn("Cron: No roster snapshot uploaded yet")
		return nil
	}

	if age > j.staleAfter {
		slog.Warn("Cron: Roster snapshot is stale",
			"age", age.Round(time.Minute),
			"stale_after", j.staleAfter)
		return nil
	}

	slog.Debug("Cron: Roster snapshot is fresh", "age", age.Round(time.Minute))
	return nil
}
