package service

import (
	"context"
	"log"
	"time"

	"github.com/creatorlens/creatorlens-go/internal/model"
)

// SnapshotWorker is the daily batch job: once per interval it walks every
// tracked channel in a plain sequential loop, pulls fresh stats, and
// appends one view snapshot per channel per calendar day. One channel's
// failure is logged and does not abort the siblings.
type SnapshotWorker struct {
	channels  channelStore
	snapshots snapshotStore
	stats     statsFetcher
	interval  time.Duration
	stopCh    chan struct{}
	now       func() time.Time
	onOutcome func(outcome string)
}

// SetOutcomeHook installs a callback invoked once per processed channel
// with "inserted", "skipped", or "failed". Used to feed metrics.
func (w *SnapshotWorker) SetOutcomeHook(fn func(outcome string)) {
	w.onOutcome = fn
}

func (w *SnapshotWorker) outcome(name string) {
	if w.onOutcome != nil {
		w.onOutcome(name)
	}
}

// NewSnapshotWorker creates a worker that ticks every interval.
func NewSnapshotWorker(channels channelStore, snapshots snapshotStore, stats statsFetcher, interval time.Duration) *SnapshotWorker {
	return &SnapshotWorker{
		channels:  channels,
		snapshots: snapshots,
		stats:     stats,
		interval:  interval,
		stopCh:    make(chan struct{}),
		now:       time.Now,
	}
}

// Start begins the periodic snapshot loop. It runs one tick immediately,
// then every interval.
func (w *SnapshotWorker) Start(ctx context.Context) {
	log.Printf("snapshot-worker: starting (interval=%s)", w.interval)

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Println("snapshot-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("snapshot-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *SnapshotWorker) Stop() {
	close(w.stopCh)
}

func (w *SnapshotWorker) tick(ctx context.Context) {
	start := time.Now()

	inserted, skipped, failed, err := w.RunOnce(ctx)
	if err != nil {
		log.Printf("snapshot-worker: error: %v", err)
		return
	}

	log.Printf("snapshot-worker: tick complete: %d inserted, %d already recorded today, %d channels failed (%s)",
		inserted, skipped, failed, time.Since(start).Round(time.Millisecond))
}

// RunOnce processes every tracked channel sequentially. A channel that
// already has a snapshot for today is skipped. The existence check and the
// insert are not transactional; accepted while the job is single-instance.
// Per-channel errors are isolated.
func (w *SnapshotWorker) RunOnce(ctx context.Context) (inserted, skipped, failed int, err error) {
	channels, err := w.channels.ListAll(ctx)
	if err != nil {
		return 0, 0, 0, err
	}

	day := w.now().UTC().Truncate(24 * time.Hour)

	for _, ch := range channels {
		exists, err := w.snapshots.ExistsForDay(ctx, ch.OwnerUserID, ch.ChannelID, day)
		if err != nil {
			log.Printf("snapshot-worker: existence check for %s failed: %v", ch.ChannelID, err)
			failed++
			w.outcome("failed")
			continue
		}
		if exists {
			skipped++
			w.outcome("skipped")
			continue
		}

		views := ch.ViewCount
		if stats, err := w.stats.GetChannelStats(ctx, ch.ChannelID); err != nil {
			// Fall back to the stored count; the day still gets a row.
			log.Printf("snapshot-worker: stats fetch for %s failed, using stored views: %v", ch.ChannelID, err)
		} else {
			views = stats.ViewCount
			ch.SubscriberCount = stats.SubscriberCount
			ch.ViewCount = stats.ViewCount
			ch.VideoCount = stats.VideoCount
			ch.Title = stats.Title
			ch.ThumbnailURL = stats.ThumbnailURL
			if err := w.channels.UpdateStats(ctx, ch); err != nil {
				log.Printf("snapshot-worker: stats update for %s failed: %v", ch.ChannelID, err)
			}
		}

		if err := w.snapshots.Insert(ctx, model.DailyViewSnapshot{
			ChannelID:   ch.ChannelID,
			OwnerUserID: ch.OwnerUserID,
			Day:         day,
			Views:       views,
		}); err != nil {
			log.Printf("snapshot-worker: insert for %s failed: %v", ch.ChannelID, err)
			failed++
			w.outcome("failed")
			continue
		}
		inserted++
		w.outcome("inserted")
	}

	return inserted, skipped, failed, nil
}
