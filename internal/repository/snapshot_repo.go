package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/creatorlens/creatorlens-go/internal/model"
)

type SnapshotRepo struct {
	pool *pgxpool.Pool
}

func NewSnapshotRepo(pool *pgxpool.Pool) *SnapshotRepo {
	return &SnapshotRepo{pool: pool}
}

// ExistsForDay reports whether a snapshot was already recorded for the
// channel on the given calendar day. The batch job checks this before
// inserting; the check and the insert are not one transaction, which is
// accepted while the job runs single-instance.
func (r *SnapshotRepo) ExistsForDay(ctx context.Context, ownerUserID, channelID string, day time.Time) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM daily_view_snapshots
			WHERE owner_user_id = $1 AND channel_id = $2 AND day = $3
		)`, ownerUserID, channelID, day.UTC().Truncate(24*time.Hour)).Scan(&exists)
	return exists, err
}

// Insert appends one snapshot row. Rows are never updated or deleted.
func (r *SnapshotRepo) Insert(ctx context.Context, snap model.DailyViewSnapshot) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO daily_view_snapshots (channel_id, owner_user_id, day, views)
		VALUES ($1, $2, $3, $4)`,
		snap.ChannelID, snap.OwnerUserID, snap.Day.UTC().Truncate(24*time.Hour), snap.Views)
	return err
}

// ListByChannel returns a channel's snapshots in day order, oldest first.
func (r *SnapshotRepo) ListByChannel(ctx context.Context, ownerUserID, channelID string) ([]model.DailyViewSnapshot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT channel_id, owner_user_id, day, views
		FROM daily_view_snapshots
		WHERE owner_user_id = $1 AND channel_id = $2
		ORDER BY day ASC`, ownerUserID, channelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []model.DailyViewSnapshot
	for rows.Next() {
		var s model.DailyViewSnapshot
		if err := rows.Scan(&s.ChannelID, &s.OwnerUserID, &s.Day, &s.Views); err != nil {
			return nil, err
		}
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}
