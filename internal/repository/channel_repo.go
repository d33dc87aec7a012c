package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/creatorlens/creatorlens-go/internal/apperr"
	"github.com/creatorlens/creatorlens-go/internal/model"
)

const uniqueViolation = "23505"

type ChannelRepo struct {
	pool *pgxpool.Pool
}

func NewChannelRepo(pool *pgxpool.Pool) *ChannelRepo {
	return &ChannelRepo{pool: pool}
}

const channelColumns = `channel_id, owner_user_id, title, thumbnail_url,
	subscriber_count, view_count, video_count, is_own_channel, last_updated`

// InsertCompetitor adds a competitor channel for the owning user. A channel
// already tracked by the same user surfaces as a ValidationError.
func (r *ChannelRepo) InsertCompetitor(ctx context.Context, ch model.Channel) error {
	query := `
		INSERT INTO channels (channel_id, owner_user_id, title, thumbnail_url,
		                      subscriber_count, view_count, video_count, is_own_channel)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE)`

	_, err := r.pool.Exec(ctx, query,
		ch.ChannelID, ch.OwnerUserID, ch.Title, ch.ThumbnailURL,
		ch.SubscriberCount, ch.ViewCount, ch.VideoCount,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &apperr.ValidationError{Field: "channel", Reason: "channel is already tracked"}
	}
	return err
}

// UpsertOwnChannel records or refreshes the user's own channel row.
// The partial unique index keeps it to one own channel per user.
func (r *ChannelRepo) UpsertOwnChannel(ctx context.Context, ch model.Channel) error {
	query := `
		INSERT INTO channels (channel_id, owner_user_id, title, thumbnail_url,
		                      subscriber_count, view_count, video_count, is_own_channel)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		ON CONFLICT (owner_user_id, channel_id) DO UPDATE
		SET title = EXCLUDED.title, thumbnail_url = EXCLUDED.thumbnail_url,
		    subscriber_count = EXCLUDED.subscriber_count,
		    view_count = EXCLUDED.view_count, video_count = EXCLUDED.video_count,
		    last_updated = NOW()`

	_, err := r.pool.Exec(ctx, query,
		ch.ChannelID, ch.OwnerUserID, ch.Title, ch.ThumbnailURL,
		ch.SubscriberCount, ch.ViewCount, ch.VideoCount,
	)
	return err
}

// UpdateStats overwrites a tracked channel's stats in place (manual refresh).
func (r *ChannelRepo) UpdateStats(ctx context.Context, ch model.Channel) error {
	query := `
		UPDATE channels
		SET title = $1, thumbnail_url = $2, subscriber_count = $3,
		    view_count = $4, video_count = $5, last_updated = NOW()
		WHERE owner_user_id = $6 AND channel_id = $7`

	tag, err := r.pool.Exec(ctx, query,
		ch.Title, ch.ThumbnailURL, ch.SubscriberCount, ch.ViewCount, ch.VideoCount,
		ch.OwnerUserID, ch.ChannelID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &apperr.NotFoundError{Resource: "channel", Query: ch.ChannelID}
	}
	return nil
}

// FindByChannelID returns one tracked channel scoped to its owner.
func (r *ChannelRepo) FindByChannelID(ctx context.Context, ownerUserID, channelID string) (*model.Channel, error) {
	query := `SELECT ` + channelColumns + `
		FROM channels
		WHERE owner_user_id = $1 AND channel_id = $2`

	var ch model.Channel
	err := r.pool.QueryRow(ctx, query, ownerUserID, channelID).Scan(
		&ch.ChannelID, &ch.OwnerUserID, &ch.Title, &ch.ThumbnailURL,
		&ch.SubscriberCount, &ch.ViewCount, &ch.VideoCount, &ch.IsOwnChannel, &ch.LastUpdated,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &apperr.NotFoundError{Resource: "channel", Query: channelID}
	}
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// ListByOwner returns all channels tracked by a user, own channel first.
func (r *ChannelRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]model.Channel, error) {
	query := `SELECT ` + channelColumns + `
		FROM channels
		WHERE owner_user_id = $1
		ORDER BY is_own_channel DESC, last_updated DESC`

	rows, err := r.pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanChannels(rows)
}

// ListAll returns every tracked channel across all users, for the daily
// snapshot job.
func (r *ChannelRepo) ListAll(ctx context.Context) ([]model.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM channels ORDER BY owner_user_id, channel_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanChannels(rows)
}

// Delete removes a competitor channel. Videos are cleaned up separately by
// the caller; the two deletes are not transactional.
func (r *ChannelRepo) Delete(ctx context.Context, ownerUserID, channelID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM channels WHERE owner_user_id = $1 AND channel_id = $2 AND NOT is_own_channel`,
		ownerUserID, channelID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &apperr.NotFoundError{Resource: "channel", Query: channelID}
	}
	return nil
}

func scanChannels(rows pgx.Rows) ([]model.Channel, error) {
	var channels []model.Channel
	for rows.Next() {
		var ch model.Channel
		err := rows.Scan(
			&ch.ChannelID, &ch.OwnerUserID, &ch.Title, &ch.ThumbnailURL,
			&ch.SubscriberCount, &ch.ViewCount, &ch.VideoCount, &ch.IsOwnChannel, &ch.LastUpdated,
		)
		if err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}
