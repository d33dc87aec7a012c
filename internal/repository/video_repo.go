package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/creatorlens/creatorlens-go/internal/model"
)

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

const videoColumns = `video_id, channel_id, title, description, published_at,
	thumbnail_url, view_count, like_count, comment_count, is_short`

// ReplaceForChannel deletes a channel's stored videos and reinserts the
// given set, which is how a manual refresh works. The delete and the
// inserts are sequential, not transactional.
func (r *VideoRepo) ReplaceForChannel(ctx context.Context, ownerUserID, channelID string, videos []model.Video) error {
	if err := r.DeleteByChannel(ctx, ownerUserID, channelID); err != nil {
		return err
	}
	return r.InsertBatch(ctx, ownerUserID, videos)
}

// InsertBatch inserts videos in one round trip.
func (r *VideoRepo) InsertBatch(ctx context.Context, ownerUserID string, videos []model.Video) error {
	if len(videos) == 0 {
		return nil
	}

	query := `
		INSERT INTO videos (video_id, channel_id, owner_user_id, title, description,
		                    published_at, thumbnail_url, view_count, like_count, comment_count, is_short)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	batch := &pgx.Batch{}
	for _, v := range videos {
		batch.Queue(query,
			v.VideoID, v.ChannelID, ownerUserID, v.Title, v.Description,
			v.PublishedAt, v.ThumbnailURL, v.ViewCount, v.LikeCount, v.CommentCount, v.IsShort,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range videos {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// ListByChannel returns a channel's stored videos in stored (upstream) order.
func (r *VideoRepo) ListByChannel(ctx context.Context, ownerUserID, channelID string) ([]model.Video, error) {
	query := `SELECT ` + videoColumns + `
		FROM videos
		WHERE owner_user_id = $1 AND channel_id = $2
		ORDER BY published_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerUserID, channelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanVideos(rows)
}

// TopByViews returns the channel's stored videos ranked by view count.
func (r *VideoRepo) TopByViews(ctx context.Context, ownerUserID, channelID string, limit int) ([]model.Video, error) {
	query := `SELECT ` + videoColumns + `
		FROM videos
		WHERE owner_user_id = $1 AND channel_id = $2
		ORDER BY view_count DESC
		LIMIT $3`

	rows, err := r.pool.Query(ctx, query, ownerUserID, channelID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanVideos(rows)
}

// DeleteByChannel removes all stored videos for one channel.
func (r *VideoRepo) DeleteByChannel(ctx context.Context, ownerUserID, channelID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM videos WHERE owner_user_id = $1 AND channel_id = $2`,
		ownerUserID, channelID)
	return err
}

func scanVideos(rows pgx.Rows) ([]model.Video, error) {
	var videos []model.Video
	for rows.Next() {
		var v model.Video
		err := rows.Scan(
			&v.VideoID, &v.ChannelID, &v.Title, &v.Description, &v.PublishedAt,
			&v.ThumbnailURL, &v.ViewCount, &v.LikeCount, &v.CommentCount, &v.IsShort,
		)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}
