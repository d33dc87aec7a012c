package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/creatorlens/creatorlens-go/internal/apperr"
	"github.com/creatorlens/creatorlens-go/internal/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// FindByUserID returns a user's profile with cached tokens and stats.
func (r *UserRepo) FindByUserID(ctx context.Context, userID string) (*model.UserProfile, error) {
	var u model.UserProfile
	var expiry *time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, own_channel_id, access_token, refresh_token, token_expiry,
		       subscriber_count, view_count, video_count, updated_at
		FROM user_profiles
		WHERE user_id = $1`, userID).Scan(
		&u.UserID, &u.OwnChannelID, &u.AccessToken, &u.RefreshToken, &expiry,
		&u.SubscriberCount, &u.ViewCount, &u.VideoCount, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &apperr.NotFoundError{Resource: "user profile", Query: userID}
	}
	if err != nil {
		return nil, err
	}
	if expiry != nil {
		u.TokenExpiry = *expiry
	}
	return &u, nil
}

// UpdateTokens persists a rotated access token and its absolute expiry.
// The refresh token itself is only replaced when the caller got a new one.
func (r *UserRepo) UpdateTokens(ctx context.Context, userID, accessToken string, expiry time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE user_profiles
		SET access_token = $1, token_expiry = $2, updated_at = NOW()
		WHERE user_id = $3`, accessToken, expiry, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &apperr.NotFoundError{Resource: "user profile", Query: userID}
	}
	return nil
}

// UpdateOwnStats caches the user's own-channel stats on the profile.
func (r *UserRepo) UpdateOwnStats(ctx context.Context, userID string, subscribers, views, videos int64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE user_profiles
		SET subscriber_count = $1, view_count = $2, video_count = $3, updated_at = NOW()
		WHERE user_id = $4`, subscribers, views, videos, userID)
	return err
}
