package service

import (
	"context"
	"time"

	"github.com/creatorlens/creatorlens-go/internal/model"
	"github.com/creatorlens/creatorlens-go/internal/youtube"
)

// Store interfaces consumed by the services. The pgx repositories satisfy
// them; tests substitute in-memory fakes.

type channelStore interface {
	InsertCompetitor(ctx context.Context, ch model.Channel) error
	UpsertOwnChannel(ctx context.Context, ch model.Channel) error
	UpdateStats(ctx context.Context, ch model.Channel) error
	FindByChannelID(ctx context.Context, ownerUserID, channelID string) (*model.Channel, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]model.Channel, error)
	ListAll(ctx context.Context) ([]model.Channel, error)
	Delete(ctx context.Context, ownerUserID, channelID string) error
}

type videoStore interface {
	InsertBatch(ctx context.Context, ownerUserID string, videos []model.Video) error
	ReplaceForChannel(ctx context.Context, ownerUserID, channelID string, videos []model.Video) error
	ListByChannel(ctx context.Context, ownerUserID, channelID string) ([]model.Video, error)
	TopByViews(ctx context.Context, ownerUserID, channelID string, limit int) ([]model.Video, error)
	DeleteByChannel(ctx context.Context, ownerUserID, channelID string) error
}

type snapshotStore interface {
	ExistsForDay(ctx context.Context, ownerUserID, channelID string, day time.Time) (bool, error)
	Insert(ctx context.Context, snap model.DailyViewSnapshot) error
	ListByChannel(ctx context.Context, ownerUserID, channelID string) ([]model.DailyViewSnapshot, error)
}

type scriptStore interface {
	Insert(ctx context.Context, s model.SavedScript) (*model.SavedScript, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]model.SavedScript, error)
	Find(ctx context.Context, ownerUserID string, id int64) (*model.SavedScript, error)
	UpdateContent(ctx context.Context, ownerUserID string, id int64, content string) error
	Delete(ctx context.Context, ownerUserID string, id int64) error
}

type userStore interface {
	FindByUserID(ctx context.Context, userID string) (*model.UserProfile, error)
	UpdateTokens(ctx context.Context, userID, accessToken string, expiry time.Time) error
	UpdateOwnStats(ctx context.Context, userID string, subscribers, views, videos int64) error
}

// statsFetcher is the slice of the YouTube client the snapshot worker and
// analytics service need.
type statsFetcher interface {
	GetChannelStats(ctx context.Context, channelID string) (*youtube.ChannelStats, error)
}
