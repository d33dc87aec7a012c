package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/creatorlens/creatorlens-go/internal/model"
	"github.com/creatorlens/creatorlens-go/internal/youtube"
)

const (
	// DefaultFetchLimit is how many uploads are pulled per channel before
	// ranking (one playlist page).
	DefaultFetchLimit = 25
	// DefaultKeepTop is how many ranked videos are persisted per channel.
	DefaultKeepTop = 3
)

// CompetitorService orchestrates the channel pipeline: resolve the user's
// input, fetch stats and uploads, rank by views, persist. Each step runs
// sequentially; a failure anywhere aborts the whole operation.
type CompetitorService struct {
	resolver   *youtube.Resolver
	yt         *youtube.Client
	channels   channelStore
	videos     videoStore
	snapshots  snapshotStore
	cache      *CacheService
	fetchLimit int
	keepTop    int
}

func NewCompetitorService(resolver *youtube.Resolver, yt *youtube.Client, channels channelStore, videos videoStore, snapshots snapshotStore, cache *CacheService) *CompetitorService {
	return &CompetitorService{
		resolver:   resolver,
		yt:         yt,
		channels:   channels,
		videos:     videos,
		snapshots:  snapshots,
		cache:      cache,
		fetchLimit: DefaultFetchLimit,
		keepTop:    DefaultKeepTop,
	}
}

// AddCompetitor resolves input to a canonical channel ID, fetches its stats
// and uploads, and persists the channel row plus its top videos by views.
func (s *CompetitorService) AddCompetitor(ctx context.Context, ownerUserID, input string) (*model.ChannelResponse, error) {
	channelID, err := s.resolver.Resolve(ctx, input)
	if err != nil {
		return nil, err
	}

	stats, err := s.yt.GetChannelStats(ctx, channelID)
	if err != nil {
		return nil, err
	}

	uploads, err := s.yt.ListUploads(ctx, channelID, s.fetchLimit)
	if err != nil {
		return nil, err
	}
	top := youtube.TopByViews(uploads, s.keepTop)

	ch := channelFromStats(ownerUserID, stats)
	if err := s.channels.InsertCompetitor(ctx, ch); err != nil {
		return nil, err
	}
	if err := s.videos.InsertBatch(ctx, ownerUserID, top); err != nil {
		return nil, err
	}

	resp := buildChannelResponse(ch, top)
	if s.cache != nil {
		if err := s.cache.SetChannel(ctx, ownerUserID, channelID, resp); err != nil {
			log.Printf("cache: channel set error: %v", err)
		}
	}
	return resp, nil
}

// RefreshCompetitor overwrites the channel's stats in place and replaces
// its stored videos with a fresh ranked fetch.
func (s *CompetitorService) RefreshCompetitor(ctx context.Context, ownerUserID, channelID string) (*model.ChannelResponse, error) {
	stats, err := s.yt.GetChannelStats(ctx, channelID)
	if err != nil {
		return nil, err
	}

	uploads, err := s.yt.ListUploads(ctx, channelID, s.fetchLimit)
	if err != nil {
		return nil, err
	}
	top := youtube.TopByViews(uploads, s.keepTop)

	ch := channelFromStats(ownerUserID, stats)
	if err := s.channels.UpdateStats(ctx, ch); err != nil {
		return nil, err
	}
	if err := s.videos.ReplaceForChannel(ctx, ownerUserID, channelID, top); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateChannel(ctx, ownerUserID, channelID); err != nil {
			log.Printf("cache: channel invalidate error: %v", err)
		}
	}
	return buildChannelResponse(ch, top), nil
}

// RemoveCompetitor deletes the channel row and then its videos. The two
// deletes are sequential, not transactional; saved scripts never cascade.
func (s *CompetitorService) RemoveCompetitor(ctx context.Context, ownerUserID, channelID string) error {
	if err := s.channels.Delete(ctx, ownerUserID, channelID); err != nil {
		return err
	}
	if err := s.videos.DeleteByChannel(ctx, ownerUserID, channelID); err != nil {
		log.Printf("competitor: video cleanup for %s failed: %v", channelID, err)
	}
	if s.cache != nil {
		if err := s.cache.InvalidateChannel(ctx, ownerUserID, channelID); err != nil {
			log.Printf("cache: channel invalidate error: %v", err)
		}
	}
	return nil
}

// GetChannelData returns one tracked channel with its stored videos.
// Cache-aside: Redis first, then Postgres, then populate.
func (s *CompetitorService) GetChannelData(ctx context.Context, ownerUserID, channelID string) (*model.ChannelResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.GetChannel(ctx, ownerUserID, channelID)
		if err != nil {
			log.Printf("cache: channel get error: %v", err)
		} else if cached != nil {
			var resp model.ChannelResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	ch, err := s.channels.FindByChannelID(ctx, ownerUserID, channelID)
	if err != nil {
		return nil, err
	}
	videos, err := s.videos.ListByChannel(ctx, ownerUserID, channelID)
	if err != nil {
		return nil, err
	}

	resp := buildChannelResponse(*ch, videos)
	if s.cache != nil {
		if err := s.cache.SetChannel(ctx, ownerUserID, channelID, resp); err != nil {
			log.Printf("cache: channel set error: %v", err)
		}
	}
	return resp, nil
}

// ListChannels returns every channel the user tracks.
func (s *CompetitorService) ListChannels(ctx context.Context, ownerUserID string) ([]model.Channel, error) {
	return s.channels.ListByOwner(ctx, ownerUserID)
}

// GetViewHistory returns the channel's daily view snapshots, oldest first.
// The channel must exist for the owner; an untracked channel is a NotFound.
func (s *CompetitorService) GetViewHistory(ctx context.Context, ownerUserID, channelID string) ([]model.DailyViewSnapshot, error) {
	if _, err := s.channels.FindByChannelID(ctx, ownerUserID, channelID); err != nil {
		return nil, err
	}
	return s.snapshots.ListByChannel(ctx, ownerUserID, channelID)
}

// GetTopVideos returns the stored videos ranked by view count.
func (s *CompetitorService) GetTopVideos(ctx context.Context, ownerUserID, channelID string, limit int) ([]model.Video, error) {
	if limit <= 0 {
		limit = s.keepTop
	}
	return s.videos.TopByViews(ctx, ownerUserID, channelID, limit)
}

func channelFromStats(ownerUserID string, stats *youtube.ChannelStats) model.Channel {
	return model.Channel{
		ChannelID:       stats.ChannelID,
		OwnerUserID:     ownerUserID,
		Title:           stats.Title,
		ThumbnailURL:    stats.ThumbnailURL,
		SubscriberCount: stats.SubscriberCount,
		ViewCount:       stats.ViewCount,
		VideoCount:      stats.VideoCount,
		LastUpdated:     time.Now().UTC(),
	}
}

func buildChannelResponse(ch model.Channel, videos []model.Video) *model.ChannelResponse {
	if videos == nil {
		videos = []model.Video{}
	}
	return &model.ChannelResponse{
		ChannelID:       ch.ChannelID,
		Title:           ch.Title,
		ThumbnailURL:    ch.ThumbnailURL,
		SubscriberCount: ch.SubscriberCount,
		ViewCount:       ch.ViewCount,
		VideoCount:      ch.VideoCount,
		IsOwnChannel:    ch.IsOwnChannel,
		Videos:          videos,
		LastUpdated:     ch.LastUpdated.Format(time.RFC3339),
	}
}
