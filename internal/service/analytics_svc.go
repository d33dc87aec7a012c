package service

import (
	"context"
	"log"
	"time"

	"github.com/creatorlens/creatorlens-go/internal/apperr"
	"github.com/creatorlens/creatorlens-go/internal/model"
	"github.com/creatorlens/creatorlens-go/internal/oauth"
)

// tokenRefresher is the slice of the OAuth refresher the service needs.
type tokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (*oauth.Token, error)
}

// AnalyticsService fronts every authenticated own-channel read with a
// token staleness check: the cached access token is reused until its
// stored expiry passes, then rotated through the refresher and persisted.
type AnalyticsService struct {
	users     userStore
	channels  channelStore
	refresher tokenRefresher
	stats     statsFetcher
	now       func() time.Time
}

func NewAnalyticsService(users userStore, channels channelStore, refresher tokenRefresher, stats statsFetcher) *AnalyticsService {
	return &AnalyticsService{
		users:     users,
		channels:  channels,
		refresher: refresher,
		stats:     stats,
		now:       time.Now,
	}
}

// OwnChannelStats returns the user's own-channel stats, refreshing the
// OAuth token first when the cached one has expired.
func (s *AnalyticsService) OwnChannelStats(ctx context.Context, userID string) (*model.UserProfile, error) {
	profile, err := s.users.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.RefreshToken == "" {
		return nil, &apperr.AuthError{Description: "no refresh token on file; reconnect the channel"}
	}

	if !s.now().Before(profile.TokenExpiry) {
		tok, err := s.refresher.Refresh(ctx, profile.RefreshToken)
		if err != nil {
			return nil, err
		}
		if err := s.users.UpdateTokens(ctx, userID, tok.AccessToken, tok.Expiry); err != nil {
			return nil, err
		}
		profile.AccessToken = tok.AccessToken
		profile.TokenExpiry = tok.Expiry
	}

	if profile.OwnChannelID != "" {
		stats, err := s.stats.GetChannelStats(ctx, profile.OwnChannelID)
		if err != nil {
			// Serve the cached stats rather than failing the whole read.
			log.Printf("analytics: own-channel stats fetch failed for %s: %v", profile.OwnChannelID, err)
			return profile, nil
		}
		profile.SubscriberCount = stats.SubscriberCount
		profile.ViewCount = stats.ViewCount
		profile.VideoCount = stats.VideoCount
		if err := s.users.UpdateOwnStats(ctx, userID, stats.SubscriberCount, stats.ViewCount, stats.VideoCount); err != nil {
			log.Printf("analytics: own-channel stats cache update failed: %v", err)
		}

		// Keep the own channel in the channels table so the snapshot job
		// and competitor comparisons cover it.
		own := channelFromStats(userID, stats)
		own.IsOwnChannel = true
		if err := s.channels.UpsertOwnChannel(ctx, own); err != nil {
			log.Printf("analytics: own-channel upsert failed: %v", err)
		}
	}

	return profile, nil
}
