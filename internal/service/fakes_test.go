package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/creatorlens/creatorlens-go/internal/apperr"
	"github.com/creatorlens/creatorlens-go/internal/model"
	"github.com/creatorlens/creatorlens-go/internal/oauth"
	"github.com/creatorlens/creatorlens-go/internal/youtube"
)

// In-memory fakes standing in for the pgx repositories.

type fakeChannelStore struct {
	mu       sync.Mutex
	channels map[string]model.Channel // owner|id
}

func newFakeChannelStore() *fakeChannelStore {
	return &fakeChannelStore{channels: make(map[string]model.Channel)}
}

func key(owner, id string) string { return owner + "|" + id }

func (f *fakeChannelStore) InsertCompetitor(_ context.Context, ch model.Channel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := key(ch.OwnerUserID, ch.ChannelID)
	if _, ok := f.channels[k]; ok {
		return &apperr.ValidationError{Field: "channel", Reason: "channel is already tracked"}
	}
	f.channels[k] = ch
	return nil
}

func (f *fakeChannelStore) UpsertOwnChannel(_ context.Context, ch model.Channel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channels[key(ch.OwnerUserID, ch.ChannelID)] = ch
	return nil
}

func (f *fakeChannelStore) UpdateStats(_ context.Context, ch model.Channel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := key(ch.OwnerUserID, ch.ChannelID)
	if _, ok := f.channels[k]; !ok {
		return &apperr.NotFoundError{Resource: "channel", Query: ch.ChannelID}
	}
	f.channels[k] = ch
	return nil
}

func (f *fakeChannelStore) FindByChannelID(_ context.Context, owner, id string) (*model.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.channels[key(owner, id)]
	if !ok {
		return nil, &apperr.NotFoundError{Resource: "channel", Query: id}
	}
	return &ch, nil
}

func (f *fakeChannelStore) ListByOwner(_ context.Context, owner string) ([]model.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Channel
	for _, ch := range f.channels {
		if ch.OwnerUserID == owner {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (f *fakeChannelStore) ListAll(_ context.Context) ([]model.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Channel
	for _, ch := range f.channels {
		out = append(out, ch)
	}
	return out, nil
}

func (f *fakeChannelStore) Delete(_ context.Context, owner, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := key(owner, id)
	if _, ok := f.channels[k]; !ok {
		return &apperr.NotFoundError{Resource: "channel", Query: id}
	}
	delete(f.channels, k)
	return nil
}

type fakeVideoStore struct {
	mu     sync.Mutex
	videos map[string][]model.Video // owner|channel
}

func newFakeVideoStore() *fakeVideoStore {
	return &fakeVideoStore{videos: make(map[string][]model.Video)}
}

func (f *fakeVideoStore) InsertBatch(_ context.Context, owner string, vids []model.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range vids {
		k := key(owner, v.ChannelID)
		f.videos[k] = append(f.videos[k], v)
	}
	return nil
}

func (f *fakeVideoStore) ReplaceForChannel(ctx context.Context, owner, channel string, vids []model.Video) error {
	if err := f.DeleteByChannel(ctx, owner, channel); err != nil {
		return err
	}
	return f.InsertBatch(ctx, owner, vids)
}

func (f *fakeVideoStore) ListByChannel(_ context.Context, owner, channel string) ([]model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.videos[key(owner, channel)], nil
}

func (f *fakeVideoStore) TopByViews(_ context.Context, owner, channel string, limit int) ([]model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return youtube.TopByViews(f.videos[key(owner, channel)], limit), nil
}

func (f *fakeVideoStore) DeleteByChannel(_ context.Context, owner, channel string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.videos, key(owner, channel))
	return nil
}

type fakeSnapshotStore struct {
	mu        sync.Mutex
	rows      []model.DailyViewSnapshot
	existsErr map[string]error // channelID -> forced error
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{existsErr: make(map[string]error)}
}

func (f *fakeSnapshotStore) ExistsForDay(_ context.Context, owner, channel string, day time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.existsErr[channel]; ok {
		return false, err
	}
	for _, r := range f.rows {
		if r.OwnerUserID == owner && r.ChannelID == channel && r.Day.Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSnapshotStore) Insert(_ context.Context, snap model.DailyViewSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, snap)
	return nil
}

func (f *fakeSnapshotStore) ListByChannel(_ context.Context, owner, channel string) ([]model.DailyViewSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.DailyViewSnapshot
	for _, r := range f.rows {
		if r.OwnerUserID == owner && r.ChannelID == channel {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeUserStore struct {
	mu      sync.Mutex
	profile *model.UserProfile
}

func (f *fakeUserStore) FindByUserID(_ context.Context, userID string) (*model.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profile == nil || f.profile.UserID != userID {
		return nil, &apperr.NotFoundError{Resource: "user profile", Query: userID}
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeUserStore) UpdateTokens(_ context.Context, _, accessToken string, expiry time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile.AccessToken = accessToken
	f.profile.TokenExpiry = expiry
	return nil
}

func (f *fakeUserStore) UpdateOwnStats(_ context.Context, _ string, subs, views, vids int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile.SubscriberCount = subs
	f.profile.ViewCount = views
	f.profile.VideoCount = vids
	return nil
}

type fakeRefresher struct {
	calls int
	token *oauth.Token
	err   error
}

func (f *fakeRefresher) Refresh(_ context.Context, _ string) (*oauth.Token, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.token, nil
}

type fakeStatsFetcher struct {
	stats map[string]*youtube.ChannelStats
	errs  map[string]error
	calls int
}

func (f *fakeStatsFetcher) GetChannelStats(_ context.Context, id string) (*youtube.ChannelStats, error) {
	f.calls++
	if err, ok := f.errs[id]; ok {
		return nil, err
	}
	if s, ok := f.stats[id]; ok {
		return s, nil
	}
	return nil, errors.New("no stats configured for " + id)
}
