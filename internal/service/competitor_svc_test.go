package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/creatorlens/creatorlens-go/internal/apperr"
	"github.com/creatorlens/creatorlens-go/internal/model"
	"github.com/creatorlens/creatorlens-go/internal/youtube"
)

const (
	testOwner   = "a1b2c3d4e5f6"
	testChannel = "UCabcdefghijklmnopqrstuv"
)

// newDataAPIStub serves all four Data API endpoints and counts hits per path.
func newDataAPIStub(t *testing.T) (*youtube.Client, map[string]int) {
	t.Helper()
	hits := make(map[string]int)

	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		hits["/search"]++
		w.Write([]byte(`{"items":[{"id":{"channelId":"` + testChannel + `"}}]}`))
	})
	mux.HandleFunc("/channels", func(w http.ResponseWriter, r *http.Request) {
		hits["/channels"]++
		w.Write([]byte(`{"items":[{
			"id":"` + testChannel + `",
			"snippet":{"title":"Creator X","thumbnails":{"high":{"url":"https://i.ytimg.com/t.jpg"}}},
			"statistics":{"subscriberCount":"1000","viewCount":"99999","videoCount":"4"},
			"contentDetails":{"relatedPlaylists":{"uploads":"UUabcdefghijklmnopqrstuv"}}}]}`))
	})
	mux.HandleFunc("/playlistItems", func(w http.ResponseWriter, r *http.Request) {
		hits["/playlistItems"]++
		w.Write([]byte(`{"items":[
			{"contentDetails":{"videoId":"v1"}},
			{"contentDetails":{"videoId":"v2"}},
			{"contentDetails":{"videoId":"v3"}},
			{"contentDetails":{"videoId":"v4"}}]}`))
	})
	mux.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		hits["/videos"]++
		w.Write([]byte(`{"items":[
			{"id":"v1","snippet":{"title":"A"},"statistics":{"viewCount":"5"},"contentDetails":{"duration":"PT2M"}},
			{"id":"v2","snippet":{"title":"B"},"statistics":{"viewCount":"50"},"contentDetails":{"duration":"PT45S"}},
			{"id":"v3","snippet":{"title":"C"},"statistics":{"viewCount":"10"},"contentDetails":{"duration":"PT3M"}},
			{"id":"v4","snippet":{"title":"D"},"statistics":{"viewCount":"7"},"contentDetails":{"duration":"PT4M"}}]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return youtube.NewClient("test-key", youtube.WithBaseURL(srv.URL)), hits
}

func newCompetitorService(t *testing.T) (*CompetitorService, *fakeChannelStore, *fakeVideoStore, map[string]int) {
	t.Helper()
	yt, hits := newDataAPIStub(t)
	channels := newFakeChannelStore()
	videos := newFakeVideoStore()
	svc := NewCompetitorService(youtube.NewResolver(yt), yt, channels, videos, newFakeSnapshotStore(), nil)
	return svc, channels, videos, hits
}

func TestAddCompetitor_EndToEnd(t *testing.T) {
	svc, channels, videos, hits := newCompetitorService(t)

	resp, err := svc.AddCompetitor(context.Background(), testOwner, "@creatorX")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Documented call counts: one search for the handle, one stats fetch,
	// and the lister's three calls (one of which is another channels.list).
	if hits["/search"] != 1 {
		t.Errorf("search calls = %d, want 1", hits["/search"])
	}
	if hits["/channels"] != 2 {
		t.Errorf("channels calls = %d, want 2 (stats + uploads lookup)", hits["/channels"])
	}
	if hits["/playlistItems"] != 1 || hits["/videos"] != 1 {
		t.Errorf("lister calls = %d/%d, want 1/1", hits["/playlistItems"], hits["/videos"])
	}

	// Channel row persisted with normalized stats.
	ch, err := channels.FindByChannelID(context.Background(), testOwner, testChannel)
	if err != nil {
		t.Fatalf("channel not persisted: %v", err)
	}
	if ch.SubscriberCount != 1000 || ch.ViewCount != 99999 {
		t.Errorf("persisted stats = %d/%d", ch.SubscriberCount, ch.ViewCount)
	}

	// Exactly the top-3-by-views videos persisted: v2 (50), v3 (10), v4 (7).
	stored, _ := videos.ListByChannel(context.Background(), testOwner, testChannel)
	if len(stored) != 3 {
		t.Fatalf("persisted videos = %d, want 3", len(stored))
	}
	for i, want := range []string{"v2", "v3", "v4"} {
		if stored[i].VideoID != want {
			t.Errorf("position %d: got %s, want %s", i, stored[i].VideoID, want)
		}
	}

	if len(resp.Videos) != 3 {
		t.Errorf("response videos = %d, want 3", len(resp.Videos))
	}
}

func TestAddCompetitor_DuplicateRejected(t *testing.T) {
	svc, _, _, _ := newCompetitorService(t)

	if _, err := svc.AddCompetitor(context.Background(), testOwner, "@creatorX"); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	_, err := svc.AddCompetitor(context.Background(), testOwner, "@creatorX")
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError for duplicate, got %v", err)
	}
}

func TestRefreshCompetitor_ReplacesVideos(t *testing.T) {
	svc, _, videos, _ := newCompetitorService(t)
	ctx := context.Background()

	if _, err := svc.AddCompetitor(ctx, testOwner, "@creatorX"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.RefreshCompetitor(ctx, testOwner, testChannel); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	stored, _ := videos.ListByChannel(ctx, testOwner, testChannel)
	if len(stored) != 3 {
		t.Errorf("videos after refresh = %d, want 3 (delete + reinsert, no accumulation)", len(stored))
	}
}

func TestRefreshCompetitor_UnknownChannel(t *testing.T) {
	svc, _, _, _ := newCompetitorService(t)

	_, err := svc.RefreshCompetitor(context.Background(), testOwner, testChannel)
	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
}

func TestRemoveCompetitor_DeletesChannelAndVideos(t *testing.T) {
	svc, channels, videos, _ := newCompetitorService(t)
	ctx := context.Background()

	if _, err := svc.AddCompetitor(ctx, testOwner, "@creatorX"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.RemoveCompetitor(ctx, testOwner, testChannel); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if _, err := channels.FindByChannelID(ctx, testOwner, testChannel); !apperr.NotFound(err) {
		t.Errorf("channel should be gone, got %v", err)
	}
	stored, _ := videos.ListByChannel(ctx, testOwner, testChannel)
	if len(stored) != 0 {
		t.Errorf("videos should be gone, got %d", len(stored))
	}
}

func TestGetViewHistory_ScopedToTrackedChannel(t *testing.T) {
	yt, _ := newDataAPIStub(t)
	channels := newFakeChannelStore()
	snapshots := newFakeSnapshotStore()
	svc := NewCompetitorService(youtube.NewResolver(yt), yt, channels, newFakeVideoStore(), snapshots, nil)
	ctx := context.Background()

	if _, err := svc.AddCompetitor(ctx, testOwner, "@creatorX"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		snapshots.Insert(ctx, model.DailyViewSnapshot{
			ChannelID:   testChannel,
			OwnerUserID: testOwner,
			Day:         day.AddDate(0, 0, i),
			Views:       int64(100 + i),
		})
	}

	history, err := svc.GetViewHistory(ctx, testOwner, testChannel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history = %d rows, want 2", len(history))
	}

	// Untracked channel yields NotFound, not an empty list.
	_, err = svc.GetViewHistory(ctx, testOwner, "UCzzzzzzzzzzzzzzzzzzzzzz")
	if !apperr.NotFound(err) {
		t.Errorf("want NotFoundError for untracked channel, got %v", err)
	}
}

func TestGetTopVideos_UsesStoredRanking(t *testing.T) {
	svc, _, _, _ := newCompetitorService(t)
	ctx := context.Background()

	if _, err := svc.AddCompetitor(ctx, testOwner, "@creatorX"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	top, err := svc.GetTopVideos(ctx, testOwner, testChannel, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top) != 2 || top[0].VideoID != "v2" || top[1].VideoID != "v3" {
		t.Errorf("top videos = %v", top)
	}
}
