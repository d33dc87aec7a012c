// Package youtube is a thin client for the YouTube Data API v3 public-data
// endpoints: channel search, channel statistics, playlist items and video
// details. All calls use an API key as a query parameter; no OAuth.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/creatorlens/creatorlens-go/internal/apperr"
	"github.com/creatorlens/creatorlens-go/internal/model"
)

// DefaultBaseURL is the YouTube Data API v3 endpoint.
const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

// MaxPlaylistPage is the upstream cap on playlistItems.list page size.
const MaxPlaylistPage = 50

// Client calls the YouTube Data API. Each method issues the documented
// number of sequential HTTP calls; there is no retry and no pagination.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
	onCall  func(op string, status int)
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithCallHook registers a hook invoked after every upstream call,
// with the endpoint name and HTTP status (0 on transport failure).
func WithCallHook(fn func(op string, status int)) Option {
	return func(c *Client) { c.onCall = fn }
}

// NewClient creates a Data API client with the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ChannelStats is the normalized public-stats record for a channel.
// Counts absent or non-numeric upstream default to 0.
type ChannelStats struct {
	ChannelID       string
	Title           string
	ThumbnailURL    string
	SubscriberCount int64
	ViewCount       int64
	VideoCount      int64
}

// SearchChannel runs one channel search and returns the first result's
// channel ID. Zero results yield a NotFoundError.
func (c *Client) SearchChannel(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "channel")
	params.Set("q", query)
	params.Set("maxResults", "1")

	var resp searchListResponse
	if err := c.get(ctx, "search.list", "/search", params, &resp); err != nil {
		return "", err
	}
	if len(resp.Items) == 0 {
		return "", &apperr.NotFoundError{Resource: "channel", Query: query}
	}
	return resp.Items[0].ID.ChannelID, nil
}

// GetChannelStats fetches title, thumbnail and counts for a canonical
// channel ID in a single channels.list call.
func (c *Client) GetChannelStats(ctx context.Context, channelID string) (*ChannelStats, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("id", channelID)

	var resp channelListResponse
	if err := c.get(ctx, "channels.list", "/channels", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, &apperr.NotFoundError{Resource: "channel", Query: channelID}
	}

	item := resp.Items[0]
	return &ChannelStats{
		ChannelID:       item.ID,
		Title:           item.Snippet.Title,
		ThumbnailURL:    item.Snippet.Thumbnails.best(),
		SubscriberCount: parseCount(item.Statistics.SubscriberCount),
		ViewCount:       parseCount(item.Statistics.ViewCount),
		VideoCount:      parseCount(item.Statistics.VideoCount),
	}, nil
}

// ListUploads fetches up to maxResults of the channel's uploaded videos in
// playlist order (typically reverse-chronological). Three sequential calls:
// uploads playlist lookup, one playlist page, one batched video details
// call. A failure on any leg aborts the whole fetch; there is no
// partial-result fallback.
func (c *Client) ListUploads(ctx context.Context, channelID string, maxResults int) ([]model.Video, error) {
	if maxResults < 1 {
		maxResults = 1
	}
	if maxResults > MaxPlaylistPage {
		maxResults = MaxPlaylistPage
	}

	// (a) uploads playlist ID
	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("id", channelID)

	var chResp channelListResponse
	if err := c.get(ctx, "channels.list", "/channels", params, &chResp); err != nil {
		return nil, err
	}
	if len(chResp.Items) == 0 {
		return nil, &apperr.NotFoundError{Resource: "channel", Query: channelID}
	}
	playlistID := chResp.Items[0].ContentDetails.RelatedPlaylists.Uploads
	if playlistID == "" {
		return nil, &apperr.NotFoundError{Resource: "uploads playlist", Query: channelID}
	}

	// (b) one page of playlist entries, no pagination cursor
	params = url.Values{}
	params.Set("part", "contentDetails")
	params.Set("playlistId", playlistID)
	params.Set("maxResults", strconv.Itoa(maxResults))

	var plResp playlistItemsResponse
	if err := c.get(ctx, "playlistItems.list", "/playlistItems", params, &plResp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(plResp.Items))
	for _, it := range plResp.Items {
		if it.ContentDetails.VideoID != "" {
			ids = append(ids, it.ContentDetails.VideoID)
		}
	}
	if len(ids) == 0 {
		return []model.Video{}, nil
	}

	// (c) batched details for all returned IDs in a single call
	params = url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("id", strings.Join(ids, ","))

	var vResp videoListResponse
	if err := c.get(ctx, "videos.list", "/videos", params, &vResp); err != nil {
		return nil, err
	}

	byID := make(map[string]videoItem, len(vResp.Items))
	for _, it := range vResp.Items {
		byID[it.ID] = it
	}

	// Preserve playlist order, not videos.list response order.
	videos := make([]model.Video, 0, len(ids))
	for _, id := range ids {
		it, ok := byID[id]
		if !ok {
			continue
		}
		publishedAt, _ := time.Parse(time.RFC3339, it.Snippet.PublishedAt)
		videos = append(videos, model.Video{
			VideoID:      it.ID,
			ChannelID:    channelID,
			Title:        it.Snippet.Title,
			Description:  it.Snippet.Description,
			PublishedAt:  publishedAt,
			ThumbnailURL: it.Snippet.Thumbnails.best(),
			ViewCount:    parseCount(it.Statistics.ViewCount),
			LikeCount:    parseCount(it.Statistics.LikeCount),
			CommentCount: parseCount(it.Statistics.CommentCount),
			IsShort:      IsShort(it.ContentDetails.Duration),
		})
	}
	return videos, nil
}

func (c *Client) get(ctx context.Context, op, path string, params url.Values, out any) error {
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return &apperr.UpstreamError{Op: op, Err: err}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.hook(op, 0)
		return &apperr.UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	c.hook(op, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &apperr.UpstreamError{Op: op, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &apperr.UpstreamError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) hook(op string, status int) {
	if c.onCall != nil {
		c.onCall(op, status)
	}
}

// parseCount converts an upstream string count to int64, defaulting to 0
// when the field is absent or non-numeric.
func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
