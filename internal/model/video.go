package model

import "time"

// Video is one uploaded video of a tracked channel. IsShort is derived once
// at fetch time from the encoded duration (<=60s) and never re-derived.
type Video struct {
	VideoID      string    `json:"videoId"`
	ChannelID    string    `json:"channelId"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	PublishedAt  time.Time `json:"publishedAt"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	ViewCount    int64     `json:"viewCount"`
	LikeCount    int64     `json:"likeCount"`
	CommentCount int64     `json:"commentCount"`
	IsShort      bool      `json:"isShort"`
}
