package model

import "time"

// Channel is a tracked YouTube channel: either the user's own channel or a
// competitor they follow. Stats are overwritten in place on refresh.
type Channel struct {
	ChannelID       string    `json:"channelId"`
	OwnerUserID     string    `json:"-"`
	Title           string    `json:"title"`
	ThumbnailURL    string    `json:"thumbnailUrl,omitempty"`
	SubscriberCount int64     `json:"subscriberCount"`
	ViewCount       int64     `json:"viewCount"`
	VideoCount      int64     `json:"videoCount"`
	IsOwnChannel    bool      `json:"isOwnChannel"`
	LastUpdated     time.Time `json:"lastUpdated"`
}

// ChannelResponse is the API response for channel lookups.
type ChannelResponse struct {
	ChannelID       string  `json:"channelId"`
	Title           string  `json:"title"`
	ThumbnailURL    string  `json:"thumbnailUrl,omitempty"`
	SubscriberCount int64   `json:"subscriberCount"`
	ViewCount       int64   `json:"viewCount"`
	VideoCount      int64   `json:"videoCount"`
	IsOwnChannel    bool    `json:"isOwnChannel"`
	Videos          []Video `json:"videos,omitempty"`
	LastUpdated     string  `json:"lastUpdated"`
}
