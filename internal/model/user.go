package model

import "time"

// UserProfile holds a user's cached OAuth tokens and their own-channel
// stats. The access token is treated as stale once TokenExpiry has passed;
// staleness is decided by the caller, not by the refresher.
type UserProfile struct {
	UserID          string    `json:"userId"`
	OwnChannelID    string    `json:"ownChannelId,omitempty"`
	AccessToken     string    `json:"-"`
	RefreshToken    string    `json:"-"`
	TokenExpiry     time.Time `json:"-"`
	SubscriberCount int64     `json:"subscriberCount"`
	ViewCount       int64     `json:"viewCount"`
	VideoCount      int64     `json:"videoCount"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
