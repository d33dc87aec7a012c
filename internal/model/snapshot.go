package model

import "time"

// DailyViewSnapshot records one channel's cumulative view count for one
// calendar day. Rows are append-only: the batch job inserts at most one per
// (channel, owner, day).
type DailyViewSnapshot struct {
	ChannelID   string    `json:"channelId"`
	OwnerUserID string    `json:"-"`
	Day         time.Time `json:"date"` // truncated to the calendar day, UTC
	Views       int64     `json:"views"`
}
