package model

import "time"

// SavedScript is a generated script the user kept. Its lifecycle is
// independent of Channel and Video rows: deleting a competitor never
// cascades here.
type SavedScript struct {
	ID          int64     `json:"id"`
	OwnerUserID string    `json:"-"`
	VideoID     string    `json:"videoId,omitempty"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
