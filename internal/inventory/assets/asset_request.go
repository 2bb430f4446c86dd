package assets

import "time"

// AssetRequest is the write payload. Updates are full replacements; the
// UpdatedAt field carries the optimistic-concurrency token the caller read.
type AssetRequest struct {
	Name              string    `json:"name" binding:"required"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	Kind              string    `json:"kind" binding:"required"`
	Online            bool      `json:"online"`
	Priority          string    `json:"priority"`
	Make              string    `json:"make"`
	Model             string    `json:"model"`
	Manufacturer      string    `json:"manufacturer"`
	ParentID          *int64    `json:"parent_id"`
	StorageLocationID *int64    `json:"storage_location_id"`
	UpdatedAt         time.Time `json:"updated_at"`
}
