package stocks

import "time"

// StockRequest is the write payload. StorageLocationName is intentionally
// absent: it is a denormalized field owned by the cascade, never by the
// caller. Updates are full replacements; UpdatedAt carries the
// optimistic-concurrency token the caller read.
type StockRequest struct {
	OwnerID           int64     `json:"owner_id" binding:"required"`
	StorageLocationID int64     `json:"storage_location_id" binding:"required"`
	Amount            float64   `json:"amount"`
	UpdatedAt         time.Time `json:"updated_at"`
}
