package models

import "time"

// Stock is the quantity of a part held at a storage location.
// StorageLocationName is a denormalized copy of the location's friendly
// name; it is rewritten by the cascade whenever the location is renamed
// and must never be set directly by callers.
type Stock struct {
	ID                  int64     `json:"id" db:"id"`
	OwnerID             int64     `json:"owner_id" db:"owner_id"`
	StorageLocationID   int64     `json:"storage_location_id" db:"storage_location_id"`
	StorageLocationName string    `json:"storage_location_name" db:"storage_location_name"`
	Amount              float64   `json:"amount" db:"amount"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

func (s *Stock) GetID() int64 {
	return s.ID
}

func (s *Stock) SetID(id int64) {
	s.ID = id
}

func (s *Stock) GetCreatedAt() time.Time {
	return s.CreatedAt
}

func (s *Stock) GetUpdatedAt() time.Time {
	return s.UpdatedAt
}

func (s *Stock) SetTimestamps(created, updated time.Time) {
	if !created.IsZero() {
		s.CreatedAt = created
	}
	s.UpdatedAt = updated
}

func (s *Stock) Clone() *Stock {
	cp := *s
	return &cp
}

func (s *Stock) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   s.ID,
		ResourceType: "stock",
	}
}
