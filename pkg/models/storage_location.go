package models

import (
	"strings"
	"time"
)

// StorageLocation is a named sub-location owned by exactly one Area asset.
type StorageLocation struct {
	ID        int64     `json:"id" db:"id"`
	OwnerID   int64     `json:"owner_id" db:"owner_id"`
	LocationA string    `json:"location_a" db:"location_a"`
	LocationB string    `json:"location_b" db:"location_b"`
	LocationC string    `json:"location_c" db:"location_c"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// FriendlyName concatenates the non-empty location labels.
func (l *StorageLocation) FriendlyName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.LocationA, l.LocationB, l.LocationC} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "-")
}

func (l *StorageLocation) GetID() int64 {
	return l.ID
}

func (l *StorageLocation) SetID(id int64) {
	l.ID = id
}

func (l *StorageLocation) GetCreatedAt() time.Time {
	return l.CreatedAt
}

func (l *StorageLocation) GetUpdatedAt() time.Time {
	return l.UpdatedAt
}

func (l *StorageLocation) SetTimestamps(created, updated time.Time) {
	if !created.IsZero() {
		l.CreatedAt = created
	}
	l.UpdatedAt = updated
}

func (l *StorageLocation) Clone() *StorageLocation {
	cp := *l
	return &cp
}

func (l *StorageLocation) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   l.ID,
		ResourceType: "storage_location",
	}
}
