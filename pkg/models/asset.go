package models

import (
	"time"

	"inventory/pkg/metadata"
)

// Asset is a piece of equipment, a storage area or a logical grouping,
// organized as a forest via ParentID.
type Asset struct {
	ID                int64              `json:"id" db:"id"`
	Name              string             `json:"name" db:"name"`
	Description       string             `json:"description" db:"description"`
	Category          string             `json:"category" db:"category"`
	Kind              metadata.AssetKind `json:"kind" db:"kind"`
	Online            bool               `json:"online" db:"online"`
	Priority          metadata.Priority  `json:"priority" db:"priority"`
	Make              string             `json:"make" db:"make"`
	Model             string             `json:"model" db:"model"`
	Manufacturer      string             `json:"manufacturer" db:"manufacturer"`
	ParentID          *int64             `json:"parent_id" db:"parent_id"`
	ParentPath        *string            `json:"parent_path" db:"parent_path"`
	StorageLocationID *int64             `json:"storage_location_id" db:"storage_location_id"`
	CreatedAt         time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" db:"updated_at"`
}

// ChildPath returns the parent path carried by this asset's children:
// the asset's own name for roots, otherwise "<ParentPath>/<Name>".
func (a *Asset) ChildPath() string {
	if a.ParentPath == nil {
		return a.Name
	}
	return *a.ParentPath + "/" + a.Name
}

func (a *Asset) GetID() int64 {
	return a.ID
}

func (a *Asset) SetID(id int64) {
	a.ID = id
}

func (a *Asset) GetCreatedAt() time.Time {
	return a.CreatedAt
}

func (a *Asset) GetUpdatedAt() time.Time {
	return a.UpdatedAt
}

func (a *Asset) SetTimestamps(created, updated time.Time) {
	if !created.IsZero() {
		a.CreatedAt = created
	}
	a.UpdatedAt = updated
}

func (a *Asset) Clone() *Asset {
	cp := *a
	if a.ParentID != nil {
		v := *a.ParentID
		cp.ParentID = &v
	}
	if a.ParentPath != nil {
		v := *a.ParentPath
		cp.ParentPath = &v
	}
	if a.StorageLocationID != nil {
		v := *a.StorageLocationID
		cp.StorageLocationID = &v
	}
	return &cp
}

func (a *Asset) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   a.ID,
		ResourceType: "asset",
	}
}
