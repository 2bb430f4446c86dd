package models

import "time"

// Part is a catalog item with no tree structure; it owns zero or more
// stock records.
type Part struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	Make        string    `json:"make" db:"make"`
	Model       string    `json:"model" db:"model"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func (p *Part) GetID() int64 {
	return p.ID
}

func (p *Part) SetID(id int64) {
	p.ID = id
}

func (p *Part) GetCreatedAt() time.Time {
	return p.CreatedAt
}

func (p *Part) GetUpdatedAt() time.Time {
	return p.UpdatedAt
}

func (p *Part) SetTimestamps(created, updated time.Time) {
	if !created.IsZero() {
		p.CreatedAt = created
	}
	p.UpdatedAt = updated
}

func (p *Part) Clone() *Part {
	cp := *p
	return &cp
}

func (p *Part) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   p.ID,
		ResourceType: "part",
	}
}
