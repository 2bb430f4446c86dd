package models

type AuditLog struct {
	ResourceID   int64  `json:"resource_id"`
	ResourceType string `json:"resource_type"`
	Action       string `json:"action"`
}
