package models

import "time"

type AuditAction string

const (
	AuditStatusChanged AuditAction = "status_changed"
	AuditPointDeleted  AuditAction = "collection_point_deleted"
)

// AuditEntry records one admin action against a collection point.
type AuditEntry struct {
	ID         string      `json:"id"`
	CreatedAt  time.Time   `json:"createdAt"`
	AdminID    string      `json:"adminId"`
	AdminEmail string      `json:"adminEmail"`
	Action     AuditAction `json:"action"`
	TargetID   string      `json:"targetId"`
	Detail     string      `json:"detail,omitempty"`
}
