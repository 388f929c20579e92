package models

import "time"

// PermissionGrant allows one action on one document for one user.
type PermissionGrant struct {
	Action string `json:"action"`
	UserID string `json:"userId"`
}

// Document is one record in a named collection. Fields are a free-form JSON
// bag; equality filters run over them with json_extract.
type Document struct {
	Collection  string            `gorm:"primaryKey"`
	ID          string            `gorm:"primaryKey"`
	Fields      map[string]any    `gorm:"serializer:json;not null"`
	Permissions []PermissionGrant `gorm:"serializer:json;not null"`
	CreatedAt   time.Time         `gorm:"not null"`
	UpdatedAt   time.Time
}
