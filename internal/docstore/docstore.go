// Package docstore defines the document-store contract the client core is
// written against: named collections of JSON field bags with equality
// filters and per-document permission grants.
package docstore

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("document not found")
	ErrConflict = errors.New("document id already exists")
)

const (
	PermissionRead   = "read"
	PermissionUpdate = "update"
	PermissionDelete = "delete"
)

type Permission struct {
	Action string `json:"action"`
	UserID string `json:"userId"`
}

type Document struct {
	ID          string         `json:"id"`
	Collection  string         `json:"collection"`
	Fields      map[string]any `json:"fields"`
	Permissions []Permission   `json:"permissions"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// String reads a string field, tolerating absence.
func (document Document) String(field string) string {
	value, _ := document.Fields[field].(string)
	return value
}

// Bool reads a boolean field, tolerating absence and the float64 shape
// JSON decoding produces for numbers.
func (document Document) Bool(field string) bool {
	switch typed := document.Fields[field].(type) {
	case bool:
		return typed
	case float64:
		return typed != 0
	default:
		return false
	}
}

type Store interface {
	// List returns the documents of a collection matching every equality
	// filter. An empty result is not an error.
	List(ctx context.Context, collection string, filters map[string]any) ([]Document, error)
	// Get returns a document or ErrNotFound.
	Get(ctx context.Context, collection string, documentID string) (Document, error)
	// Create stores a new document under the given id, or ErrConflict when
	// the id is already taken in that collection.
	Create(ctx context.Context, collection string, documentID string, fields map[string]any, permissions []Permission) (Document, error)
	// Update merges fields into an existing document, or ErrNotFound.
	Update(ctx context.Context, collection string, documentID string, fields map[string]any) (Document, error)
	// Delete removes a document. Deleting an absent document is not an error.
	Delete(ctx context.Context, collection string, documentID string) error
}

// OwnerPermissions is the grant set a creator keeps for itself.
func OwnerPermissions(userID string) []Permission {
	return []Permission{
		{Action: PermissionRead, UserID: userID},
		{Action: PermissionUpdate, UserID: userID},
		{Action: PermissionDelete, UserID: userID},
	}
}
