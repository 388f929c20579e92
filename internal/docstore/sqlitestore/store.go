// Package sqlitestore backs the document-store contract with the local
// SQLite database. Document id uniqueness comes from the primary key, so
// create-with-fixed-id is atomic.
package sqlitestore

import (
	"context"
	"strings"
	"time"

	"github.com/shubGupta10/notenest/internal/db"
	"github.com/shubGupta10/notenest/internal/docstore"
	"github.com/shubGupta10/notenest/internal/models"
)

type Store struct {
	documents *db.DocumentRepository
}

func New(documents *db.DocumentRepository) *Store {
	return &Store{documents: documents}
}

func (store *Store) List(ctx context.Context, collection string, filters map[string]any) ([]docstore.Document, error) {
	rows, err := store.documents.List(collection, filters)
	if err != nil {
		return nil, err
	}

	documents := make([]docstore.Document, 0, len(rows))
	for _, row := range rows {
		documents = append(documents, toContractDocument(row))
	}
	return documents, nil
}

func (store *Store) Get(ctx context.Context, collection string, documentID string) (docstore.Document, error) {
	row, found, err := store.documents.FindByID(collection, documentID)
	if err != nil {
		return docstore.Document{}, err
	}
	if !found {
		return docstore.Document{}, docstore.ErrNotFound
	}
	return toContractDocument(row), nil
}

func (store *Store) Create(ctx context.Context, collection string, documentID string, fields map[string]any, permissions []docstore.Permission) (docstore.Document, error) {
	row := models.Document{
		Collection:  collection,
		ID:          documentID,
		Fields:      copyFields(fields),
		Permissions: toModelGrants(permissions),
		CreatedAt:   time.Now(),
	}
	if err := store.documents.Create(&row); err != nil {
		if isUniqueViolation(err) {
			return docstore.Document{}, docstore.ErrConflict
		}
		return docstore.Document{}, err
	}
	return toContractDocument(row), nil
}

func (store *Store) Update(ctx context.Context, collection string, documentID string, fields map[string]any) (docstore.Document, error) {
	row, found, err := store.documents.FindByID(collection, documentID)
	if err != nil {
		return docstore.Document{}, err
	}
	if !found {
		return docstore.Document{}, docstore.ErrNotFound
	}

	if row.Fields == nil {
		row.Fields = map[string]any{}
	}
	for field, value := range fields {
		row.Fields[field] = value
	}
	row.UpdatedAt = time.Now()
	if err := store.documents.Save(&row); err != nil {
		return docstore.Document{}, err
	}
	return toContractDocument(row), nil
}

func (store *Store) Delete(ctx context.Context, collection string, documentID string) error {
	return store.documents.Delete(collection, documentID)
}

func toContractDocument(row models.Document) docstore.Document {
	permissions := make([]docstore.Permission, 0, len(row.Permissions))
	for _, grant := range row.Permissions {
		permissions = append(permissions, docstore.Permission{Action: grant.Action, UserID: grant.UserID})
	}
	return docstore.Document{
		ID:          row.ID,
		Collection:  row.Collection,
		Fields:      copyFields(row.Fields),
		Permissions: permissions,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func toModelGrants(permissions []docstore.Permission) []models.PermissionGrant {
	grants := make([]models.PermissionGrant, 0, len(permissions))
	for _, permission := range permissions {
		grants = append(grants, models.PermissionGrant{Action: permission.Action, UserID: permission.UserID})
	}
	return grants
}

func copyFields(fields map[string]any) map[string]any {
	copied := make(map[string]any, len(fields))
	for field, value := range fields {
		copied[field] = value
	}
	return copied
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint") || strings.Contains(message, "constraint failed")
}
