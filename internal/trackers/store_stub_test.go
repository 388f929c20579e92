package trackers

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shubGupta10/notenest/internal/docstore"
)

var errStoreDown = errors.New("store unavailable")

// stubStore is an in-memory document store for tests. Creation stamps
// documents with the stub's clock, so stats tests can place entries in a
// chosen month.
type stubStore struct {
	documents map[string]docstore.Document
	now       time.Time
	failAll   bool
}

func newStubStore() *stubStore {
	return &stubStore{
		documents: map[string]docstore.Document{},
		now:       time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC),
	}
}

func storeKey(collection string, documentID string) string {
	return collection + "/" + documentID
}

func (store *stubStore) List(ctx context.Context, collection string, filters map[string]any) ([]docstore.Document, error) {
	if store.failAll {
		return nil, errStoreDown
	}

	matched := []docstore.Document{}
	for _, document := range store.documents {
		if document.Collection != collection {
			continue
		}
		if matchesFilters(document, filters) {
			matched = append(matched, document)
		}
	}
	sort.Slice(matched, func(left, right int) bool { return matched[left].ID < matched[right].ID })
	return matched, nil
}

func (store *stubStore) Get(ctx context.Context, collection string, documentID string) (docstore.Document, error) {
	if store.failAll {
		return docstore.Document{}, errStoreDown
	}
	document, found := store.documents[storeKey(collection, documentID)]
	if !found {
		return docstore.Document{}, docstore.ErrNotFound
	}
	return document, nil
}

func (store *stubStore) Create(ctx context.Context, collection string, documentID string, fields map[string]any, permissions []docstore.Permission) (docstore.Document, error) {
	if store.failAll {
		return docstore.Document{}, errStoreDown
	}
	key := storeKey(collection, documentID)
	if _, exists := store.documents[key]; exists {
		return docstore.Document{}, docstore.ErrConflict
	}

	document := docstore.Document{
		ID:          documentID,
		Collection:  collection,
		Fields:      copyStubFields(fields),
		Permissions: permissions,
		CreatedAt:   store.now,
		UpdatedAt:   store.now,
	}
	store.documents[key] = document
	return document, nil
}

func (store *stubStore) Update(ctx context.Context, collection string, documentID string, fields map[string]any) (docstore.Document, error) {
	if store.failAll {
		return docstore.Document{}, errStoreDown
	}
	key := storeKey(collection, documentID)
	document, found := store.documents[key]
	if !found {
		return docstore.Document{}, docstore.ErrNotFound
	}

	for field, value := range fields {
		document.Fields[field] = value
	}
	document.UpdatedAt = store.now
	store.documents[key] = document
	return document, nil
}

func (store *stubStore) Delete(ctx context.Context, collection string, documentID string) error {
	if store.failAll {
		return errStoreDown
	}
	delete(store.documents, storeKey(collection, documentID))
	return nil
}

func matchesFilters(document docstore.Document, filters map[string]any) bool {
	for field, want := range filters {
		if document.Fields[field] != want {
			return false
		}
	}
	return true
}

func copyStubFields(fields map[string]any) map[string]any {
	copied := make(map[string]any, len(fields))
	for field, value := range fields {
		copied[field] = value
	}
	return copied
}
