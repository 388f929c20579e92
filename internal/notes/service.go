// Package notes manages free-text notes stored as documents. Mutations
// re-check ownership against the acting user and silently skip on mismatch,
// which keeps a stale or forged id from touching someone else's note.
package notes

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shubGupta10/notenest/internal/docstore"
)

const collectionNotes = "notes"

type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdatedFields carries a partial edit; nil members stay untouched.
type UpdatedFields struct {
	Title    *string
	Category *string
	Content  *string
}

type Service struct {
	store docstore.Store
}

func NewService(store docstore.Store) *Service {
	return &Service{store: store}
}

func (service *Service) Save(ctx context.Context, userID string, title string, category string, content string) (*Note, error) {
	fields := map[string]any{
		"userId":   userID,
		"title":    title,
		"category": category,
		"content":  content,
	}
	document, err := service.store.Create(ctx, collectionNotes, uuid.NewString(), fields, docstore.OwnerPermissions(userID))
	if err != nil {
		return nil, err
	}
	note := noteFromDocument(document)
	return &note, nil
}

// ListByUser returns the user's notes, or an empty list when the store
// cannot be reached.
func (service *Service) ListByUser(ctx context.Context, userID string) []Note {
	documents, err := service.store.List(ctx, collectionNotes, map[string]any{"userId": userID})
	if err != nil {
		log.Printf("notes: list by user: %v", err)
		return []Note{}
	}

	result := make([]Note, 0, len(documents))
	for _, document := range documents {
		result = append(result, noteFromDocument(document))
	}
	return result
}

// FetchByID returns a note or nil; absence and failure look the same to the
// caller.
func (service *Service) FetchByID(ctx context.Context, noteID string) *Note {
	document, err := service.store.Get(ctx, collectionNotes, noteID)
	if err != nil {
		if !errors.Is(err, docstore.ErrNotFound) {
			log.Printf("notes: fetch by id: %v", err)
		}
		return nil
	}
	note := noteFromDocument(document)
	return &note
}

// Edit applies a partial update after re-checking ownership. A mismatch or
// any store failure yields nil with no mutation.
func (service *Service) Edit(ctx context.Context, userID string, noteID string, updates UpdatedFields) *Note {
	document, err := service.store.Get(ctx, collectionNotes, noteID)
	if err != nil {
		log.Printf("notes: edit fetch: %v", err)
		return nil
	}
	if document.String("userId") != userID {
		log.Printf("notes: edit skipped, note %s does not belong to user %s", noteID, userID)
		return nil
	}

	fields := map[string]any{}
	if updates.Title != nil {
		fields["title"] = *updates.Title
	}
	if updates.Category != nil {
		fields["category"] = *updates.Category
	}
	if updates.Content != nil {
		fields["content"] = *updates.Content
	}
	if len(fields) == 0 {
		note := noteFromDocument(document)
		return &note
	}

	updated, err := service.store.Update(ctx, collectionNotes, noteID, fields)
	if err != nil {
		log.Printf("notes: edit update: %v", err)
		return nil
	}
	note := noteFromDocument(updated)
	return &note
}

// Delete removes the note when it belongs to the acting user. It reports
// whether a deletion happened.
func (service *Service) Delete(ctx context.Context, userID string, noteID string) bool {
	document, err := service.store.Get(ctx, collectionNotes, noteID)
	if err != nil {
		log.Printf("notes: delete fetch: %v", err)
		return false
	}
	if document.String("userId") != userID {
		log.Printf("notes: delete skipped, note %s does not belong to user %s", noteID, userID)
		return false
	}

	if err := service.store.Delete(ctx, collectionNotes, noteID); err != nil {
		log.Printf("notes: delete: %v", err)
		return false
	}
	return true
}

func noteFromDocument(document docstore.Document) Note {
	return Note{
		ID:        document.ID,
		UserID:    document.String("userId"),
		Title:     document.String("title"),
		Category:  document.String("category"),
		Content:   document.String("content"),
		CreatedAt: document.CreatedAt,
		UpdatedAt: document.UpdatedAt,
	}
}
