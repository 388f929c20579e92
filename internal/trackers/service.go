// Package trackers implements habit trackers, their daily entries and the
// monthly statistics derived from them. Trackers and entries live in the
// document store; every mutation re-checks ownership before touching a row.
package trackers

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shubGupta10/notenest/internal/docstore"
)

const (
	collectionTrackers = "trackers"
	collectionEntries  = "entries"
)

var (
	ErrNameEmpty = errors.New("tracker name must not be empty")
	ErrNameTaken = errors.New("a tracker with this name already exists")
)

type Tracker struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// MutationResult reports the outcome of a guarded mutation as a value, so a
// denied or missing tracker never surfaces as an error to the caller.
type MutationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Service struct {
	store docstore.Store
}

func NewService(store docstore.Store) *Service {
	return &Service{store: store}
}

// Create rejects empty and duplicate names before writing. The duplicate
// check is per user, so two users can both track "Reading".
func (service *Service) Create(ctx context.Context, userID string, name string) (*Tracker, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameEmpty
	}

	existing, err := service.store.List(ctx, collectionTrackers, map[string]any{
		"userId": userID,
		"name":   name,
	})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrNameTaken
	}

	fields := map[string]any{
		"userId": userID,
		"name":   name,
	}
	document, err := service.store.Create(ctx, collectionTrackers, uuid.NewString(), fields, docstore.OwnerPermissions(userID))
	if err != nil {
		return nil, err
	}
	tracker := trackerFromDocument(document)
	return &tracker, nil
}

// List returns the user's trackers, or an empty list when the store cannot
// be reached.
func (service *Service) List(ctx context.Context, userID string) []Tracker {
	documents, err := service.store.List(ctx, collectionTrackers, map[string]any{"userId": userID})
	if err != nil {
		log.Printf("trackers: list: %v", err)
		return []Tracker{}
	}

	result := make([]Tracker, 0, len(documents))
	for _, document := range documents {
		result = append(result, trackerFromDocument(document))
	}
	return result
}

// Fetch returns the tracker only when it exists and belongs to the user.
func (service *Service) Fetch(ctx context.Context, trackerID string, userID string) *Tracker {
	document, err := service.store.Get(ctx, collectionTrackers, trackerID)
	if err != nil {
		if !errors.Is(err, docstore.ErrNotFound) {
			log.Printf("trackers: fetch: %v", err)
		}
		return nil
	}
	if document.String("userId") != userID {
		return nil
	}
	tracker := trackerFromDocument(document)
	return &tracker
}

// Rename changes the tracker's name after the ownership re-check.
func (service *Service) Rename(ctx context.Context, trackerID string, userID string, name string) (MutationResult, *Tracker) {
	name = strings.TrimSpace(name)
	if name == "" {
		return MutationResult{Success: false, Message: "Tracker name must not be empty."}, nil
	}

	owned := service.Fetch(ctx, trackerID, userID)
	if owned == nil {
		return MutationResult{Success: false, Message: "Tracker not found or not authorized."}, nil
	}

	document, err := service.store.Update(ctx, collectionTrackers, trackerID, map[string]any{"name": name})
	if err != nil {
		log.Printf("trackers: rename: %v", err)
		return MutationResult{Success: false, Message: "Failed to update tracker."}, nil
	}
	tracker := trackerFromDocument(document)
	return MutationResult{Success: true, Message: "Tracker updated successfully."}, &tracker
}

// Delete removes the tracker and every entry recorded against it. Entries
// that fail to delete are logged and skipped; the tracker itself decides the
// result.
func (service *Service) Delete(ctx context.Context, trackerID string, userID string) MutationResult {
	owned := service.Fetch(ctx, trackerID, userID)
	if owned == nil {
		return MutationResult{Success: false, Message: "Tracker not found or not authorized."}
	}

	entries, err := service.store.List(ctx, collectionEntries, map[string]any{
		"userId":    userID,
		"trackerId": trackerID,
	})
	if err != nil {
		log.Printf("trackers: list entries for delete: %v", err)
		return MutationResult{Success: false, Message: "Failed to delete tracker."}
	}
	for _, entry := range entries {
		if err := service.store.Delete(ctx, collectionEntries, entry.ID); err != nil {
			log.Printf("trackers: delete entry %s: %v", entry.ID, err)
		}
	}

	if err := service.store.Delete(ctx, collectionTrackers, trackerID); err != nil {
		log.Printf("trackers: delete: %v", err)
		return MutationResult{Success: false, Message: "Failed to delete tracker."}
	}
	return MutationResult{Success: true, Message: "Tracker deleted successfully."}
}

func trackerFromDocument(document docstore.Document) Tracker {
	return Tracker{
		ID:        document.ID,
		UserID:    document.String("userId"),
		Name:      document.String("name"),
		CreatedAt: document.CreatedAt,
	}
}
