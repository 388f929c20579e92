package trackers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shubGupta10/notenest/internal/docstore"
)

// Entry is one day's outcome for a tracker. Status true means done, false
// means missed.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	TrackerID string    `json:"trackerId"`
	Date      string    `json:"date"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// EntryStatus is the probe result for one tracker and day. The zero value is
// the canonical "nothing recorded" answer.
type EntryStatus struct {
	Status  bool   `json:"status"`
	EntryID string `json:"entryId"`
	Date    string `json:"date"`
}

// Tally counts a tracker's recorded outcomes.
type Tally struct {
	Completed int `json:"completed"`
	Missed    int `json:"missed"`
}

// Reconciler keeps at most one entry per user, tracker and day. The entry's
// document id is derived from that triple, so a concurrent double-record
// collapses into a create followed by an update of the same row.
type Reconciler struct {
	store docstore.Store
}

func NewReconciler(store docstore.Store) *Reconciler {
	return &Reconciler{store: store}
}

// EntryID derives the document id for the (user, tracker, day) triple.
func EntryID(userID string, trackerID string, date string) string {
	return userID + ":" + trackerID + ":" + date
}

// FetchStatus reports whether the day is recorded and how. Failures and
// absence both answer the zero EntryStatus.
func (reconciler *Reconciler) FetchStatus(ctx context.Context, userID string, trackerID string, date string) EntryStatus {
	documents, err := reconciler.store.List(ctx, collectionEntries, map[string]any{
		"userId":    userID,
		"trackerId": trackerID,
		"date":      date,
	})
	if err != nil {
		log.Printf("trackers: fetch entry status: %v", err)
		return EntryStatus{}
	}
	if len(documents) == 0 {
		return EntryStatus{}
	}

	entry := entryFromDocument(documents[0])
	return EntryStatus{Status: entry.Status, EntryID: entry.ID, Date: entry.Date}
}

// RecordStatus upserts the day's entry. The first write creates the row;
// any later write for the same triple lands on the existing row and only
// moves its status. Failure answers nil.
func (reconciler *Reconciler) RecordStatus(ctx context.Context, userID string, trackerID string, date string, status bool) *Entry {
	entryID := EntryID(userID, trackerID, date)
	fields := map[string]any{
		"userId":    userID,
		"trackerId": trackerID,
		"date":      date,
		"status":    status,
	}

	document, err := reconciler.store.Create(ctx, collectionEntries, entryID, fields, docstore.OwnerPermissions(userID))
	if errors.Is(err, docstore.ErrConflict) {
		document, err = reconciler.store.Update(ctx, collectionEntries, entryID, map[string]any{"status": status})
	}
	if err != nil {
		log.Printf("trackers: record entry status: %v", err)
		return nil
	}

	entry := entryFromDocument(document)
	return &entry
}

// UpdateEntry flips an existing entry's status after re-checking that the
// entry belongs to the acting user. A mismatch or failure answers nil with
// no mutation.
func (reconciler *Reconciler) UpdateEntry(ctx context.Context, entryID string, status bool, userID string) *Entry {
	document, err := reconciler.store.Get(ctx, collectionEntries, entryID)
	if err != nil {
		log.Printf("trackers: update entry fetch: %v", err)
		return nil
	}
	if document.String("userId") != userID {
		log.Printf("trackers: update skipped, entry %s does not belong to user %s", entryID, userID)
		return nil
	}

	updated, err := reconciler.store.Update(ctx, collectionEntries, entryID, map[string]any{"status": status})
	if err != nil {
		log.Printf("trackers: update entry: %v", err)
		return nil
	}
	entry := entryFromDocument(updated)
	return &entry
}

// Tally recomputes the tracker's counts from the store, so they stay honest
// across upserts that flip an existing day.
func (reconciler *Reconciler) Tally(ctx context.Context, userID string, trackerID string) (Tally, error) {
	documents, err := reconciler.store.List(ctx, collectionEntries, map[string]any{
		"userId":    userID,
		"trackerId": trackerID,
	})
	if err != nil {
		return Tally{}, err
	}

	tally := Tally{}
	for _, document := range documents {
		if document.Bool("status") {
			tally.Completed++
		} else {
			tally.Missed++
		}
	}
	return tally, nil
}

func entryFromDocument(document docstore.Document) Entry {
	return Entry{
		ID:        document.ID,
		UserID:    document.String("userId"),
		TrackerID: document.String("trackerId"),
		Date:      document.String("date"),
		Status:    document.Bool("status"),
		CreatedAt: document.CreatedAt,
	}
}
