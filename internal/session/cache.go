package session

import (
	"encoding/json"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
)

// cachePayload is what lands in the cache file: the last known user plus
// the bearer token when the provider carries one.
type cachePayload struct {
	User  *User  `json:"user"`
	Token string `json:"token,omitempty"`
}

// Restore reads the cache written by a previous run, so the app knows its
// user before the first FetchUser round-trip completes.
func (store *Store) Restore() {
	raw, err := afero.ReadFile(store.fs, store.cachePath)
	if err != nil {
		return
	}

	payload := cachePayload{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Printf("session: cache file is unreadable, ignoring: %v", err)
		return
	}

	store.mu.Lock()
	store.user = payload.User
	store.mu.Unlock()

	if carrier, ok := store.provider.(tokenCarrier); ok && payload.Token != "" {
		carrier.SetToken(payload.Token)
	}
}

func (store *Store) setUser(user *User) {
	store.mu.Lock()
	store.user = user
	store.mu.Unlock()
	store.persist()
}

func (store *Store) persist() {
	store.mu.Lock()
	payload := cachePayload{User: store.user}
	store.mu.Unlock()

	if carrier, ok := store.provider.(tokenCarrier); ok {
		payload.Token = carrier.Token()
	}

	if err := store.fs.MkdirAll(filepath.Dir(store.cachePath), 0o700); err != nil {
		log.Printf("session: create cache directory: %v", err)
		return
	}

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		log.Printf("session: encode cache: %v", err)
		return
	}
	if err := afero.WriteFile(store.fs, store.cachePath, encoded, 0o600); err != nil {
		log.Printf("session: write cache: %v", err)
	}
}
