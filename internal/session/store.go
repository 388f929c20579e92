// Package session holds the single source of truth for "who is logged in".
// The cached user survives restarts through a JSON file on an injected
// filesystem, and every operation reports failure as a soft value instead of
// an error escaping to the caller.
package session

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shubGupta10/notenest/internal/identity"
	"github.com/spf13/afero"
)

// User is the cached authenticated identity.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Avatar        string    `json:"avatar,omitempty"`
	EmailVerified bool      `json:"emailVerification"`
	Registration  time.Time `json:"registration"`
}

// BrowserOpener runs the interactive consent step. It opens consentURL,
// waits for the flow to land back on redirectURL, and returns the final
// redirect URL. A cancelled flow is an error.
type BrowserOpener interface {
	Open(ctx context.Context, consentURL string, redirectURL string) (string, error)
}

// OpenerFunc adapts a function to BrowserOpener.
type OpenerFunc func(ctx context.Context, consentURL string, redirectURL string) (string, error)

func (opener OpenerFunc) Open(ctx context.Context, consentURL string, redirectURL string) (string, error) {
	return opener(ctx, consentURL, redirectURL)
}

// tokenCarrier is implemented by providers whose session rides on a bearer
// token the store should persist alongside the user.
type tokenCarrier interface {
	Token() string
	SetToken(token string)
}

type Store struct {
	provider      identity.Provider
	opener        BrowserOpener
	fs            afero.Fs
	cachePath     string
	redirectURL   string
	oauthProvider string

	mu   sync.Mutex
	user *User
}

func NewStore(provider identity.Provider, opener BrowserOpener, fs afero.Fs, cachePath string, redirectURL string, oauthProvider string) *Store {
	if oauthProvider == "" {
		oauthProvider = identity.ProviderGoogle
	}
	return &Store{
		provider:      provider,
		opener:        opener,
		fs:            fs,
		cachePath:     cachePath,
		redirectURL:   redirectURL,
		oauthProvider: oauthProvider,
	}
}

// User returns the cached identity without contacting the provider. Useful
// for access guards that must decide synchronously.
func (store *Store) User() *User {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.user == nil {
		return nil
	}
	copied := *store.user
	return &copied
}

// Login walks the full OAuth flow: consent URL, browser round-trip, secret
// exchange, profile fetch. Every failure answers false and leaves the cached
// user untouched.
func (store *Store) Login(ctx context.Context) bool {
	consentURL, err := store.provider.CreateOAuth2Token(ctx, store.oauthProvider, store.redirectURL)
	if err != nil {
		log.Printf("session: create oauth token: %v", err)
		return false
	}

	finalURL, err := store.opener.Open(ctx, consentURL, store.redirectURL)
	if err != nil {
		log.Printf("session: consent flow did not complete: %v", err)
		return false
	}

	userID, secret, ok := parseConsentCallback(finalURL)
	if !ok {
		log.Printf("session: redirect is missing userId or secret")
		return false
	}

	if _, err := store.provider.CreateSession(ctx, userID, secret); err != nil {
		log.Printf("session: create session: %v", err)
		return false
	}

	user := store.loadAccount(ctx)
	if user == nil {
		return false
	}
	store.setUser(user)
	return true
}

// Logout invalidates the provider session. The cache is only cleared when
// the provider confirms.
func (store *Store) Logout(ctx context.Context) bool {
	if err := store.provider.DeleteSession(ctx); err != nil {
		log.Printf("session: delete session: %v", err)
		return false
	}
	store.setUser(nil)
	return true
}

// FetchUser probes for a live session and refreshes the cached profile. A
// definite "no session" answer clears the cache; a provider that cannot be
// reached leaves it alone. A profile fetch failure behind a live session
// clears it too, the cache must not outlive the account.
func (store *Store) FetchUser(ctx context.Context) *User {
	if _, err := store.provider.GetSession(ctx); err != nil {
		if errors.Is(err, identity.ErrNoSession) {
			store.setUser(nil)
		}
		return nil
	}

	user := store.loadAccount(ctx)
	if user == nil {
		store.setUser(nil)
		return nil
	}
	store.setUser(user)
	return user
}

func (store *Store) loadAccount(ctx context.Context) *User {
	account, err := store.provider.GetAccount(ctx)
	if err != nil {
		log.Printf("session: fetch account: %v", err)
		return nil
	}
	return &User{
		ID:            account.ID,
		Name:          account.Name,
		Email:         account.Email,
		Avatar:        store.provider.InitialsAvatarURL(account.Name),
		EmailVerified: account.EmailVerified,
		Registration:  account.Registration,
	}
}

func parseConsentCallback(finalURL string) (string, string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(finalURL))
	if err != nil {
		return "", "", false
	}
	query := parsed.Query()
	userID := strings.TrimSpace(query.Get("userId"))
	secret := strings.TrimSpace(query.Get("secret"))
	if userID == "" || secret == "" {
		return "", "", false
	}
	return userID, secret, true
}
