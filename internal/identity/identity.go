// Package identity defines the contract with the external OAuth identity
// provider: the one-time token flow, session lifecycle, and account profile.
package identity

import (
	"context"
	"errors"
	"time"
)

var ErrNoSession = errors.New("no active session")

const (
	ProviderGoogle = "google"
	ProviderDev    = "dev"
)

type Account struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"emailVerification"`
	Registration  time.Time `json:"registration"`
}

type Session struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Provider string    `json:"provider"`
	Expires  time.Time `json:"expires"`
}

type Provider interface {
	// CreateOAuth2Token begins a login: it returns the consent URL the user
	// must visit. The provider redirects to successURL with userId and
	// secret query parameters when consent completes.
	CreateOAuth2Token(ctx context.Context, provider string, successURL string) (string, error)
	// CreateSession redeems the one-time secret for a live session.
	CreateSession(ctx context.Context, userID string, secret string) (Session, error)
	// DeleteSession invalidates the current session.
	DeleteSession(ctx context.Context) error
	// GetSession reports the current session or ErrNoSession.
	GetSession(ctx context.Context) (Session, error)
	// GetAccount returns the authenticated profile.
	GetAccount(ctx context.Context) (Account, error)
	// InitialsAvatarURL returns a display avatar for the given name.
	InitialsAvatarURL(name string) string
}
