package services

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shubGupta10/notenest/internal/db"
	"github.com/shubGupta10/notenest/internal/models"
)

func newTestService(t *testing.T) (*AccountService, *db.Repositories) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	repositories := db.NewRepositories(database)
	return NewAccountService(repositories.Users, repositories.Sessions, repositories.OAuthGrants), repositories
}

func testProfile() OAuthProfile {
	return OAuthProfile{
		Name:          "Mina",
		Email:         "mina@example.com",
		EmailVerified: true,
		Provider:      models.ProviderDev,
	}
}

func TestUpsertOAuthUserCreatesThenRefreshes(t *testing.T) {
	service, _ := newTestService(t)

	created, err := service.UpsertOAuthUser(testProfile())
	if err != nil {
		t.Fatalf("UpsertOAuthUser() unexpected error: %v", err)
	}
	if created.ID == "" || created.Email != "mina@example.com" {
		t.Fatalf("unexpected created user %+v", created)
	}

	refreshed := testProfile()
	refreshed.Name = "Mina K."
	updated, err := service.UpsertOAuthUser(refreshed)
	if err != nil {
		t.Fatalf("UpsertOAuthUser() unexpected error on second login: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("expected the same user on repeat login, got %q and %q", created.ID, updated.ID)
	}
	if updated.Name != "Mina K." {
		t.Fatalf("expected the profile to refresh, got %q", updated.Name)
	}
}

func TestMintAndRedeemGrant(t *testing.T) {
	service, _ := newTestService(t)

	user, err := service.UpsertOAuthUser(testProfile())
	if err != nil {
		t.Fatalf("UpsertOAuthUser() unexpected error: %v", err)
	}

	secret, err := service.MintGrant(user.ID)
	if err != nil {
		t.Fatalf("MintGrant() unexpected error: %v", err)
	}
	if len(secret) != 43 {
		t.Fatalf("expected a 43-character secret, got %d", len(secret))
	}

	session, err := service.RedeemGrant(user.ID, secret, models.ProviderDev)
	if err != nil {
		t.Fatalf("RedeemGrant() unexpected error: %v", err)
	}
	if session.UserID != user.ID {
		t.Fatalf("expected the session to belong to %q, got %q", user.ID, session.UserID)
	}
	if !session.ExpiresAt.After(time.Now()) {
		t.Fatal("expected a future session expiry")
	}

	// The grant burns on first use.
	if _, err := service.RedeemGrant(user.ID, secret, models.ProviderDev); !errors.Is(err, ErrInvalidGrant) {
		t.Fatalf("expected ErrInvalidGrant on replay, got %v", err)
	}
}

func TestRedeemGrantRejectsWrongSecret(t *testing.T) {
	service, _ := newTestService(t)

	user, err := service.UpsertOAuthUser(testProfile())
	if err != nil {
		t.Fatalf("UpsertOAuthUser() unexpected error: %v", err)
	}
	if _, err := service.MintGrant(user.ID); err != nil {
		t.Fatalf("MintGrant() unexpected error: %v", err)
	}

	if _, err := service.RedeemGrant(user.ID, "not-the-secret", models.ProviderDev); !errors.Is(err, ErrInvalidGrant) {
		t.Fatalf("expected ErrInvalidGrant, got %v", err)
	}
}

func TestSessionWithUserDropsExpiredSessions(t *testing.T) {
	service, repositories := newTestService(t)

	user, err := service.UpsertOAuthUser(testProfile())
	if err != nil {
		t.Fatalf("UpsertOAuthUser() unexpected error: %v", err)
	}

	expired := models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Provider:  models.ProviderDev,
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-time.Hour),
	}
	if err := repositories.Sessions.Create(&expired); err != nil {
		t.Fatalf("create expired session: %v", err)
	}

	if _, _, err := service.SessionWithUser(expired.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for an expired session, got %v", err)
	}

	// The expired row is removed on sight.
	_, found, err := repositories.Sessions.FindByID(expired.ID)
	if err != nil {
		t.Fatalf("FindByID() unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected the expired session row to be deleted")
	}
}

func TestSessionWithUserResolvesLiveSession(t *testing.T) {
	service, _ := newTestService(t)

	user, err := service.UpsertOAuthUser(testProfile())
	if err != nil {
		t.Fatalf("UpsertOAuthUser() unexpected error: %v", err)
	}
	secret, err := service.MintGrant(user.ID)
	if err != nil {
		t.Fatalf("MintGrant() unexpected error: %v", err)
	}
	session, err := service.RedeemGrant(user.ID, secret, models.ProviderDev)
	if err != nil {
		t.Fatalf("RedeemGrant() unexpected error: %v", err)
	}

	resolvedSession, resolvedUser, err := service.SessionWithUser(session.ID)
	if err != nil {
		t.Fatalf("SessionWithUser() unexpected error: %v", err)
	}
	if resolvedSession.ID != session.ID || resolvedUser.ID != user.ID {
		t.Fatalf("unexpected resolution: session %q user %q", resolvedSession.ID, resolvedUser.ID)
	}

	if err := service.DeleteSession(session.ID); err != nil {
		t.Fatalf("DeleteSession() unexpected error: %v", err)
	}
	if _, _, err := service.SessionWithUser(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
	}
}
