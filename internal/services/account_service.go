package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shubGupta10/notenest/internal/models"
	"github.com/shubGupta10/notenest/internal/security"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidGrant    = errors.New("invalid or expired oauth grant")
	ErrSessionNotFound = errors.New("session not found")
	ErrUserNotFound    = errors.New("user not found")
)

const (
	grantTTL   = 10 * time.Minute
	sessionTTL = 30 * 24 * time.Hour
)

type AccountUserRepository interface {
	FindByID(userID string) (models.User, bool, error)
	FindByNormalizedEmail(email string) (models.User, bool, error)
	Create(user *models.User) error
	Save(user *models.User) error
}

type AccountSessionRepository interface {
	Create(session *models.Session) error
	FindByID(sessionID string) (models.Session, bool, error)
	DeleteByID(sessionID string) error
	DeleteExpired(now time.Time) error
}

type AccountGrantRepository interface {
	Create(grant *models.OAuthGrant) error
	ListActiveByUser(userID string, now time.Time) ([]models.OAuthGrant, error)
	DeleteByID(grantID string) error
	DeleteExpired(now time.Time) error
}

// OAuthProfile is what the upstream consent flow tells us about a user.
type OAuthProfile struct {
	Name          string
	Email         string
	EmailVerified bool
	Provider      string
}

type AccountService struct {
	users    AccountUserRepository
	sessions AccountSessionRepository
	grants   AccountGrantRepository
}

func NewAccountService(users AccountUserRepository, sessions AccountSessionRepository, grants AccountGrantRepository) *AccountService {
	return &AccountService{
		users:    users,
		sessions: sessions,
		grants:   grants,
	}
}

// UpsertOAuthUser matches the upstream profile to a local user by email,
// creating it on first login and refreshing the profile on later ones.
func (service *AccountService) UpsertOAuthUser(profile OAuthProfile) (*models.User, error) {
	user, found, err := service.users.FindByNormalizedEmail(profile.Email)
	if err != nil {
		return nil, err
	}

	if !found {
		user = models.User{
			ID:            uuid.NewString(),
			Name:          profile.Name,
			Email:         profile.Email,
			EmailVerified: profile.EmailVerified,
			Provider:      profile.Provider,
			CreatedAt:     time.Now(),
		}
		if err := service.users.Create(&user); err != nil {
			return nil, err
		}
		return &user, nil
	}

	user.Name = profile.Name
	user.EmailVerified = profile.EmailVerified
	user.Provider = profile.Provider
	if err := service.users.Save(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// MintGrant issues the one-time secret the consent redirect carries back to
// the app. Only the bcrypt hash is stored.
func (service *AccountService) MintGrant(userID string) (string, error) {
	now := time.Now()
	if err := service.grants.DeleteExpired(now); err != nil {
		return "", err
	}

	secret, err := security.NewOAuthSecret()
	if err != nil {
		return "", err
	}
	secretHash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	grant := models.OAuthGrant{
		ID:         uuid.NewString(),
		UserID:     userID,
		SecretHash: string(secretHash),
		ExpiresAt:  now.Add(grantTTL),
		CreatedAt:  now,
	}
	if err := service.grants.Create(&grant); err != nil {
		return "", err
	}
	return secret, nil
}

// RedeemGrant burns a matching grant and opens a session. A wrong secret, an
// unknown user, or an expired grant all answer ErrInvalidGrant.
func (service *AccountService) RedeemGrant(userID string, secret string, provider string) (*models.Session, error) {
	now := time.Now()
	grants, err := service.grants.ListActiveByUser(userID, now)
	if err != nil {
		return nil, err
	}

	for _, grant := range grants {
		if bcrypt.CompareHashAndPassword([]byte(grant.SecretHash), []byte(secret)) != nil {
			continue
		}
		if err := service.grants.DeleteByID(grant.ID); err != nil {
			return nil, err
		}

		session := models.Session{
			ID:        uuid.NewString(),
			UserID:    userID,
			Provider:  provider,
			ExpiresAt: now.Add(sessionTTL),
			CreatedAt: now,
		}
		if err := service.sessions.Create(&session); err != nil {
			return nil, err
		}
		return &session, nil
	}

	return nil, ErrInvalidGrant
}

// SessionWithUser resolves a live session and its owner. Expired sessions
// are removed on sight.
func (service *AccountService) SessionWithUser(sessionID string) (models.Session, models.User, error) {
	session, found, err := service.sessions.FindByID(sessionID)
	if err != nil {
		return models.Session{}, models.User{}, err
	}
	if !found {
		return models.Session{}, models.User{}, ErrSessionNotFound
	}
	if !session.ExpiresAt.After(time.Now()) {
		_ = service.sessions.DeleteByID(session.ID)
		return models.Session{}, models.User{}, ErrSessionNotFound
	}

	user, found, err := service.users.FindByID(session.UserID)
	if err != nil {
		return models.Session{}, models.User{}, err
	}
	if !found {
		return models.Session{}, models.User{}, ErrUserNotFound
	}
	return session, user, nil
}

func (service *AccountService) DeleteSession(sessionID string) error {
	return service.sessions.DeleteByID(sessionID)
}

func (service *AccountService) UserByID(userID string) (*models.User, error) {
	user, found, err := service.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrUserNotFound
	}
	return &user, nil
}
