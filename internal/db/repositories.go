package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	Sessions    *SessionRepository
	OAuthGrants *OAuthGrantRepository
	Documents   *DocumentRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		Sessions:    NewSessionRepository(database),
		OAuthGrants: NewOAuthGrantRepository(database),
		Documents:   NewDocumentRepository(database),
	}
}
