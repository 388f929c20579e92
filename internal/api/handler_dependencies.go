package api

import (
	"github.com/shubGupta10/notenest/internal/db"
	"github.com/shubGupta10/notenest/internal/docstore/sqlitestore"
	"github.com/shubGupta10/notenest/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.accounts = services.NewAccountService(
		handler.repositories.Users,
		handler.repositories.Sessions,
		handler.repositories.OAuthGrants,
	)
	handler.documents = sqlitestore.New(handler.repositories.Documents)
	return handler
}

func (handler *Handler) ensureDependencies() {
	if handler.repositories == nil {
		if handler.db == nil {
			return
		}
		handler.repositories = db.NewRepositories(handler.db)
	}

	if handler.accounts == nil {
		handler.accounts = services.NewAccountService(
			handler.repositories.Users,
			handler.repositories.Sessions,
			handler.repositories.OAuthGrants,
		)
	}
	if handler.documents == nil {
		handler.documents = sqlitestore.New(handler.repositories.Documents)
	}
}
