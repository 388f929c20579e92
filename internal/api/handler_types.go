package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shubGupta10/notenest/internal/db"
	"github.com/shubGupta10/notenest/internal/docstore/sqlitestore"
	"github.com/shubGupta10/notenest/internal/services"
	"gorm.io/gorm"
)

const (
	authCookieName     = "notenest_session"
	contextUserKey     = "current_user"
	contextSessionKey  = "current_session"
	oauthCallbackPath  = "/v1/account/tokens/oauth2/callback"
	devConsentPath     = "/v1/account/tokens/consent"
	oauthStateTokenTTL = 10 * time.Minute
)

// OAuthConfig selects which upstream providers the identity surface offers.
// With no Google credentials configured, only the dev provider works.
type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	EnableDevProvider  bool
}

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	baseURL      string
	oauth        OAuthConfig

	repositories *db.Repositories
	accounts     *services.AccountService
	documents    *sqlitestore.Store
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	UserID    string `json:"uid"`
	jwt.RegisteredClaims
}

type oauthStateClaims struct {
	Provider   string `json:"provider"`
	SuccessURL string `json:"success"`
	jwt.RegisteredClaims
}
