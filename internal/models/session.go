package models

import "time"

// Session is one redeemed login. The auth token only stays valid while its
// session row exists, so logout is a real revocation.
type Session struct {
	ID        string    `gorm:"primaryKey"`
	UserID    string    `gorm:"not null;index"`
	Provider  string    `gorm:"not null;default:dev"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// OAuthGrant is the one-time secret handed to the app through the OAuth
// redirect. The secret itself is never stored, only its bcrypt hash.
type OAuthGrant struct {
	ID         string    `gorm:"primaryKey"`
	UserID     string    `gorm:"not null;index"`
	SecretHash string    `gorm:"not null"`
	ExpiresAt  time.Time `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName maps the model to the oauth_grants table created by the
// migrations, overriding GORM's default o_auth_grants pluralization.
func (OAuthGrant) TableName() string {
	return "oauth_grants"
}
