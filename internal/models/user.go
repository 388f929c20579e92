package models

import "time"

const (
	ProviderGoogle = "google"
	ProviderDev    = "dev"
)

type User struct {
	ID            string    `gorm:"primaryKey"`
	Name          string    `gorm:"not null"`
	Email         string    `gorm:"uniqueIndex;not null"`
	EmailVerified bool      `gorm:"not null;default:false"`
	Provider      string    `gorm:"not null;default:dev"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time
}
