package db

import (
	"time"

	"github.com/shubGupta10/notenest/internal/models"
	"gorm.io/gorm"
)

type OAuthGrantRepository struct {
	database *gorm.DB
}

func NewOAuthGrantRepository(database *gorm.DB) *OAuthGrantRepository {
	return &OAuthGrantRepository{database: database}
}

func (repo *OAuthGrantRepository) Create(grant *models.OAuthGrant) error {
	return repo.database.Create(grant).Error
}

func (repo *OAuthGrantRepository) ListActiveByUser(userID string, now time.Time) ([]models.OAuthGrant, error) {
	grants := make([]models.OAuthGrant, 0)
	if err := repo.database.
		Where("user_id = ? AND expires_at > ?", userID, now).
		Order("created_at DESC").
		Find(&grants).Error; err != nil {
		return nil, err
	}
	return grants, nil
}

func (repo *OAuthGrantRepository) DeleteByID(grantID string) error {
	return repo.database.Where("id = ?", grantID).Delete(&models.OAuthGrant{}).Error
}

func (repo *OAuthGrantRepository) DeleteExpired(now time.Time) error {
	return repo.database.Where("expires_at <= ?", now).Delete(&models.OAuthGrant{}).Error
}
