package db

import (
	"github.com/shubGupta10/notenest/internal/models"
	"gorm.io/gorm"
)

type DocumentRepository struct {
	database *gorm.DB
}

func NewDocumentRepository(database *gorm.DB) *DocumentRepository {
	return &DocumentRepository{database: database}
}

func (repo *DocumentRepository) FindByID(collection string, documentID string) (models.Document, bool, error) {
	document := models.Document{}
	result := repo.database.
		Where("collection = ? AND id = ?", collection, documentID).
		Limit(1).
		Find(&document)
	if result.Error != nil {
		return models.Document{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Document{}, false, nil
	}
	return document, true, nil
}

// List applies equality filters over the JSON field bag. Booleans normalize
// to 0/1 because json_extract surfaces JSON booleans as integers.
func (repo *DocumentRepository) List(collection string, filters map[string]any) ([]models.Document, error) {
	query := repo.database.Model(&models.Document{}).Where("collection = ?", collection)
	for field, value := range filters {
		query = query.Where("json_extract(fields, ?) = ?", "$."+field, normalizeFilterValue(value))
	}

	documents := make([]models.Document, 0)
	if err := query.Order("created_at ASC, id ASC").Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

func (repo *DocumentRepository) Create(document *models.Document) error {
	return repo.database.Create(document).Error
}

func (repo *DocumentRepository) Save(document *models.Document) error {
	return repo.database.Save(document).Error
}

func (repo *DocumentRepository) Delete(collection string, documentID string) error {
	return repo.database.
		Where("collection = ? AND id = ?", collection, documentID).
		Delete(&models.Document{}).Error
}

func normalizeFilterValue(value any) any {
	switch typed := value.(type) {
	case bool:
		if typed {
			return 1
		}
		return 0
	default:
		return value
	}
}
