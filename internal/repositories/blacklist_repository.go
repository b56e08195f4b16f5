package repositories

import (
	"goosedoor_backend/internal/models"

	"gorm.io/gorm"
)

type BlacklistRepository interface {
	Create(entry *models.BlacklistedCompany) error
	FindAll() ([]models.BlacklistedCompany, error)
}

type BlacklistRepositoryImpl struct {
	db *gorm.DB
}

func NewBlacklistRepository(db *gorm.DB) BlacklistRepository {
	return &BlacklistRepositoryImpl{db: db}
}

func (r *BlacklistRepositoryImpl) Create(entry *models.BlacklistedCompany) error {
	return r.db.Create(entry).Error
}

func (r *BlacklistRepositoryImpl) FindAll() ([]models.BlacklistedCompany, error) {
	var entries []models.BlacklistedCompany
	err := r.db.Order("created_at DESC").Find(&entries).Error
	return entries, err
}
