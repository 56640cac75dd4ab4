package services

import (
	"context"

	"github.com/justsurfingit/superio-server/internal/apperr"
	"github.com/justsurfingit/superio-server/internal/models"
	"gorm.io/gorm"
)

type CategoryService struct {
	DB *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{
		DB: db,
	}
}

// List returns every category. The table is maintained outside the API.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.DB.WithContext(ctx).Order("category ASC").Find(&categories).Error; err != nil {
		return nil, apperr.NewStoreFailure("categories.list", err)
	}
	return categories, nil
}
