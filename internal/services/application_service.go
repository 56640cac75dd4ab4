package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/justsurfingit/superio-server/internal/apperr"
	"github.com/justsurfingit/superio-server/internal/models"
	"gorm.io/gorm"
)

type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{
		DB: db,
	}
}

// Create stores the application under a new id. The referenced job is not checked.
func (s *ApplicationService) Create(ctx context.Context, app *models.Application) error {
	app.ID = uuid.NewString()
	if err := s.DB.WithContext(ctx).Create(app).Error; err != nil {
		return apperr.NewStoreFailure("applyJobs.insert", err)
	}
	return nil
}

// FindByID returns nil without error when the application does not exist.
func (s *ApplicationService) FindByID(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	err := s.DB.WithContext(ctx).Where("id = ?", id).Take(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.NewStoreFailure("applyJobs.findById", err)
	}
	return &app, nil
}

// AppliedJobs returns the jobs email has applied to, one entry per
// application, in application order. Applications whose job was deleted
// are skipped.
func (s *ApplicationService) AppliedJobs(ctx context.Context, email string) ([]models.Job, error) {
	jobs := []models.Job{}
	err := s.DB.WithContext(ctx).
		Table("apply_jobs").
		Select("jobs.*").
		Joins("JOIN jobs ON jobs.id = apply_jobs.job_id").
		Where("apply_jobs.email = ?", email).
		Order("apply_jobs.created_at ASC, apply_jobs.id ASC").
		Scan(&jobs).Error
	if err != nil {
		return nil, apperr.NewStoreFailure("applyJobs.appliedJobs", err)
	}
	return jobs, nil
}
