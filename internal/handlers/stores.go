package handlers

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/justsurfingit/superio-server/internal/dtos"
	"github.com/justsurfingit/superio-server/internal/models"
)

// JobStore is implemented by *services.JobService.
type JobStore interface {
	FindByCategoryAndID(ctx context.Context, category, id string) (*models.Job, error)
	FindByID(ctx context.Context, id string) (*models.Job, error)
	List(ctx context.Context, q dtos.JobListQuery) ([]models.Job, error)
	Create(ctx context.Context, job *models.Job) error
	UpsertByCategoryAndID(ctx context.Context, category, id string, fields models.Document) (*dtos.UpdateResult, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
	CountEstimate(ctx context.Context) (int64, error)
	PostedWithApplicantCounts(ctx context.Context, hrEmail string) ([]dtos.PostedJob, error)
}

// CategoryStore is implemented by *services.CategoryService.
type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
}

// ApplicationStore is implemented by *services.ApplicationService.
type ApplicationStore interface {
	Create(ctx context.Context, app *models.Application) error
	FindByID(ctx context.Context, id string) (*models.Application, error)
	AppliedJobs(ctx context.Context, email string) ([]models.Job, error)
}

// LogoUploader is implemented by *services.UploadService.
type LogoUploader interface {
	UploadLogo(ctx context.Context, file string) (*uploader.UploadResult, error)
}
