package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/superio-server/internal/apperr"
	"github.com/justsurfingit/superio-server/internal/dtos"
	"github.com/justsurfingit/superio-server/internal/models"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// indexedJobKeys maps document keys onto the columns they are copied into.
var indexedJobKeys = map[string]string{
	"title":    "title",
	"category": "category",
	"hr_email": "hr_email",
}

// likeEscaper makes user search terms match literally inside ILIKE patterns.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{
		DB: db,
	}
}

// FindByCategoryAndID returns nil without error when no job matches both fields.
func (s *JobService) FindByCategoryAndID(ctx context.Context, category, id string) (*models.Job, error) {
	var job models.Job
	err := s.DB.WithContext(ctx).
		Where("id = ? AND category = ?", id, category).
		Take(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.NewStoreFailure("jobs.findByCategoryAndId", err)
	}
	return &job, nil
}

// FindByID returns nil without error when the job does not exist.
func (s *JobService) FindByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := s.DB.WithContext(ctx).Where("id = ?", id).Take(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.NewStoreFailure("jobs.findById", err)
	}
	return &job, nil
}

// List returns jobs in insertion order. Search terms are case-insensitive
// substring matches on title and category; a zero Size returns everything.
func (s *JobService) List(ctx context.Context, q dtos.JobListQuery) ([]models.Job, error) {
	tx := s.DB.WithContext(ctx).Model(&models.Job{})
	if q.Search != "" {
		tx = tx.Where("title ILIKE ?", "%"+likeEscaper.Replace(q.Search)+"%")
	}
	if q.CategorySearch != "" {
		tx = tx.Where("category ILIKE ?", "%"+likeEscaper.Replace(q.CategorySearch)+"%")
	}
	if q.Size > 0 {
		tx = tx.Offset(q.Offset()).Limit(q.Size)
	}

	jobs := []models.Job{}
	if err := tx.Order("created_at ASC, id ASC").Find(&jobs).Error; err != nil {
		return nil, apperr.NewStoreFailure("jobs.list", err)
	}
	return jobs, nil
}

// Create stores job under a freshly assigned id. The document is kept as submitted.
func (s *JobService) Create(ctx context.Context, job *models.Job) error {
	job.ID = uuid.NewString()
	if err := s.DB.WithContext(ctx).Create(job).Error; err != nil {
		return apperr.NewStoreFailure("jobs.insert", err)
	}
	return nil
}

// UpsertByCategoryAndID merges fields into the document of the job matching
// (category, id), or creates a job with that id holding category plus fields
// when nothing matches.
func (s *JobService) UpsertByCategoryAndID(ctx context.Context, category, id string, fields models.Document) (*dtos.UpdateResult, error) {
	patch := make(models.Document, len(fields))
	for k, v := range fields {
		if k != "_id" {
			patch[k] = v
		}
	}
	raw, err := json.Marshal(patch)
	if err != nil {
		return nil, apperr.NewBadRequest(err.Error())
	}

	result := &dtos.UpdateResult{Acknowledged: true}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cols := map[string]interface{}{
			"document":   gorm.Expr("COALESCE(document, '{}'::jsonb) || ?::jsonb", string(raw)),
			"updated_at": time.Now().UTC(),
		}
		for key, col := range indexedJobKeys {
			if v, ok := patch[key]; ok {
				str, _ := v.(string)
				cols[col] = str
			}
		}

		res := tx.Model(&models.Job{}).
			Where("id = ? AND category = ?", id, category).
			Updates(cols)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			result.MatchedCount = res.RowsAffected
			result.ModifiedCount = res.RowsAffected
			return nil
		}

		doc := models.Document{"category": category}
		for k, v := range patch {
			doc[k] = v
		}
		job := models.NewJob(doc)
		job.ID = id
		if err := tx.Create(job).Error; err != nil {
			return err
		}
		result.UpsertedCount = 1
		result.UpsertedID = id
		return nil
	})
	if err != nil {
		return nil, apperr.NewStoreFailure("jobs.upsert", err)
	}
	return result, nil
}

// DeleteByID removes the job. Callers check ownership first.
func (s *JobService) DeleteByID(ctx context.Context, id string) (int64, error) {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Job{})
	if res.Error != nil {
		return 0, apperr.NewStoreFailure("jobs.delete", res.Error)
	}
	return res.RowsAffected, nil
}

// CountEstimate reads the planner's row estimate for the jobs table. A table
// that was never analyzed reports no estimate, so it is counted exactly.
func (s *JobService) CountEstimate(ctx context.Context) (int64, error) {
	var estimate float64
	err := s.DB.WithContext(ctx).
		Raw("SELECT reltuples FROM pg_class WHERE relname = ?", "jobs").
		Scan(&estimate).Error
	if err != nil {
		return 0, apperr.NewStoreFailure("jobs.countEstimate", err)
	}
	if estimate > 0 {
		return int64(estimate), nil
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Job{}).Count(&count).Error; err != nil {
		return 0, apperr.NewStoreFailure("jobs.count", err)
	}
	return count, nil
}

type applicantCount struct {
	JobID string
	Count int64
}

// PostedWithApplicantCounts lists the jobs owned by hrEmail, each with the
// number of applications grouped under its id. Jobs nobody applied to report 0.
func (s *JobService) PostedWithApplicantCounts(ctx context.Context, hrEmail string) ([]dtos.PostedJob, error) {
	var jobs []models.Job
	err := s.DB.WithContext(ctx).
		Where("hr_email = ?", hrEmail).
		Order("created_at ASC, id ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, apperr.NewStoreFailure("jobs.findByOwner", err)
	}

	posted := make([]dtos.PostedJob, 0, len(jobs))
	if len(jobs) == 0 {
		return posted, nil
	}

	ids := make([]string, len(jobs))
	for i, j := range jobs {
		ids[i] = j.ID
	}

	var counts []applicantCount
	err = s.DB.WithContext(ctx).
		Model(&models.Application{}).
		Select("job_id, COUNT(*) AS count").
		Where("job_id = ANY(?)", pq.Array(ids)).
		Group("job_id").
		Scan(&counts).Error
	if err != nil {
		return nil, apperr.NewStoreFailure("applyJobs.countByJob", err)
	}

	byJob := make(map[string]int64, len(counts))
	for _, c := range counts {
		byJob[c.JobID] = c.Count
	}
	for _, j := range jobs {
		posted = append(posted, dtos.PostedJob{Job: j, Applicants: byJob[j.ID]})
	}
	return posted, nil
}
