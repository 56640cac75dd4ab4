package handlers

import (
	"context"
	"strings"
	"sync"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/justsurfingit/superio-server/internal/apperr"
	"github.com/justsurfingit/superio-server/internal/dtos"
	"github.com/justsurfingit/superio-server/internal/models"
)

// memoryJobs keeps jobs and applications in insertion order.
type memoryJobs struct {
	mu   sync.Mutex
	jobs []models.Job
	apps []models.Application
	err  error
}

// add stores job. A job built from typed fields alone gets a document
// holding those fields.
func (m *memoryJobs) add(job models.Job) models.Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Document == nil {
		job.Document = models.Document{}
		for k, v := range map[string]string{"title": job.Title, "category": job.Category, "hr_email": job.HREmail} {
			if v != "" {
				job.Document[k] = v
			}
		}
	}
	m.jobs = append(m.jobs, job)
	return job
}

func (m *memoryJobs) find(pred func(models.Job) bool) *models.Job {
	for i := range m.jobs {
		if pred(m.jobs[i]) {
			j := m.jobs[i]
			return &j
		}
	}
	return nil
}

func (m *memoryJobs) FindByCategoryAndID(_ context.Context, category, id string) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.find(func(j models.Job) bool { return j.ID == id && j.Category == category }), nil
}

func (m *memoryJobs) FindByID(_ context.Context, id string) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.find(func(j models.Job) bool { return j.ID == id }), nil
}

func (m *memoryJobs) List(_ context.Context, q dtos.JobListQuery) ([]models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Job{}
	for _, j := range m.jobs {
		if q.Search != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(q.Search)) {
			continue
		}
		if q.CategorySearch != "" && !strings.Contains(strings.ToLower(j.Category), strings.ToLower(q.CategorySearch)) {
			continue
		}
		out = append(out, j)
	}
	if q.Size > 0 {
		start := q.Offset()
		if start > len(out) {
			start = len(out)
		}
		end := start + q.Size
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}
	return out, nil
}

func (m *memoryJobs) Create(_ context.Context, job *models.Job) error {
	if m.err != nil {
		return m.err
	}
	*job = m.add(*job)
	return nil
}

func (m *memoryJobs) UpsertByCategoryAndID(_ context.Context, category, id string, fields models.Document) (*dtos.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.jobs {
		if m.jobs[i].ID == id && m.jobs[i].Category == category {
			doc := models.Document{}
			for k, v := range m.jobs[i].Document {
				doc[k] = v
			}
			for k, v := range fields {
				doc[k] = v
			}
			merged := models.NewJob(doc)
			merged.ID = id
			m.jobs[i] = *merged
			return &dtos.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	doc := models.Document{"category": category}
	for k, v := range fields {
		doc[k] = v
	}
	job := models.NewJob(doc)
	job.ID = id
	m.jobs = append(m.jobs, *job)
	return &dtos.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: id}, nil
}

func (m *memoryJobs) DeleteByID(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	for i := range m.jobs {
		if m.jobs[i].ID == id {
			m.jobs = append(m.jobs[:i], m.jobs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memoryJobs) CountEstimate(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.jobs)), nil
}

func (m *memoryJobs) PostedWithApplicantCounts(_ context.Context, hrEmail string) ([]dtos.PostedJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []dtos.PostedJob{}
	for _, j := range m.jobs {
		if j.HREmail != hrEmail {
			continue
		}
		var n int64
		for _, a := range m.apps {
			if a.JobID == j.ID {
				n++
			}
		}
		out = append(out, dtos.PostedJob{Job: j, Applicants: n})
	}
	return out, nil
}

// memoryApps shares storage with memoryJobs so applied-job lookups see deletions.
type memoryApps struct {
	*memoryJobs
}

func (m memoryApps) Create(_ context.Context, app *models.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	app.ID = uuid.NewString()
	m.apps = append(m.apps, *app)
	return nil
}

func (m memoryApps) FindByID(_ context.Context, id string) (*models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.apps {
		if a.ID == id {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}

func (m memoryApps) AppliedJobs(_ context.Context, email string) ([]models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Job{}
	for _, a := range m.apps {
		if a.Email != email {
			continue
		}
		if j := m.find(func(j models.Job) bool { return j.ID == a.JobID }); j != nil {
			out = append(out, *j)
		}
	}
	return out, nil
}

type staticCategories []models.Category

func (s staticCategories) List(context.Context) ([]models.Category, error) {
	return s, nil
}

type stubUploader struct {
	asset *uploader.UploadResult
	err   error
	got   string
}

func (s *stubUploader) UploadLogo(_ context.Context, file string) (*uploader.UploadResult, error) {
	s.got = file
	return s.asset, s.err
}

var errStoreDown = apperr.NewStoreFailure("jobs.list", context.DeadlineExceeded)
