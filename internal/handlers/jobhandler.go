package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/superio-server/internal/apperr"
	"github.com/justsurfingit/superio-server/internal/auth"
	"github.com/justsurfingit/superio-server/internal/dtos"
	"github.com/justsurfingit/superio-server/internal/logger"
	"github.com/justsurfingit/superio-server/internal/metrics"
	"github.com/justsurfingit/superio-server/internal/models"
)

type JobHandler struct {
	Jobs JobStore
	Log  logger.Logger
	// EnforceUpdateOwnership makes PUT /updateJob reject jobs owned by someone else.
	EnforceUpdateOwnership bool
}

func NewJobHandler(jobs JobStore, log logger.Logger, enforceUpdateOwnership bool) *JobHandler {
	return &JobHandler{
		Jobs:                   jobs,
		Log:                    log,
		EnforceUpdateOwnership: enforceUpdateOwnership,
	}
}

// FindJob is GET /findJobs/:category/:id. An absent job is a 200 null.
func (h *JobHandler) FindJob(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	category := c.Param("category")

	job, err := h.Jobs.FindByCategoryAndID(c.Request.Context(), category, id)
	if err != nil {
		fail(c, h.Log, err, map[string]interface{}{"id": id, "category": category})
		return
	}
	c.JSON(http.StatusOK, job)
}

// ListJobs is GET /jobs with optional page, size, search and categorySearch.
func (h *JobHandler) ListJobs(c *gin.Context) {
	var q dtos.JobListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		apperr.Respond(c, apperr.NewBadRequest(err.Error()))
		return
	}

	jobs, err := h.Jobs.List(c.Request.Context(), q)
	if err != nil {
		fail(c, h.Log, err, map[string]interface{}{"page": q.Page, "size": q.Size})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// CreateJob is POST /addJob. Any JSON object is stored as submitted.
func (h *JobHandler) CreateJob(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}

	job := models.NewJob(doc)
	if err := h.Jobs.Create(c.Request.Context(), job); err != nil {
		fail(c, h.Log, err, map[string]interface{}{"hr_email": job.HREmail})
		return
	}
	metrics.JobsCreated.Inc()
	c.JSON(http.StatusOK, dtos.InsertResult{Acknowledged: true, InsertedID: job.ID})
}

// UpdateJob is PUT /updateJob/:category/:id, an upsert keyed by both path
// params. The body's keys are set on the stored document.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	category := c.Param("category")

	fields, ok := bindDocument(c)
	if !ok {
		return
	}

	if h.EnforceUpdateOwnership {
		existing, err := h.Jobs.FindByCategoryAndID(c.Request.Context(), category, id)
		if err != nil {
			fail(c, h.Log, err, map[string]interface{}{"id": id, "category": category})
			return
		}
		if existing != nil && existing.HREmail != auth.CallerEmail(c) {
			apperr.Respond(c, apperr.NewForbidden("job is owned by another user"))
			return
		}
	}

	result, err := h.Jobs.UpsertByCategoryAndID(c.Request.Context(), category, id, fields)
	if err != nil {
		fail(c, h.Log, err, map[string]interface{}{"id": id, "category": category})
		return
	}
	c.JSON(http.StatusOK, result)
}

// JobForUpdate is GET /updateJob/:category/:id, the owner's read before editing.
func (h *JobHandler) JobForUpdate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	category := c.Param("category")

	job, err := h.Jobs.FindByCategoryAndID(c.Request.Context(), category, id)
	if err != nil {
		fail(c, h.Log, err, map[string]interface{}{"id": id, "category": category})
		return
	}
	if job != nil && job.HREmail != auth.CallerEmail(c) {
		apperr.Respond(c, apperr.NewForbidden("job is owned by another user"))
		return
	}
	c.JSON(http.StatusOK, job)
}

// MyPostedJobs is GET /myPostedJobs: the caller's jobs with applicant counts.
func (h *JobHandler) MyPostedJobs(c *gin.Context) {
	email := auth.CallerEmail(c)
	posted, err := h.Jobs.PostedWithApplicantCounts(c.Request.Context(), email)
	if err != nil {
		fail(c, h.Log, err, map[string]interface{}{"hr_email": email})
		return
	}
	c.JSON(http.StatusOK, posted)
}

// DeletePostedJob is DELETE /myPostedJobs/:id. Only the job's owner may delete it.
func (h *JobHandler) DeletePostedJob(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	job, err := h.Jobs.FindByID(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Log, err, map[string]interface{}{"id": id})
		return
	}
	if job == nil {
		c.JSON(http.StatusOK, dtos.DeleteResult{Acknowledged: true})
		return
	}
	if job.HREmail != auth.CallerEmail(c) {
		apperr.Respond(c, apperr.NewForbidden("job is owned by another user"))
		return
	}

	deleted, err := h.Jobs.DeleteByID(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Log, err, map[string]interface{}{"id": id})
		return
	}
	h.Log.Info("job deleted", map[string]interface{}{"id": id, "hr_email": job.HREmail})
	c.JSON(http.StatusOK, dtos.DeleteResult{Acknowledged: true, DeletedCount: deleted})
}

// JobsCount is GET /jobsCount.
func (h *JobHandler) JobsCount(c *gin.Context) {
	n, err := h.Jobs.CountEstimate(c.Request.Context())
	if err != nil {
		fail(c, h.Log, err, nil)
		return
	}
	c.JSON(http.StatusOK, dtos.CountResponse{Count: n})
}
