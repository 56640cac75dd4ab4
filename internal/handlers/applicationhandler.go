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

type ApplicationHandler struct {
	Applications ApplicationStore
	Log          logger.Logger
}

func NewApplicationHandler(apps ApplicationStore, log logger.Logger) *ApplicationHandler {
	return &ApplicationHandler{Applications: apps, Log: log}
}

// Apply is POST /applyJob. The body is stored as submitted; only job_id
// must name a well formed id.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}
	rawJobID := doc.String("job_id")
	jobID, ok := canonicalID(rawJobID)
	if !ok {
		apperr.Respond(c, apperr.NewInvalidID(rawJobID))
		return
	}

	app := models.NewApplication(doc, jobID)
	if err := h.Applications.Create(c.Request.Context(), app); err != nil {
		fail(c, h.Log, err, map[string]interface{}{"job_id": jobID})
		return
	}
	metrics.ApplicationsSubmitted.Inc()
	c.JSON(http.StatusOK, dtos.InsertResult{Acknowledged: true, InsertedID: app.ID})
}

// AppliedJobs is GET /applyJob: the jobs the caller has applied to.
func (h *ApplicationHandler) AppliedJobs(c *gin.Context) {
	email := auth.CallerEmail(c)
	jobs, err := h.Applications.AppliedJobs(c.Request.Context(), email)
	if err != nil {
		fail(c, h.Log, err, map[string]interface{}{"email": email})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// FindApplication is GET /applyJob/:id. An absent application is a 200 null.
func (h *ApplicationHandler) FindApplication(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	app, err := h.Applications.FindByID(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Log, err, map[string]interface{}{"id": id})
		return
	}
	c.JSON(http.StatusOK, app)
}
