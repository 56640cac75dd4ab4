package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/superio-server/internal/apperr"
	"github.com/justsurfingit/superio-server/internal/dtos"
	"github.com/justsurfingit/superio-server/internal/logger"
	"github.com/justsurfingit/superio-server/internal/metrics"
	"github.com/justsurfingit/superio-server/internal/services"
)

type UploadHandler struct {
	Uploads LogoUploader
	Log     logger.Logger
}

func NewUploadHandler(uploads LogoUploader, log logger.Logger) *UploadHandler {
	return &UploadHandler{Uploads: uploads, Log: log}
}

// UploadLogo is POST /. It relays company_logo to the media host and answers
// with the host's descriptor unchanged.
func (h *UploadHandler) UploadLogo(c *gin.Context) {
	var req dtos.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, bindFailure(err))
		return
	}

	asset, err := h.Uploads.UploadLogo(c.Request.Context(), req.CompanyLogo)
	if err != nil {
		metrics.Uploads.WithLabelValues("failed").Inc()
		h.Log.Warn("logo upload failed", map[string]interface{}{"error": err})
		apperr.Respond(c, err)
		return
	}
	metrics.Uploads.WithLabelValues("stored").Inc()
	h.Log.Info("logo uploaded", map[string]interface{}{
		"public_id":  asset.PublicID,
		"secure_url": asset.SecureURL,
	})
	c.JSON(http.StatusOK, services.Descriptor(asset))
}
