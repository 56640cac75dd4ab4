package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/justsurfingit/superio-server/internal/apperr"
	"github.com/justsurfingit/superio-server/internal/logger"
	"github.com/justsurfingit/superio-server/internal/models"
)

// fail logs server side failures and writes err as the response.
func fail(c *gin.Context, log logger.Logger, err error, fields map[string]interface{}) {
	appErr := apperr.As(err)
	if appErr.Status >= http.StatusInternalServerError {
		if fields == nil {
			fields = map[string]interface{}{}
		}
		fields["route"] = c.FullPath()
		fields["code"] = string(appErr.Code)
		log.WithError(err).Error("request failed", fields)
	}
	apperr.Respond(c, appErr)
}

// bindFailure maps a body or query binding error onto 413 or 400.
func bindFailure(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperr.NewPayloadTooLarge(tooLarge.Limit)
	}
	return apperr.NewBadRequest(err.Error())
}

// bindDocument decodes the body as a JSON object without imposing field types.
func bindDocument(c *gin.Context) (models.Document, bool) {
	var doc models.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		apperr.Respond(c, bindFailure(err))
		return nil, false
	}
	if doc == nil {
		apperr.Respond(c, apperr.NewBadRequest("body must be a JSON object"))
		return nil, false
	}
	return doc, true
}

// canonicalID accepts the hyphenated uuid form in any letter case and
// returns it lowercased. Braced, urn and bare hex forms are rejected.
func canonicalID(raw string) (string, bool) {
	if len(raw) != 36 {
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// pathID returns the named path parameter in canonical form when it is a
// well formed id.
func pathID(c *gin.Context, name string) (string, bool) {
	raw := c.Param(name)
	id, ok := canonicalID(raw)
	if !ok {
		apperr.Respond(c, apperr.NewInvalidID(raw))
		return "", false
	}
	return id, true
}
