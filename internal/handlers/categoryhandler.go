package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/superio-server/internal/logger"
)

type CategoryHandler struct {
	Categories CategoryStore
	Log        logger.Logger
}

func NewCategoryHandler(categories CategoryStore, log logger.Logger) *CategoryHandler {
	return &CategoryHandler{Categories: categories, Log: log}
}

// ListCategories is GET /categories.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.Categories.List(c.Request.Context())
	if err != nil {
		fail(c, h.Log, err, nil)
		return
	}
	c.JSON(http.StatusOK, categories)
}
