package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/escola-api/internal/middleware"
	"github.com/noah-isme/escola-api/internal/models"
	"github.com/noah-isme/escola-api/pkg/response"
)

type summaryService interface {
	Totals(ctx context.Context) (*models.Summary, bool, error)
}

// HomeHandler serves the landing page totals.
type HomeHandler struct {
	summary summaryService
}

// NewHomeHandler constructs a HomeHandler.
func NewHomeHandler(summary summaryService) *HomeHandler {
	return &HomeHandler{summary: summary}
}

// Summary godoc
// @Summary Entity totals
// @Tags Home
// @Produce json
// @Success 200 {object} models.Summary
// @Header 200 {string} X-Cache "HIT or MISS"
// @Router /home [get]
func (h *HomeHandler) Summary(c *gin.Context) {
	summary, hit, err := h.summary.Totals(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, summary)
}
