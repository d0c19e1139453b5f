package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/escola-api/internal/models"
	"github.com/noah-isme/escola-api/internal/service"
	"github.com/noah-isme/escola-api/pkg/response"
)

type enrollmentService interface {
	List(ctx context.Context, skip, limit int) ([]models.EnrollmentDetail, int, error)
	Enroll(ctx context.Context, req service.EnrollStudentRequest) (*models.Enrollment, error)
	Delete(ctx context.Context, id int64) error
}

// EnrollmentHandler exposes enrollment endpoints.
type EnrollmentHandler struct {
	enrollments enrollmentService
}

// NewEnrollmentHandler constructs an EnrollmentHandler.
func NewEnrollmentHandler(enrollments enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// List godoc
// @Summary List enrollments
// @Tags Matriculas
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} models.EnrollmentDetail
// @Header 200 {integer} X-Total-Count "Total rows"
// @Router /matriculas/ [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	skip, limit, err := pageParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	enrollments, total, err := h.enrollments.List(c.Request.Context(), skip, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, enrollments, total)
}

// Enroll godoc
// @Summary Enroll a student in a class
// @Tags Matriculas
// @Accept json
// @Produce json
// @Param payload body service.EnrollStudentRequest true "Enrollment payload"
// @Success 201 {object} models.Enrollment
// @Failure 400 {object} errors.Error "Already enrolled"
// @Failure 404 {object} errors.Error "Student or class not found"
// @Router /matriculas/ [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req service.EnrollStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	enrollment, err := h.enrollments.Enroll(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

// Delete godoc
// @Summary Delete enrollment
// @Tags Matriculas
// @Param id path int true "Enrollment ID"
// @Success 204
// @Failure 404 {object} errors.Error
// @Router /matriculas/{id} [delete]
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.enrollments.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
