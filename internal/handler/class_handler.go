package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/escola-api/internal/models"
	"github.com/noah-isme/escola-api/internal/service"
	"github.com/noah-isme/escola-api/pkg/response"
)

type classService interface {
	List(ctx context.Context, skip, limit int) ([]models.ClassDetail, int, error)
	Get(ctx context.Context, id int64) (*models.ClassDetail, error)
	Create(ctx context.Context, req service.CreateClassRequest) (*models.ClassDetail, error)
	Delete(ctx context.Context, id int64) error
	Students(ctx context.Context, id int64) ([]models.Student, error)
}

type rosterExporter interface {
	Roster(ctx context.Context, classID int64, format string) (*service.ExportFile, error)
}

// ClassHandler exposes class endpoints.
type ClassHandler struct {
	classes classService
	export  rosterExporter
}

// NewClassHandler constructs a ClassHandler.
func NewClassHandler(classes classService, export rosterExporter) *ClassHandler {
	return &ClassHandler{classes: classes, export: export}
}

// List godoc
// @Summary List classes
// @Tags Turmas
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} models.ClassDetail
// @Header 200 {integer} X-Total-Count "Total rows"
// @Router /turmas/ [get]
func (h *ClassHandler) List(c *gin.Context) {
	skip, limit, err := pageParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	classes, total, err := h.classes.List(c.Request.Context(), skip, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, classes, total)
}

// Get godoc
// @Summary Get class detail
// @Tags Turmas
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} models.ClassDetail
// @Failure 404 {object} errors.Error
// @Router /turmas/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	class, err := h.classes.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}

// Create godoc
// @Summary Create class
// @Tags Turmas
// @Accept json
// @Produce json
// @Param payload body service.CreateClassRequest true "Class payload"
// @Success 201 {object} models.ClassDetail
// @Failure 400 {object} errors.Error
// @Failure 404 {object} errors.Error "Course or teacher not found"
// @Router /turmas/ [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var req service.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	class, err := h.classes.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// Delete godoc
// @Summary Delete class
// @Tags Turmas
// @Param id path int true "Class ID"
// @Success 204
// @Failure 404 {object} errors.Error
// @Router /turmas/{id} [delete]
func (h *ClassHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.classes.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Students godoc
// @Summary List students enrolled in a class
// @Tags Turmas
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {array} models.Student
// @Failure 404 {object} errors.Error
// @Router /turmas/{id}/alunos [get]
func (h *ClassHandler) Students(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	students, err := h.classes.Students(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Export godoc
// @Summary Export class roster
// @Tags Turmas
// @Produce text/csv
// @Produce application/pdf
// @Param id path int true "Class ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 404 {object} errors.Error
// @Router /turmas/{id}/alunos/export [get]
func (h *ClassHandler) Export(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.export.Roster(c.Request.Context(), id, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
