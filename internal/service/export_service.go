package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/escola-api/internal/models"
	"github.com/noah-isme/escola-api/pkg/export"
	"github.com/noah-isme/escola-api/pkg/validation"
)

type rosterSource interface {
	Get(ctx context.Context, id int64) (*models.ClassDetail, error)
	Students(ctx context.Context, id int64) ([]models.Student, error)
}

// ExportFile is a rendered attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

var rosterHeaders = []string{"id_aluno", "nome", "email", "status"}

// ExportService renders class rosters as CSV or PDF.
type ExportService struct {
	classes rosterSource
	logger  *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(classes rosterSource, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{classes: classes, logger: logger}
}

// Roster renders the students enrolled in a class in the requested format.
func (s *ExportService) Roster(ctx context.Context, classID int64, rawFormat string) (*ExportFile, error) {
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, validation.Field("format", "deve ser um de: csv pdf")
	}
	class, err := s.classes.Get(ctx, classID)
	if err != nil {
		return nil, err
	}
	students, err := s.classes.Students(ctx, classID)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Title:   fmt.Sprintf("Turma %d - %s", class.ID, class.Curso.Nome),
		Headers: rosterHeaders,
		Rows:    make([]map[string]string, 0, len(students)),
	}
	for _, student := range students {
		status := student.Status
		if status == "" {
			status = models.StudentStatusActive
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"id_aluno": strconv.FormatInt(student.ID, 10),
			"nome":     student.Nome,
			"email":    student.Email,
			"status":   status,
		})
	}

	payload, err := export.Render(format, dataset)
	if err != nil {
		return nil, internal(err, "falha ao gerar exportação")
	}
	s.logger.Info("roster exported",
		zap.Int64("id_turma", classID),
		zap.String("format", string(format)),
		zap.Int("rows", len(dataset.Rows)))

	return &ExportFile{
		Filename:    fmt.Sprintf("turma_%d_alunos.%s", classID, format),
		ContentType: format.ContentType(),
		Data:        payload,
	}, nil
}
