package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/escola-api/internal/dto"
	"github.com/noah-isme/escola-api/internal/models"
	"github.com/noah-isme/escola-api/pkg/validation"
)

// CreateClassRequest captures creation payload.
type CreateClassRequest struct {
	CourseID     int64   `json:"id_curso" validate:"required,gt=0"`
	TeacherID    int64   `json:"id_professor" validate:"required,gt=0"`
	CargaHoraria int     `json:"carga_horaria" validate:"required,gt=0"`
	Horario      *string `json:"horario" validate:"omitempty,max=100"`
	Sala         *string `json:"sala" validate:"omitempty,max=50"`
	Status       *string `json:"status" validate:"omitempty,max=50"`
}

// ClassService coordinates class operations.
type ClassService struct {
	uow       UnitOfWork
	summary   SummaryInvalidator
	pager     Pager
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs a ClassService.
func NewClassService(uow UnitOfWork, summary SummaryInvalidator, pager Pager, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = dto.NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{uow: uow, summary: summary, pager: pager, validator: validate, logger: logger}
}

// List returns a page of classes with their course and teacher.
func (s *ClassService) List(ctx context.Context, skip, limit int) ([]models.ClassDetail, int, error) {
	page := s.pager.Page(skip, limit)
	var (
		classes []models.ClassDetail
		total   int
	)
	err := s.uow.Read(ctx, func(r Repos) error {
		var err error
		if classes, err = r.Classes.List(ctx, page); err != nil {
			return err
		}
		total, err = r.Classes.Count(ctx)
		return err
	})
	if err != nil {
		return nil, 0, internal(err, "falha ao listar turmas")
	}
	return classes, total, nil
}

// Get returns class detail by id.
func (s *ClassService) Get(ctx context.Context, id int64) (*models.ClassDetail, error) {
	var class *models.ClassDetail
	err := s.uow.Read(ctx, func(r Repos) error {
		var err error
		class, err = r.Classes.FindByID(ctx, id)
		if err != nil {
			return lookupError(err, msgClassNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return class, nil
}

// Create opens a class for an existing course and teacher.
func (s *ClassService) Create(ctx context.Context, req CreateClassRequest) (*models.ClassDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Wrap(err, msgInvalidPayload)
	}
	class := &models.Class{
		CourseID:     req.CourseID,
		TeacherID:    req.TeacherID,
		CargaHoraria: req.CargaHoraria,
		Horario:      normalizeOptional(req.Horario),
		Sala:         normalizeOptional(req.Sala),
		Status:       models.ClassStatusOpen,
	}
	if status := normalizeOptional(req.Status); status != nil {
		class.Status = *status
	}

	var detail *models.ClassDetail
	err := s.uow.Atomic(ctx, func(r Repos) error {
		if _, err := r.Courses.FindByID(ctx, class.CourseID); err != nil {
			return lookupError(err, msgCourseNotFound)
		}
		if _, err := r.Teachers.FindByID(ctx, class.TeacherID); err != nil {
			return lookupError(err, msgTeacherNotFound)
		}
		if err := r.Classes.Create(ctx, class); err != nil {
			return writeError(err, "", nil, notFound(msgCourseNotFound))
		}
		var err error
		detail, err = r.Classes.FindByID(ctx, class.ID)
		if err != nil {
			return lookupError(err, msgClassNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, passThrough(err)
	}
	invalidateSummary(ctx, s.summary)
	s.logger.Info("class created", zap.Int64("id_turma", class.ID), zap.Int64("id_curso", class.CourseID))
	return detail, nil
}

// Delete removes a class and its enrollments.
func (s *ClassService) Delete(ctx context.Context, id int64) error {
	err := s.uow.Atomic(ctx, func(r Repos) error {
		if _, err := r.Classes.FindByID(ctx, id); err != nil {
			return lookupError(err, msgClassNotFound)
		}
		if err := r.Classes.Delete(ctx, id); err != nil {
			return writeError(err, msgClassNotFound, nil, nil)
		}
		return nil
	})
	if err != nil {
		return passThrough(err)
	}
	invalidateSummary(ctx, s.summary)
	s.logger.Info("class deleted", zap.Int64("id_turma", id))
	return nil
}

// Students lists the students enrolled in a class.
func (s *ClassService) Students(ctx context.Context, id int64) ([]models.Student, error) {
	var students []models.Student
	err := s.uow.Read(ctx, func(r Repos) error {
		if _, err := r.Classes.FindByID(ctx, id); err != nil {
			return lookupError(err, msgClassNotFound)
		}
		var err error
		students, err = r.Enrollments.ListStudentsByClass(ctx, id)
		if err != nil {
			return internal(err, msgInternalFailure)
		}
		return nil
	})
	if err != nil {
		return nil, passThrough(err)
	}
	return students, nil
}
