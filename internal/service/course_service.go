package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/escola-api/internal/dto"
	"github.com/noah-isme/escola-api/internal/models"
	"github.com/noah-isme/escola-api/pkg/validation"
)

// CreateCourseRequest is the payload for creating a course.
type CreateCourseRequest struct {
	Nome      string  `json:"nome" validate:"required,max=255"`
	Descricao *string `json:"descricao" validate:"omitempty,max=1000"`
}

// CourseService contains business logic for courses.
type CourseService struct {
	uow       UnitOfWork
	summary   SummaryInvalidator
	pager     Pager
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(uow UnitOfWork, summary SummaryInvalidator, pager Pager, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = dto.NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{uow: uow, summary: summary, pager: pager, validator: validate, logger: logger}
}

// List returns a page of courses.
func (s *CourseService) List(ctx context.Context, skip, limit int) ([]models.Course, int, error) {
	page := s.pager.Page(skip, limit)
	var (
		courses []models.Course
		total   int
	)
	err := s.uow.Read(ctx, func(r Repos) error {
		var err error
		if courses, err = r.Courses.List(ctx, page); err != nil {
			return err
		}
		total, err = r.Courses.Count(ctx)
		return err
	})
	if err != nil {
		return nil, 0, internal(err, "falha ao listar cursos")
	}
	return courses, total, nil
}

// Get returns a course by id.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	var course *models.Course
	err := s.uow.Read(ctx, func(r Repos) error {
		var err error
		course, err = r.Courses.FindByID(ctx, id)
		if err != nil {
			return lookupError(err, msgCourseNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return course, nil
}

// Create stores a new course. Course names are unique.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Wrap(err, msgInvalidPayload)
	}
	course := &models.Course{
		Nome:      strings.TrimSpace(req.Nome),
		Descricao: normalizeOptional(req.Descricao),
	}
	err := s.uow.Atomic(ctx, func(r Repos) error {
		exists, err := r.Courses.ExistsByName(ctx, course.Nome, 0)
		if err != nil {
			return internal(err, msgInternalFailure)
		}
		if exists {
			return conflict(msgCourseNameTaken)
		}
		if err := r.Courses.Create(ctx, course); err != nil {
			return writeError(err, "", conflict(msgCourseNameTaken), nil)
		}
		return nil
	})
	if err != nil {
		return nil, passThrough(err)
	}
	invalidateSummary(ctx, s.summary)
	s.logger.Info("course created", zap.Int64("id_curso", course.ID))
	return course, nil
}

// Delete removes a course, its classes and their enrollments.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	err := s.uow.Atomic(ctx, func(r Repos) error {
		if _, err := r.Courses.FindByID(ctx, id); err != nil {
			return lookupError(err, msgCourseNotFound)
		}
		if err := r.Courses.Delete(ctx, id); err != nil {
			return writeError(err, msgCourseNotFound, nil, nil)
		}
		return nil
	})
	if err != nil {
		return passThrough(err)
	}
	invalidateSummary(ctx, s.summary)
	s.logger.Info("course deleted", zap.Int64("id_curso", id))
	return nil
}
