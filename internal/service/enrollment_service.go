package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/escola-api/internal/dto"
	"github.com/noah-isme/escola-api/internal/models"
	"github.com/noah-isme/escola-api/pkg/validation"
)

// EnrollStudentRequest describes enrollment creation request.
type EnrollStudentRequest struct {
	StudentID int64 `json:"id_aluno" validate:"required,gt=0"`
	ClassID   int64 `json:"id_turma" validate:"required,gt=0"`
}

// EnrollmentService orchestrates enrollment workflows.
type EnrollmentService struct {
	uow       UnitOfWork
	pager     Pager
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(uow UnitOfWork, pager Pager, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = dto.NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{uow: uow, pager: pager, validator: validate, logger: logger}
}

// List returns a page of enrollments with student and class detail.
func (s *EnrollmentService) List(ctx context.Context, skip, limit int) ([]models.EnrollmentDetail, int, error) {
	page := s.pager.Page(skip, limit)
	var (
		enrollments []models.EnrollmentDetail
		total       int
	)
	err := s.uow.Read(ctx, func(r Repos) error {
		var err error
		if enrollments, err = r.Enrollments.List(ctx, page); err != nil {
			return err
		}
		total, err = r.Enrollments.Count(ctx)
		return err
	})
	if err != nil {
		return nil, 0, internal(err, "falha ao listar matrículas")
	}
	return enrollments, total, nil
}

// Enroll registers a student in a class. A student may hold a single
// enrollment per class.
func (s *EnrollmentService) Enroll(ctx context.Context, req EnrollStudentRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Wrap(err, msgInvalidPayload)
	}
	enrollment := &models.Enrollment{StudentID: req.StudentID, ClassID: req.ClassID}
	err := s.uow.Atomic(ctx, func(r Repos) error {
		if _, err := r.Students.FindByID(ctx, req.StudentID); err != nil {
			return lookupError(err, msgStudentNotFound)
		}
		if _, err := r.Classes.FindByID(ctx, req.ClassID); err != nil {
			return lookupError(err, msgClassNotFound)
		}
		exists, err := r.Enrollments.Exists(ctx, req.StudentID, req.ClassID)
		if err != nil {
			return internal(err, msgInternalFailure)
		}
		if exists {
			return conflict(msgAlreadyEnrolled)
		}
		if err := r.Enrollments.Create(ctx, enrollment); err != nil {
			return writeError(err, "", conflict(msgAlreadyEnrolled), notFound(msgClassNotFound))
		}
		return nil
	})
	if err != nil {
		return nil, passThrough(err)
	}
	s.logger.Info("student enrolled",
		zap.Int64("id_matricula", enrollment.ID),
		zap.Int64("id_aluno", enrollment.StudentID),
		zap.Int64("id_turma", enrollment.ClassID))
	return enrollment, nil
}

// Delete removes an enrollment.
func (s *EnrollmentService) Delete(ctx context.Context, id int64) error {
	err := s.uow.Atomic(ctx, func(r Repos) error {
		if _, err := r.Enrollments.FindByID(ctx, id); err != nil {
			return lookupError(err, msgEnrollmentNotFound)
		}
		if err := r.Enrollments.Delete(ctx, id); err != nil {
			return writeError(err, msgEnrollmentNotFound, nil, nil)
		}
		return nil
	})
	if err != nil {
		return passThrough(err)
	}
	s.logger.Info("enrollment deleted", zap.Int64("id_matricula", id))
	return nil
}
