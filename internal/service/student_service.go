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

// CreateStudentRequest is the payload for creating a student.
type CreateStudentRequest struct {
	Nome   string  `json:"nome" validate:"required,max=255"`
	Email  string  `json:"email" validate:"required,email,max=255"`
	Status *string `json:"status" validate:"omitempty,max=50"`
}

// UpdateStudentRequest carries a partial student update.
type UpdateStudentRequest struct {
	Nome   dto.Optional[*string] `json:"nome" swaggertype:"string" validate:"omitempty,max=255"`
	Email  dto.Optional[*string] `json:"email" swaggertype:"string" validate:"omitempty,email,max=255"`
	Status dto.Optional[*string] `json:"status" swaggertype:"string" validate:"omitempty,max=50"`
}

// StudentService contains business logic for students.
type StudentService struct {
	uow       UnitOfWork
	summary   SummaryInvalidator
	pager     Pager
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(uow UnitOfWork, summary SummaryInvalidator, pager Pager, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = dto.NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{uow: uow, summary: summary, pager: pager, validator: validate, logger: logger}
}

// List returns a page of students. Rows stored without a status are reported
// as active.
func (s *StudentService) List(ctx context.Context, skip, limit int) ([]models.Student, int, error) {
	page := s.pager.Page(skip, limit)
	var (
		students []models.Student
		total    int
	)
	err := s.uow.Read(ctx, func(r Repos) error {
		var err error
		if students, err = r.Students.List(ctx, page); err != nil {
			return err
		}
		total, err = r.Students.Count(ctx)
		return err
	})
	if err != nil {
		return nil, 0, internal(err, "falha ao listar alunos")
	}
	for i := range students {
		if strings.TrimSpace(students[i].Status) == "" {
			students[i].Status = models.StudentStatusActive
		}
	}
	return students, total, nil
}

// Get returns a student by id.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	var student *models.Student
	err := s.uow.Read(ctx, func(r Repos) error {
		var err error
		student, err = r.Students.FindByID(ctx, id)
		if err != nil {
			return lookupError(err, msgStudentNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return student, nil
}

// Create validates and stores a new student.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Wrap(err, msgInvalidPayload)
	}
	student := &models.Student{
		Nome:   strings.TrimSpace(req.Nome),
		Email:  strings.TrimSpace(req.Email),
		Status: models.StudentStatusActive,
	}
	if status := normalizeOptional(req.Status); status != nil {
		student.Status = *status
	}
	if err := s.create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *StudentService) create(ctx context.Context, student *models.Student) error {
	err := s.uow.Atomic(ctx, func(r Repos) error {
		exists, err := r.Students.ExistsByEmail(ctx, student.Email, 0)
		if err != nil {
			return internal(err, msgInternalFailure)
		}
		if exists {
			return conflict(msgEmailTaken)
		}
		if err := r.Students.Create(ctx, student); err != nil {
			return writeError(err, "", conflict(msgEmailTaken), nil)
		}
		return nil
	})
	if err != nil {
		return passThrough(err)
	}
	invalidateSummary(ctx, s.summary)
	s.logger.Info("student created", zap.Int64("id_aluno", student.ID))
	return nil
}

// Update applies the present fields of req to the student.
func (s *StudentService) Update(ctx context.Context, id int64, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Wrap(err, msgInvalidPayload)
	}
	fields := map[string]interface{}{}
	for column, opt := range map[string]dto.Optional[*string]{
		"nome":   req.Nome,
		"email":  req.Email,
		"status": req.Status,
	} {
		if !opt.Set {
			continue
		}
		value, err := requiredText(column, opt)
		if err != nil {
			return nil, err
		}
		fields[column] = value
	}

	var student *models.Student
	err := s.uow.Atomic(ctx, func(r Repos) error {
		if _, err := r.Students.FindByID(ctx, id); err != nil {
			return lookupError(err, msgStudentNotFound)
		}
		if email, ok := fields["email"].(string); ok {
			exists, err := r.Students.ExistsByEmail(ctx, email, id)
			if err != nil {
				return internal(err, msgInternalFailure)
			}
			if exists {
				return conflict(msgEmailTaken)
			}
		}
		if len(fields) > 0 {
			if err := r.Students.Update(ctx, id, fields); err != nil {
				return writeError(err, msgStudentNotFound, conflict(msgEmailTaken), nil)
			}
		}
		var err error
		student, err = r.Students.FindByID(ctx, id)
		if err != nil {
			return lookupError(err, msgStudentNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, passThrough(err)
	}
	return student, nil
}

// Delete removes a student together with their enrollments.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	err := s.uow.Atomic(ctx, func(r Repos) error {
		if _, err := r.Students.FindByID(ctx, id); err != nil {
			return lookupError(err, msgStudentNotFound)
		}
		if err := r.Students.Delete(ctx, id); err != nil {
			return writeError(err, msgStudentNotFound, nil, nil)
		}
		return nil
	})
	if err != nil {
		return passThrough(err)
	}
	invalidateSummary(ctx, s.summary)
	s.logger.Info("student deleted", zap.Int64("id_aluno", id))
	return nil
}

// Classes lists the classes a student is enrolled in.
func (s *StudentService) Classes(ctx context.Context, id int64) ([]models.ClassDetail, error) {
	var classes []models.ClassDetail
	err := s.uow.Read(ctx, func(r Repos) error {
		if _, err := r.Students.FindByID(ctx, id); err != nil {
			return lookupError(err, msgStudentNotFound)
		}
		var err error
		classes, err = r.Classes.ListByStudent(ctx, id)
		if err != nil {
			return internal(err, msgInternalFailure)
		}
		return nil
	})
	if err != nil {
		return nil, passThrough(err)
	}
	return classes, nil
}
