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

// CreateTeacherRequest is the payload for creating a teacher.
type CreateTeacherRequest struct {
	Nome           string  `json:"nome" validate:"required,max=255"`
	Email          string  `json:"email" validate:"required,email,max=255"`
	Especializacao *string `json:"especializacao" validate:"omitempty,max=100"`
}

// UpdateTeacherRequest carries a partial teacher update. Only present keys
// are written.
type UpdateTeacherRequest struct {
	Nome           dto.Optional[*string] `json:"nome" swaggertype:"string" validate:"omitempty,max=255"`
	Email          dto.Optional[*string] `json:"email" swaggertype:"string" validate:"omitempty,email,max=255"`
	Especializacao dto.Optional[*string] `json:"especializacao" swaggertype:"string" validate:"omitempty,max=100"`
}

// TeacherService contains business logic for teachers.
type TeacherService struct {
	uow       UnitOfWork
	summary   SummaryInvalidator
	pager     Pager
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs a TeacherService. summary may be nil.
func NewTeacherService(uow UnitOfWork, summary SummaryInvalidator, pager Pager, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = dto.NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{uow: uow, summary: summary, pager: pager, validator: validate, logger: logger}
}

// List returns a page of teachers and the total count.
func (s *TeacherService) List(ctx context.Context, skip, limit int) ([]models.Teacher, int, error) {
	page := s.pager.Page(skip, limit)
	var (
		teachers []models.Teacher
		total    int
	)
	err := s.uow.Read(ctx, func(r Repos) error {
		var err error
		if teachers, err = r.Teachers.List(ctx, page); err != nil {
			return err
		}
		total, err = r.Teachers.Count(ctx)
		return err
	})
	if err != nil {
		return nil, 0, internal(err, "falha ao listar professores")
	}
	return teachers, total, nil
}

// Get returns a teacher by id.
func (s *TeacherService) Get(ctx context.Context, id int64) (*models.Teacher, error) {
	var teacher *models.Teacher
	err := s.uow.Read(ctx, func(r Repos) error {
		var err error
		teacher, err = r.Teachers.FindByID(ctx, id)
		if err != nil {
			return lookupError(err, msgTeacherNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return teacher, nil
}

// Create validates and stores a new teacher.
func (s *TeacherService) Create(ctx context.Context, req CreateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Wrap(err, msgInvalidPayload)
	}
	teacher := &models.Teacher{
		Nome:           strings.TrimSpace(req.Nome),
		Email:          strings.TrimSpace(req.Email),
		Especializacao: normalizeOptional(req.Especializacao),
	}
	err := s.uow.Atomic(ctx, func(r Repos) error {
		exists, err := r.Teachers.ExistsByEmail(ctx, teacher.Email, 0)
		if err != nil {
			return internal(err, msgInternalFailure)
		}
		if exists {
			return conflict(msgEmailTaken)
		}
		if err := r.Teachers.Create(ctx, teacher); err != nil {
			return writeError(err, "", conflict(msgEmailTaken), nil)
		}
		return nil
	})
	if err != nil {
		return nil, passThrough(err)
	}
	invalidateSummary(ctx, s.summary)
	s.logger.Info("teacher created", zap.Int64("id_professor", teacher.ID))
	return teacher, nil
}

// Update applies the present fields of req to the teacher.
func (s *TeacherService) Update(ctx context.Context, id int64, req UpdateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Wrap(err, msgInvalidPayload)
	}
	fields := map[string]interface{}{}
	if req.Nome.Set {
		nome, err := requiredText("nome", req.Nome)
		if err != nil {
			return nil, err
		}
		fields["nome"] = nome
	}
	if req.Email.Set {
		email, err := requiredText("email", req.Email)
		if err != nil {
			return nil, err
		}
		fields["email"] = email
	}
	if req.Especializacao.Set {
		fields["especializacao"] = normalizeOptional(req.Especializacao.Value)
	}

	var teacher *models.Teacher
	err := s.uow.Atomic(ctx, func(r Repos) error {
		if _, err := r.Teachers.FindByID(ctx, id); err != nil {
			return lookupError(err, msgTeacherNotFound)
		}
		if email, ok := fields["email"].(string); ok {
			exists, err := r.Teachers.ExistsByEmail(ctx, email, id)
			if err != nil {
				return internal(err, msgInternalFailure)
			}
			if exists {
				return conflict(msgEmailTaken)
			}
		}
		if len(fields) > 0 {
			if err := r.Teachers.Update(ctx, id, fields); err != nil {
				return writeError(err, msgTeacherNotFound, conflict(msgEmailTaken), nil)
			}
		}
		var err error
		teacher, err = r.Teachers.FindByID(ctx, id)
		if err != nil {
			return lookupError(err, msgTeacherNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, passThrough(err)
	}
	return teacher, nil
}

// Delete removes a teacher. Teachers still assigned to classes are kept.
func (s *TeacherService) Delete(ctx context.Context, id int64) error {
	err := s.uow.Atomic(ctx, func(r Repos) error {
		if _, err := r.Teachers.FindByID(ctx, id); err != nil {
			return lookupError(err, msgTeacherNotFound)
		}
		busy, err := r.Teachers.HasClasses(ctx, id)
		if err != nil {
			return internal(err, msgInternalFailure)
		}
		if busy {
			return conflict(msgTeacherHasClass)
		}
		if err := r.Teachers.Delete(ctx, id); err != nil {
			return writeError(err, msgTeacherNotFound, nil, conflict(msgTeacherHasClass))
		}
		return nil
	})
	if err != nil {
		return passThrough(err)
	}
	invalidateSummary(ctx, s.summary)
	s.logger.Info("teacher deleted", zap.Int64("id_professor", id))
	return nil
}

// Classes lists the classes taught by a teacher.
func (s *TeacherService) Classes(ctx context.Context, id int64) ([]models.ClassDetail, error) {
	var classes []models.ClassDetail
	err := s.uow.Read(ctx, func(r Repos) error {
		if _, err := r.Teachers.FindByID(ctx, id); err != nil {
			return lookupError(err, msgTeacherNotFound)
		}
		var err error
		classes, err = r.Classes.ListByTeacher(ctx, id)
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
