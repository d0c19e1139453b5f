package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/noah-isme/escola-api/internal/dto"
	"github.com/noah-isme/escola-api/internal/models"
	"github.com/noah-isme/escola-api/pkg/database"
	appErrors "github.com/noah-isme/escola-api/pkg/errors"
	"github.com/noah-isme/escola-api/pkg/validation"
)

// Shared messages returned to clients.
const (
	msgTeacherNotFound    = "Professor não encontrado"
	msgStudentNotFound    = "Aluno não encontrado"
	msgCourseNotFound     = "Curso não encontrado"
	msgClassNotFound      = "Turma não encontrada"
	msgEnrollmentNotFound = "Matrícula não encontrada"

	msgEmailTaken       = "E-mail já cadastrado"
	msgCourseNameTaken  = "Nome do curso já existe"
	msgAlreadyEnrolled  = "Aluno já matriculado nesta turma"
	msgTeacherHasClass  = "Professor possui turmas vinculadas"
	msgInvalidPayload   = "dados inválidos"
	msgInternalFailure  = "erro interno do servidor"
	msgFieldNotNullable = "não pode ser vazio"
)

// Pager bounds skip/limit listing parameters.
type Pager struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultPager mirrors the configuration defaults.
var DefaultPager = Pager{DefaultLimit: 100, MaxLimit: 1000}

// LimitUnset asks Page for the configured default limit.
const LimitUnset = -1

// Page normalises skip and limit. Negative skips become zero, negative limits
// take the default and a zero limit yields an empty page.
func (p Pager) Page(skip, limit int) models.Page {
	if p.DefaultLimit <= 0 {
		p = DefaultPager
	}
	if p.MaxLimit < p.DefaultLimit {
		p.MaxLimit = p.DefaultLimit
	}
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = p.DefaultLimit
	}
	if limit > p.MaxLimit {
		limit = p.MaxLimit
	}
	return models.Page{Skip: skip, Limit: limit}
}

// invalidateSummary drops the cached home totals after a create or delete.
func invalidateSummary(ctx context.Context, summary SummaryInvalidator) {
	if summary != nil {
		summary.InvalidateSummary(ctx)
	}
}

func notFound(message string) error {
	return appErrors.Clone(appErrors.ErrNotFound, message)
}

func conflict(message string) error {
	return appErrors.Clone(appErrors.ErrConflict, message)
}

func internal(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

// lookupError maps a failed lookup to NotFound when no row matched.
func lookupError(err error, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(message)
	}
	return internal(err, msgInternalFailure)
}

// writeError translates a failed write. missing is reported when the target
// row vanished; constraint violations map to onUnique and onForeignKey.
func writeError(err error, missing string, onUnique, onForeignKey error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows) && missing != "":
		return notFound(missing)
	case database.IsUniqueViolation(err) && onUnique != nil:
		return onUnique
	case database.IsForeignKeyViolation(err) && onForeignKey != nil:
		return onForeignKey
	}
	return internal(err, msgInternalFailure)
}

// passThrough keeps typed errors and wraps anything else as internal.
func passThrough(err error) error {
	if err == nil {
		return nil
	}
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return internal(err, msgInternalFailure)
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// requiredText resolves a present Optional for a non nullable column.
func requiredText(field string, opt dto.Optional[*string]) (string, error) {
	if opt.Value == nil || strings.TrimSpace(*opt.Value) == "" {
		return "", validation.Field(field, msgFieldNotNullable)
	}
	return strings.TrimSpace(*opt.Value), nil
}
