package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/escola-api/internal/service"
	appErrors "github.com/noah-isme/escola-api/pkg/errors"
	"github.com/noah-isme/escola-api/pkg/validation"
)

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, validation.Field(name, "deve ser um inteiro positivo")
	}
	return id, nil
}

// pageParams reads skip and limit. A missing limit is passed as
// service.LimitUnset so the service applies its default; an explicit zero is
// kept and yields an empty page.
func pageParams(c *gin.Context) (skip, limit int, err error) {
	if skip, err = intQuery(c, "skip", 0); err != nil {
		return 0, 0, err
	}
	if limit, err = intQuery(c, "limit", service.LimitUnset); err != nil {
		return 0, 0, err
	}
	return skip, limit, nil
}

func intQuery(c *gin.Context, name string, missing int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return missing, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validation.Field(name, "deve ser um inteiro")
	}
	if value < 0 {
		return 0, validation.Field(name, "não pode ser negativo")
	}
	return value, nil
}

func bindError(err error) *appErrors.Error {
	wrapped := appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "corpo da requisição inválido")
	wrapped.Details = []string{err.Error()}
	return wrapped
}
