package service

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/escola-api/internal/models"
	appErrors "github.com/noah-isme/escola-api/pkg/errors"
)

func TestPagerPage(t *testing.T) {
	pager := Pager{DefaultLimit: 100, MaxLimit: 1000}

	cases := []struct {
		name        string
		skip, limit int
		want        models.Page
	}{
		{"defaults", 0, LimitUnset, models.Page{Skip: 0, Limit: 100}},
		{"zero limit", 0, 0, models.Page{Skip: 0, Limit: 0}},
		{"negative skip", -3, 10, models.Page{Skip: 0, Limit: 10}},
		{"negative limit", 5, -7, models.Page{Skip: 5, Limit: 100}},
		{"capped", 0, 5000, models.Page{Skip: 0, Limit: 1000}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, pager.Page(tc.skip, tc.limit))
		})
	}

	assert.Equal(t, models.Page{Limit: 100}, Pager{}.Page(0, LimitUnset))
}

func TestWriteErrorTranslation(t *testing.T) {
	unique := fmt.Errorf("create: %w", &pq.Error{Code: "23505"})
	fk := fmt.Errorf("create: %w", &pq.Error{Code: "23503"})

	assertAppError(t, writeError(unique, "", conflict("dup"), nil), appErrors.ErrConflict, "dup")
	assertAppError(t, writeError(fk, "", nil, notFound("ref")), appErrors.ErrNotFound, "ref")
	assertAppError(t, writeError(sql.ErrNoRows, "gone", nil, nil), appErrors.ErrNotFound, "gone")
	assertAppError(t, writeError(errors.New("boom"), "gone", conflict("dup"), nil), appErrors.ErrInternal, "")
}

func TestPassThroughKeepsTypedErrors(t *testing.T) {
	typed := conflict("dup")
	assert.Same(t, typed, passThrough(typed))
	assert.Nil(t, passThrough(nil))
	assertAppError(t, passThrough(errors.New("boom")), appErrors.ErrInternal, "")
}
