package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/escola-api/internal/models"
	appErrors "github.com/noah-isme/escola-api/pkg/errors"
)

func TestCourseServiceCreateUniqueName(t *testing.T) {
	db := newMemDB()
	svc := NewCourseService(db, nil, DefaultPager, nil, nil)

	course, err := svc.Create(context.Background(), CreateCourseRequest{Nome: "Math", Descricao: strPtr("Cálculo I")})
	require.NoError(t, err)
	assert.Equal(t, "Cálculo I", *course.Descricao)

	_, err = svc.Create(context.Background(), CreateCourseRequest{Nome: "Math"})
	assertAppError(t, err, appErrors.ErrConflict, "Nome do curso já existe")
	assert.Len(t, db.courses, 1)

	_, err = svc.Create(context.Background(), CreateCourseRequest{})
	assertAppError(t, err, appErrors.ErrValidation, "")
}

func TestCourseServiceGet(t *testing.T) {
	db := newMemDB()
	db.courses[7] = models.Course{ID: 7, Nome: "Física"}
	svc := NewCourseService(db, nil, DefaultPager, nil, nil)

	course, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Física", course.Nome)

	_, err = svc.Get(context.Background(), 8)
	assertAppError(t, err, appErrors.ErrNotFound, "Curso não encontrado")
}

func TestCourseServiceDeleteCascades(t *testing.T) {
	db := newMemDB()
	db.courses[1] = models.Course{ID: 1, Nome: "Math"}
	db.teachers[2] = models.Teacher{ID: 2, Nome: "Ana", Email: "ana@x.io"}
	db.students[3] = models.Student{ID: 3, Nome: "Bo", Email: "bo@x.io"}
	db.classes[4] = models.Class{ID: 4, CourseID: 1, TeacherID: 2, CargaHoraria: 40}
	db.enrollments[5] = models.Enrollment{ID: 5, StudentID: 3, ClassID: 4}
	inv := &countingInvalidator{}
	svc := NewCourseService(db, inv, DefaultPager, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Empty(t, db.courses)
	assert.Empty(t, db.classes)
	assert.Empty(t, db.enrollments)
	assert.Len(t, db.students, 1)
	assert.Equal(t, 1, inv.calls)
}

func TestCourseServiceList(t *testing.T) {
	db := newMemDB()
	db.courses[1] = models.Course{ID: 1, Nome: "A"}
	db.courses[2] = models.Course{ID: 2, Nome: "B"}
	svc := NewCourseService(db, nil, Pager{DefaultLimit: 1, MaxLimit: 1}, nil, nil)

	courses, total, err := svc.List(context.Background(), 0, 50)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, courses, 1)
	assert.Equal(t, "A", courses[0].Nome)
}
