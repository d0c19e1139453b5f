package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/escola-api/internal/models"
	appErrors "github.com/noah-isme/escola-api/pkg/errors"
)

func seedClassWithStudent(db *memDB) {
	seedCourseAndTeacher(db)
	db.classes[1] = models.Class{ID: 1, CourseID: 1, TeacherID: 1, CargaHoraria: 40, Status: models.ClassStatusOpen}
	db.students[1] = models.Student{ID: 1, Nome: "Bo", Email: "bo@x.io", Status: "ativo"}
	db.nextID = 200
}

func TestEnrollmentServiceEnroll(t *testing.T) {
	db := newMemDB()
	seedClassWithStudent(db)
	svc := NewEnrollmentService(db, DefaultPager, nil, nil)

	enrollment, err := svc.Enroll(context.Background(), EnrollStudentRequest{StudentID: 1, ClassID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(201), enrollment.ID)

	_, err = svc.Enroll(context.Background(), EnrollStudentRequest{StudentID: 1, ClassID: 1})
	assertAppError(t, err, appErrors.ErrConflict, "Aluno já matriculado nesta turma")
	assert.Len(t, db.enrollments, 1)
}

func TestEnrollmentServiceEnrollMissingReferences(t *testing.T) {
	db := newMemDB()
	seedClassWithStudent(db)
	svc := NewEnrollmentService(db, DefaultPager, nil, nil)

	_, err := svc.Enroll(context.Background(), EnrollStudentRequest{StudentID: 9, ClassID: 1})
	assertAppError(t, err, appErrors.ErrNotFound, "Aluno não encontrado")

	_, err = svc.Enroll(context.Background(), EnrollStudentRequest{StudentID: 1, ClassID: 9})
	assertAppError(t, err, appErrors.ErrNotFound, "Turma não encontrada")

	_, err = svc.Enroll(context.Background(), EnrollStudentRequest{})
	assertAppError(t, err, appErrors.ErrValidation, "")
	assert.Empty(t, db.enrollments)
}

func TestEnrollmentServiceListAndDelete(t *testing.T) {
	db := newMemDB()
	seedClassWithStudent(db)
	db.enrollments[7] = models.Enrollment{ID: 7, StudentID: 1, ClassID: 1}
	svc := NewEnrollmentService(db, DefaultPager, nil, nil)

	enrollments, total, err := svc.List(context.Background(), 0, LimitUnset)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, enrollments, 1)
	assert.Equal(t, "Bo", enrollments[0].Aluno.Nome)
	assert.Equal(t, "Math", enrollments[0].Turma.Curso.Nome)

	require.NoError(t, svc.Delete(context.Background(), 7))
	err = svc.Delete(context.Background(), 7)
	assertAppError(t, err, appErrors.ErrNotFound, "Matrícula não encontrada")
}
