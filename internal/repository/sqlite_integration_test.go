package repository

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/escola-api/internal/models"
	"github.com/noah-isme/escola-api/pkg/database"
)

func newSQLiteStore(t *testing.T) (*Store, *sqlx.DB) {
	t.Helper()
	db, err := database.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))
	return NewStore(db, nil), db
}

type seeded struct {
	course  models.Course
	teacher models.Teacher
	class   models.Class
	student models.Student
}

func seed(t *testing.T, store *Store) seeded {
	t.Helper()
	ctx := context.Background()
	var s seeded
	err := store.Atomic(ctx, func(r *Registry) error {
		s.course = models.Course{Nome: "Math"}
		if err := r.Courses.Create(ctx, &s.course); err != nil {
			return err
		}
		area := "Álgebra"
		s.teacher = models.Teacher{Nome: "Ana", Email: "ana@x.com", Especializacao: &area}
		if err := r.Teachers.Create(ctx, &s.teacher); err != nil {
			return err
		}
		s.class = models.Class{CourseID: s.course.ID, TeacherID: s.teacher.ID, CargaHoraria: 40, Status: models.ClassStatusOpen}
		if err := r.Classes.Create(ctx, &s.class); err != nil {
			return err
		}
		s.student = models.Student{Nome: "Bo", Email: "bo@x.com", Status: models.StudentStatusActive}
		if err := r.Students.Create(ctx, &s.student); err != nil {
			return err
		}
		return r.Enrollments.Create(ctx, &models.Enrollment{StudentID: s.student.ID, ClassID: s.class.ID})
	})
	require.NoError(t, err)
	return s
}

func TestSQLiteDetailQueries(t *testing.T) {
	store, _ := newSQLiteStore(t)
	s := seed(t, store)
	ctx := context.Background()

	err := store.Read(ctx, func(r *Registry) error {
		class, err := r.Classes.FindByID(ctx, s.class.ID)
		require.NoError(t, err)
		assert.Equal(t, "Math", class.Curso.Nome)
		assert.Equal(t, "ana@x.com", class.Professor.Email)
		require.NotNil(t, class.Professor.Especializacao)
		assert.Equal(t, "Álgebra", *class.Professor.Especializacao)

		enrollments, err := r.Enrollments.List(ctx, models.Page{Limit: 100})
		require.NoError(t, err)
		require.Len(t, enrollments, 1)
		assert.Equal(t, "Bo", enrollments[0].Aluno.Nome)
		assert.Equal(t, s.class.ID, enrollments[0].Turma.ID)
		assert.Equal(t, "Ana", enrollments[0].Turma.Professor.Nome)

		byStudent, err := r.Classes.ListByStudent(ctx, s.student.ID)
		require.NoError(t, err)
		assert.Len(t, byStudent, 1)

		byTeacher, err := r.Classes.ListByTeacher(ctx, s.teacher.ID)
		require.NoError(t, err)
		assert.Len(t, byTeacher, 1)

		summary, err := r.Summary.Totals(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.Summary{TotalStudents: 1, TotalTeachers: 1, TotalCourses: 1, TotalClasses: 1}, *summary)
		return nil
	})
	require.NoError(t, err)
}

func TestSQLiteCourseDeleteCascades(t *testing.T) {
	store, db := newSQLiteStore(t)
	s := seed(t, store)
	ctx := context.Background()

	require.NoError(t, store.Atomic(ctx, func(r *Registry) error {
		return r.Courses.Delete(ctx, s.course.ID)
	}))

	var classes, enrollments int
	require.NoError(t, db.Get(&classes, "SELECT COUNT(*) FROM turmas"))
	require.NoError(t, db.Get(&enrollments, "SELECT COUNT(*) FROM matriculas"))
	assert.Zero(t, classes)
	assert.Zero(t, enrollments)
}

func TestSQLiteStudentDeleteCascades(t *testing.T) {
	store, db := newSQLiteStore(t)
	s := seed(t, store)
	ctx := context.Background()

	require.NoError(t, store.Atomic(ctx, func(r *Registry) error {
		return r.Students.Delete(ctx, s.student.ID)
	}))

	var enrollments, classes int
	require.NoError(t, db.Get(&enrollments, "SELECT COUNT(*) FROM matriculas"))
	require.NoError(t, db.Get(&classes, "SELECT COUNT(*) FROM turmas"))
	assert.Zero(t, enrollments)
	assert.Equal(t, 1, classes)
}

func TestSQLiteTeacherDeleteRestricted(t *testing.T) {
	store, _ := newSQLiteStore(t)
	s := seed(t, store)
	ctx := context.Background()

	err := store.Atomic(ctx, func(r *Registry) error {
		return r.Teachers.Delete(ctx, s.teacher.ID)
	})
	require.Error(t, err)
	assert.True(t, database.IsForeignKeyViolation(err))
}

func TestSQLiteDuplicateEnrollmentViolatesConstraint(t *testing.T) {
	store, _ := newSQLiteStore(t)
	s := seed(t, store)
	ctx := context.Background()

	err := store.Atomic(ctx, func(r *Registry) error {
		return r.Enrollments.Create(ctx, &models.Enrollment{StudentID: s.student.ID, ClassID: s.class.ID})
	})
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
}

func TestSQLitePagination(t *testing.T) {
	store, _ := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Atomic(ctx, func(r *Registry) error {
		for _, name := range []string{"A", "B", "C"} {
			if err := r.Courses.Create(ctx, &models.Course{Nome: name}); err != nil {
				return err
			}
		}
		return nil
	}))

	require.NoError(t, store.Read(ctx, func(r *Registry) error {
		page, err := r.Courses.List(ctx, models.Page{Skip: 1, Limit: 1})
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "B", page[0].Nome)
		return nil
	}))
}

func TestSQLitePartialUpdate(t *testing.T) {
	store, _ := newSQLiteStore(t)
	s := seed(t, store)
	ctx := context.Background()

	require.NoError(t, store.Atomic(ctx, func(r *Registry) error {
		return r.Students.Update(ctx, s.student.ID, map[string]interface{}{"nome": "Bo Silva"})
	}))

	require.NoError(t, store.Read(ctx, func(r *Registry) error {
		student, err := r.Students.FindByID(ctx, s.student.ID)
		require.NoError(t, err)
		assert.Equal(t, "Bo Silva", student.Nome)
		assert.Equal(t, "bo@x.com", student.Email)
		assert.Equal(t, models.StudentStatusActive, student.Status)
		return nil
	}))
}
