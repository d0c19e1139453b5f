package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/escola-api/internal/models"
)

func TestEnrollmentRepositoryExists(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM matriculas WHERE id_aluno = $1 AND id_turma = $2 LIMIT 1")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryListStudentsByClass(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery("JOIN matriculas m ON m.id_aluno = a.id_aluno\\s+WHERE m.id_turma = \\$1").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id_aluno", "nome", "email", "status"}).AddRow(1, "Bo", "bo@x.com", "ativo"))

	students, err := repo.ListStudentsByClass(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Bo", students[0].Nome)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryCreateAndDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery("INSERT INTO matriculas").
		WithArgs(int64(1), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id_matricula"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM matriculas WHERE id_matricula = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	enrollment := &models.Enrollment{StudentID: 1, ClassID: 1}
	require.NoError(t, repo.Create(context.Background(), enrollment))
	assert.Equal(t, int64(1), enrollment.ID)
	require.NoError(t, repo.Delete(context.Background(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}
