package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/escola-api/internal/models"
)

func TestStudentRepositoryFindByEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id_aluno, nome, email, status, senha_hash FROM alunos WHERE email = $1")).
		WithArgs("bo@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id_aluno", "nome", "email", "status", "senha_hash"}).
			AddRow(1, "Bo", "bo@x.com", "ativo", "$2a$10$hash"))

	student, err := repo.FindByEmail(context.Background(), "bo@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Bo", student.Nome)
	require.NotNil(t, student.SenhaHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("FROM alunos WHERE id_aluno = \\$1").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id_aluno", "nome", "email", "status", "senha_hash"}))

	_, err := repo.FindByID(context.Background(), 5)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStudentRepositoryCreateAndCount(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("INSERT INTO alunos").
		WithArgs("Bo", "bo@x.com", "ativo", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id_aluno"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM alunos")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	student := &models.Student{Nome: "Bo", Email: "bo@x.com", Status: models.StudentStatusActive}
	require.NoError(t, repo.Create(context.Background(), student))
	assert.Equal(t, int64(1), student.ID)

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE alunos SET status = $1 WHERE id_aluno = $2")).
		WithArgs("inativo", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), 1, map[string]interface{}{"status": "inativo"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
