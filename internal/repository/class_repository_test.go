package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/escola-api/internal/models"
)

var classDetailColumns = []string{
	"id_turma", "id_curso", "id_professor", "carga_horaria", "horario", "sala", "status",
	"curso.id_curso", "curso.nome", "curso.descricao",
	"professor.id_professor", "professor.nome", "professor.email", "professor.especializacao",
}

func TestClassRepositoryFindByIDMapsRelations(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectQuery("(?s)FROM turmas t\\s+JOIN cursos c .*WHERE t.id_turma = \\$1").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(classDetailColumns).
			AddRow(1, 1, 1, 40, "08:00", nil, models.ClassStatusOpen, 1, "Math", nil, 1, "Ana", "ana@x.com", nil))

	class, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), class.ID)
	assert.Equal(t, 40, class.CargaHoraria)
	assert.Equal(t, "Math", class.Curso.Nome)
	assert.Equal(t, "Ana", class.Professor.Nome)
	require.NotNil(t, class.Horario)
	assert.Nil(t, class.Sala)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryListByStudentJoinsEnrollments(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectQuery("JOIN matriculas m ON m.id_turma = t.id_turma WHERE m.id_aluno = \\$1").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(classDetailColumns))

	classes, err := repo.ListByStudent(context.Background(), 3)
	require.NoError(t, err)
	assert.NotNil(t, classes)
	assert.Empty(t, classes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectQuery("INSERT INTO turmas").
		WithArgs(int64(1), int64(2), 40, nil, nil, models.ClassStatusOpen).
		WillReturnRows(sqlmock.NewRows([]string{"id_turma"}).AddRow(5))

	class := &models.Class{CourseID: 1, TeacherID: 2, CargaHoraria: 40, Status: models.ClassStatusOpen}
	require.NoError(t, repo.Create(context.Background(), class))
	assert.Equal(t, int64(5), class.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
