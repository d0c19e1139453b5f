package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/noah-isme/escola-api/internal/models"
)

const enrollmentDetailSelect = `SELECT m.id_matricula, m.id_aluno, m.id_turma,
	a.id_aluno AS "aluno.id_aluno", a.nome AS "aluno.nome", a.email AS "aluno.email", a.status AS "aluno.status",
	t.id_turma AS "turma.id_turma", t.id_curso AS "turma.id_curso", t.id_professor AS "turma.id_professor",
	t.carga_horaria AS "turma.carga_horaria", t.horario AS "turma.horario", t.sala AS "turma.sala", t.status AS "turma.status",
	c.id_curso AS "turma.curso.id_curso", c.nome AS "turma.curso.nome", c.descricao AS "turma.curso.descricao",
	p.id_professor AS "turma.professor.id_professor", p.nome AS "turma.professor.nome", p.email AS "turma.professor.email",
	p.especializacao AS "turma.professor.especializacao"
FROM matriculas m
JOIN alunos a ON a.id_aluno = m.id_aluno
JOIN turmas t ON t.id_turma = m.id_turma
JOIN cursos c ON c.id_curso = t.id_curso
JOIN professores p ON p.id_professor = t.id_professor`

// EnrollmentRepository manages persistence for enrollments.
type EnrollmentRepository struct {
	db Queryer
}

// NewEnrollmentRepository constructs an EnrollmentRepository.
func NewEnrollmentRepository(db Queryer) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// List returns a page of enrollments with the student and class detail.
func (r *EnrollmentRepository) List(ctx context.Context, page models.Page) ([]models.EnrollmentDetail, error) {
	query := enrollmentDetailSelect + " ORDER BY m.id_matricula LIMIT $1 OFFSET $2"
	enrollments := []models.EnrollmentDetail{}
	if err := r.db.SelectContext(ctx, &enrollments, query, page.Limit, page.Skip); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

// Count returns the number of enrollments.
func (r *EnrollmentRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM matriculas"); err != nil {
		return 0, fmt.Errorf("count enrollments: %w", err)
	}
	return total, nil
}

// FindByID fetches an enrollment by ID.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	const query = "SELECT id_matricula, id_aluno, id_turma FROM matriculas WHERE id_matricula = $1"
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, id); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// Exists reports whether the student is already enrolled in the class.
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, classID int64) (bool, error) {
	const query = "SELECT 1 FROM matriculas WHERE id_aluno = $1 AND id_turma = $2 LIMIT 1"
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, studentID, classID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return true, nil
}

// ListStudentsByClass returns the students enrolled in a class.
func (r *EnrollmentRepository) ListStudentsByClass(ctx context.Context, classID int64) ([]models.Student, error) {
	const query = `SELECT a.id_aluno, a.nome, a.email, a.status
		FROM alunos a
		JOIN matriculas m ON m.id_aluno = a.id_aluno
		WHERE m.id_turma = $1
		ORDER BY a.id_aluno`
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query, classID); err != nil {
		return nil, fmt.Errorf("list class students: %w", err)
	}
	return students, nil
}

// Create inserts a new enrollment and sets its ID.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	const query = "INSERT INTO matriculas (id_aluno, id_turma) VALUES ($1, $2) RETURNING id_matricula"
	if err := r.db.GetContext(ctx, &enrollment.ID, query, enrollment.StudentID, enrollment.ClassID); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// Delete removes an enrollment.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM matriculas WHERE id_matricula = $1", id)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return expectAffected(res)
}
