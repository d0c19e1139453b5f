package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/escola-api/internal/models"
)

const classDetailSelect = `SELECT t.id_turma, t.id_curso, t.id_professor, t.carga_horaria, t.horario, t.sala, t.status,
	c.id_curso AS "curso.id_curso", c.nome AS "curso.nome", c.descricao AS "curso.descricao",
	p.id_professor AS "professor.id_professor", p.nome AS "professor.nome", p.email AS "professor.email",
	p.especializacao AS "professor.especializacao"
FROM turmas t
JOIN cursos c ON c.id_curso = t.id_curso
JOIN professores p ON p.id_professor = t.id_professor`

// ClassRepository manages persistence for class offerings.
type ClassRepository struct {
	db Queryer
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db Queryer) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns a page of classes with their course and teacher.
func (r *ClassRepository) List(ctx context.Context, page models.Page) ([]models.ClassDetail, error) {
	query := classDetailSelect + " ORDER BY t.id_turma LIMIT $1 OFFSET $2"
	classes := []models.ClassDetail{}
	if err := r.db.SelectContext(ctx, &classes, query, page.Limit, page.Skip); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// Count returns the number of classes.
func (r *ClassRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM turmas"); err != nil {
		return 0, fmt.Errorf("count classes: %w", err)
	}
	return total, nil
}

// FindByID fetches a class with its course and teacher.
func (r *ClassRepository) FindByID(ctx context.Context, id int64) (*models.ClassDetail, error) {
	query := classDetailSelect + " WHERE t.id_turma = $1"
	var class models.ClassDetail
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}

// ListByTeacher returns the classes taught by a teacher.
func (r *ClassRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]models.ClassDetail, error) {
	query := classDetailSelect + " WHERE t.id_professor = $1 ORDER BY t.id_turma"
	classes := []models.ClassDetail{}
	if err := r.db.SelectContext(ctx, &classes, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher classes: %w", err)
	}
	return classes, nil
}

// ListByStudent returns the classes a student is enrolled in.
func (r *ClassRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.ClassDetail, error) {
	query := classDetailSelect + " JOIN matriculas m ON m.id_turma = t.id_turma WHERE m.id_aluno = $1 ORDER BY t.id_turma"
	classes := []models.ClassDetail{}
	if err := r.db.SelectContext(ctx, &classes, query, studentID); err != nil {
		return nil, fmt.Errorf("list student classes: %w", err)
	}
	return classes, nil
}

// Create inserts a new class and sets its ID.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	const query = `INSERT INTO turmas (id_curso, id_professor, carga_horaria, horario, sala, status)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id_turma`
	if err := r.db.GetContext(ctx, &class.ID, query, class.CourseID, class.TeacherID, class.CargaHoraria, class.Horario, class.Sala, class.Status); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// Delete removes a class; its enrollments cascade.
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM turmas WHERE id_turma = $1", id)
	if err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	return expectAffected(res)
}
