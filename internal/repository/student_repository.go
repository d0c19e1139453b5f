package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/noah-isme/escola-api/internal/models"
)

const studentColumns = "id_aluno, nome, email, status, senha_hash"

var studentUpdatable = columnSet("nome", "email", "status", "senha_hash")

// StudentRepository manages persistence for students.
type StudentRepository struct {
	db Queryer
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db Queryer) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns a page of students in primary key order.
func (r *StudentRepository) List(ctx context.Context, page models.Page) ([]models.Student, error) {
	query := "SELECT " + studentColumns + " FROM alunos ORDER BY id_aluno LIMIT $1 OFFSET $2"
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query, page.Limit, page.Skip); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// Count returns the number of students.
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM alunos"); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return total, nil
}

// FindByID fetches a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	query := "SELECT " + studentColumns + " FROM alunos WHERE id_aluno = $1"
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByEmail fetches a student by email.
func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := "SELECT " + studentColumns + " FROM alunos WHERE email = $1"
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, email); err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByEmail checks if another student uses the same email.
func (r *StudentRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM alunos WHERE email = $1"
	args := []interface{}{email}
	if excludeID != 0 {
		query += " AND id_aluno <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check student email: %w", err)
	}
	return true, nil
}

// Create inserts a new student record and sets its ID.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	const query = `INSERT INTO alunos (nome, email, status, senha_hash)
		VALUES ($1, $2, $3, $4) RETURNING id_aluno`
	if err := r.db.GetContext(ctx, &student.ID, query, student.Nome, student.Email, student.Status, student.SenhaHash); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update applies the given column values to a student.
func (r *StudentRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	query, args, err := buildUpdate("alunos", "id_aluno", studentUpdatable, fields, id)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Delete removes a student; enrollments cascade. It returns sql.ErrNoRows
// when nothing was deleted.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM alunos WHERE id_aluno = $1", id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return expectAffected(res)
}
