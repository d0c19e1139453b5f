package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/noah-isme/escola-api/internal/models"
)

const teacherColumns = "id_professor, nome, email, especializacao, senha_hash"

var teacherUpdatable = columnSet("nome", "email", "especializacao", "senha_hash")

// TeacherRepository manages persistence for teachers.
type TeacherRepository struct {
	db Queryer
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db Queryer) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns a page of teachers in primary key order.
func (r *TeacherRepository) List(ctx context.Context, page models.Page) ([]models.Teacher, error) {
	query := "SELECT " + teacherColumns + " FROM professores ORDER BY id_professor LIMIT $1 OFFSET $2"
	teachers := []models.Teacher{}
	if err := r.db.SelectContext(ctx, &teachers, query, page.Limit, page.Skip); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// Count returns the number of teachers.
func (r *TeacherRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM professores"); err != nil {
		return 0, fmt.Errorf("count teachers: %w", err)
	}
	return total, nil
}

// FindByID fetches a teacher by ID.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	query := "SELECT " + teacherColumns + " FROM professores WHERE id_professor = $1"
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// FindByEmail fetches a teacher by email.
func (r *TeacherRepository) FindByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	query := "SELECT " + teacherColumns + " FROM professores WHERE email = $1"
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, email); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// ExistsByEmail checks if another teacher uses the same email.
func (r *TeacherRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM professores WHERE email = $1"
	args := []interface{}{email}
	if excludeID != 0 {
		query += " AND id_professor <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check teacher email: %w", err)
	}
	return true, nil
}

// HasClasses reports whether the teacher still owns class offerings.
func (r *TeacherRepository) HasClasses(ctx context.Context, id int64) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM turmas WHERE id_professor = $1 LIMIT 1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check teacher classes: %w", err)
	}
	return true, nil
}

// Create inserts a new teacher record and sets its ID.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	const query = `INSERT INTO professores (nome, email, especializacao, senha_hash)
		VALUES ($1, $2, $3, $4) RETURNING id_professor`
	if err := r.db.GetContext(ctx, &teacher.ID, query, teacher.Nome, teacher.Email, teacher.Especializacao, teacher.SenhaHash); err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// Update applies the given column values to a teacher.
func (r *TeacherRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	query, args, err := buildUpdate("professores", "id_professor", teacherUpdatable, fields, id)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}
	return nil
}

// Delete removes a teacher. It returns sql.ErrNoRows when nothing was deleted.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM professores WHERE id_professor = $1", id)
	if err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}
	return expectAffected(res)
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
