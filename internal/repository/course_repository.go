package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/noah-isme/escola-api/internal/models"
)

// CourseRepository manages persistence for courses.
type CourseRepository struct {
	db Queryer
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db Queryer) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns a page of courses in primary key order.
func (r *CourseRepository) List(ctx context.Context, page models.Page) ([]models.Course, error) {
	const query = "SELECT id_curso, nome, descricao FROM cursos ORDER BY id_curso LIMIT $1 OFFSET $2"
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, query, page.Limit, page.Skip); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// Count returns the number of courses.
func (r *CourseRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM cursos"); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return total, nil
}

// FindByID fetches a course by ID.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	const query = "SELECT id_curso, nome, descricao FROM cursos WHERE id_curso = $1"
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// ExistsByName checks if another course uses the same name.
func (r *CourseRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM cursos WHERE nome = $1"
	args := []interface{}{name}
	if excludeID != 0 {
		query += " AND id_curso <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check course name: %w", err)
	}
	return true, nil
}

// Create inserts a new course and sets its ID.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	const query = "INSERT INTO cursos (nome, descricao) VALUES ($1, $2) RETURNING id_curso"
	if err := r.db.GetContext(ctx, &course.ID, query, course.Nome, course.Descricao); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Delete removes a course; its classes and their enrollments cascade.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cursos WHERE id_curso = $1", id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return expectAffected(res)
}
