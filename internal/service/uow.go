package service

import (
	"context"

	"github.com/noah-isme/escola-api/internal/models"
)

// TeacherRepository persists professores.
type TeacherRepository interface {
	List(ctx context.Context, page models.Page) ([]models.Teacher, error)
	Count(ctx context.Context) (int, error)
	FindByID(ctx context.Context, id int64) (*models.Teacher, error)
	FindByEmail(ctx context.Context, email string) (*models.Teacher, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	HasClasses(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

// StudentRepository persists alunos.
type StudentRepository interface {
	List(ctx context.Context, page models.Page) ([]models.Student, error)
	Count(ctx context.Context) (int, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

// CourseRepository persists cursos.
type CourseRepository interface {
	List(ctx context.Context, page models.Page) ([]models.Course, error)
	Count(ctx context.Context) (int, error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	Create(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// ClassRepository persists turmas.
type ClassRepository interface {
	List(ctx context.Context, page models.Page) ([]models.ClassDetail, error)
	Count(ctx context.Context) (int, error)
	FindByID(ctx context.Context, id int64) (*models.ClassDetail, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]models.ClassDetail, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.ClassDetail, error)
	Create(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id int64) error
}

// EnrollmentRepository persists matrículas.
type EnrollmentRepository interface {
	List(ctx context.Context, page models.Page) ([]models.EnrollmentDetail, error)
	Count(ctx context.Context) (int, error)
	FindByID(ctx context.Context, id int64) (*models.Enrollment, error)
	Exists(ctx context.Context, studentID, classID int64) (bool, error)
	ListStudentsByClass(ctx context.Context, classID int64) ([]models.Student, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id int64) error
}

// SummaryRepository aggregates entity totals.
type SummaryRepository interface {
	Totals(ctx context.Context) (*models.Summary, error)
}

// Repos is the set of repositories bound to a single unit of work.
type Repos struct {
	Teachers    TeacherRepository
	Students    StudentRepository
	Courses     CourseRepository
	Classes     ClassRepository
	Enrollments EnrollmentRepository
	Summary     SummaryRepository
}

// UnitOfWork scopes repository access. Atomic commits only when fn returns nil.
type UnitOfWork interface {
	Read(ctx context.Context, fn func(Repos) error) error
	Atomic(ctx context.Context, fn func(Repos) error) error
}

// SummaryInvalidator is notified after writes that change entity totals.
type SummaryInvalidator interface {
	InvalidateSummary(ctx context.Context)
}
