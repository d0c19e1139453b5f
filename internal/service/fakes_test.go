package service

import (
	"context"
	"database/sql"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/escola-api/internal/models"
	appErrors "github.com/noah-isme/escola-api/pkg/errors"
)

// memDB is an in-memory UnitOfWork. Atomic restores the previous state when
// the callback fails.
type memDB struct {
	teachers    map[int64]models.Teacher
	students    map[int64]models.Student
	courses     map[int64]models.Course
	classes     map[int64]models.Class
	enrollments map[int64]models.Enrollment
	nextID      int64

	readErr          error
	teacherDeleteErr error
	atomics          int
	rollback         int
}

func newMemDB() *memDB {
	return &memDB{
		teachers:    map[int64]models.Teacher{},
		students:    map[int64]models.Student{},
		courses:     map[int64]models.Course{},
		classes:     map[int64]models.Class{},
		enrollments: map[int64]models.Enrollment{},
	}
}

func (m *memDB) repos() Repos {
	return Repos{
		Teachers:    memTeachers{m},
		Students:    memStudents{m},
		Courses:     memCourses{m},
		Classes:     memClasses{m},
		Enrollments: memEnrollments{m},
		Summary:     memSummary{m},
	}
}

func (m *memDB) Read(ctx context.Context, fn func(Repos) error) error {
	if m.readErr != nil {
		return m.readErr
	}
	return fn(m.repos())
}

func (m *memDB) Atomic(ctx context.Context, fn func(Repos) error) error {
	m.atomics++
	teachers, students, courses := copyMap(m.teachers), copyMap(m.students), copyMap(m.courses)
	classes, enrollments, nextID := copyMap(m.classes), copyMap(m.enrollments), m.nextID
	if err := fn(m.repos()); err != nil {
		m.rollback++
		m.teachers, m.students, m.courses = teachers, students, courses
		m.classes, m.enrollments, m.nextID = classes, enrollments, nextID
		return err
	}
	return nil
}

func copyMap[V any](in map[int64]V) map[int64]V {
	out := make(map[int64]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (m *memDB) id() int64 {
	m.nextID++
	return m.nextID
}

func sortedKeys[V any](in map[int64]V) []int64 {
	keys := make([]int64, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func pageOf[V any](items []V, page models.Page) []V {
	if page.Skip >= len(items) {
		return []V{}
	}
	end := page.Skip + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[page.Skip:end]
}

// memTeachers

type memTeachers struct{ m *memDB }

func (r memTeachers) List(ctx context.Context, page models.Page) ([]models.Teacher, error) {
	var out []models.Teacher
	for _, id := range sortedKeys(r.m.teachers) {
		out = append(out, r.m.teachers[id])
	}
	return pageOf(out, page), nil
}

func (r memTeachers) Count(ctx context.Context) (int, error) { return len(r.m.teachers), nil }

func (r memTeachers) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	t, ok := r.m.teachers[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &t, nil
}

func (r memTeachers) FindByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	for _, t := range r.m.teachers {
		if t.Email == email {
			cp := t
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memTeachers) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	for id, t := range r.m.teachers {
		if t.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r memTeachers) HasClasses(ctx context.Context, id int64) (bool, error) {
	for _, c := range r.m.classes {
		if c.TeacherID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r memTeachers) Create(ctx context.Context, teacher *models.Teacher) error {
	teacher.ID = r.m.id()
	r.m.teachers[teacher.ID] = *teacher
	return nil
}

func (r memTeachers) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	t, ok := r.m.teachers[id]
	if !ok {
		return sql.ErrNoRows
	}
	for column, value := range fields {
		switch column {
		case "nome":
			t.Nome = value.(string)
		case "email":
			t.Email = value.(string)
		case "especializacao":
			t.Especializacao = value.(*string)
		}
	}
	r.m.teachers[id] = t
	return nil
}

func (r memTeachers) Delete(ctx context.Context, id int64) error {
	if r.m.teacherDeleteErr != nil {
		return r.m.teacherDeleteErr
	}
	if _, ok := r.m.teachers[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.m.teachers, id)
	return nil
}

// memStudents

type memStudents struct{ m *memDB }

func (r memStudents) List(ctx context.Context, page models.Page) ([]models.Student, error) {
	var out []models.Student
	for _, id := range sortedKeys(r.m.students) {
		out = append(out, r.m.students[id])
	}
	return pageOf(out, page), nil
}

func (r memStudents) Count(ctx context.Context) (int, error) { return len(r.m.students), nil }

func (r memStudents) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	s, ok := r.m.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (r memStudents) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	for _, s := range r.m.students {
		if s.Email == email {
			cp := s
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memStudents) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	for id, s := range r.m.students {
		if s.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r memStudents) Create(ctx context.Context, student *models.Student) error {
	student.ID = r.m.id()
	r.m.students[student.ID] = *student
	return nil
}

func (r memStudents) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	s, ok := r.m.students[id]
	if !ok {
		return sql.ErrNoRows
	}
	for column, value := range fields {
		switch column {
		case "nome":
			s.Nome = value.(string)
		case "email":
			s.Email = value.(string)
		case "status":
			s.Status = value.(string)
		}
	}
	r.m.students[id] = s
	return nil
}

func (r memStudents) Delete(ctx context.Context, id int64) error {
	if _, ok := r.m.students[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.m.students, id)
	for eid, e := range r.m.enrollments {
		if e.StudentID == id {
			delete(r.m.enrollments, eid)
		}
	}
	return nil
}

// memCourses

type memCourses struct{ m *memDB }

func (r memCourses) List(ctx context.Context, page models.Page) ([]models.Course, error) {
	var out []models.Course
	for _, id := range sortedKeys(r.m.courses) {
		out = append(out, r.m.courses[id])
	}
	return pageOf(out, page), nil
}

func (r memCourses) Count(ctx context.Context) (int, error) { return len(r.m.courses), nil }

func (r memCourses) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	c, ok := r.m.courses[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &c, nil
}

func (r memCourses) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	for id, c := range r.m.courses {
		if c.Nome == name && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r memCourses) Create(ctx context.Context, course *models.Course) error {
	course.ID = r.m.id()
	r.m.courses[course.ID] = *course
	return nil
}

func (r memCourses) Delete(ctx context.Context, id int64) error {
	if _, ok := r.m.courses[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.m.courses, id)
	for cid, c := range r.m.classes {
		if c.CourseID == id {
			_ = memClasses{r.m}.Delete(ctx, cid)
		}
	}
	return nil
}

// memClasses

type memClasses struct{ m *memDB }

func (r memClasses) detail(c models.Class) models.ClassDetail {
	return models.ClassDetail{Class: c, Curso: r.m.courses[c.CourseID], Professor: r.m.teachers[c.TeacherID]}
}

func (r memClasses) List(ctx context.Context, page models.Page) ([]models.ClassDetail, error) {
	var out []models.ClassDetail
	for _, id := range sortedKeys(r.m.classes) {
		out = append(out, r.detail(r.m.classes[id]))
	}
	return pageOf(out, page), nil
}

func (r memClasses) Count(ctx context.Context) (int, error) { return len(r.m.classes), nil }

func (r memClasses) FindByID(ctx context.Context, id int64) (*models.ClassDetail, error) {
	c, ok := r.m.classes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	d := r.detail(c)
	return &d, nil
}

func (r memClasses) ListByTeacher(ctx context.Context, teacherID int64) ([]models.ClassDetail, error) {
	out := []models.ClassDetail{}
	for _, id := range sortedKeys(r.m.classes) {
		if c := r.m.classes[id]; c.TeacherID == teacherID {
			out = append(out, r.detail(c))
		}
	}
	return out, nil
}

func (r memClasses) ListByStudent(ctx context.Context, studentID int64) ([]models.ClassDetail, error) {
	out := []models.ClassDetail{}
	for _, id := range sortedKeys(r.m.enrollments) {
		if e := r.m.enrollments[id]; e.StudentID == studentID {
			out = append(out, r.detail(r.m.classes[e.ClassID]))
		}
	}
	return out, nil
}

func (r memClasses) Create(ctx context.Context, class *models.Class) error {
	class.ID = r.m.id()
	r.m.classes[class.ID] = *class
	return nil
}

func (r memClasses) Delete(ctx context.Context, id int64) error {
	if _, ok := r.m.classes[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.m.classes, id)
	for eid, e := range r.m.enrollments {
		if e.ClassID == id {
			delete(r.m.enrollments, eid)
		}
	}
	return nil
}

// memEnrollments

type memEnrollments struct{ m *memDB }

func (r memEnrollments) List(ctx context.Context, page models.Page) ([]models.EnrollmentDetail, error) {
	var out []models.EnrollmentDetail
	for _, id := range sortedKeys(r.m.enrollments) {
		e := r.m.enrollments[id]
		out = append(out, models.EnrollmentDetail{
			Enrollment: e,
			Aluno:      r.m.students[e.StudentID],
			Turma:      memClasses{r.m}.detail(r.m.classes[e.ClassID]),
		})
	}
	return pageOf(out, page), nil
}

func (r memEnrollments) Count(ctx context.Context) (int, error) { return len(r.m.enrollments), nil }

func (r memEnrollments) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	e, ok := r.m.enrollments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &e, nil
}

func (r memEnrollments) Exists(ctx context.Context, studentID, classID int64) (bool, error) {
	for _, e := range r.m.enrollments {
		if e.StudentID == studentID && e.ClassID == classID {
			return true, nil
		}
	}
	return false, nil
}

func (r memEnrollments) ListStudentsByClass(ctx context.Context, classID int64) ([]models.Student, error) {
	out := []models.Student{}
	for _, id := range sortedKeys(r.m.enrollments) {
		if e := r.m.enrollments[id]; e.ClassID == classID {
			out = append(out, r.m.students[e.StudentID])
		}
	}
	return out, nil
}

func (r memEnrollments) Create(ctx context.Context, enrollment *models.Enrollment) error {
	enrollment.ID = r.m.id()
	r.m.enrollments[enrollment.ID] = *enrollment
	return nil
}

func (r memEnrollments) Delete(ctx context.Context, id int64) error {
	if _, ok := r.m.enrollments[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.m.enrollments, id)
	return nil
}

// memSummary

type memSummary struct{ m *memDB }

func (r memSummary) Totals(ctx context.Context) (*models.Summary, error) {
	return &models.Summary{
		TotalStudents: len(r.m.students),
		TotalTeachers: len(r.m.teachers),
		TotalCourses:  len(r.m.courses),
		TotalClasses:  len(r.m.classes),
	}, nil
}

// countingInvalidator records summary invalidations.
type countingInvalidator struct{ calls int }

func (c *countingInvalidator) InvalidateSummary(ctx context.Context) { c.calls++ }

func strPtr(s string) *string { return &s }

func assertAppError(t *testing.T, err error, want *appErrors.Error, message string) {
	t.Helper()
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, want.Code, appErr.Code)
	assert.Equal(t, want.Status, appErr.Status)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}
