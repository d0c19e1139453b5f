package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/escola-api/pkg/database"
)

// Queryer is satisfied by both *sqlx.DB and *sqlx.Tx so repositories can run
// inside or outside a transaction.
type Queryer interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// Registry groups the entity repositories bound to one Queryer.
type Registry struct {
	Teachers    *TeacherRepository
	Students    *StudentRepository
	Courses     *CourseRepository
	Classes     *ClassRepository
	Enrollments *EnrollmentRepository
	Summary     *SummaryRepository
}

// NewRegistry binds every repository to q.
func NewRegistry(q Queryer) *Registry {
	return &Registry{
		Teachers:    NewTeacherRepository(q),
		Students:    NewStudentRepository(q),
		Courses:     NewCourseRepository(q),
		Classes:     NewClassRepository(q),
		Enrollments: NewEnrollmentRepository(q),
		Summary:     NewSummaryRepository(q),
	}
}

// QueryObserver receives the duration of each unit of work.
type QueryObserver func(label string, duration time.Duration)

// Store owns the connection pool and hands out scoped units of work.
type Store struct {
	db      *sqlx.DB
	observe QueryObserver
}

// NewStore constructs a Store. observe may be nil.
func NewStore(db *sqlx.DB, observe QueryObserver) *Store {
	return &Store{db: db, observe: observe}
}

// Read runs fn against the pool without a transaction.
func (s *Store) Read(ctx context.Context, fn func(*Registry) error) error {
	start := time.Now()
	err := fn(NewRegistry(s.db))
	s.record("read", start)
	return err
}

// Atomic runs fn inside a transaction that is committed only when fn
// returns nil. Any error or panic rolls the transaction back.
func (s *Store) Atomic(ctx context.Context, fn func(*Registry) error) error {
	start := time.Now()
	err := database.WithTransaction(ctx, s.db, func(tx *sqlx.Tx) error {
		return fn(NewRegistry(tx))
	})
	s.record("atomic", start)
	return err
}

// Ping checks connectivity with the database.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) record(label string, start time.Time) {
	if s.observe != nil {
		s.observe(label, time.Since(start))
	}
}

// buildUpdate renders an UPDATE statement for the given column values. Columns
// are emitted in sorted order so placeholders stay ascending and statements
// are deterministic; unknown columns are rejected.
func buildUpdate(table, idColumn string, allowed map[string]struct{}, fields map[string]interface{}, id int64) (string, []interface{}, error) {
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("update %s: no fields", table)
	}
	columns := make([]string, 0, len(fields))
	for column := range fields {
		if _, ok := allowed[column]; !ok {
			return "", nil, fmt.Errorf("update %s: unknown column %q", table, column)
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)

	sets := make([]string, len(columns))
	args := make([]interface{}, 0, len(columns)+1)
	for i, column := range columns {
		sets[i] = fmt.Sprintf("%s = $%d", column, i+1)
		args = append(args, fields[column])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d", table, strings.Join(sets, ", "), idColumn, len(args))
	return query, args, nil
}

func columnSet(columns ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	return set
}
