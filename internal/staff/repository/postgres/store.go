// Package postgres implements the staff repositories on database/sql. It works
// with both the lib/pq ("postgres") and pgx ("pgx") drivers.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/repository"
)

//go:embed schema.sql
var schemaSQL string

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the PostgreSQL-backed repository.Store.
type Store struct {
	db *sql.DB
	repos
}

var _ repository.Store = (*Store)(nil)

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, repos: newRepos(db)}
}

// WithTx runs fn inside a database transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx repository.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(newRepos(tx)); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return translate(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates any missing tables and indexes. Existing tables are
// left untouched.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

type repos struct {
	departments *DepartmentRepository
	employees   *EmployeeRepository
	projects    *ProjectRepository
	assignments *AssignmentRepository
}

func newRepos(db DBTX) repos {
	return repos{
		departments: NewDepartmentRepository(db),
		employees:   NewEmployeeRepository(db),
		projects:    NewProjectRepository(db),
		assignments: NewAssignmentRepository(db),
	}
}

func (r repos) Departments() repository.DepartmentRepository { return r.departments }
func (r repos) Employees() repository.EmployeeRepository     { return r.employees }
func (r repos) Projects() repository.ProjectRepository       { return r.projects }
func (r repos) Assignments() repository.AssignmentRepository { return r.assignments }
