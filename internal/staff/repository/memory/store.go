// Package memory is an in-process repository.Store. It enforces the same
// unique columns, foreign keys and cascades as the PostgreSQL schema, and
// gives transactions snapshot semantics: fn works on a copy that replaces
// the live state only on commit.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/domain"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/repository"
)

type state struct {
	departments map[int64]domain.Department
	employees   map[int64]domain.Employee
	projects    map[int64]domain.Project
	assignments map[domain.Assignment]struct{}

	lastDepartmentID int64
	lastEmployeeID   int64
	lastProjectID    int64
}

func newState() *state {
	return &state{
		departments: map[int64]domain.Department{},
		employees:   map[int64]domain.Employee{},
		projects:    map[int64]domain.Project{},
		assignments: map[domain.Assignment]struct{}{},
	}
}

func (s *state) clone() *state {
	c := &state{
		departments:      make(map[int64]domain.Department, len(s.departments)),
		employees:        make(map[int64]domain.Employee, len(s.employees)),
		projects:         make(map[int64]domain.Project, len(s.projects)),
		assignments:      make(map[domain.Assignment]struct{}, len(s.assignments)),
		lastDepartmentID: s.lastDepartmentID,
		lastEmployeeID:   s.lastEmployeeID,
		lastProjectID:    s.lastProjectID,
	}
	for k, v := range s.departments {
		c.departments[k] = cloneDepartment(v)
	}
	for k, v := range s.employees {
		c.employees[k] = cloneEmployee(v)
	}
	for k, v := range s.projects {
		c.projects[k] = cloneProject(v)
	}
	for k := range s.assignments {
		c.assignments[k] = struct{}{}
	}
	return c
}

// accessor runs fn against a state. The live store locks around each call;
// a transaction already holds the lock and works on its private copy.
type accessor interface {
	do(fn func(st *state) error) error
	view(fn func(st *state) error) error
}

// Store is an in-memory repository.Store.
type Store struct {
	mu sync.Mutex
	st *state
	repos
}

var _ repository.Store = (*Store)(nil)

// NewStore returns an empty store.
func NewStore() *Store {
	s := &Store{st: newState()}
	s.repos = newRepos(s)
	return s
}

func (s *Store) do(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Single operations run on a copy too, so a failed write leaves no trace.
	work := s.st.clone()
	if err := fn(work); err != nil {
		return err
	}
	s.st = work
	return nil
}

func (s *Store) view(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// WithTx serialises transactions; fn sees a private copy of the state which
// replaces the live state only if fn returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &txState{st: s.st.clone()}
	if err := fn(newRepos(t)); err != nil {
		return err
	}
	s.st = t.st
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

func (s *Store) Close() error { return nil }

type txState struct {
	st *state
}

func (t *txState) do(fn func(st *state) error) error {
	work := t.st.clone()
	if err := fn(work); err != nil {
		return err
	}
	t.st = work
	return nil
}

func (t *txState) view(fn func(st *state) error) error {
	return fn(t.st)
}

type repos struct {
	departments *departmentRepo
	employees   *employeeRepo
	projects    *projectRepo
	assignments *assignmentRepo
}

func newRepos(a accessor) repos {
	return repos{
		departments: &departmentRepo{a: a},
		employees:   &employeeRepo{a: a},
		projects:    &projectRepo{a: a},
		assignments: &assignmentRepo{a: a},
	}
}

func (r repos) Departments() repository.DepartmentRepository { return r.departments }
func (r repos) Employees() repository.EmployeeRepository     { return r.employees }
func (r repos) Projects() repository.ProjectRepository       { return r.projects }
func (r repos) Assignments() repository.AssignmentRepository { return r.assignments }

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneDepartment(d domain.Department) domain.Department {
	d.Location = clonePtr(d.Location)
	return d
}

func cloneEmployee(e domain.Employee) domain.Employee {
	e.Salary = clonePtr(e.Salary)
	e.DepartmentID = clonePtr(e.DepartmentID)
	return e
}

func cloneProject(p domain.Project) domain.Project {
	p.EndDate = clonePtr(p.EndDate)
	p.DepartmentID = clonePtr(p.DepartmentID)
	return p
}
