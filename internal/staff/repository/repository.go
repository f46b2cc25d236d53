// Package repository defines the storage contract the staff service runs on.
// Backends live in the postgres and memory subpackages.
package repository

import (
	"context"

	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/domain"
)

// DepartmentRepository persists departments.
type DepartmentRepository interface {
	Create(ctx context.Context, d *domain.Department) error
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	Update(ctx context.Context, d *domain.Department) error
	Delete(ctx context.Context, id int64) error
	CodeExists(ctx context.Context, code string) (bool, error)
}

// EmployeeRepository persists employees.
type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	ListByDepartment(ctx context.Context, departmentID int64) ([]domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, id int64) error
}

// ProjectRepository persists projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	ListByDepartment(ctx context.Context, departmentID int64) ([]domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id int64) error
	CodeExists(ctx context.Context, code string) (bool, error)
}

// AssignmentRepository persists the employee-project association set.
// Insert and Remove report whether a row actually changed, so a duplicate
// insert or a missing remove is a no-op rather than an error.
type AssignmentRepository interface {
	Exists(ctx context.Context, a domain.Assignment) (bool, error)
	Insert(ctx context.Context, a domain.Assignment) (bool, error)
	Remove(ctx context.Context, a domain.Assignment) (bool, error)
	ListProjectsByEmployee(ctx context.Context, employeeID int64) ([]domain.Project, error)
	ListEmployeesByProject(ctx context.Context, projectID int64) ([]domain.Employee, error)
}

// Tx is the set of repositories bound to one unit of work.
type Tx interface {
	Departments() DepartmentRepository
	Employees() EmployeeRepository
	Projects() ProjectRepository
	Assignments() AssignmentRepository
}

// Store is a Tx outside any transaction plus the ability to open one.
//
// WithTx commits when fn returns nil and rolls back when it returns an error
// or panics. Repositories obtained from the Tx passed to fn must not be used
// after fn returns.
type Store interface {
	Tx
	WithTx(ctx context.Context, fn func(tx Tx) error) error
	Ping(ctx context.Context) error
	Close() error
}
