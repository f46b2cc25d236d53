package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/domain"
)

const employeeColumns = `e.id, e.name, e.email, e.salary, e.join_date, e.department_id`

// EmployeeRepository provides persistence operations for employees
type EmployeeRepository struct {
	db DBTX
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db DBTX) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func scanEmployee(row rowScanner, e *domain.Employee) error {
	return row.Scan(&e.ID, &e.Name, &e.Email, &e.Salary, &e.JoinDate, &e.DepartmentID)
}

func collectEmployees(rows *sql.Rows) ([]domain.Employee, error) {
	defer rows.Close()

	out := make([]domain.Employee, 0, 16)
	for rows.Next() {
		var e domain.Employee
		if err := scanEmployee(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts e and sets its ID. A taken email yields a
// *domain.UniqueViolationError.
func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	const q = `
INSERT INTO employees (name, email, salary, join_date, department_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id;
`
	err := r.db.QueryRowContext(ctx, q, e.Name, e.Email, e.Salary, e.JoinDate, e.DepartmentID).Scan(&e.ID)
	if err != nil {
		return translate(err)
	}
	return nil
}

// GetByID returns the employee or domain.ErrNotFound.
func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	q := `SELECT ` + employeeColumns + ` FROM employees e WHERE e.id = $1;`
	var e domain.Employee
	if err := scanEmployee(r.db.QueryRowContext(ctx, q, id), &e); err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

// List returns all employees ordered by id.
func (r *EmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	q := `SELECT ` + employeeColumns + ` FROM employees e ORDER BY e.id;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return collectEmployees(rows)
}

// ListByDepartment returns the employees of one department.
func (r *EmployeeRepository) ListByDepartment(ctx context.Context, departmentID int64) ([]domain.Employee, error) {
	q := `SELECT ` + employeeColumns + ` FROM employees e WHERE e.department_id = $1 ORDER BY e.id;`
	rows, err := r.db.QueryContext(ctx, q, departmentID)
	if err != nil {
		return nil, fmt.Errorf("list department employees: %w", err)
	}
	return collectEmployees(rows)
}

// Update writes every column of e.
func (r *EmployeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	const q = `
UPDATE employees
SET name = $2, email = $3, salary = $4, join_date = $5, department_id = $6
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, e.ID, e.Name, e.Email, e.Salary, e.JoinDate, e.DepartmentID)
	if err != nil {
		return translate(err)
	}
	return expectOneRow(res)
}

// Delete removes the employee. Association rows go with it (ON DELETE CASCADE).
func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1;`, id)
	if err != nil {
		return translate(err)
	}
	return expectOneRow(res)
}
