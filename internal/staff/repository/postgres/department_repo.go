package postgres

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/domain"
)

const departmentColumns = `id, name, location, dept_code`

// DepartmentRepository provides persistence operations for departments
type DepartmentRepository struct {
	db DBTX
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db DBTX) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

func scanDepartment(row rowScanner, d *domain.Department) error {
	return row.Scan(&d.ID, &d.Name, &d.Location, &d.DeptCode)
}

// Create inserts d and sets its ID.
func (r *DepartmentRepository) Create(ctx context.Context, d *domain.Department) error {
	const q = `
INSERT INTO departments (name, location, dept_code)
VALUES ($1, $2, $3)
RETURNING id;
`
	if err := r.db.QueryRowContext(ctx, q, d.Name, d.Location, d.DeptCode).Scan(&d.ID); err != nil {
		return translate(err)
	}
	return nil
}

// GetByID returns the department or domain.ErrNotFound.
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	q := `SELECT ` + departmentColumns + ` FROM departments WHERE id = $1;`
	var d domain.Department
	if err := scanDepartment(r.db.QueryRowContext(ctx, q, id), &d); err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

// List returns all departments ordered by id.
func (r *DepartmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	q := `SELECT ` + departmentColumns + ` FROM departments ORDER BY id;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Department, 0, 16)
	for rows.Next() {
		var d domain.Department
		if err := scanDepartment(rows, &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes every column of d.
func (r *DepartmentRepository) Update(ctx context.Context, d *domain.Department) error {
	const q = `
UPDATE departments
SET name = $2, location = $3, dept_code = $4
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, d.ID, d.Name, d.Location, d.DeptCode)
	if err != nil {
		return translate(err)
	}
	return expectOneRow(res)
}

// Delete removes the department. Employees and projects keep existing with a
// NULL department_id.
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE id = $1;`, id)
	if err != nil {
		return translate(err)
	}
	return expectOneRow(res)
}

// CodeExists reports whether a department already uses code.
func (r *DepartmentRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM departments WHERE dept_code = $1);`, code,
	).Scan(&exists)
	return exists, err
}
