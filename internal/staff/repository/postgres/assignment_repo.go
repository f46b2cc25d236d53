package postgres

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/domain"
)

// AssignmentRepository persists the employee_project association table
type AssignmentRepository struct {
	db DBTX
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db DBTX) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Exists reports whether the pair is currently assigned.
func (r *AssignmentRepository) Exists(ctx context.Context, a domain.Assignment) (bool, error) {
	const q = `
SELECT EXISTS (
    SELECT 1 FROM employee_project WHERE employee_id = $1 AND project_id = $2
);
`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, a.EmployeeID, a.ProjectID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Insert adds the pair. It returns false without error if the pair was
// already present, including when a concurrent request inserted it first.
func (r *AssignmentRepository) Insert(ctx context.Context, a domain.Assignment) (bool, error) {
	const q = `
INSERT INTO employee_project (employee_id, project_id)
VALUES ($1, $2)
ON CONFLICT (employee_id, project_id) DO NOTHING;
`
	res, err := r.db.ExecContext(ctx, q, a.EmployeeID, a.ProjectID)
	if err != nil {
		return false, translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Remove deletes exactly the pair and reports whether it existed.
func (r *AssignmentRepository) Remove(ctx context.Context, a domain.Assignment) (bool, error) {
	const q = `DELETE FROM employee_project WHERE employee_id = $1 AND project_id = $2;`
	res, err := r.db.ExecContext(ctx, q, a.EmployeeID, a.ProjectID)
	if err != nil {
		return false, translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListProjectsByEmployee returns the projects the employee is assigned to.
func (r *AssignmentRepository) ListProjectsByEmployee(ctx context.Context, employeeID int64) ([]domain.Project, error) {
	q := `
SELECT ` + projectColumns + `
FROM projects p
JOIN employee_project ep ON ep.project_id = p.id
WHERE ep.employee_id = $1
ORDER BY p.id;
`
	rows, err := r.db.QueryContext(ctx, q, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list employee projects: %w", err)
	}
	return collectProjects(rows)
}

// ListEmployeesByProject returns the employees assigned to the project.
func (r *AssignmentRepository) ListEmployeesByProject(ctx context.Context, projectID int64) ([]domain.Employee, error) {
	q := `
SELECT ` + employeeColumns + `
FROM employees e
JOIN employee_project ep ON ep.employee_id = e.id
WHERE ep.project_id = $1
ORDER BY e.id;
`
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project employees: %w", err)
	}
	return collectEmployees(rows)
}
