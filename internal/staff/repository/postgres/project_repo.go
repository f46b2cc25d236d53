package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/domain"
)

const projectColumns = `p.id, p.title, p.description, p.start_date, p.end_date, p.project_code, p.department_id`

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db DBTX
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db DBTX) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func scanProject(row rowScanner, p *domain.Project) error {
	return row.Scan(&p.ID, &p.Title, &p.Description, &p.StartDate, &p.EndDate, &p.ProjectCode, &p.DepartmentID)
}

func collectProjects(rows *sql.Rows) ([]domain.Project, error) {
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var p domain.Project
		if err := scanProject(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts p and sets its ID.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	const q = `
INSERT INTO projects (title, description, start_date, end_date, project_code, department_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id;
`
	err := r.db.QueryRowContext(ctx, q,
		p.Title, p.Description, p.StartDate, p.EndDate, p.ProjectCode, p.DepartmentID,
	).Scan(&p.ID)
	if err != nil {
		return translate(err)
	}
	return nil
}

// GetByID returns the project or domain.ErrNotFound.
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects p WHERE p.id = $1;`
	var p domain.Project
	if err := scanProject(r.db.QueryRowContext(ctx, q, id), &p); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// List returns all projects ordered by id.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects p ORDER BY p.id;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return collectProjects(rows)
}

// ListByDepartment returns the projects owned by one department.
func (r *ProjectRepository) ListByDepartment(ctx context.Context, departmentID int64) ([]domain.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects p WHERE p.department_id = $1 ORDER BY p.id;`
	rows, err := r.db.QueryContext(ctx, q, departmentID)
	if err != nil {
		return nil, fmt.Errorf("list department projects: %w", err)
	}
	return collectProjects(rows)
}

// Update writes every column of p.
func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	const q = `
UPDATE projects
SET title = $2, description = $3, start_date = $4, end_date = $5, project_code = $6, department_id = $7
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q,
		p.ID, p.Title, p.Description, p.StartDate, p.EndDate, p.ProjectCode, p.DepartmentID,
	)
	if err != nil {
		return translate(err)
	}
	return expectOneRow(res)
}

// Delete removes the project and, by cascade, its assignments.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1;`, id)
	if err != nil {
		return translate(err)
	}
	return expectOneRow(res)
}

// CodeExists reports whether a project already uses code.
func (r *ProjectRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM projects WHERE project_code = $1);`, code,
	).Scan(&exists)
	return exists, err
}
