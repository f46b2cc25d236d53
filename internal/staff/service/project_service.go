package service

import (
	"context"

	"github.com/GoSim-25-26J-441/go-staff-backend/internal/events"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/codegen"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/domain"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/repository"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/validate"
)

const (
	msgTitleDescription   = "Title and description are required"
	msgInvalidProjectCode = "Invalid project_code. Must be exactly 5 alphanumeric characters"
)

// parseEndDate parses an optional end date. Blank means no end date.
func parseEndDate(raw string) (*domain.Date, error) {
	if validate.IsBlank(raw) {
		return nil, nil
	}
	d, err := validate.ParseDate(raw, "end_date")
	if err != nil {
		return nil, dateError(err)
	}
	return &d, nil
}

// CreateProject validates req and stores a new project. Without a client
// supplied project_code one is generated.
func (s *Service) CreateProject(ctx context.Context, req *domain.CreateProjectRequest) (*domain.Project, error) {
	if req == nil {
		return nil, domain.Errorf(domain.ErrMissingBody, msgMissingBody)
	}
	if validate.IsBlank(req.Title) || validate.IsBlank(req.Description) {
		return nil, domain.Errorf(domain.ErrMissingField, msgTitleDescription)
	}
	start, err := validate.ParseDate(req.StartDate, "start_date")
	if err != nil {
		return nil, dateError(err)
	}
	var end *domain.Date
	if req.EndDate != nil {
		if end, err = parseEndDate(*req.EndDate); err != nil {
			return nil, err
		}
	}
	code := suppliedCode(req.ProjectCode)
	if code != "" && !validate.IsValidProjectCode(code) {
		return nil, domain.Errorf(domain.ErrInvalidFormat, msgInvalidProjectCode)
	}
	generated := code == ""

	var p domain.Project
	err = s.withCodeRetry(ctx, generated, "project_code", func(tx repository.Tx) error {
		if err := requireDepartment(ctx, tx, req.DepartmentID); err != nil {
			return err
		}
		p = domain.Project{
			Title:        req.Title,
			Description:  req.Description,
			StartDate:    start,
			EndDate:      end,
			ProjectCode:  code,
			DepartmentID: req.DepartmentID,
		}
		if generated {
			c, err := generateCode(ctx, tx.Projects().CodeExists, codegen.ProjectCodeLength)
			if err != nil {
				return err
			}
			p.ProjectCode = c
		}
		return tx.Projects().Create(ctx, &p)
	})
	if err != nil {
		return nil, writeError(err, msgProjectNF, msgDepartmentNF)
	}

	s.publish(ctx, events.New(events.TypeCreated, events.ResourceProject, p.ID, p))
	return &p, nil
}

// GetProject returns a project together with its assigned employees.
func (s *Service) GetProject(ctx context.Context, id int64) (*domain.ProjectDetail, error) {
	p, err := s.store.Projects().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgProjectNF)
	}
	employees, err := s.store.Assignments().ListEmployeesByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.ProjectDetail{Project: *p, Employees: employees}, nil
}

// ListProjects returns every project.
func (s *Service) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return s.store.Projects().List(ctx)
}

// ListProjectEmployees returns the employees assigned to a project.
func (s *Service) ListProjectEmployees(ctx context.Context, id int64) ([]domain.Employee, error) {
	if _, err := s.store.Projects().GetByID(ctx, id); err != nil {
		return nil, notFound(err, msgProjectNF)
	}
	return s.store.Assignments().ListEmployeesByProject(ctx, id)
}

// UpdateProject applies a partial update. A null or blank end_date clears it.
func (s *Service) UpdateProject(ctx context.Context, id int64, req *domain.UpdateProjectRequest) (proj *domain.Project, changed bool, err error) {
	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		current, err := tx.Projects().GetByID(ctx, id)
		if err != nil {
			return notFound(err, msgProjectNF)
		}
		if req == nil {
			return domain.Errorf(domain.ErrMissingBody, msgNoData)
		}

		next := *current
		if req.Title.Set {
			if !req.Title.Present() || validate.IsBlank(req.Title.Value) {
				return domain.Errorf(domain.ErrMissingField, msgTitleDescription)
			}
			next.Title = req.Title.Value
		}
		if req.Description.Set {
			if !req.Description.Present() || validate.IsBlank(req.Description.Value) {
				return domain.Errorf(domain.ErrMissingField, msgTitleDescription)
			}
			next.Description = req.Description.Value
		}
		if req.StartDate.Set {
			d, err := validate.ParseDate(req.StartDate.Value, "start_date")
			if err != nil {
				return dateError(err)
			}
			next.StartDate = d
		}
		if req.EndDate.Set {
			end, err := parseEndDate(req.EndDate.Value)
			if err != nil {
				return err
			}
			next.EndDate = end
		}
		if req.ProjectCode.Set {
			code := trim(req.ProjectCode.Value)
			if !req.ProjectCode.Present() || code == "" {
				return domain.Errorf(domain.ErrMissingField, "project_code cannot be empty")
			}
			if !validate.IsValidProjectCode(code) {
				return domain.Errorf(domain.ErrInvalidFormat, msgInvalidProjectCode)
			}
			next.ProjectCode = code
		}
		if req.DepartmentID.Set {
			next.DepartmentID = req.DepartmentID.Resolve(current.DepartmentID)
			if err := requireDepartment(ctx, tx, next.DepartmentID); err != nil {
				return err
			}
		}

		if next.Equal(*current) {
			proj = current
			return nil
		}
		if err := tx.Projects().Update(ctx, &next); err != nil {
			return err
		}
		proj, changed = &next, true
		return nil
	})
	if err != nil {
		return nil, false, writeError(err, msgProjectNF, msgDepartmentNF)
	}
	if changed {
		s.publish(ctx, events.New(events.TypeUpdated, events.ResourceProject, proj.ID, proj))
	}
	return proj, changed, nil
}

// DeleteProject removes a project and its assignments.
func (s *Service) DeleteProject(ctx context.Context, id int64) error {
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		return tx.Projects().Delete(ctx, id)
	})
	if err != nil {
		return writeError(err, msgProjectNF, msgProjectNF)
	}
	s.publish(ctx, events.New(events.TypeDeleted, events.ResourceProject, id, nil))
	return nil
}
