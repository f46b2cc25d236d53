package service

import (
	"context"

	"github.com/GoSim-25-26J-441/go-staff-backend/internal/events"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/codegen"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/domain"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/repository"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/validate"
)

const msgInvalidDeptCode = "Invalid dept_code. Must be exactly 4 alphanumeric characters"

// CreateDepartment validates req and stores a new department. Without a
// client supplied dept_code one is generated.
func (s *Service) CreateDepartment(ctx context.Context, req *domain.CreateDepartmentRequest) (*domain.Department, error) {
	if req == nil {
		return nil, domain.Errorf(domain.ErrMissingBody, msgMissingBody)
	}
	if validate.IsBlank(req.Name) {
		return nil, domain.Errorf(domain.ErrMissingField, "Department name is required")
	}
	code := suppliedCode(req.DeptCode)
	if code != "" && !validate.IsValidDeptCode(code) {
		return nil, domain.Errorf(domain.ErrInvalidFormat, msgInvalidDeptCode)
	}
	generated := code == ""

	var d domain.Department
	err := s.withCodeRetry(ctx, generated, "dept_code", func(tx repository.Tx) error {
		d = domain.Department{Name: req.Name, Location: req.Location, DeptCode: code}
		if generated {
			c, err := generateCode(ctx, tx.Departments().CodeExists, codegen.DeptCodeLength)
			if err != nil {
				return err
			}
			d.DeptCode = c
		}
		return tx.Departments().Create(ctx, &d)
	})
	if err != nil {
		return nil, writeError(err, msgDepartmentNF, msgDepartmentNF)
	}

	s.publish(ctx, events.New(events.TypeCreated, events.ResourceDepartment, d.ID, d))
	return &d, nil
}

// GetDepartment returns a department with its employees and projects.
func (s *Service) GetDepartment(ctx context.Context, id int64) (*domain.DepartmentDetail, error) {
	d, err := s.store.Departments().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgDepartmentNF)
	}
	employees, err := s.store.Employees().ListByDepartment(ctx, id)
	if err != nil {
		return nil, err
	}
	projects, err := s.store.Projects().ListByDepartment(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.DepartmentDetail{Department: *d, Employees: employees, Projects: projects}, nil
}

// ListDepartments returns every department.
func (s *Service) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	return s.store.Departments().List(ctx)
}

// ListDepartmentEmployees returns the employees of a department.
func (s *Service) ListDepartmentEmployees(ctx context.Context, id int64) ([]domain.Employee, error) {
	if _, err := s.store.Departments().GetByID(ctx, id); err != nil {
		return nil, notFound(err, msgDepartmentNF)
	}
	return s.store.Employees().ListByDepartment(ctx, id)
}

// ListDepartmentProjects returns the projects owned by a department.
func (s *Service) ListDepartmentProjects(ctx context.Context, id int64) ([]domain.Project, error) {
	if _, err := s.store.Departments().GetByID(ctx, id); err != nil {
		return nil, notFound(err, msgDepartmentNF)
	}
	return s.store.Projects().ListByDepartment(ctx, id)
}

// UpdateDepartment applies a partial update. changed is false when the
// resolved state equals the stored one, in which case nothing is written.
func (s *Service) UpdateDepartment(ctx context.Context, id int64, req *domain.UpdateDepartmentRequest) (dept *domain.Department, changed bool, err error) {
	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		current, err := tx.Departments().GetByID(ctx, id)
		if err != nil {
			return notFound(err, msgDepartmentNF)
		}
		if req == nil {
			return domain.Errorf(domain.ErrMissingBody, msgNoData)
		}

		next := *current
		if req.Name.Set {
			if !req.Name.Present() || validate.IsBlank(req.Name.Value) {
				return domain.Errorf(domain.ErrMissingField, "Department name is required")
			}
			next.Name = req.Name.Value
		}
		next.Location = req.Location.Resolve(current.Location)
		if req.DeptCode.Set {
			code := trim(req.DeptCode.Value)
			if !req.DeptCode.Present() || code == "" {
				return domain.Errorf(domain.ErrMissingField, "dept_code cannot be empty")
			}
			if !validate.IsValidDeptCode(code) {
				return domain.Errorf(domain.ErrInvalidFormat, msgInvalidDeptCode)
			}
			next.DeptCode = code
		}

		if next.Equal(*current) {
			dept = current
			return nil
		}
		if err := tx.Departments().Update(ctx, &next); err != nil {
			return err
		}
		dept, changed = &next, true
		return nil
	})
	if err != nil {
		return nil, false, writeError(err, msgDepartmentNF, msgDepartmentNF)
	}
	if changed {
		s.publish(ctx, events.New(events.TypeUpdated, events.ResourceDepartment, dept.ID, dept))
	}
	return dept, changed, nil
}

// DeleteDepartment removes a department. Its employees and projects stay and
// lose their department reference.
func (s *Service) DeleteDepartment(ctx context.Context, id int64) error {
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		return tx.Departments().Delete(ctx, id)
	})
	if err != nil {
		return writeError(err, msgDepartmentNF, msgDepartmentNF)
	}
	s.publish(ctx, events.New(events.TypeDeleted, events.ResourceDepartment, id, nil))
	return nil
}
