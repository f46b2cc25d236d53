package service

import (
	"context"

	"github.com/GoSim-25-26J-441/go-staff-backend/internal/events"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/domain"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/repository"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/validate"
)

const (
	msgInvalidName     = "Invalid name. Name should contain only Alphabets"
	msgInvalidEmail    = "Invalid email format. Email must endswith .com"
	msgFutureJoinDate  = "join_date cannot be in the future"
	msgJoinDateMissing = "join_date is required"
)

// parseJoinDate parses a join date and rejects dates after today.
func (s *Service) parseJoinDate(raw string) (domain.Date, error) {
	d, err := validate.ParseDate(raw, "join_date")
	if err != nil {
		return domain.Date{}, dateError(err)
	}
	if !validate.NotFuture(d, s.today()) {
		return domain.Date{}, domain.Errorf(domain.ErrInvalidFormat, msgFutureJoinDate)
	}
	return d, nil
}

// CreateEmployee validates req and stores a new employee. Checks run in a
// fixed order and the first failure is returned.
func (s *Service) CreateEmployee(ctx context.Context, req *domain.CreateEmployeeRequest) (*domain.Employee, error) {
	if req == nil {
		return nil, domain.Errorf(domain.ErrMissingBody, msgMissingBody)
	}
	if !validate.IsValidName(req.Name) {
		return nil, domain.Errorf(domain.ErrInvalidFormat, msgInvalidName)
	}
	if !validate.IsValidEmail(req.Email) {
		return nil, domain.Errorf(domain.ErrInvalidFormat, msgInvalidEmail)
	}
	joinDate, err := s.parseJoinDate(req.JoinDate)
	if err != nil {
		return nil, err
	}

	e := domain.Employee{
		Name:         req.Name,
		Email:        req.Email,
		Salary:       req.Salary,
		JoinDate:     joinDate,
		DepartmentID: req.DepartmentID,
	}
	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := requireDepartment(ctx, tx, e.DepartmentID); err != nil {
			return err
		}
		return tx.Employees().Create(ctx, &e)
	})
	if err != nil {
		return nil, writeError(err, msgEmployeeNF, msgDepartmentNF)
	}

	s.publish(ctx, events.New(events.TypeCreated, events.ResourceEmployee, e.ID, e))
	return &e, nil
}

// GetEmployee returns an employee together with its assigned projects.
func (s *Service) GetEmployee(ctx context.Context, id int64) (*domain.EmployeeDetail, error) {
	e, err := s.store.Employees().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgEmployeeNF)
	}
	projects, err := s.store.Assignments().ListProjectsByEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.EmployeeDetail{Employee: *e, Projects: projects}, nil
}

// ListEmployees returns every employee.
func (s *Service) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return s.store.Employees().List(ctx)
}

// ListEmployeeProjects returns the projects an employee is assigned to.
func (s *Service) ListEmployeeProjects(ctx context.Context, id int64) ([]domain.Project, error) {
	if _, err := s.store.Employees().GetByID(ctx, id); err != nil {
		return nil, notFound(err, msgEmployeeNF)
	}
	return s.store.Assignments().ListProjectsByEmployee(ctx, id)
}

// UpdateEmployee applies a partial update. Present fields are validated as on
// create. changed is false when nothing differs from the stored row.
func (s *Service) UpdateEmployee(ctx context.Context, id int64, req *domain.UpdateEmployeeRequest) (emp *domain.Employee, changed bool, err error) {
	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		current, err := tx.Employees().GetByID(ctx, id)
		if err != nil {
			return notFound(err, msgEmployeeNF)
		}
		if req == nil {
			return domain.Errorf(domain.ErrMissingBody, msgNoData)
		}

		next := *current
		if req.Name.Set {
			if !req.Name.Present() || !validate.IsValidName(req.Name.Value) {
				return domain.Errorf(domain.ErrInvalidFormat, msgInvalidName)
			}
			next.Name = req.Name.Value
		}
		if req.Email.Set {
			if !req.Email.Present() || !validate.IsValidEmail(req.Email.Value) {
				return domain.Errorf(domain.ErrInvalidFormat, msgInvalidEmail)
			}
			next.Email = req.Email.Value
		}
		next.Salary = req.Salary.Resolve(current.Salary)
		if req.JoinDate.Set {
			if !req.JoinDate.Present() {
				return domain.Errorf(domain.ErrMissingField, msgJoinDateMissing)
			}
			d, err := s.parseJoinDate(req.JoinDate.Value)
			if err != nil {
				return err
			}
			next.JoinDate = d
		}
		if req.DepartmentID.Set {
			next.DepartmentID = req.DepartmentID.Resolve(current.DepartmentID)
			if err := requireDepartment(ctx, tx, next.DepartmentID); err != nil {
				return err
			}
		}

		if next.Equal(*current) {
			emp = current
			return nil
		}
		if err := tx.Employees().Update(ctx, &next); err != nil {
			return err
		}
		emp, changed = &next, true
		return nil
	})
	if err != nil {
		return nil, false, writeError(err, msgEmployeeNF, msgDepartmentNF)
	}
	if changed {
		s.publish(ctx, events.New(events.TypeUpdated, events.ResourceEmployee, emp.ID, emp))
	}
	return emp, changed, nil
}

// DeleteEmployee removes an employee and its project assignments.
func (s *Service) DeleteEmployee(ctx context.Context, id int64) error {
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		return tx.Employees().Delete(ctx, id)
	})
	if err != nil {
		return writeError(err, msgEmployeeNF, msgEmployeeNF)
	}
	s.publish(ctx, events.New(events.TypeDeleted, events.ResourceEmployee, id, nil))
	return nil
}
