package service

import (
	"context"
	"errors"

	"github.com/GoSim-25-26J-441/go-staff-backend/internal/events"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/domain"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/repository"
)

const (
	msgEmployeeIDRequired = "employee_id is required"
	msgNotAssigned        = "Employee not assigned"
)

// Assign adds employees to a project. employee_id may be a single id or a
// list. Pairs that already exist are reported in AlreadyAssigned and left
// untouched. In list form unknown employees are collected in Invalid; in
// single form an unknown employee or project fails the call.
func (s *Service) Assign(ctx context.Context, projectID int64, req *domain.AssignRequest) (*domain.AssignResult, error) {
	if req == nil || req.EmployeeID == nil || len(req.EmployeeID.IDs) == 0 {
		return nil, domain.Errorf(domain.ErrMissingField, msgEmployeeIDRequired)
	}
	list := req.EmployeeID.List
	ids := dedupe(req.EmployeeID.IDs)

	res := &domain.AssignResult{
		List:            list,
		Assigned:        []int64{},
		AlreadyAssigned: []int64{},
		Invalid:         []int64{},
	}
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		project, err := tx.Projects().GetByID(ctx, projectID)
		if err != nil {
			if list {
				return notFound(err, msgProjectNF)
			}
			return notFound(err, msgInvalidPair)
		}
		res.Project = *project

		for _, id := range ids {
			e, err := tx.Employees().GetByID(ctx, id)
			if errors.Is(err, domain.ErrNotFound) {
				if !list {
					return domain.Errorf(domain.ErrNotFound, msgInvalidPair)
				}
				res.Invalid = append(res.Invalid, id)
				continue
			}
			if err != nil {
				return err
			}
			res.Employees = append(res.Employees, *e)
		}
		if len(res.Employees) == 0 {
			return domain.Errorf(domain.ErrNotFound, msgNoValidEmployees)
		}

		for _, e := range res.Employees {
			pair := domain.Assignment{EmployeeID: e.ID, ProjectID: projectID}
			exists, err := tx.Assignments().Exists(ctx, pair)
			if err != nil {
				return err
			}
			if exists {
				res.AlreadyAssigned = append(res.AlreadyAssigned, e.ID)
				continue
			}
			inserted, err := tx.Assignments().Insert(ctx, pair)
			if err != nil {
				return err
			}
			if inserted {
				res.Assigned = append(res.Assigned, e.ID)
			} else {
				res.AlreadyAssigned = append(res.AlreadyAssigned, e.ID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, writeError(err, msgInvalidPair, msgInvalidPair)
	}

	for _, id := range res.Assigned {
		s.publish(ctx, events.New(events.TypeAssigned, events.ResourceProject, projectID,
			domain.Assignment{EmployeeID: id, ProjectID: projectID}))
	}
	return res, nil
}

// Unassign removes one employee from a project. A pair that does not exist
// fails with domain.ErrNotAssigned and nothing is written.
func (s *Service) Unassign(ctx context.Context, projectID int64, req *domain.UnassignRequest) (*domain.UnassignResult, error) {
	if req == nil || req.EmployeeID == nil {
		return nil, domain.Errorf(domain.ErrMissingField, msgEmployeeIDRequired)
	}
	employeeID := *req.EmployeeID

	var res domain.UnassignResult
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		project, err := tx.Projects().GetByID(ctx, projectID)
		if err != nil {
			return notFound(err, msgInvalidPair)
		}
		employee, err := tx.Employees().GetByID(ctx, employeeID)
		if err != nil {
			return notFound(err, msgInvalidPair)
		}
		res.Project, res.Employee = *project, *employee

		removed, err := tx.Assignments().Remove(ctx, domain.Assignment{EmployeeID: employeeID, ProjectID: projectID})
		if err != nil {
			return err
		}
		if !removed {
			return domain.Errorf(domain.ErrNotAssigned, msgNotAssigned)
		}
		return nil
	})
	if err != nil {
		return nil, writeError(err, msgInvalidPair, msgInvalidPair)
	}

	s.publish(ctx, events.New(events.TypeUnassigned, events.ResourceProject, projectID,
		domain.Assignment{EmployeeID: employeeID, ProjectID: projectID}))
	return &res, nil
}

// dedupe drops repeated ids and keeps the first occurrence order.
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
