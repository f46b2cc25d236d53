// Package seed loads a YAML fixture of departments, employees and projects and
// creates them through the service layer, so every record passes the same
// validation as an API request.
package seed

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/domain"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/service"
)

type File struct {
	Departments []Department `yaml:"departments"`
	Employees   []Employee   `yaml:"employees"`
	Projects    []Project    `yaml:"projects"`
}

// Department references are by dept_code, employee references by email.
type Department struct {
	Name     string  `yaml:"name"`
	Location *string `yaml:"location"`
	Code     *string `yaml:"code"`
}

type Employee struct {
	Name       string   `yaml:"name"`
	Email      string   `yaml:"email"`
	Salary     *float64 `yaml:"salary"`
	JoinDate   string   `yaml:"join_date"`
	Department string   `yaml:"department"`
}

type Project struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	StartDate   string   `yaml:"start_date"`
	EndDate     *string  `yaml:"end_date"`
	Code        *string  `yaml:"code"`
	Department  string   `yaml:"department"`
	Employees   []string `yaml:"employees"`
}

// Result counts what Apply created.
type Result struct {
	Departments int
	Employees   int
	Projects    int
	Assignments int
}

func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a fixture. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s File
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return &s, nil
		}
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &s, nil
}

// Apply creates the fixture's records in order: departments, employees,
// projects, then assignments. It stops at the first failure; records created
// before it are kept.
func Apply(ctx context.Context, svc *service.Service, s *File) (Result, error) {
	var res Result
	depts := make(map[string]int64, len(s.Departments))
	emps := make(map[string]int64, len(s.Employees))

	for _, d := range s.Departments {
		created, err := svc.CreateDepartment(ctx, &domain.CreateDepartmentRequest{
			Name:     d.Name,
			Location: d.Location,
			DeptCode: d.Code,
		})
		if err != nil {
			return res, fmt.Errorf("department %q: %w", d.Name, err)
		}
		depts[created.DeptCode] = created.ID
		res.Departments++
	}

	for _, e := range s.Employees {
		deptID, err := lookup(depts, e.Department, "department")
		if err != nil {
			return res, fmt.Errorf("employee %q: %w", e.Email, err)
		}
		created, err := svc.CreateEmployee(ctx, &domain.CreateEmployeeRequest{
			Name:         e.Name,
			Email:        e.Email,
			Salary:       e.Salary,
			JoinDate:     e.JoinDate,
			DepartmentID: deptID,
		})
		if err != nil {
			return res, fmt.Errorf("employee %q: %w", e.Email, err)
		}
		emps[created.Email] = created.ID
		res.Employees++
	}

	for _, p := range s.Projects {
		deptID, err := lookup(depts, p.Department, "department")
		if err != nil {
			return res, fmt.Errorf("project %q: %w", p.Title, err)
		}
		created, err := svc.CreateProject(ctx, &domain.CreateProjectRequest{
			Title:        p.Title,
			Description:  p.Description,
			StartDate:    p.StartDate,
			EndDate:      p.EndDate,
			ProjectCode:  p.Code,
			DepartmentID: deptID,
		})
		if err != nil {
			return res, fmt.Errorf("project %q: %w", p.Title, err)
		}
		res.Projects++

		if len(p.Employees) == 0 {
			continue
		}
		ids := make([]int64, 0, len(p.Employees))
		for _, email := range p.Employees {
			id, ok := emps[email]
			if !ok {
				return res, fmt.Errorf("project %q: unknown employee %q", p.Title, email)
			}
			ids = append(ids, id)
		}
		out, err := svc.Assign(ctx, created.ID, &domain.AssignRequest{EmployeeID: domain.Many(ids...)})
		if err != nil {
			return res, fmt.Errorf("project %q: assign: %w", p.Title, err)
		}
		res.Assignments += len(out.Assigned)
	}

	return res, nil
}

func lookup(ids map[string]int64, code, what string) (*int64, error) {
	if code == "" {
		return nil, nil
	}
	id, ok := ids[code]
	if !ok {
		return nil, fmt.Errorf("unknown %s %q", what, code)
	}
	return &id, nil
}
