package domain

import (
	"bytes"
	"encoding/json"
	"errors"
)

// CreateDepartmentRequest is the payload of POST /departments.
type CreateDepartmentRequest struct {
	Name     string  `json:"name"`
	Location *string `json:"location"`
	DeptCode *string `json:"dept_code"`
}

// UpdateDepartmentRequest is the payload of PUT /departments/{id}.
type UpdateDepartmentRequest struct {
	Name     Nullable[string] `json:"name"`
	Location Nullable[string] `json:"location"`
	DeptCode Nullable[string] `json:"dept_code"`
}

// CreateEmployeeRequest is the payload of POST /employees.
type CreateEmployeeRequest struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Salary       *float64 `json:"salary"`
	JoinDate     string   `json:"join_date"`
	DepartmentID *int64   `json:"department_id"`
}

// UpdateEmployeeRequest is the payload of PUT /employees/{id}.
type UpdateEmployeeRequest struct {
	Name         Nullable[string]  `json:"name"`
	Email        Nullable[string]  `json:"email"`
	Salary       Nullable[float64] `json:"salary"`
	JoinDate     Nullable[string]  `json:"join_date"`
	DepartmentID Nullable[int64]   `json:"department_id"`
}

// CreateProjectRequest is the payload of POST /projects.
type CreateProjectRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date"`
	ProjectCode  *string `json:"project_code"`
	DepartmentID *int64  `json:"department_id"`
}

// UpdateProjectRequest is the payload of PUT /projects/{id}.
type UpdateProjectRequest struct {
	Title        Nullable[string] `json:"title"`
	Description  Nullable[string] `json:"description"`
	StartDate    Nullable[string] `json:"start_date"`
	EndDate      Nullable[string] `json:"end_date"`
	ProjectCode  Nullable[string] `json:"project_code"`
	DepartmentID Nullable[int64]  `json:"department_id"`
}

// AssignRequest is the payload of POST /projects/{id}/assign.
type AssignRequest struct {
	EmployeeID *EmployeeIDs `json:"employee_id"`
}

// UnassignRequest is the payload of POST /projects/{id}/unassign.
type UnassignRequest struct {
	EmployeeID *int64 `json:"employee_id"`
}

// EmployeeIDs accepts either a single id or a list of ids on the wire.
type EmployeeIDs struct {
	IDs  []int64
	List bool
}

// One returns an EmployeeIDs holding a single id.
func One(id int64) *EmployeeIDs {
	return &EmployeeIDs{IDs: []int64{id}}
}

// Many returns an EmployeeIDs in list form.
func Many(ids ...int64) *EmployeeIDs {
	return &EmployeeIDs{IDs: ids, List: true}
}

func (e *EmployeeIDs) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var ids []int64
		if err := json.Unmarshal(b, &ids); err != nil {
			return err
		}
		e.IDs = ids
		e.List = true
		return nil
	}
	var id int64
	if err := json.Unmarshal(b, &id); err != nil {
		return errors.New("employee_id must be an integer or a list of integers")
	}
	e.IDs = []int64{id}
	e.List = false
	return nil
}

func (e EmployeeIDs) MarshalJSON() ([]byte, error) {
	if e.List || len(e.IDs) != 1 {
		return json.Marshal(e.IDs)
	}
	return json.Marshal(e.IDs[0])
}

// AssignResult reports what an assign call did for each requested id.
// Employees holds the valid employees in request order.
type AssignResult struct {
	Project         Project    `json:"-"`
	Employees       []Employee `json:"-"`
	List            bool       `json:"-"`
	Assigned        []int64    `json:"assigned"`
	AlreadyAssigned []int64    `json:"already_assigned"`
	Invalid         []int64    `json:"invalid"`
}

// UnassignResult names the pair an unassign call removed.
type UnassignResult struct {
	Project  Project
	Employee Employee
}

// EmployeeDetail is an employee with its assigned projects.
type EmployeeDetail struct {
	Employee
	Projects []Project `json:"projects"`
}

// ProjectDetail is a project with its assigned employees.
type ProjectDetail struct {
	Project
	Employees []Employee `json:"employees"`
}

// DepartmentDetail is a department with the employees and projects it owns.
type DepartmentDetail struct {
	Department
	Employees []Employee `json:"employees"`
	Projects  []Project  `json:"projects"`
}
