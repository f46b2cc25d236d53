package domain

// Department groups employees and projects under a short unique code.
type Department struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Location *string `json:"location"`
	DeptCode string  `json:"dept_code"`
}

// Employee is a person on the payroll. Email is unique across all employees.
type Employee struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Salary       *float64 `json:"salary"`
	JoinDate     Date     `json:"join_date"`
	DepartmentID *int64   `json:"department_id"`
}

// Project is a unit of work employees can be assigned to.
type Project struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	StartDate    Date   `json:"start_date"`
	EndDate      *Date  `json:"end_date"`
	ProjectCode  string `json:"project_code"`
	DepartmentID *int64 `json:"department_id"`
}

// Assignment is one (employee, project) membership pair.
type Assignment struct {
	EmployeeID int64 `json:"employee_id"`
	ProjectID  int64 `json:"project_id"`
}

// Equal reports whether two departments carry the same field values.
func (d Department) Equal(o Department) bool {
	return d.ID == o.ID &&
		d.Name == o.Name &&
		equalPtr(d.Location, o.Location) &&
		d.DeptCode == o.DeptCode
}

// Equal reports whether two employees carry the same field values.
func (e Employee) Equal(o Employee) bool {
	return e.ID == o.ID &&
		e.Name == o.Name &&
		e.Email == o.Email &&
		equalPtr(e.Salary, o.Salary) &&
		e.JoinDate.Equal(o.JoinDate) &&
		equalPtr(e.DepartmentID, o.DepartmentID)
}

// Equal reports whether two projects carry the same field values.
func (p Project) Equal(o Project) bool {
	return p.ID == o.ID &&
		p.Title == o.Title &&
		p.Description == o.Description &&
		p.StartDate.Equal(o.StartDate) &&
		equalDatePtr(p.EndDate, o.EndDate) &&
		p.ProjectCode == o.ProjectCode &&
		equalPtr(p.DepartmentID, o.DepartmentID)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalDatePtr(a, b *Date) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
