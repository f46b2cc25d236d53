package memory

import (
	"context"

	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/domain"
)

func uniqueViolation(field, constraint string) error {
	return &domain.UniqueViolationError{Field: field, Constraint: constraint}
}

func checkDepartmentRef(st *state, id *int64) error {
	if id == nil {
		return nil
	}
	if _, ok := st.departments[*id]; !ok {
		return domain.ErrForeignKeyNotFound
	}
	return nil
}

type departmentRepo struct{ a accessor }

func (r *departmentRepo) Create(ctx context.Context, d *domain.Department) error {
	return r.a.do(func(st *state) error {
		for _, other := range st.departments {
			if other.DeptCode == d.DeptCode {
				return uniqueViolation("dept_code", "departments_dept_code_key")
			}
		}
		st.lastDepartmentID++
		d.ID = st.lastDepartmentID
		st.departments[d.ID] = cloneDepartment(*d)
		return nil
	})
}

func (r *departmentRepo) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	var out domain.Department
	err := r.a.view(func(st *state) error {
		d, ok := st.departments[id]
		if !ok {
			return domain.ErrNotFound
		}
		out = cloneDepartment(d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *departmentRepo) List(ctx context.Context) ([]domain.Department, error) {
	var out []domain.Department
	err := r.a.view(func(st *state) error {
		out = make([]domain.Department, 0, len(st.departments))
		for _, id := range sortedKeys(st.departments) {
			out = append(out, cloneDepartment(st.departments[id]))
		}
		return nil
	})
	return out, err
}

func (r *departmentRepo) Update(ctx context.Context, d *domain.Department) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.departments[d.ID]; !ok {
			return domain.ErrNotFound
		}
		for id, other := range st.departments {
			if id != d.ID && other.DeptCode == d.DeptCode {
				return uniqueViolation("dept_code", "departments_dept_code_key")
			}
		}
		st.departments[d.ID] = cloneDepartment(*d)
		return nil
	})
}

func (r *departmentRepo) Delete(ctx context.Context, id int64) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.departments[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.departments, id)
		for k, e := range st.employees {
			if e.DepartmentID != nil && *e.DepartmentID == id {
				e.DepartmentID = nil
				st.employees[k] = e
			}
		}
		for k, p := range st.projects {
			if p.DepartmentID != nil && *p.DepartmentID == id {
				p.DepartmentID = nil
				st.projects[k] = p
			}
		}
		return nil
	})
}

func (r *departmentRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.a.view(func(st *state) error {
		for _, d := range st.departments {
			if d.DeptCode == code {
				exists = true
				break
			}
		}
		return nil
	})
	return exists, err
}

type employeeRepo struct{ a accessor }

func checkEmail(st *state, self int64, email string) error {
	for id, other := range st.employees {
		if id != self && other.Email == email {
			return uniqueViolation("email", "employees_email_key")
		}
	}
	return nil
}

func (r *employeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	return r.a.do(func(st *state) error {
		if err := checkEmail(st, 0, e.Email); err != nil {
			return err
		}
		if err := checkDepartmentRef(st, e.DepartmentID); err != nil {
			return err
		}
		st.lastEmployeeID++
		e.ID = st.lastEmployeeID
		st.employees[e.ID] = cloneEmployee(*e)
		return nil
	})
}

func (r *employeeRepo) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var out domain.Employee
	err := r.a.view(func(st *state) error {
		e, ok := st.employees[id]
		if !ok {
			return domain.ErrNotFound
		}
		out = cloneEmployee(e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *employeeRepo) List(ctx context.Context) ([]domain.Employee, error) {
	return r.list(func(domain.Employee) bool { return true })
}

func (r *employeeRepo) ListByDepartment(ctx context.Context, departmentID int64) ([]domain.Employee, error) {
	return r.list(func(e domain.Employee) bool {
		return e.DepartmentID != nil && *e.DepartmentID == departmentID
	})
}

func (r *employeeRepo) list(keep func(domain.Employee) bool) ([]domain.Employee, error) {
	var out []domain.Employee
	err := r.a.view(func(st *state) error {
		out = make([]domain.Employee, 0, len(st.employees))
		for _, id := range sortedKeys(st.employees) {
			if e := st.employees[id]; keep(e) {
				out = append(out, cloneEmployee(e))
			}
		}
		return nil
	})
	return out, err
}

func (r *employeeRepo) Update(ctx context.Context, e *domain.Employee) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.employees[e.ID]; !ok {
			return domain.ErrNotFound
		}
		if err := checkEmail(st, e.ID, e.Email); err != nil {
			return err
		}
		if err := checkDepartmentRef(st, e.DepartmentID); err != nil {
			return err
		}
		st.employees[e.ID] = cloneEmployee(*e)
		return nil
	})
}

func (r *employeeRepo) Delete(ctx context.Context, id int64) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.employees[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.employees, id)
		for a := range st.assignments {
			if a.EmployeeID == id {
				delete(st.assignments, a)
			}
		}
		return nil
	})
}

type projectRepo struct{ a accessor }

func checkProjectCode(st *state, self int64, code string) error {
	for id, other := range st.projects {
		if id != self && other.ProjectCode == code {
			return uniqueViolation("project_code", "projects_project_code_key")
		}
	}
	return nil
}

func (r *projectRepo) Create(ctx context.Context, p *domain.Project) error {
	return r.a.do(func(st *state) error {
		if err := checkProjectCode(st, 0, p.ProjectCode); err != nil {
			return err
		}
		if err := checkDepartmentRef(st, p.DepartmentID); err != nil {
			return err
		}
		st.lastProjectID++
		p.ID = st.lastProjectID
		st.projects[p.ID] = cloneProject(*p)
		return nil
	})
}

func (r *projectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var out domain.Project
	err := r.a.view(func(st *state) error {
		p, ok := st.projects[id]
		if !ok {
			return domain.ErrNotFound
		}
		out = cloneProject(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *projectRepo) List(ctx context.Context) ([]domain.Project, error) {
	return r.list(func(domain.Project) bool { return true })
}

func (r *projectRepo) ListByDepartment(ctx context.Context, departmentID int64) ([]domain.Project, error) {
	return r.list(func(p domain.Project) bool {
		return p.DepartmentID != nil && *p.DepartmentID == departmentID
	})
}

func (r *projectRepo) list(keep func(domain.Project) bool) ([]domain.Project, error) {
	var out []domain.Project
	err := r.a.view(func(st *state) error {
		out = make([]domain.Project, 0, len(st.projects))
		for _, id := range sortedKeys(st.projects) {
			if p := st.projects[id]; keep(p) {
				out = append(out, cloneProject(p))
			}
		}
		return nil
	})
	return out, err
}

func (r *projectRepo) Update(ctx context.Context, p *domain.Project) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.projects[p.ID]; !ok {
			return domain.ErrNotFound
		}
		if err := checkProjectCode(st, p.ID, p.ProjectCode); err != nil {
			return err
		}
		if err := checkDepartmentRef(st, p.DepartmentID); err != nil {
			return err
		}
		st.projects[p.ID] = cloneProject(*p)
		return nil
	})
}

func (r *projectRepo) Delete(ctx context.Context, id int64) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.projects[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.projects, id)
		for a := range st.assignments {
			if a.ProjectID == id {
				delete(st.assignments, a)
			}
		}
		return nil
	})
}

func (r *projectRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.a.view(func(st *state) error {
		exists = checkProjectCode(st, 0, code) != nil
		return nil
	})
	return exists, err
}

type assignmentRepo struct{ a accessor }

func (r *assignmentRepo) Exists(ctx context.Context, a domain.Assignment) (bool, error) {
	var ok bool
	err := r.a.view(func(st *state) error {
		_, ok = st.assignments[a]
		return nil
	})
	return ok, err
}

func (r *assignmentRepo) Insert(ctx context.Context, a domain.Assignment) (bool, error) {
	var inserted bool
	err := r.a.do(func(st *state) error {
		if _, ok := st.employees[a.EmployeeID]; !ok {
			return domain.ErrForeignKeyNotFound
		}
		if _, ok := st.projects[a.ProjectID]; !ok {
			return domain.ErrForeignKeyNotFound
		}
		if _, ok := st.assignments[a]; ok {
			return nil
		}
		st.assignments[a] = struct{}{}
		inserted = true
		return nil
	})
	return inserted, err
}

func (r *assignmentRepo) Remove(ctx context.Context, a domain.Assignment) (bool, error) {
	var removed bool
	err := r.a.do(func(st *state) error {
		if _, ok := st.assignments[a]; ok {
			delete(st.assignments, a)
			removed = true
		}
		return nil
	})
	return removed, err
}

func (r *assignmentRepo) ListProjectsByEmployee(ctx context.Context, employeeID int64) ([]domain.Project, error) {
	var out []domain.Project
	err := r.a.view(func(st *state) error {
		out = make([]domain.Project, 0)
		for _, id := range sortedKeys(st.projects) {
			if _, ok := st.assignments[domain.Assignment{EmployeeID: employeeID, ProjectID: id}]; ok {
				out = append(out, cloneProject(st.projects[id]))
			}
		}
		return nil
	})
	return out, err
}

func (r *assignmentRepo) ListEmployeesByProject(ctx context.Context, projectID int64) ([]domain.Employee, error) {
	var out []domain.Employee
	err := r.a.view(func(st *state) error {
		out = make([]domain.Employee, 0)
		for _, id := range sortedKeys(st.employees) {
			if _, ok := st.assignments[domain.Assignment{EmployeeID: id, ProjectID: projectID}]; ok {
				out = append(out, cloneEmployee(st.employees[id]))
			}
		}
		return nil
	})
	return out, err
}
