package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/go-staff-backend/internal/events"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/domain"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/repository"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/repository/memory"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/validate"
)

var fixedNow = time.Date(2025, time.June, 10, 14, 0, 0, 0, time.UTC)

type recorder struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Resource+"."+e.Type)
	}
	return out
}

func newTestService(t *testing.T) (*Service, *memory.Store, *recorder) {
	t.Helper()
	store := memory.NewStore()
	rec := &recorder{}
	svc := New(store,
		WithClock(func() time.Time { return fixedNow }),
		WithPublisher(rec),
	)
	return svc, store, rec
}

func ptr[T any](v T) *T { return &v }

func assertKind(t *testing.T, err error, kind error, msg string) {
	t.Helper()
	require.Error(t, err)
	var de *domain.Error
	require.True(t, errors.As(err, &de), "want *domain.Error, got %T: %v", err, err)
	assert.ErrorIs(t, err, kind)
	if msg != "" {
		assert.Equal(t, msg, de.Message)
	}
}

func createEmployee(t *testing.T, svc *Service, name, email string) *domain.Employee {
	t.Helper()
	e, err := svc.CreateEmployee(context.Background(), &domain.CreateEmployeeRequest{
		Name: name, Email: email, JoinDate: "2024-01-15",
	})
	require.NoError(t, err)
	return e
}

func createProject(t *testing.T, svc *Service, title string) *domain.Project {
	t.Helper()
	p, err := svc.CreateProject(context.Background(), &domain.CreateProjectRequest{
		Title: title, Description: "desc", StartDate: "2024-02-01",
	})
	require.NoError(t, err)
	return p
}

func TestCreateDepartment(t *testing.T) {
	svc, _, rec := newTestService(t)
	ctx := context.Background()

	t.Run("generates a code", func(t *testing.T) {
		d, err := svc.CreateDepartment(ctx, &domain.CreateDepartmentRequest{Name: "Engineering", Location: ptr("Berlin")})
		require.NoError(t, err)
		assert.True(t, validate.IsValidDeptCode(d.DeptCode), d.DeptCode)

		got, err := svc.GetDepartment(ctx, d.ID)
		require.NoError(t, err)
		assert.True(t, got.Department.Equal(*d))
		assert.Empty(t, got.Employees)
		assert.Empty(t, got.Projects)
	})

	t.Run("uses a supplied code", func(t *testing.T) {
		d, err := svc.CreateDepartment(ctx, &domain.CreateDepartmentRequest{Name: "Ops", DeptCode: ptr(" AB12 ")})
		require.NoError(t, err)
		assert.Equal(t, "AB12", d.DeptCode)
	})

	t.Run("duplicate supplied code", func(t *testing.T) {
		_, err := svc.CreateDepartment(ctx, &domain.CreateDepartmentRequest{Name: "Ops two", DeptCode: ptr("AB12")})
		assertKind(t, err, domain.ErrUniqueViolation, "dept_code must be unique")
	})

	t.Run("validation", func(t *testing.T) {
		_, err := svc.CreateDepartment(ctx, nil)
		assertKind(t, err, domain.ErrMissingBody, "Request body must be JSON")

		_, err = svc.CreateDepartment(ctx, &domain.CreateDepartmentRequest{Name: "  "})
		assertKind(t, err, domain.ErrMissingField, "Department name is required")

		_, err = svc.CreateDepartment(ctx, &domain.CreateDepartmentRequest{Name: "Ops", DeptCode: ptr("AB1")})
		assertKind(t, err, domain.ErrInvalidFormat, "Invalid dept_code. Must be exactly 4 alphanumeric characters")
	})

	assert.Equal(t, []string{"department.created", "department.created"}, rec.types())
}

func TestCreateEmployee_ValidationOrder(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateEmployee(ctx, nil)
	assertKind(t, err, domain.ErrMissingBody, "Request body must be JSON")

	_, err = svc.CreateEmployee(ctx, &domain.CreateEmployeeRequest{Name: "R2D2", Email: "bad", JoinDate: "nope"})
	assertKind(t, err, domain.ErrInvalidFormat, "Invalid name. Name should contain only Alphabets")

	_, err = svc.CreateEmployee(ctx, &domain.CreateEmployeeRequest{Name: "Ada", Email: "ada@x.org", JoinDate: "nope"})
	assertKind(t, err, domain.ErrInvalidFormat, "Invalid email format. Email must endswith .com")

	_, err = svc.CreateEmployee(ctx, &domain.CreateEmployeeRequest{Name: "Ada", Email: "ada@x.com"})
	assertKind(t, err, domain.ErrMissingField, "join_date is required")

	_, err = svc.CreateEmployee(ctx, &domain.CreateEmployeeRequest{Name: "Ada", Email: "ada@x.com", JoinDate: "15/01/2024"})
	assertKind(t, err, domain.ErrInvalidFormat, "Invalid join_date format. Use yyyy-mm-dd")

	_, err = svc.CreateEmployee(ctx, &domain.CreateEmployeeRequest{Name: "Ada", Email: "ada@x.com", JoinDate: "2024-01-15", DepartmentID: ptr(int64(99))})
	assertKind(t, err, domain.ErrForeignKeyNotFound, "Department not found")
}

func TestCreateEmployee_JoinDateBoundary(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	e, err := svc.CreateEmployee(ctx, &domain.CreateEmployeeRequest{Name: "Ada", Email: "ada@x.com", JoinDate: "2025-06-10"})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", e.JoinDate.String())

	_, err = svc.CreateEmployee(ctx, &domain.CreateEmployeeRequest{Name: "Bob", Email: "bob@x.com", JoinDate: "2025-06-11"})
	assertKind(t, err, domain.ErrInvalidFormat, "join_date cannot be in the future")
}

func TestCreateEmployee_RoundTrip(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	d, err := svc.CreateDepartment(ctx, &domain.CreateDepartmentRequest{Name: "Ops"})
	require.NoError(t, err)

	e, err := svc.CreateEmployee(ctx, &domain.CreateEmployeeRequest{
		Name: "Ada Lovelace", Email: "ada@x.com", Salary: ptr(5000.0), JoinDate: "24-01-15", DepartmentID: &d.ID,
	})
	require.NoError(t, err)

	got, err := svc.GetEmployee(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, "ada@x.com", got.Email)
	assert.Equal(t, 5000.0, *got.Salary)
	assert.Equal(t, "2024-01-15", got.JoinDate.String())
	assert.Equal(t, d.ID, *got.DepartmentID)
	assert.Empty(t, got.Projects)

	byDept, err := svc.ListDepartmentEmployees(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, byDept, 1)
	assert.Equal(t, e.ID, byDept[0].ID)
}

func TestCreateEmployee_EmailUniqueness(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	createEmployee(t, svc, "Ada", "ada@x.com")
	_, err := svc.CreateEmployee(ctx, &domain.CreateEmployeeRequest{Name: "Bob", Email: "ada@x.com", JoinDate: "2024-01-15"})
	assertKind(t, err, domain.ErrUniqueViolation, "Email already exists")

	all, err := store.Employees().List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpdateEmployee(t *testing.T) {
	svc, store, rec := newTestService(t)
	ctx := context.Background()
	e := createEmployee(t, svc, "Ada", "ada@x.com")
	createEmployee(t, svc, "Bob", "bob@x.com")

	t.Run("identical values are a no-op", func(t *testing.T) {
		before, err := store.Employees().GetByID(ctx, e.ID)
		require.NoError(t, err)
		published := len(rec.types())

		got, changed, err := svc.UpdateEmployee(ctx, e.ID, &domain.UpdateEmployeeRequest{
			Name:     domain.Some("Ada"),
			Email:    domain.Some("ada@x.com"),
			JoinDate: domain.Some("2024-01-15"),
		})
		require.NoError(t, err)
		assert.False(t, changed)
		assert.True(t, got.Equal(*before))

		after, err := store.Employees().GetByID(ctx, e.ID)
		require.NoError(t, err)
		assert.True(t, after.Equal(*before))
		assert.Len(t, rec.types(), published, "no event for a no-op")
	})

	t.Run("partial update keeps absent fields", func(t *testing.T) {
		got, changed, err := svc.UpdateEmployee(ctx, e.ID, &domain.UpdateEmployeeRequest{Salary: domain.Some(7000.0)})
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "Ada", got.Name)
		assert.Equal(t, 7000.0, *got.Salary)

		got, changed, err = svc.UpdateEmployee(ctx, e.ID, &domain.UpdateEmployeeRequest{Salary: domain.Null[float64]()})
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Nil(t, got.Salary)
	})

	t.Run("present fields are validated", func(t *testing.T) {
		_, _, err := svc.UpdateEmployee(ctx, e.ID, &domain.UpdateEmployeeRequest{Name: domain.Some("Ada 2")})
		assertKind(t, err, domain.ErrInvalidFormat, "Invalid name. Name should contain only Alphabets")

		_, _, err = svc.UpdateEmployee(ctx, e.ID, &domain.UpdateEmployeeRequest{Email: domain.Null[string]()})
		assertKind(t, err, domain.ErrInvalidFormat, "Invalid email format. Email must endswith .com")

		_, _, err = svc.UpdateEmployee(ctx, e.ID, &domain.UpdateEmployeeRequest{JoinDate: domain.Some("2030-01-01")})
		assertKind(t, err, domain.ErrInvalidFormat, "join_date cannot be in the future")

		_, _, err = svc.UpdateEmployee(ctx, e.ID, &domain.UpdateEmployeeRequest{DepartmentID: domain.Some(int64(404))})
		assertKind(t, err, domain.ErrForeignKeyNotFound, "Department not found")
	})

	t.Run("email collision", func(t *testing.T) {
		_, _, err := svc.UpdateEmployee(ctx, e.ID, &domain.UpdateEmployeeRequest{Email: domain.Some("bob@x.com")})
		assertKind(t, err, domain.ErrUniqueViolation, "Email already exists")
	})

	t.Run("missing employee and missing body", func(t *testing.T) {
		_, _, err := svc.UpdateEmployee(ctx, 999, &domain.UpdateEmployeeRequest{})
		assertKind(t, err, domain.ErrNotFound, "Employee not found")

		_, _, err = svc.UpdateEmployee(ctx, e.ID, nil)
		assertKind(t, err, domain.ErrMissingBody, "No data provided")
	})
}

func TestUpdateDepartment(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	d, err := svc.CreateDepartment(ctx, &domain.CreateDepartmentRequest{Name: "Ops", Location: ptr("Berlin"), DeptCode: ptr("OPS1")})
	require.NoError(t, err)
	_, err = svc.CreateDepartment(ctx, &domain.CreateDepartmentRequest{Name: "Dev", DeptCode: ptr("DEV1")})
	require.NoError(t, err)

	_, changed, err := svc.UpdateDepartment(ctx, d.ID, &domain.UpdateDepartmentRequest{Name: domain.Some("Ops"), Location: domain.Some("Berlin")})
	require.NoError(t, err)
	assert.False(t, changed)

	got, changed, err := svc.UpdateDepartment(ctx, d.ID, &domain.UpdateDepartmentRequest{Location: domain.Null[string]()})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Nil(t, got.Location)

	_, _, err = svc.UpdateDepartment(ctx, d.ID, &domain.UpdateDepartmentRequest{DeptCode: domain.Some("DEV1")})
	assertKind(t, err, domain.ErrUniqueViolation, "dept_code must be unique")

	_, _, err = svc.UpdateDepartment(ctx, d.ID, &domain.UpdateDepartmentRequest{Name: domain.Null[string]()})
	assertKind(t, err, domain.ErrMissingField, "Department name is required")
}

func TestDeleteDepartment_ClearsReferences(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	d, err := svc.CreateDepartment(ctx, &domain.CreateDepartmentRequest{Name: "Ops"})
	require.NoError(t, err)
	e, err := svc.CreateEmployee(ctx, &domain.CreateEmployeeRequest{Name: "Ada", Email: "ada@x.com", JoinDate: "2024-01-15", DepartmentID: &d.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDepartment(ctx, d.ID))

	got, err := svc.GetEmployee(ctx, e.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DepartmentID)

	assertKind(t, svc.DeleteDepartment(ctx, d.ID), domain.ErrNotFound, "Department not found")
	_, err = svc.ListDepartmentProjects(ctx, d.ID)
	assertKind(t, err, domain.ErrNotFound, "Department not found")
}

func TestCreateProject(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, &domain.CreateProjectRequest{
		Title: "Apollo", Description: "Moon", StartDate: "2024-02-01", EndDate: ptr("2024-12-31"),
	})
	require.NoError(t, err)
	assert.True(t, validate.IsValidProjectCode(p.ProjectCode), p.ProjectCode)
	require.NotNil(t, p.EndDate)
	assert.Equal(t, "2024-12-31", p.EndDate.String())

	p2, err := svc.CreateProject(ctx, &domain.CreateProjectRequest{
		Title: "Gemini", Description: "Orbit", StartDate: "2024-02-01", EndDate: ptr(""), ProjectCode: ptr("GEM01"),
	})
	require.NoError(t, err)
	assert.Nil(t, p2.EndDate)
	assert.Equal(t, "GEM01", p2.ProjectCode)

	_, err = svc.CreateProject(ctx, &domain.CreateProjectRequest{Title: "X", Description: "Y", StartDate: "2024-02-01", ProjectCode: ptr("GEM01")})
	assertKind(t, err, domain.ErrUniqueViolation, "project_code must be unique")

	_, err = svc.CreateProject(ctx, &domain.CreateProjectRequest{Title: "Apollo"})
	assertKind(t, err, domain.ErrMissingField, "Title and description are required")

	_, err = svc.CreateProject(ctx, &domain.CreateProjectRequest{Title: "A", Description: "B"})
	assertKind(t, err, domain.ErrMissingField, "start_date is required")

	_, err = svc.CreateProject(ctx, &domain.CreateProjectRequest{Title: "A", Description: "B", StartDate: "2024-01-01", EndDate: ptr("soon")})
	assertKind(t, err, domain.ErrInvalidFormat, "Invalid end_date format. Use yyyy-mm-dd")

	_, err = svc.CreateProject(ctx, &domain.CreateProjectRequest{Title: "A", Description: "B", StartDate: "2024-01-01", ProjectCode: ptr("AB")})
	assertKind(t, err, domain.ErrInvalidFormat, "Invalid project_code. Must be exactly 5 alphanumeric characters")

	_, err = svc.CreateProject(ctx, &domain.CreateProjectRequest{Title: "A", Description: "B", StartDate: "2024-01-01", DepartmentID: ptr(int64(8))})
	assertKind(t, err, domain.ErrForeignKeyNotFound, "Department not found")
}

func TestUpdateProject(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	p := createProject(t, svc, "Apollo")

	_, changed, err := svc.UpdateProject(ctx, p.ID, &domain.UpdateProjectRequest{Title: domain.Some("Apollo"), StartDate: domain.Some("2024-02-01")})
	require.NoError(t, err)
	assert.False(t, changed)

	got, changed, err := svc.UpdateProject(ctx, p.ID, &domain.UpdateProjectRequest{EndDate: domain.Some("2025-01-01")})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "2025-01-01", got.EndDate.String())

	got, changed, err = svc.UpdateProject(ctx, p.ID, &domain.UpdateProjectRequest{EndDate: domain.Null[string]()})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Nil(t, got.EndDate)

	_, _, err = svc.UpdateProject(ctx, p.ID, &domain.UpdateProjectRequest{StartDate: domain.Null[string]()})
	assertKind(t, err, domain.ErrMissingField, "start_date is required")

	_, _, err = svc.UpdateProject(ctx, p.ID, &domain.UpdateProjectRequest{Description: domain.Some(" ")})
	assertKind(t, err, domain.ErrMissingField, "Title and description are required")

	_, _, err = svc.UpdateProject(ctx, 404, &domain.UpdateProjectRequest{})
	assertKind(t, err, domain.ErrNotFound, "Project not found")
}

func TestAssign_Idempotent(t *testing.T) {
	svc, store, rec := newTestService(t)
	ctx := context.Background()
	e := createEmployee(t, svc, "Ada", "ada@x.com")
	p := createProject(t, svc, "Apollo")

	res, err := svc.Assign(ctx, p.ID, &domain.AssignRequest{EmployeeID: domain.One(e.ID)})
	require.NoError(t, err)
	assert.Equal(t, []int64{e.ID}, res.Assigned)
	assert.Empty(t, res.AlreadyAssigned)
	assert.Equal(t, "Apollo", res.Project.Title)
	require.Len(t, res.Employees, 1)
	assert.Equal(t, "ada@x.com", res.Employees[0].Email)

	res, err = svc.Assign(ctx, p.ID, &domain.AssignRequest{EmployeeID: domain.One(e.ID)})
	require.NoError(t, err)
	assert.Empty(t, res.Assigned)
	assert.Equal(t, []int64{e.ID}, res.AlreadyAssigned)

	employees, err := store.Assignments().ListEmployeesByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, employees, 1)

	assigned := 0
	for _, typ := range rec.types() {
		if typ == "project.assigned" {
			assigned++
		}
	}
	assert.Equal(t, 1, assigned)
}

func TestAssign_ListMode(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	a := createEmployee(t, svc, "Ada", "ada@x.com")
	b := createEmployee(t, svc, "Bob", "bob@x.com")
	p := createProject(t, svc, "Apollo")

	_, err := svc.Assign(ctx, p.ID, &domain.AssignRequest{EmployeeID: domain.One(a.ID)})
	require.NoError(t, err)

	res, err := svc.Assign(ctx, p.ID, &domain.AssignRequest{EmployeeID: domain.Many(a.ID, b.ID, 77, b.ID)})
	require.NoError(t, err)
	assert.True(t, res.List)
	assert.Equal(t, []int64{b.ID}, res.Assigned)
	assert.Equal(t, []int64{a.ID}, res.AlreadyAssigned)
	assert.Equal(t, []int64{77}, res.Invalid)

	_, err = svc.Assign(ctx, p.ID, &domain.AssignRequest{EmployeeID: domain.Many(77, 78)})
	assertKind(t, err, domain.ErrNotFound, "No valid employees found")

	_, err = svc.Assign(ctx, 404, &domain.AssignRequest{EmployeeID: domain.Many(a.ID)})
	assertKind(t, err, domain.ErrNotFound, "Project not found")
}

func TestAssign_Errors(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	e := createEmployee(t, svc, "Ada", "ada@x.com")
	p := createProject(t, svc, "Apollo")

	_, err := svc.Assign(ctx, p.ID, nil)
	assertKind(t, err, domain.ErrMissingField, "employee_id is required")

	_, err = svc.Assign(ctx, p.ID, &domain.AssignRequest{EmployeeID: domain.Many()})
	assertKind(t, err, domain.ErrMissingField, "employee_id is required")

	_, err = svc.Assign(ctx, p.ID, &domain.AssignRequest{EmployeeID: domain.One(404)})
	assertKind(t, err, domain.ErrNotFound, "Invalid employee or project")

	_, err = svc.Assign(ctx, 404, &domain.AssignRequest{EmployeeID: domain.One(e.ID)})
	assertKind(t, err, domain.ErrNotFound, "Invalid employee or project")
}

func TestUnassign_ThenReassign(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	e := createEmployee(t, svc, "Ada", "ada@x.com")
	p := createProject(t, svc, "Apollo")

	_, err := svc.Unassign(ctx, p.ID, &domain.UnassignRequest{EmployeeID: &e.ID})
	assertKind(t, err, domain.ErrNotAssigned, "Employee not assigned")

	res, err := svc.Assign(ctx, p.ID, &domain.AssignRequest{EmployeeID: domain.One(e.ID)})
	require.NoError(t, err)
	assert.Equal(t, []int64{e.ID}, res.Assigned)

	un, err := svc.Unassign(ctx, p.ID, &domain.UnassignRequest{EmployeeID: &e.ID})
	require.NoError(t, err)
	assert.Equal(t, "ada@x.com", un.Employee.Email)
	assert.Equal(t, "Apollo", un.Project.Title)

	projects, err := svc.ListEmployeeProjects(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, projects)

	res, err = svc.Assign(ctx, p.ID, &domain.AssignRequest{EmployeeID: domain.One(e.ID)})
	require.NoError(t, err)
	assert.Equal(t, []int64{e.ID}, res.Assigned)

	_, err = svc.Unassign(ctx, p.ID, &domain.UnassignRequest{})
	assertKind(t, err, domain.ErrMissingField, "employee_id is required")

	_, err = svc.Unassign(ctx, p.ID, &domain.UnassignRequest{EmployeeID: ptr(int64(404))})
	assertKind(t, err, domain.ErrNotFound, "Invalid employee or project")
}

func TestDeleteEmployee_Cascades(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	a := createEmployee(t, svc, "Ada", "ada@x.com")
	b := createEmployee(t, svc, "Bob", "bob@x.com")
	p := createProject(t, svc, "Apollo")

	_, err := svc.Assign(ctx, p.ID, &domain.AssignRequest{EmployeeID: domain.Many(a.ID, b.ID)})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEmployee(ctx, a.ID))

	employees, err := svc.ListProjectEmployees(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, b.ID, employees[0].ID)

	detail, err := svc.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Employees, 1)

	_, err = svc.GetEmployee(ctx, a.ID)
	assertKind(t, err, domain.ErrNotFound, "Employee not found")
}

func TestDeleteProject_Cascades(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	e := createEmployee(t, svc, "Ada", "ada@x.com")
	p := createProject(t, svc, "Apollo")
	_, err := svc.Assign(ctx, p.ID, &domain.AssignRequest{EmployeeID: domain.One(e.ID)})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProject(ctx, p.ID))

	detail, err := svc.GetEmployee(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Projects)

	assertKind(t, svc.DeleteProject(ctx, p.ID), domain.ErrNotFound, "Project not found")
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	store := memory.NewStore()
	svc := New(store, WithPublisher(&recorder{err: errors.New("redis down")}))

	d, err := svc.CreateDepartment(context.Background(), &domain.CreateDepartmentRequest{Name: "Ops"})
	require.NoError(t, err)
	assert.NotZero(t, d.ID)
}

// collidingStore fails the first n department creates with a dept_code
// violation, as a concurrent writer claiming the same generated code would.
type collidingStore struct {
	repository.Store
	remaining int
}

func (s *collidingStore) WithTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	if s.remaining > 0 {
		s.remaining--
		return &domain.UniqueViolationError{Field: "dept_code", Constraint: "departments_dept_code_key"}
	}
	return s.Store.WithTx(ctx, fn)
}

func TestCreateDepartment_RetriesGeneratedCode(t *testing.T) {
	store := &collidingStore{Store: memory.NewStore(), remaining: codeRetries - 1}
	svc := New(store)

	d, err := svc.CreateDepartment(context.Background(), &domain.CreateDepartmentRequest{Name: "Ops"})
	require.NoError(t, err)
	assert.NotEmpty(t, d.DeptCode)
	assert.Equal(t, 0, store.remaining)

	store.remaining = codeRetries
	_, err = svc.CreateDepartment(context.Background(), &domain.CreateDepartmentRequest{Name: "Dev"})
	assertKind(t, err, domain.ErrUniqueViolation, "dept_code must be unique")

	store.remaining = 1
	_, err = svc.CreateDepartment(context.Background(), &domain.CreateDepartmentRequest{Name: "QA", DeptCode: ptr("QA01")})
	assertKind(t, err, domain.ErrUniqueViolation, "dept_code must be unique")
	assert.Equal(t, 0, store.remaining, "supplied codes are not retried")
}
