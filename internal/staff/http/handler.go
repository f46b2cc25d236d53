package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/go-staff-backend/internal/logging"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/domain"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/service"
)

const (
	msgBodyNotJSON  = "Request body must be JSON"
	msgInvalidBody  = "invalid request body"
	msgInternal     = "internal server error"
	msgNothingToDo  = "Same information, nothing to update"
	msgServiceAlive = "Staff directory API is running"
)

// Handler bundles the dependencies for the staff HTTP endpoints.
type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register attaches every staff route to r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.index)

	departments := r.Group("/departments")
	departments.POST("", h.createDepartment)
	departments.GET("", h.listDepartments)
	departments.GET("/:id", h.getDepartment)
	departments.PUT("/:id", h.updateDepartment)
	departments.DELETE("/:id", h.deleteDepartment)
	departments.GET("/:id/employees", h.listDepartmentEmployees)
	departments.GET("/:id/projects", h.listDepartmentProjects)

	employees := r.Group("/employees")
	employees.POST("", h.createEmployee)
	employees.GET("", h.listEmployees)
	employees.GET("/:id", h.getEmployee)
	employees.PUT("/:id", h.updateEmployee)
	employees.DELETE("/:id", h.deleteEmployee)
	employees.GET("/:id/projects", h.listEmployeeProjects)

	projects := r.Group("/projects")
	projects.POST("", h.createProject)
	projects.GET("", h.listProjects)
	projects.GET("/:id", h.getProject)
	projects.PUT("/:id", h.updateProject)
	projects.DELETE("/:id", h.deleteProject)
	projects.POST("/:id/assign", h.assign)
	projects.POST("/:id/unassign", h.unassign)
	projects.GET("/:id/employees", h.listProjectEmployees)
}

func (h *Handler) index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": msgServiceAlive})
}

// pathID parses the :id parameter. A non-numeric id cannot name a record, so
// it answers 404 with notFound the same way a missing row does.
func pathID(c *gin.Context, notFound string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
		return 0, false
	}
	return id, true
}

// bindBody decodes the JSON body into a new T. An empty body, a JSON null and
// an empty object all yield a nil request so the service can report the
// missing payload. ok is false when a response has already been written.
func bindBody[T any](c *gin.Context) (req *T, ok bool) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgBodyNotJSON})
		return nil, false
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, true
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgBodyNotJSON})
		return nil, false
	}
	if len(fields) == 0 {
		return nil, true
	}

	req = new(T)
	if err := binding.JSON.BindBody(raw, req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return nil, false
	}
	return req, true
}

// writeError maps a service error to a status code and a {"error": msg} body.
// Anything that is not a *domain.Error is logged and hidden behind a generic
// message.
func writeError(c *gin.Context, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		logging.FromContext(c.Request.Context()).Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
		return
	}
	c.JSON(statusFor(de.Kind), gin.H{"error": de.Message})
}

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, domain.ErrNotFound), errors.Is(kind, domain.ErrForeignKeyNotFound):
		return http.StatusNotFound
	case errors.Is(kind, domain.ErrMissingBody),
		errors.Is(kind, domain.ErrMissingField),
		errors.Is(kind, domain.ErrInvalidFormat),
		errors.Is(kind, domain.ErrUniqueViolation),
		errors.Is(kind, domain.ErrNotAssigned):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
