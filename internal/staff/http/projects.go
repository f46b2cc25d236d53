package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/domain"
)

const msgProjectNotFound = "Project not found"

func (h *Handler) createProject(c *gin.Context) {
	req, ok := bindBody[domain.CreateProjectRequest](c)
	if !ok {
		return
	}
	p, err := h.svc.CreateProject(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":      "Project created successfully",
		"id":           p.ID,
		"project_code": p.ProjectCode,
		"project":      p,
	})
}

func (h *Handler) listProjects(c *gin.Context) {
	items, err := h.svc.ListProjects(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) getProject(c *gin.Context) {
	id, ok := pathID(c, msgProjectNotFound)
	if !ok {
		return
	}
	p, err := h.svc.GetProject(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) updateProject(c *gin.Context) {
	id, ok := pathID(c, msgProjectNotFound)
	if !ok {
		return
	}
	req, ok := bindBody[domain.UpdateProjectRequest](c)
	if !ok {
		return
	}
	p, changed, err := h.svc.UpdateProject(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	if !changed {
		c.JSON(http.StatusOK, gin.H{"message": msgNothingToDo})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project updated successfully", "project": p})
}

func (h *Handler) deleteProject(c *gin.Context) {
	id, ok := pathID(c, msgProjectNotFound)
	if !ok {
		return
	}
	if err := h.svc.DeleteProject(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

func (h *Handler) listProjectEmployees(c *gin.Context) {
	id, ok := pathID(c, msgProjectNotFound)
	if !ok {
		return
	}
	items, err := h.svc.ListProjectEmployees(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) assign(c *gin.Context) {
	id, ok := pathID(c, msgProjectNotFound)
	if !ok {
		return
	}
	req, ok := bindBody[domain.AssignRequest](c)
	if !ok {
		return
	}
	res, err := h.svc.Assign(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":          assignMessage(res),
		"assigned":         res.Assigned,
		"already_assigned": res.AlreadyAssigned,
		"invalid":          res.Invalid,
	})
}

func (h *Handler) unassign(c *gin.Context) {
	id, ok := pathID(c, msgProjectNotFound)
	if !ok {
		return
	}
	req, ok := bindBody[domain.UnassignRequest](c)
	if !ok {
		return
	}
	res, err := h.svc.Unassign(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Employee %s unassigned from %s", res.Employee.Email, res.Project.Title),
	})
}

func assignMessage(res *domain.AssignResult) string {
	if !res.List && len(res.Employees) == 1 {
		if len(res.Assigned) == 0 {
			return "Employee already assigned"
		}
		return fmt.Sprintf("Employee %s assigned to %s", res.Employees[0].Email, res.Project.Title)
	}
	return fmt.Sprintf("%d employee(s) assigned to %s", len(res.Assigned), res.Project.Title)
}
