package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/domain"
)

const msgEmployeeNotFound = "Employee not found"

func (h *Handler) createEmployee(c *gin.Context) {
	req, ok := bindBody[domain.CreateEmployeeRequest](c)
	if !ok {
		return
	}
	e, err := h.svc.CreateEmployee(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Employee created successfully",
		"id":       e.ID,
		"employee": e,
	})
}

func (h *Handler) listEmployees(c *gin.Context) {
	items, err := h.svc.ListEmployees(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) getEmployee(c *gin.Context) {
	id, ok := pathID(c, msgEmployeeNotFound)
	if !ok {
		return
	}
	e, err := h.svc.GetEmployee(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *Handler) updateEmployee(c *gin.Context) {
	id, ok := pathID(c, msgEmployeeNotFound)
	if !ok {
		return
	}
	req, ok := bindBody[domain.UpdateEmployeeRequest](c)
	if !ok {
		return
	}
	e, changed, err := h.svc.UpdateEmployee(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	if !changed {
		c.JSON(http.StatusOK, gin.H{"message": msgNothingToDo})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee updated successfully", "employee": e})
}

func (h *Handler) deleteEmployee(c *gin.Context) {
	id, ok := pathID(c, msgEmployeeNotFound)
	if !ok {
		return
	}
	if err := h.svc.DeleteEmployee(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}

func (h *Handler) listEmployeeProjects(c *gin.Context) {
	id, ok := pathID(c, msgEmployeeNotFound)
	if !ok {
		return
	}
	items, err := h.svc.ListEmployeeProjects(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
