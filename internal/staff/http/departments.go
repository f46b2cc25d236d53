package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/domain"
)

const msgDepartmentNotFound = "Department not found"

func (h *Handler) createDepartment(c *gin.Context) {
	req, ok := bindBody[domain.CreateDepartmentRequest](c)
	if !ok {
		return
	}
	d, err := h.svc.CreateDepartment(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Department created successfully",
		"id":         d.ID,
		"dept_code":  d.DeptCode,
		"department": d,
	})
}

func (h *Handler) listDepartments(c *gin.Context) {
	items, err := h.svc.ListDepartments(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) getDepartment(c *gin.Context) {
	id, ok := pathID(c, msgDepartmentNotFound)
	if !ok {
		return
	}
	d, err := h.svc.GetDepartment(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) updateDepartment(c *gin.Context) {
	id, ok := pathID(c, msgDepartmentNotFound)
	if !ok {
		return
	}
	req, ok := bindBody[domain.UpdateDepartmentRequest](c)
	if !ok {
		return
	}
	d, changed, err := h.svc.UpdateDepartment(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	if !changed {
		c.JSON(http.StatusOK, gin.H{"message": msgNothingToDo})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Department updated successfully", "department": d})
}

func (h *Handler) deleteDepartment(c *gin.Context) {
	id, ok := pathID(c, msgDepartmentNotFound)
	if !ok {
		return
	}
	if err := h.svc.DeleteDepartment(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Department deleted successfully"})
}

func (h *Handler) listDepartmentEmployees(c *gin.Context) {
	id, ok := pathID(c, msgDepartmentNotFound)
	if !ok {
		return
	}
	items, err := h.svc.ListDepartmentEmployees(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) listDepartmentProjects(c *gin.Context) {
	id, ok := pathID(c, msgDepartmentNotFound)
	if !ok {
		return
	}
	items, err := h.svc.ListDepartmentProjects(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
