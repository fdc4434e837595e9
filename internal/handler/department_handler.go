package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/himarpl/himarpl-api/internal/models"
	"github.com/himarpl/himarpl-api/internal/params"
	"github.com/himarpl/himarpl-api/pkg/response"
)

type departmentLister interface {
	List(ctx context.Context, q models.DepartmentQuery) (*models.Page[models.Department], error)
}

// DepartmentHandler serves the department list.
type DepartmentHandler struct {
	service departmentLister
}

// NewDepartmentHandler creates a department handler.
func NewDepartmentHandler(svc departmentLister) *DepartmentHandler {
	return &DepartmentHandler{service: svc}
}

// List godoc
// @Summary List departments
// @Description List departments filtered by type, period year or acronym. At least one filter is required.
// @Tags Departments
// @Produce json
// @Param type query string false "Department type (be or dp)"
// @Param year query int false "Period year"
// @Param acronym query string false "Acronym substring"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (1-50)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 429 {object} response.ErrorEnvelope
// @Router /departments [get]
func (h *DepartmentHandler) List(c *gin.Context) {
	q, err := params.DepartmentQuery(c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, page.Data, page.Meta)
}
