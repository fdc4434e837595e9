package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/himarpl/himarpl-api/internal/models"
	"github.com/himarpl/himarpl-api/internal/params"
	"github.com/himarpl/himarpl-api/pkg/response"
)

type userLister interface {
	List(ctx context.Context, q models.UserQuery) (*models.Page[models.User], error)
}

// UserHandler serves the member directory.
type UserHandler struct {
	service userLister
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc userLister) *UserHandler {
	return &UserHandler{service: svc}
}

// List godoc
// @Summary List users
// @Description List organization members with pagination and relation filters
// @Tags Users
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size (1-50)"
// @Param orderBy query string false "name, email or username"
// @Param order query string false "asc or desc"
// @Param periodYears query string false "Comma separated period years"
// @Param departmentIds query string false "Comma separated department ids"
// @Param positionNames query string false "Comma separated position names"
// @Success 200 {object} response.Envelope
// @Failure 429 {object} response.ErrorEnvelope
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	page, err := h.service.List(c.Request.Context(), params.UserQuery(c.Request.URL.Query()))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, page.Data, page.Meta)
}
