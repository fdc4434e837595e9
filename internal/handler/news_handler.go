package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/himarpl/himarpl-api/internal/models"
	"github.com/himarpl/himarpl-api/internal/params"
	"github.com/himarpl/himarpl-api/pkg/response"
)

type newsLister interface {
	List(ctx context.Context, q models.NewsQuery) (*models.Page[models.Post], error)
}

// NewsHandler serves the news feed.
type NewsHandler struct {
	service newsLister
}

// NewNewsHandler creates a news handler.
func NewNewsHandler(svc newsLister) *NewsHandler {
	return &NewsHandler{service: svc}
}

// List godoc
// @Summary List news
// @Description List published posts tagged as news
// @Tags News
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size (1-50)"
// @Param order query string false "asc or desc by publication date"
// @Param search query string false "Title substring"
// @Success 200 {object} response.Envelope
// @Router /news [get]
func (h *NewsHandler) List(c *gin.Context) {
	page, err := h.service.List(c.Request.Context(), params.NewsQuery(c.Request.URL.Query()))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, page.Data, page.Meta)
}
