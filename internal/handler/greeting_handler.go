package handler

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/himarpl/himarpl-api/internal/models"
	"github.com/himarpl/himarpl-api/internal/service"
	appErrors "github.com/himarpl/himarpl-api/pkg/errors"
	"github.com/himarpl/himarpl-api/pkg/response"
)

type greeter interface {
	Greet(ctx context.Context, name string) models.Greeting
	Create(ctx context.Context, req service.CreateGreetingRequest) (models.Greeting, string, error)
	Update(ctx context.Context, id string, req service.UpdateGreetingRequest) (models.Greeting, error)
	Delete(ctx context.Context, id string) error
}

// GreetingHandler serves the greeting resource.
type GreetingHandler struct {
	service  greeter
	basePath string
}

// NewGreetingHandler creates a greeting handler. basePath is the mounted API prefix, used for Location.
func NewGreetingHandler(svc greeter, basePath string) *GreetingHandler {
	return &GreetingHandler{service: svc, basePath: basePath}
}

// Get godoc
// @Summary Get a greeting message
// @Tags Greetings
// @Produce json
// @Param name query string false "Name to personalize the greeting"
// @Security ApiKeyAuth
// @Success 200 {object} models.Greeting
// @Success 304 "Not modified"
// @Failure 401 {object} response.ErrorEnvelope
// @Router /greetings [get]
func (h *GreetingHandler) Get(c *gin.Context) {
	body, err := json.Marshal(h.service.Greet(c.Request.Context(), c.Query("name")))
	if err != nil {
		response.Error(c, err)
		return
	}

	etag := `"` + base64.StdEncoding.EncodeToString(body) + `"`
	c.Header("Cache-Control", "max-age=30")
	c.Header("ETag", etag)
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// Create godoc
// @Summary Create a custom greeting
// @Tags Greetings
// @Accept json
// @Produce json
// @Param payload body service.CreateGreetingRequest true "Greeting payload"
// @Security ApiKeyAuth
// @Success 201 {object} models.Greeting
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 401 {object} response.ErrorEnvelope
// @Router /greetings [post]
func (h *GreetingHandler) Create(c *gin.Context) {
	var req service.CreateGreetingRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	greeting, id, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Location", h.basePath+"/greetings?id="+id)
	c.JSON(http.StatusCreated, greeting)
}

// Update godoc
// @Summary Update an existing greeting
// @Tags Greetings
// @Accept json
// @Produce json
// @Param id query string true "Greeting id"
// @Param payload body service.UpdateGreetingRequest true "Greeting changes"
// @Security ApiKeyAuth
// @Success 200 {object} models.Greeting
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /greetings [put]
func (h *GreetingHandler) Update(c *gin.Context) {
	id := c.Query("id")
	var req service.UpdateGreetingRequest
	if id != "" {
		if err := bindJSON(c, &req); err != nil {
			response.Error(c, err)
			return
		}
	}

	greeting, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, greeting)
}

// Delete godoc
// @Summary Delete a greeting
// @Tags Greetings
// @Param id query string true "Greeting id"
// @Security ApiKeyAuth
// @Success 204 "Deleted"
// @Failure 404 {object} response.ErrorEnvelope
// @Router /greetings [delete]
func (h *GreetingHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Query("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func bindJSON(c *gin.Context, dest interface{}) error {
	if err := json.NewDecoder(c.Request.Body).Decode(dest); err != nil {
		return appErrors.Wrap(err, appErrors.CodeInvalidParameters, "Invalid JSON body")
	}
	return nil
}
