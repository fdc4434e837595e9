package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himarpl/himarpl-api/internal/models"
	"github.com/himarpl/himarpl-api/internal/service"
	appErrors "github.com/himarpl/himarpl-api/pkg/errors"
)

type fakeGreeter struct {
	greeting   models.Greeting
	err        error
	lastName   string
	lastCreate service.CreateGreetingRequest
	lastID     string
}

func (f *fakeGreeter) Greet(_ context.Context, name string) models.Greeting {
	f.lastName = name
	return f.greeting
}

func (f *fakeGreeter) Create(_ context.Context, req service.CreateGreetingRequest) (models.Greeting, string, error) {
	f.lastCreate = req
	return f.greeting, "5b0c9a1e-0000-4000-8000-000000000001", f.err
}

func (f *fakeGreeter) Update(_ context.Context, id string, _ service.UpdateGreetingRequest) (models.Greeting, error) {
	f.lastID = id
	return f.greeting, f.err
}

func (f *fakeGreeter) Delete(_ context.Context, id string) error {
	f.lastID = id
	return f.err
}

func newGreetingEngine(g greeter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewGreetingHandler(g, "/api/v1")
	r := gin.New()
	r.GET("/greetings", h.Get)
	r.POST("/greetings", h.Create)
	r.PUT("/greetings", h.Update)
	r.DELETE("/greetings", h.Delete)
	return r
}

var fixedGreeting = models.Greeting{
	Message:   "Hello John, welcome to HIMARPL API!",
	Timestamp: "2024-01-01T00:00:00.000Z",
	Metadata:  map[string]interface{}{"language": "en", "version": "1.0"},
}

func TestGreetingHandlerGetSetsCachingHeaders(t *testing.T) {
	g := &fakeGreeter{greeting: fixedGreeting}
	r := newGreetingEngine(g)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/greetings?name=John", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "John", g.lastName)
	assert.Equal(t, "max-age=30", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), `"message":"Hello John, welcome to HIMARPL API!"`)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.True(t, strings.HasPrefix(etag, `"`) && strings.HasSuffix(etag, `"`))

	req := httptest.NewRequest(http.MethodGet, "/greetings?name=John", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestGreetingHandlerCreate(t *testing.T) {
	g := &fakeGreeter{greeting: fixedGreeting}
	r := newGreetingEngine(g)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/greetings", strings.NewReader(`{"name":"John","language":"en","metadata":{"timezone":"UTC"}}`)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/v1/greetings?id=5b0c9a1e-0000-4000-8000-000000000001", rec.Header().Get("Location"))
	assert.Equal(t, "UTC", g.lastCreate.Metadata["timezone"])
}

func TestGreetingHandlerCreateMalformedJSON(t *testing.T) {
	r := newGreetingEngine(&fakeGreeter{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/greetings", strings.NewReader(`{"name":`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"INVALID_PARAMETERS"`)
}

func TestGreetingHandlerCreateValidationDetails(t *testing.T) {
	r := newGreetingEngine(service.NewGreetingService(nil, nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/greetings", strings.NewReader(`{"name":"John","language":"de"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"allowed_languages":["en","es","fr"]`)
}

func TestGreetingHandlerUpdateMissingID(t *testing.T) {
	r := newGreetingEngine(service.NewGreetingService(nil, nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/greetings", strings.NewReader(`not json`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"Missing greeting ID"`)
}

func TestGreetingHandlerDelete(t *testing.T) {
	g := &fakeGreeter{}
	r := newGreetingEngine(g)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/greetings?id=abc", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "abc", g.lastID)
	assert.Empty(t, rec.Body.String())

	g.err = appErrors.Clone(appErrors.ErrNotFound, "Greeting not found")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/greetings?id=notfound", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"NOT_FOUND"`)
}
