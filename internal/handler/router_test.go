package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/tutor-match-api/internal/dto"
)

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, "/api/v1/", Handlers{
		Classes:     NewClassHandler(&classServiceMock{searchResp: []dto.ClassSearchResult{}}),
		Connections: NewConnectionHandler(&connectionServiceMock{}),
		Metrics:     NewMetricsHandler(nil, nil),
	})

	routes := map[string]bool{}
	for _, route := range r.Routes() {
		routes[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"GET /api/v1/classes",
		"POST /api/v1/classes",
		"GET /api/v1/classes/:id",
		"GET /api/v1/connections",
		"POST /api/v1/connections",
	} {
		assert.True(t, routes[want], want)
	}
	assert.False(t, routes["GET /api/v1/favorites"])

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/classes?subject=Math&week_day=1&time=09:00", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
