package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udyamlens/udyamlens/internal/config"
	"github.com/udyamlens/udyamlens/internal/narrative"
)

func TestHealthHandler_UnconfiguredDependencies(t *testing.T) {
	h := NewHealthHandler(nil, nil, narrative.NewClient(config.NarrativeConfig{}), "1.0.0")

	router := gin.New()
	router.GET("/health", h.HealthCheck)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Contains(t, resp.Services["database"], "not configured")
	// A disabled narrative service never degrades overall health.
	assert.Equal(t, "disabled", resp.Services["narrative"])
	assert.NotEmpty(t, resp.Uptime)
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler(nil, nil, nil, "1.0.0")

	router := gin.New()
	router.GET("/health/live", h.LivenessCheck)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alive")
}
