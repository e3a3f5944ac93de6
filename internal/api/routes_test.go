package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udyamlens/udyamlens/internal/config"
	"github.com/udyamlens/udyamlens/internal/database"
	"github.com/udyamlens/udyamlens/internal/narrative"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Environment: "development",
		Version:     "1.0.0",
	}
	cfg.Security.JWTSecret = "test-secret"
	cfg.Security.JWTExpiry = "1h"
	cfg.Security.BcryptCost = 4
	cfg.Dashboard.CacheTTL = "1m"

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	router := gin.New()
	SetupRoutes(router, cfg,
		&database.PostgresDB{}, &database.RedisClient{},
		narrative.NewClient(config.NarrativeConfig{}), logger)
	return router
}

func TestSetupRoutes_HealthDegradedWithoutBackends(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unhealthy")
}

func TestSetupRoutes_ProtectedEndpointsRequireAuth(t *testing.T) {
	router := testRouter()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/analyze/retail"},
		{http.MethodGet, "/api/v1/retail/analyses"},
		{http.MethodGet, "/api/v1/retail/analyses/some-id"},
		{http.MethodGet, "/api/v1/retail/dashboard"},
		{http.MethodGet, "/api/v1/dashboard"},
	}

	for _, p := range paths {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(p.method, p.path, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", p.method, p.path)
	}
}

func TestSetupRoutes_TemplatesArePublic(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/templates/logistics", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fuel_cost")
}

func TestSetupRoutes_UnknownPath(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v2/nothing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
