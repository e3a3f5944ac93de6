package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/udyamlens/udyamlens/internal/analysis"
	"github.com/udyamlens/udyamlens/internal/database"
	"github.com/udyamlens/udyamlens/internal/middleware"
	"github.com/udyamlens/udyamlens/internal/models"
	"github.com/udyamlens/udyamlens/internal/services"
)

const defaultHistoryLimit = 20

// AnalyzeRequest is the upload payload: already-decoded monthly records
// plus an optional preferred narrative language.
type AnalyzeRequest struct {
	Records  []map[string]any `json:"records" binding:"required"`
	Language string           `json:"language,omitempty"`
}

// AnalysisHandler serves the analysis endpoints for all verticals.
type AnalysisHandler struct {
	service *services.AnalysisService
	logger  *logrus.Logger
}

func NewAnalysisHandler(service *services.AnalysisService, logger *logrus.Logger) *AnalysisHandler {
	return &AnalysisHandler{service: service, logger: logger}
}

// Analyze runs the full pipeline on one uploaded record set.
// POST /api/v1/analyze/:vertical
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	vertical, ok := h.vertical(c)
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	lang := req.Language
	if lang == "" {
		lang = c.Query("language")
	}

	stored, err := h.service.Analyze(c.Request.Context(), userID, vertical, req.Records, lang)
	if err != nil {
		h.writeAnalysisError(c, vertical, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"analysis": stored})
}

// History lists past analyses for one vertical, newest first.
// GET /api/v1/:vertical/analyses
func (h *AnalysisHandler) History(c *gin.Context) {
	vertical, ok := h.vertical(c)
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	year, ok := h.optionalYear(c)
	if !ok {
		return
	}

	limit := intQuery(c, "limit", defaultHistoryLimit)
	if limit < 1 || limit > 100 {
		limit = defaultHistoryLimit
	}
	offset := intQuery(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	summaries, err := h.service.History(c.Request.Context(), userID, vertical, year, limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list analyses")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list analyses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vertical": vertical,
		"count":    len(summaries),
		"analyses": summaries,
	})
}

// Get returns one stored analysis with its frozen metric snapshot.
// GET /api/v1/:vertical/analyses/:id
func (h *AnalysisHandler) Get(c *gin.Context) {
	stored, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": stored})
}

// Narrative returns the stored narrative document for an analysis, or
// 404 when generation was skipped or failed at analysis time.
// GET /api/v1/:vertical/analyses/:id/narrative
func (h *AnalysisHandler) Narrative(c *gin.Context) {
	stored, ok := h.lookup(c)
	if !ok {
		return
	}
	if len(stored.Narrative) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No narrative available for this analysis"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"analysis_id": stored.ID,
		"narrative":   json.RawMessage(stored.Narrative),
	})
}

// VerticalDashboard aggregates KPIs for one vertical.
// GET /api/v1/:vertical/dashboard
func (h *AnalysisHandler) VerticalDashboard(c *gin.Context) {
	vertical, ok := h.vertical(c)
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	year, ok := h.optionalYear(c)
	if !ok {
		return
	}

	dash, err := h.service.VerticalDashboard(c.Request.Context(), userID, vertical, year)
	if err != nil {
		h.logger.WithError(err).Error("Failed to build vertical dashboard")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboard": dash})
}

// Overview builds the cross-vertical reporting view.
// GET /api/v1/dashboard
func (h *AnalysisHandler) Overview(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	year, ok := h.optionalYear(c)
	if !ok {
		return
	}

	var vertical *models.Vertical
	if slug := c.Query("vertical"); slug != "" {
		v, err := models.ParseVertical(slug)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		vertical = &v
	}

	overview, err := h.service.Overview(c.Request.Context(), userID, vertical, year)
	if err != nil {
		h.logger.WithError(err).Error("Failed to build dashboard overview")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboard": overview})
}

func (h *AnalysisHandler) lookup(c *gin.Context) (*models.StoredAnalysis, bool) {
	vertical, ok := h.vertical(c)
	if !ok {
		return nil, false
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return nil, false
	}

	stored, err := h.service.Get(c.Request.Context(), userID, c.Param("id"))
	if errors.Is(err, database.ErrAnalysisNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
		return nil, false
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to read analysis")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read analysis"})
		return nil, false
	}
	if stored.Vertical != vertical {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
		return nil, false
	}
	return stored, true
}

func (h *AnalysisHandler) vertical(c *gin.Context) (models.Vertical, bool) {
	v, err := models.ParseVertical(c.Param("vertical"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return v, true
}

func (h *AnalysisHandler) optionalYear(c *gin.Context) (*int, bool) {
	raw := c.Query("year")
	if raw == "" {
		return nil, true
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year parameter"})
		return nil, false
	}
	return &year, true
}

func (h *AnalysisHandler) writeAnalysisError(c *gin.Context, vertical models.Vertical, err error) {
	var vErr *analysis.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":           "Record set failed validation",
			"vertical":        vErr.Vertical,
			"missing_columns": vErr.Missing,
			"detail":          vErr.Detail,
		})
		return
	}
	var mErr *analysis.MissingColumnError
	if errors.As(err, &mErr) || errors.Is(err, analysis.ErrEmptyDataset) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.WithError(err).WithField("vertical", vertical).Error("Analysis failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
