package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/udyamlens/udyamlens/internal/analysis"
	"github.com/udyamlens/udyamlens/internal/cache"
	"github.com/udyamlens/udyamlens/internal/models"
)

// AnalysisStore is the persistence collaborator contract.
type AnalysisStore interface {
	Insert(ctx context.Context, userID string, result *models.AnalysisResult, narrative json.RawMessage) (*models.StoredAnalysis, error)
	GetByID(ctx context.Context, userID, id string) (*models.StoredAnalysis, error)
	List(ctx context.Context, userID string, vertical models.Vertical, year *int, limit, offset int) ([]models.AnalysisSummary, error)
	VerticalDashboard(ctx context.Context, userID string, vertical models.Vertical, year *int) (*models.VerticalDashboard, error)
	Overview(ctx context.Context, userID string, vertical *models.Vertical, year *int) (*models.DashboardOverview, error)
}

// NarrativeGenerator is the optional narrative collaborator contract.
type NarrativeGenerator interface {
	Enabled() bool
	Generate(ctx context.Context, result *models.AnalysisResult, lang string) (json.RawMessage, error)
}

// AnalysisService orchestrates the engine and its collaborators for one
// request: run the pure pipeline, ask for the optional narrative,
// persist, invalidate cached dashboards. The engine itself never touches
// I/O; everything blocking happens here, before or after the engine
// runs.
type AnalysisService struct {
	store     AnalysisStore
	narrative NarrativeGenerator
	dashCache *cache.DashboardCache
	logger    *logrus.Logger
}

func NewAnalysisService(store AnalysisStore, narrative NarrativeGenerator, dashCache *cache.DashboardCache, logger *logrus.Logger) *AnalysisService {
	return &AnalysisService{
		store:     store,
		narrative: narrative,
		dashCache: dashCache,
		logger:    logger,
	}
}

// Analyze runs the full pipeline for one uploaded record set and
// persists the outcome. Narrative generation is best-effort: a failure
// is logged and the numeric result is stored without it.
func (s *AnalysisService) Analyze(ctx context.Context, userID string, vertical models.Vertical, rows []map[string]any, lang string) (*models.StoredAnalysis, error) {
	ds, err := analysis.NewDataset(rows)
	if err != nil {
		return nil, err
	}

	result, err := analysis.Run(vertical, ds)
	if err != nil {
		return nil, err
	}

	if extra := analysis.ExtraYears(ds); len(extra) > 0 {
		s.logger.WithFields(logrus.Fields{
			"vertical":    vertical,
			"tagged_year": result.Year,
			"extra_years": extra,
		}).Warn("Record set spans multiple years; analysis tagged with first row's year")
	}

	var narrativeDoc json.RawMessage
	if s.narrative != nil && s.narrative.Enabled() {
		narrativeDoc, err = s.narrative.Generate(ctx, result, lang)
		if err != nil {
			s.logger.WithError(err).WithField("vertical", vertical).
				Warn("Narrative generation failed; continuing without narrative")
			narrativeDoc = nil
		}
	}

	stored, err := s.store.Insert(ctx, userID, result, narrativeDoc)
	if err != nil {
		return nil, fmt.Errorf("failed to persist analysis: %w", err)
	}

	if s.dashCache != nil {
		if err := s.dashCache.Invalidate(ctx, userID); err != nil {
			s.logger.WithError(err).Warn("Failed to invalidate dashboard cache")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"analysis_id":  stored.ID,
		"vertical":     vertical,
		"year":         stored.Year,
		"health_score": stored.HealthScore,
		"credit_risk":  stored.Risk,
	}).Info("Analysis completed")

	return stored, nil
}

// Get returns one stored analysis scoped to the user.
func (s *AnalysisService) Get(ctx context.Context, userID, id string) (*models.StoredAnalysis, error) {
	return s.store.GetByID(ctx, userID, id)
}

// History lists past analyses for one vertical, newest first.
func (s *AnalysisService) History(ctx context.Context, userID string, vertical models.Vertical, year *int, limit, offset int) ([]models.AnalysisSummary, error) {
	return s.store.List(ctx, userID, vertical, year, limit, offset)
}

// VerticalDashboard aggregates KPIs for one vertical.
func (s *AnalysisService) VerticalDashboard(ctx context.Context, userID string, vertical models.Vertical, year *int) (*models.VerticalDashboard, error) {
	return s.store.VerticalDashboard(ctx, userID, vertical, year)
}

// Overview builds the cross-vertical dashboard, served from the redis
// cache when fresh.
func (s *AnalysisService) Overview(ctx context.Context, userID string, vertical *models.Vertical, year *int) (*models.DashboardOverview, error) {
	view := overviewCacheKey(vertical, year)
	if s.dashCache != nil {
		if cached, ok := s.dashCache.GetOverview(ctx, userID, view); ok {
			return cached, nil
		}
	}

	overview, err := s.store.Overview(ctx, userID, vertical, year)
	if err != nil {
		return nil, err
	}

	if s.dashCache != nil {
		if err := s.dashCache.SetOverview(ctx, userID, view, overview); err != nil {
			s.logger.WithError(err).Warn("Failed to cache dashboard overview")
		}
	}
	return overview, nil
}

func overviewCacheKey(vertical *models.Vertical, year *int) string {
	v := "all"
	if vertical != nil {
		v = vertical.Slug()
	}
	y := "all"
	if year != nil {
		y = fmt.Sprintf("%d", *year)
	}
	return "overview:" + v + ":" + y
}
