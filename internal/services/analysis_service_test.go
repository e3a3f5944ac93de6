package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udyamlens/udyamlens/internal/analysis"
	"github.com/udyamlens/udyamlens/internal/cache"
	"github.com/udyamlens/udyamlens/internal/models"
)

type fakeStore struct {
	inserted      *models.StoredAnalysis
	narrativeDoc  json.RawMessage
	overviewCalls int
	insertErr     error
}

func (f *fakeStore) Insert(_ context.Context, userID string, result *models.AnalysisResult, narrative json.RawMessage) (*models.StoredAnalysis, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.narrativeDoc = narrative
	f.inserted = &models.StoredAnalysis{
		ID:          "analysis-1",
		UserID:      userID,
		Vertical:    result.Vertical,
		Year:        result.Year,
		HealthScore: result.Health.Score,
		Risk:        result.Risk,
		Narrative:   narrative,
		CreatedAt:   time.Now().UTC(),
	}
	return f.inserted, nil
}

func (f *fakeStore) GetByID(_ context.Context, _, _ string) (*models.StoredAnalysis, error) {
	return f.inserted, nil
}

func (f *fakeStore) List(_ context.Context, _ string, _ models.Vertical, _ *int, _, _ int) ([]models.AnalysisSummary, error) {
	return nil, nil
}

func (f *fakeStore) VerticalDashboard(_ context.Context, _ string, v models.Vertical, year *int) (*models.VerticalDashboard, error) {
	return &models.VerticalDashboard{Vertical: v, Year: year}, nil
}

func (f *fakeStore) Overview(_ context.Context, _ string, _ *models.Vertical, _ *int) (*models.DashboardOverview, error) {
	f.overviewCalls++
	return &models.DashboardOverview{TotalAnalyses: 1}, nil
}

type fakeNarrative struct {
	enabled bool
	payload json.RawMessage
	err     error
	calls   int
}

func (f *fakeNarrative) Enabled() bool { return f.enabled }

func (f *fakeNarrative) Generate(context.Context, *models.AnalysisResult, string) (json.RawMessage, error) {
	f.calls++
	return f.payload, f.err
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func agricultureRows() []map[string]any {
	return []map[string]any{{
		"month": 1, "season": "Kharif", "primary_crop_type": "paddy", "year": 2024,
		"total_revenue": 1000000.0, "quantity_sold": 500.0, "avg_selling_price": 2000.0,
		"total_expenses": 900000.0, "input_cost_percentage": 60.0,
		"harvested_inventory_quantity": 520.0, "inventory_loss_percentage": 4.0,
		"storage_type":            "open",
		"loan_outstanding_amount": 2000000.0, "emi_amount": 350000.0, "loan_type": "crop",
	}}
}

func TestAnalysisService_Analyze(t *testing.T) {
	store := &fakeStore{}
	narrative := &fakeNarrative{enabled: true, payload: json.RawMessage(`{"Summary":"ok"}`)}
	svc := NewAnalysisService(store, narrative, nil, testLogger())

	stored, err := svc.Analyze(context.Background(), "user-1", models.VerticalAgriculture, agricultureRows(), "hi")
	require.NoError(t, err)

	assert.Equal(t, "analysis-1", stored.ID)
	assert.Equal(t, 70, stored.HealthScore)
	assert.Equal(t, models.RiskMedium, stored.Risk)
	assert.Equal(t, 1, narrative.calls)
	assert.JSONEq(t, `{"Summary":"ok"}`, string(store.narrativeDoc))
}

func TestAnalysisService_Analyze_NarrativeFailureIsNonFatal(t *testing.T) {
	store := &fakeStore{}
	narrative := &fakeNarrative{enabled: true, err: errors.New("model overloaded")}
	svc := NewAnalysisService(store, narrative, nil, testLogger())

	stored, err := svc.Analyze(context.Background(), "user-1", models.VerticalAgriculture, agricultureRows(), "en")
	require.NoError(t, err)
	assert.Nil(t, stored.Narrative)
	assert.Nil(t, store.narrativeDoc)
	assert.Equal(t, 1, narrative.calls)
}

func TestAnalysisService_Analyze_NarrativeDisabledSkipsCall(t *testing.T) {
	store := &fakeStore{}
	narrative := &fakeNarrative{enabled: false}
	svc := NewAnalysisService(store, narrative, nil, testLogger())

	_, err := svc.Analyze(context.Background(), "user-1", models.VerticalAgriculture, agricultureRows(), "en")
	require.NoError(t, err)
	assert.Equal(t, 0, narrative.calls)
}

func TestAnalysisService_Analyze_ValidationError(t *testing.T) {
	store := &fakeStore{}
	svc := NewAnalysisService(store, nil, nil, testLogger())

	rows := agricultureRows()
	delete(rows[0], "emi_amount")

	_, err := svc.Analyze(context.Background(), "user-1", models.VerticalAgriculture, rows, "")
	var vErr *analysis.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Nil(t, store.inserted)
}

func TestAnalysisService_Analyze_EmptyRecordSet(t *testing.T) {
	svc := NewAnalysisService(&fakeStore{}, nil, nil, testLogger())

	_, err := svc.Analyze(context.Background(), "user-1", models.VerticalAgriculture, nil, "")
	assert.ErrorIs(t, err, analysis.ErrEmptyDataset)
}

func TestAnalysisService_Analyze_PersistFailure(t *testing.T) {
	store := &fakeStore{insertErr: errors.New("connection reset")}
	svc := NewAnalysisService(store, nil, nil, testLogger())

	_, err := svc.Analyze(context.Background(), "user-1", models.VerticalAgriculture, agricultureRows(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist")
}

func TestAnalysisService_OverviewCaching(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	dashCache := cache.NewDashboardCache(client, time.Minute)

	store := &fakeStore{}
	svc := NewAnalysisService(store, nil, dashCache, testLogger())

	ctx := context.Background()
	first, err := svc.Overview(ctx, "user-1", nil, nil)
	require.NoError(t, err)
	second, err := svc.Overview(ctx, "user-1", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, first.TotalAnalyses, second.TotalAnalyses)
	assert.Equal(t, 1, store.overviewCalls, "second read must come from cache")

	// A new analysis invalidates the cached view.
	_, err = svc.Analyze(ctx, "user-1", models.VerticalAgriculture, agricultureRows(), "")
	require.NoError(t, err)

	_, err = svc.Overview(ctx, "user-1", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, store.overviewCalls)
}

func TestAnalysisService_OverviewCacheKeyPerFilter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	dashCache := cache.NewDashboardCache(client, time.Minute)

	store := &fakeStore{}
	svc := NewAnalysisService(store, nil, dashCache, testLogger())

	ctx := context.Background()
	_, err := svc.Overview(ctx, "user-1", nil, nil)
	require.NoError(t, err)

	vertical := models.VerticalRetail
	year := 2024
	_, err = svc.Overview(ctx, "user-1", &vertical, &year)
	require.NoError(t, err)

	assert.Equal(t, 2, store.overviewCalls, "different filters must not share a cache entry")
}
