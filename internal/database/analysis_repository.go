package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/udyamlens/udyamlens/internal/models"
)

// ErrAnalysisNotFound is returned when a lookup matches no row for the
// requesting user.
var ErrAnalysisNotFound = errors.New("analysis not found")

// Querier is the subset of pgxpool.Pool the repositories need; pgxmock
// implements it for tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// AnalysisRepository persists and reads back analysis results. Results
// are immutable after insertion: there is no update path.
type AnalysisRepository struct {
	q Querier
}

func NewAnalysisRepository(db *PostgresDB) *AnalysisRepository {
	return &AnalysisRepository{q: db.Pool}
}

// NewAnalysisRepositoryWithQuerier creates a repository backed by a
// custom querier, used with pgxmock in tests.
func NewAnalysisRepositoryWithQuerier(q Querier) *AnalysisRepository {
	return &AnalysisRepository{q: q}
}

const insertAnalysisSQL = `
	INSERT INTO financial_analyses
		(id, user_id, vertical, year, total_revenue, total_expenses, profit, profit_margin,
		 metrics, health_score, health_status, credit_risk, products, narrative, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
`

// Insert writes one analysis result for a user and returns the stored
// row. The metric set is serialized once here; later reads return this
// frozen snapshot.
func (r *AnalysisRepository) Insert(ctx context.Context, userID string, result *models.AnalysisResult, narrative json.RawMessage) (*models.StoredAnalysis, error) {
	metricsJSON, err := json.Marshal(result.Metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize metrics: %w", err)
	}

	core := result.Metrics.Core()
	row := &models.StoredAnalysis{
		ID:            uuid.New().String(),
		UserID:        userID,
		Vertical:      result.Vertical,
		Year:          result.Year,
		TotalRevenue:  core.TotalRevenue,
		TotalExpenses: core.TotalExpenses,
		Profit:        core.Profit,
		ProfitMargin:  core.ProfitMargin,
		Metrics:       metricsJSON,
		HealthScore:   result.Health.Score,
		HealthStatus:  result.Health.Status,
		Risk:          result.Risk,
		Products:      result.Products,
		Narrative:     narrative,
		CreatedAt:     time.Now().UTC(),
	}

	_, err = r.q.Exec(ctx, insertAnalysisSQL,
		row.ID, row.UserID, string(row.Vertical), row.Year,
		row.TotalRevenue, row.TotalExpenses, row.Profit, row.ProfitMargin,
		row.Metrics, row.HealthScore, string(row.HealthStatus), string(row.Risk),
		row.Products, row.Narrative, row.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert analysis: %w", err)
	}
	return row, nil
}

const selectAnalysisSQL = `
	SELECT id, user_id, vertical, year, total_revenue, total_expenses, profit, profit_margin,
	       metrics, health_score, health_status, credit_risk, products, narrative, created_at
	FROM financial_analyses
	WHERE id = $1 AND user_id = $2
`

// GetByID looks up one stored analysis scoped to the requesting user.
func (r *AnalysisRepository) GetByID(ctx context.Context, userID, id string) (*models.StoredAnalysis, error) {
	var row models.StoredAnalysis
	err := r.q.QueryRow(ctx, selectAnalysisSQL, id, userID).Scan(
		&row.ID, &row.UserID, &row.Vertical, &row.Year,
		&row.TotalRevenue, &row.TotalExpenses, &row.Profit, &row.ProfitMargin,
		&row.Metrics, &row.HealthScore, &row.HealthStatus, &row.Risk,
		&row.Products, &row.Narrative, &row.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAnalysisNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis: %w", err)
	}
	return &row, nil
}

// List returns history summaries for one user and vertical, newest
// first, optionally filtered by year.
func (r *AnalysisRepository) List(ctx context.Context, userID string, vertical models.Vertical, year *int, limit, offset int) ([]models.AnalysisSummary, error) {
	sql := `
		SELECT id, vertical, year, profit, profit_margin, health_score, health_status, created_at
		FROM financial_analyses
		WHERE user_id = $1 AND vertical = $2`
	args := []interface{}{userID, string(vertical)}
	if year != nil {
		sql += fmt.Sprintf(" AND year = $%d", len(args)+1)
		args = append(args, *year)
	}
	sql += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var out []models.AnalysisSummary
	for rows.Next() {
		var s models.AnalysisSummary
		if err := rows.Scan(&s.ID, &s.Vertical, &s.Year, &s.Profit, &s.ProfitMargin,
			&s.HealthScore, &s.HealthStatus, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// VerticalDashboard aggregates KPIs for one user and vertical.
func (r *AnalysisRepository) VerticalDashboard(ctx context.Context, userID string, vertical models.Vertical, year *int) (*models.VerticalDashboard, error) {
	sql := `
		SELECT COUNT(*),
		       COALESCE(SUM(total_revenue), 0),
		       COALESCE(SUM(profit), 0),
		       COALESCE(AVG(health_score), 0)
		FROM financial_analyses
		WHERE user_id = $1 AND vertical = $2`
	args := []interface{}{userID, string(vertical)}
	if year != nil {
		sql += " AND year = $3"
		args = append(args, *year)
	}

	dash := &models.VerticalDashboard{Vertical: vertical, Year: year}
	err := r.q.QueryRow(ctx, sql, args...).Scan(
		&dash.TotalAnalyses, &dash.TotalRevenue, &dash.TotalProfit, &dash.AverageHealthScore,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate dashboard: %w", err)
	}
	return dash, nil
}

// Overview builds the cross-vertical reporting view by folding the
// user's persisted rows, optionally filtered by vertical and year.
func (r *AnalysisRepository) Overview(ctx context.Context, userID string, vertical *models.Vertical, year *int) (*models.DashboardOverview, error) {
	sql := `
		SELECT id, vertical, year, total_revenue, total_expenses, profit, profit_margin,
		       health_score, health_status, created_at
		FROM financial_analyses
		WHERE user_id = $1`
	args := []interface{}{userID}
	if vertical != nil {
		sql += fmt.Sprintf(" AND vertical = $%d", len(args)+1)
		args = append(args, string(*vertical))
	}
	if year != nil {
		sql += fmt.Sprintf(" AND year = $%d", len(args)+1)
		args = append(args, *year)
	}
	sql += " ORDER BY created_at DESC"

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query overview: %w", err)
	}
	defer rows.Close()

	overview := &models.DashboardOverview{
		RevenueByYear:     make(map[int]float64),
		ExpensesByYear:    make(map[int]float64),
		ProfitByYear:      make(map[int]float64),
		YearBreakdown:     make(map[int]int64),
		VerticalBreakdown: make(map[models.Vertical]int64),
	}

	var scoreSum int64
	for rows.Next() {
		var (
			s        models.AnalysisSummary
			revenue  float64
			expenses float64
		)
		if err := rows.Scan(&s.ID, &s.Vertical, &s.Year, &revenue, &expenses,
			&s.Profit, &s.ProfitMargin, &s.HealthScore, &s.HealthStatus, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan overview row: %w", err)
		}

		overview.TotalAnalyses++
		scoreSum += int64(s.HealthScore)
		if overview.TotalAnalyses == 1 || s.HealthScore > overview.BestHealthScore {
			overview.BestHealthScore = s.HealthScore
		}
		if overview.TotalAnalyses == 1 || s.HealthScore < overview.WorstHealthScore {
			overview.WorstHealthScore = s.HealthScore
		}

		overview.RevenueByYear[s.Year] += revenue
		overview.ExpensesByYear[s.Year] += expenses
		overview.ProfitByYear[s.Year] += s.Profit
		overview.YearBreakdown[s.Year]++
		overview.VerticalBreakdown[s.Vertical]++

		if len(overview.RecentActivity) < 10 {
			overview.RecentActivity = append(overview.RecentActivity, s)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if overview.TotalAnalyses > 0 {
		overview.AverageHealthScore = float64(scoreSum) / float64(overview.TotalAnalyses)
	}
	sort.SliceStable(overview.RecentActivity, func(i, j int) bool {
		return overview.RecentActivity[i].CreatedAt.After(overview.RecentActivity[j].CreatedAt)
	})
	return overview, nil
}
