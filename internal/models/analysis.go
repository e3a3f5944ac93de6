package models

import (
	"encoding/json"
	"time"
)

// HealthStatus is the three-level label derived from the health score.
type HealthStatus string

const (
	StatusHealthy  HealthStatus = "Healthy"
	StatusWatch    HealthStatus = "Watch"
	StatusStressed HealthStatus = "Stressed"
)

// CreditRisk is the three-tier classification derived from the health
// score. Thresholds are identical across all verticals.
type CreditRisk string

const (
	RiskLow    CreditRisk = "Low"
	RiskMedium CreditRisk = "Medium"
	RiskHigh   CreditRisk = "High"
)

// HealthResult is the outcome of the penalty-ladder scorer. Score starts
// at 100 and only ever decreases by fixed amounts per triggered rule. It
// is not clamped at 0: a deeply stressed business can go negative and
// still classifies as Stressed/High.
type HealthResult struct {
	Score  int          `json:"health_score"`
	Status HealthStatus `json:"health_status"`
}

// TriggeredRule records one penalty rule that fired during scoring, kept
// so the final score can be audited.
type TriggeredRule struct {
	Name    string `json:"name"`
	Penalty int    `json:"penalty"`
}

// AnalysisResult is the immutable outcome of one pipeline run: one
// metric set, one health result, one credit tier and one product list
// for a single (vertical, reporting year) record set. UserID, narrative
// and timestamps are attached by the caller, never by the engine.
type AnalysisResult struct {
	Vertical  Vertical        `json:"vertical"`
	Year      int             `json:"year"`
	Metrics   VerticalMetrics `json:"metrics"`
	Health    HealthResult    `json:"health"`
	Risk      CreditRisk      `json:"credit_risk"`
	Products  []string        `json:"products"`
	Triggered []TriggeredRule `json:"triggered_rules,omitempty"`
}

// StoredAnalysis is one persisted analysis row as read back from the
// database. Metrics are kept as the JSON document written at analysis
// time so later reads return the frozen snapshot.
type StoredAnalysis struct {
	ID            string          `json:"id" db:"id"`
	UserID        string          `json:"user_id" db:"user_id"`
	Vertical      Vertical        `json:"vertical" db:"vertical"`
	Year          int             `json:"year" db:"year"`
	TotalRevenue  float64         `json:"total_revenue" db:"total_revenue"`
	TotalExpenses float64         `json:"total_expenses" db:"total_expenses"`
	Profit        float64         `json:"profit" db:"profit"`
	ProfitMargin  float64         `json:"profit_margin" db:"profit_margin"`
	Metrics       json.RawMessage `json:"metrics" db:"metrics"`
	HealthScore   int             `json:"health_score" db:"health_score"`
	HealthStatus  HealthStatus    `json:"health_status" db:"health_status"`
	Risk          CreditRisk      `json:"credit_risk" db:"credit_risk"`
	Products      []string        `json:"products" db:"products"`
	Narrative     json.RawMessage `json:"narrative,omitempty" db:"narrative"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// AnalysisSummary is the trimmed listing row for history endpoints.
type AnalysisSummary struct {
	ID           string       `json:"id"`
	Vertical     Vertical     `json:"vertical"`
	Year         int          `json:"year"`
	Profit       float64      `json:"profit"`
	ProfitMargin float64      `json:"profit_margin"`
	HealthScore  int          `json:"health_score"`
	HealthStatus HealthStatus `json:"health_status"`
	CreatedAt    time.Time    `json:"created_at"`
}

// VerticalDashboard holds the per-vertical KPI aggregation.
type VerticalDashboard struct {
	Vertical           Vertical `json:"vertical"`
	Year               *int     `json:"year,omitempty"`
	TotalAnalyses      int64    `json:"total_analyses"`
	TotalRevenue       float64  `json:"total_revenue"`
	TotalProfit        float64  `json:"total_profit"`
	AverageHealthScore float64  `json:"average_health_score"`
}

// DashboardOverview is the cross-vertical reporting view.
type DashboardOverview struct {
	TotalAnalyses      int64              `json:"total_analyses"`
	AverageHealthScore float64            `json:"average_health_score"`
	BestHealthScore    int                `json:"best_health_score"`
	WorstHealthScore   int                `json:"worst_health_score"`
	RevenueByYear      map[int]float64    `json:"revenue_by_year"`
	ExpensesByYear     map[int]float64    `json:"expenses_by_year"`
	ProfitByYear       map[int]float64    `json:"profit_by_year"`
	YearBreakdown      map[int]int64      `json:"year_breakdown"`
	VerticalBreakdown  map[Vertical]int64 `json:"industry_breakdown"`
	RecentActivity     []AnalysisSummary  `json:"recent_activity"`
}
