package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/udyamlens/udyamlens/internal/config"
	"github.com/udyamlens/udyamlens/internal/models"
)

// ErrDisabled is returned when no narrative service is configured.
var ErrDisabled = errors.New("narrative service not configured")

// Supported narrative languages, English first as the fallback.
var supportedLanguages = []language.Tag{
	language.English,
	language.Hindi,
	language.Tamil,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

// Request is the payload sent to the narrative service: the full metric
// set plus the scoring outcome and the recommended products as a display
// list.
type Request struct {
	Vertical     models.Vertical        `json:"vertical"`
	Year         int                    `json:"year"`
	Metrics      models.VerticalMetrics `json:"metrics"`
	HealthScore  int                    `json:"health_score"`
	HealthStatus models.HealthStatus    `json:"health_status"`
	CreditRisk   models.CreditRisk      `json:"credit_risk"`
	Products     string                 `json:"products"`
	Language     string                 `json:"language"`
}

// Explanation is the structured narrative returned by the service.
type Explanation struct {
	Good        []string        `json:"Good"`
	Risks       []string        `json:"Risks"`
	Improvement json.RawMessage `json:"Improvement,omitempty"`
	Summary     string          `json:"Summary,omitempty"`
}

// Client calls the external LLM narrative service. The call is
// best-effort: callers treat any failure as "narrative absent" and
// continue the pipeline.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	defaultLang string
}

func NewClient(cfg config.NarrativeConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	defaultLang := cfg.DefaultLanguage
	if defaultLang == "" {
		defaultLang = "en"
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     strings.TrimSuffix(cfg.ServiceURL, "/"),
		defaultLang: defaultLang,
	}
}

// Enabled reports whether a narrative service URL is configured.
func (c *Client) Enabled() bool { return c.baseURL != "" }

// ResolveLanguage negotiates the narrative language from the requested
// tag, falling back to the configured default for unsupported inputs.
func (c *Client) ResolveLanguage(requested string) string {
	if requested == "" {
		requested = c.defaultLang
	}
	tag, err := language.Parse(requested)
	if err != nil {
		return c.defaultLang
	}
	matched, _, confidence := languageMatcher.Match(tag)
	if confidence == language.No {
		return c.defaultLang
	}
	base, _ := matched.Base()
	return base.String()
}

// Generate requests a narrative explanation for one analysis result.
func (c *Client) Generate(ctx context.Context, result *models.AnalysisResult, lang string) (json.RawMessage, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	req := Request{
		Vertical:     result.Vertical,
		Year:         result.Year,
		Metrics:      result.Metrics,
		HealthScore:  result.Health.Score,
		HealthStatus: result.Health.Status,
		CreditRisk:   result.Risk,
		Products:     formatProducts(result.Products),
		Language:     c.ResolveLanguage(lang),
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize narrative request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/explanations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build narrative request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("narrative service call failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read narrative response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("narrative service returned status %d", resp.StatusCode)
	}

	// The service must return a valid JSON document with the expected
	// shape; anything else counts as a generation failure.
	var explanation Explanation
	if err := json.Unmarshal(payload, &explanation); err != nil {
		return nil, fmt.Errorf("invalid narrative payload: %w", err)
	}

	return json.RawMessage(payload), nil
}

// formatProducts renders the recommendation as the bullet list the
// prompt consumes.
func formatProducts(products []string) string {
	var b strings.Builder
	for i, p := range products {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(p)
	}
	return b.String()
}
