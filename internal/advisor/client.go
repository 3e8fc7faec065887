package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"shopping-advisor-go/internal/config"
	"shopping-advisor-go/internal/logger"
	"shopping-advisor-go/internal/types"
	"shopping-advisor-go/internal/upstream"
)

// ErrIncompleteAdvice means the advisory service answered without a
// recommendation or confidence score.
var ErrIncompleteAdvice = errors.New("advisor: response missing recommendation or confidence_score")

type Client struct {
	BaseURL string
	Mock    bool

	up  *upstream.Client
	log *logger.Logger
}

func New(cfg config.Config, log *logger.Logger) *Client {
	log = log.Component("advisor")
	return &Client{
		BaseURL: cfg.AdvisorURL,
		Mock:    cfg.MockAdvisor,
		up:      upstream.New(cfg.AdvisorTimeout, cfg.MaxRetry, log),
		log:     log,
	}
}

// Upstream exposes the transport so tests can shorten the retry policy.
func (c *Client) Upstream() *upstream.Client { return c.up }

// Consult sends the scraped listing plus the user's budget and preferences
// and returns the purchase advice.
func (c *Client) Consult(ctx context.Context, req types.AdvisoryRequest) (types.AdvisoryResponse, error) {
	log := c.log.WithField("product", req.ProductDetails.ProductName)
	if c.Mock {
		log.Info("mock advisor mode ON - returning deterministic advice")
		return mockAdvice(req), nil
	}

	var out types.AdvisoryResponse
	decode := func(body []byte) error {
		advice, err := decodeAdvice(body)
		if err != nil {
			return err
		}
		out = advice
		return nil
	}
	if err := c.up.Do(ctx, http.MethodPost, c.BaseURL+"/ai-consultant-flexible", req, decode); err != nil {
		return types.AdvisoryResponse{}, fmt.Errorf("advisor consult: %w", err)
	}
	log.WithField("recommendation", out.Recommendation).
		WithField("confidence_score", out.Confidence()).
		Info("advice received")
	return out, nil
}

// Health is the advisory service's self-reported state.
type Health struct {
	Status string `json:"status"`
	Model  string `json:"model,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (c *Client) Health(ctx context.Context) (Health, error) {
	if c.Mock {
		return Health{Status: "healthy", Model: "mock"}, nil
	}
	var h Health
	if err := c.up.Do(ctx, http.MethodGet, c.BaseURL+"/health", nil, upstream.DecodeInto(&h)); err != nil {
		return Health{}, err
	}
	return h, nil
}

// decodeAdvice accepts either a clean JSON body or one where the advice is
// wrapped in prose, markdown fences or an OpenAI-style choices envelope.
func decodeAdvice(body []byte) (types.AdvisoryResponse, error) {
	candidates := []string{string(body)}
	if inner := adviceFromCompletion(body); inner != "" {
		candidates = append(candidates, inner)
	}
	if fallback := extractJSON(string(body)); fallback != "" {
		candidates = append(candidates, fallback)
	}

	var lastErr error = fmt.Errorf("no JSON found in advisor output")
	for _, c := range candidates {
		var advice types.AdvisoryResponse
		if err := json.Unmarshal([]byte(c), &advice); err != nil {
			lastErr = err
			continue
		}
		if advice.Recommendation == "" || advice.ConfidenceScore == nil {
			lastErr = ErrIncompleteAdvice
			continue
		}
		return advice, nil
	}
	return types.AdvisoryResponse{}, lastErr
}

func mockAdvice(req types.AdvisoryRequest) types.AdvisoryResponse {
	score := 0.72
	advice := types.AdvisoryResponse{
		Recommendation:  types.RecommendBuyWithCaveat,
		ConfidenceScore: &score,
		Analysis:        fmt.Sprintf("%s from %s is well rated, but a third of the sampled reviews report defects.", req.ProductDetails.ProductName, req.ProductDetails.StoreName),
		Pros:            []string{"Official store", "High overall rating", "Many units sold"},
		Cons:            []string{"Reports of faulty chargers", "Slow seller responses"},
		KeyInsights:     []string{"Negative reviews cluster around accessories, not the device itself"},
	}
	if req.UserBudget != nil {
		advice.BudgetAnalysis = fmt.Sprintf("Price %s against a budget of Rp %.0f.", req.ProductDetails.Price, *req.UserBudget)
	}
	return advice
}
