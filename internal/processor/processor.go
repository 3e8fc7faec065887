package processor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"shopping-advisor-go/internal/advisor"
	"shopping-advisor-go/internal/insight"
	"shopping-advisor-go/internal/logger"
	"shopping-advisor-go/internal/scraper"
	"shopping-advisor-go/internal/sentiment"
	"shopping-advisor-go/internal/types"
)

type Scraper interface {
	ScrapeWithDetails(ctx context.Context, productURL string) (types.ScrapeResponse, error)
	Ping(ctx context.Context) error
}

type Advisor interface {
	Consult(ctx context.Context, req types.AdvisoryRequest) (types.AdvisoryResponse, error)
	Health(ctx context.Context) (advisor.Health, error)
}

type Request struct {
	URL         string `json:"url"`
	Budget      string `json:"budget,omitempty"`
	Preferences string `json:"preferences,omitempty"`
}

// Sentiment sources.
const (
	SourceAdvisor = "advisor"
	SourceRatings = "ratings"
)

type Sentiment struct {
	Source              string                        `json:"source"`
	Distribution        sentiment.Distribution        `json:"distribution"`
	Dominant            sentiment.Category            `json:"dominant"`
	Level               sentiment.RecommendationLevel `json:"level"`
	Narrative           insight.Narrative             `json:"narrative"`
	Summary             string                        `json:"summary,omitempty"`
	KeyThemes           []string                      `json:"key_themes,omitempty"`
	EmotionalIndicators []string                      `json:"emotional_indicators,omitempty"`
}

// Result is returned by /analyze and by the CLI.
type Result struct {
	URL                 string                 `json:"url"`
	Product             types.ProductDetails   `json:"product"`
	Reviews             []types.Review         `json:"reviews,omitempty"`
	Advice              types.AdvisoryResponse `json:"advice"`
	RecommendationLabel string                 `json:"recommendation_label,omitempty"`
	RecommendationClass string                 `json:"recommendation_class,omitempty"`
	Confidence          insight.Confidence     `json:"confidence"`
	SentimentAvailable  bool                   `json:"sentiment_available"`
	Sentiment           *Sentiment             `json:"sentiment,omitempty"`
	RatingHistogram     map[string]int         `json:"rating_histogram,omitempty"`
	DurationMs          int64                  `json:"duration_ms"`
	Error               string                 `json:"error,omitempty"`
}

type Processor struct {
	scraper         Scraper
	advisor         Advisor
	marketplaceHost string
	timeout         time.Duration
	log             *logger.Logger
}

func New(s Scraper, a Advisor, marketplaceHost string, timeout time.Duration, log *logger.Logger) *Processor {
	return &Processor{
		scraper:         s,
		advisor:         a,
		marketplaceHost: marketplaceHost,
		timeout:         timeout,
		log:             log.Component("processor"),
	}
}

// Analyze scrapes the listing, asks the advisor for a verdict and interprets
// both. The returned Result is populated as far as the flow got, even on
// error.
func (p *Processor) Analyze(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	res := Result{URL: req.URL}
	fail := func(stage string, err error) (Result, error) {
		res.Error = fmt.Sprintf("%s: %v", stage, err)
		res.DurationMs = time.Since(start).Milliseconds()
		return res, err
	}

	productURL, err := ValidateURL(req.URL, p.marketplaceHost)
	if err != nil {
		return fail("validation", err)
	}
	res.URL = productURL
	log := p.log.WithField("product_url", productURL)

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	log.Info("step 1: extracting product details")
	scraped, err := p.scraper.ScrapeWithDetails(ctx, productURL)
	if err != nil {
		return fail("scrape", err)
	}
	if scraped.ProductDetails == nil {
		return fail("scrape", scraper.ErrNoProductDetails)
	}
	res.Product = *scraped.ProductDetails
	res.Reviews = scraped.Reviews

	log.Info("step 2: requesting advice")
	advice, err := p.advisor.Consult(ctx, types.AdvisoryRequest{
		ProductDetails:  res.Product,
		Reviews:         scraped.Reviews,
		Summary:         scraped.Summary,
		UserBudget:      ParseBudget(req.Budget),
		UserPreferences: req.Preferences,
	})
	if err != nil {
		return fail("advice", err)
	}
	res.Advice = advice

	log.Info("step 3: interpreting results")
	res.RecommendationLabel = insight.RecommendationLabel(advice.Recommendation)
	res.RecommendationClass = insight.RecommendationClass(advice.Recommendation)
	if !insight.KnownRecommendation(advice.Recommendation) {
		log.WithField("recommendation", advice.Recommendation).Warn("unknown recommendation code")
	}
	res.Confidence = insight.InterpretConfidence(advice.Confidence())
	res.RatingHistogram = sentiment.RatingHistogram(scraped.Reviews)

	s, err := buildSentiment(advice.SentimentAnalysis, scraped.Reviews)
	switch {
	case errors.Is(err, sentiment.ErrNoReviews):
		log.Info("no reviews scraped; sentiment unavailable")
	case err != nil:
		return fail("sentiment", err)
	default:
		res.Sentiment = s
		res.SentimentAvailable = true
	}

	res.DurationMs = time.Since(start).Milliseconds()
	log.WithField("duration_ms", res.DurationMs).
		WithField("confidence_tier", res.Confidence.Tier).
		Info("analysis finished")
	return res, nil
}

// buildSentiment prefers the advisor's own breakdown and falls back to
// bucketing the scraped ratings. A breakdown that counts no reviews is
// ignored.
func buildSentiment(fromAdvisor *types.AdvisorSentiment, reviews []types.Review) (*Sentiment, error) {
	if fromAdvisor != nil && fromAdvisor.PositiveCount+fromAdvisor.NeutralCount+fromAdvisor.NegativeCount > 0 {
		d := fromAdvisorSentiment(*fromAdvisor)
		return &Sentiment{
			Source:              SourceAdvisor,
			Distribution:        d,
			Dominant:            sentiment.Dominant(d),
			Level:               sentiment.Level(d),
			Narrative:           insight.Narrate(d),
			Summary:             fromAdvisor.SentimentSummary,
			KeyThemes:           fromAdvisor.KeyThemes,
			EmotionalIndicators: fromAdvisor.EmotionalIndicators,
		}, nil
	}
	summary, err := sentiment.Summarize(reviews)
	if err != nil {
		return nil, err
	}
	return &Sentiment{
		Source:       SourceRatings,
		Distribution: summary.Distribution,
		Dominant:     summary.Dominant,
		Level:        summary.Level,
		Narrative:    insight.Narrate(summary.Distribution),
	}, nil
}

func fromAdvisorSentiment(a types.AdvisorSentiment) sentiment.Distribution {
	return sentiment.Distribution{
		Positive:        a.PositiveCount,
		Neutral:         a.NeutralCount,
		Negative:        a.NegativeCount,
		Total:           a.PositiveCount + a.NeutralCount + a.NegativeCount,
		PositivePercent: int(math.Round(a.PositivePercentage)),
		NeutralPercent:  int(math.Round(a.NeutralPercentage)),
		NegativePercent: int(math.Round(a.NegativePercentage)),
	}
}
