package types

// Recommendation codes returned by the advisory service.
const (
	RecommendBuy           = "LAYAK_BELI"
	RecommendDoNotBuy      = "TIDAK_LAYAK_BELI"
	RecommendBuyWithCaveat = "LAYAK_BELI_DENGAN_CATATAN"
)

type AdvisoryRequest struct {
	ProductDetails  ProductDetails `json:"product_details"`
	Reviews         []Review       `json:"reviews,omitempty"`
	Summary         *ScrapeSummary `json:"summary,omitempty"`
	UserBudget      *float64       `json:"user_budget,omitempty"`
	UserPreferences string         `json:"user_preferences,omitempty"`
}

// AdvisorSentiment is the sentiment breakdown the advisory service may
// compute on its own. When present it takes precedence over the local
// rating buckets.
type AdvisorSentiment struct {
	PositivePercentage  float64  `json:"positive_percentage"`
	NeutralPercentage   float64  `json:"neutral_percentage"`
	NegativePercentage  float64  `json:"negative_percentage"`
	PositiveCount       int      `json:"positive_count"`
	NeutralCount        int      `json:"neutral_count"`
	NegativeCount       int      `json:"negative_count"`
	SentimentSummary    string   `json:"sentiment_summary,omitempty"`
	KeyThemes           []string `json:"key_themes,omitempty"`
	EmotionalIndicators []string `json:"emotional_indicators,omitempty"`
}

type AdvisoryResponse struct {
	Recommendation    string            `json:"recommendation"`
	ConfidenceScore   *float64          `json:"confidence_score"`
	Analysis          string            `json:"analysis"`
	Pros              []string          `json:"pros"`
	Cons              []string          `json:"cons"`
	KeyInsights       []string          `json:"key_insights"`
	BudgetAnalysis    string            `json:"budget_analysis,omitempty"`
	SentimentAnalysis *AdvisorSentiment `json:"sentiment_analysis,omitempty"`
}

// Confidence returns the confidence score, or 0 when the service omitted it.
func (a AdvisoryResponse) Confidence() float64 {
	if a.ConfidenceScore == nil {
		return 0
	}
	return *a.ConfidenceScore
}
