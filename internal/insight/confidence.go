package insight

import "math"

type Tier string

const (
	TierVeryHigh Tier = "very_high"
	TierHigh     Tier = "high"
	TierMedium   Tier = "medium"
	TierLow      Tier = "low"
	TierVeryLow  Tier = "very_low"
)

// Confidence is the human-facing reading of an advisory confidence score.
type Confidence struct {
	Score       float64 `json:"score"`
	Percent     int     `json:"percent"`
	Tier        Tier    `json:"tier"`
	Icon        string  `json:"icon"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Risk        string  `json:"risk"`
}

type tierDef struct {
	floor       int
	tier        Tier
	icon        string
	label       string
	description string
	risk        string
}

// highest floor first; the last entry catches everything below 40
var tiers = []tierDef{
	{85, TierVeryHigh, "🚀", "Very high",
		"The advisor is very confident in this recommendation, based on an in-depth look at the product data and customer reviews.",
		"Very low"},
	{70, TierHigh, "✅", "High",
		"The advisor is fairly confident in this recommendation, based on the available data and positive review patterns.",
		"Low"},
	{55, TierMedium, "⚖️", "Medium",
		"The advisor gives this recommendation with moderate confidence. Weigh additional factors.",
		"Medium"},
	{40, TierLow, "⚠️", "Low",
		"The advisor has doubts about this recommendation. Further research is advised.",
		"High"},
	{math.MinInt, TierVeryLow, "❌", "Very low",
		"The advisor is not confident in this recommendation. Consider looking for an alternative product.",
		"Very high"},
}

// InterpretConfidence clamps score into [0,1] (NaN reads as 0), converts it
// to a whole percentage and maps it onto one of five tiers.
func InterpretConfidence(score float64) Confidence {
	score = clamp(score)
	pct := int(math.Round(score * 100))
	t := tiers[len(tiers)-1]
	for _, candidate := range tiers {
		if pct >= candidate.floor {
			t = candidate
			break
		}
	}
	return Confidence{
		Score:       score,
		Percent:     pct,
		Tier:        t.tier,
		Icon:        t.icon,
		Label:       t.label,
		Description: t.description,
		Risk:        t.risk,
	}
}

func clamp(score float64) float64 {
	switch {
	case math.IsNaN(score), score < 0:
		return 0
	case score > 1:
		return 1
	default:
		return score
	}
}
