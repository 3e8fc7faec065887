package sentiment

import "shopping-advisor-go/internal/types"

// RecommendationLevel is a coarse purchase signal derived from the
// distribution alone, independent of the advisory service.
type RecommendationLevel string

const (
	HighlyRecommended RecommendationLevel = "highly_recommended"
	Recommended       RecommendationLevel = "recommended"
	NotRecommended    RecommendationLevel = "not_recommended"
	NeutralLevel      RecommendationLevel = "neutral"
)

type levelRule struct {
	level RecommendationLevel
	match func(Distribution) bool
}

// checked in order; first match wins
var levelRules = []levelRule{
	{HighlyRecommended, func(d Distribution) bool { return d.PositivePercent > 70 && d.NegativePercent < 15 }},
	{Recommended, func(d Distribution) bool { return d.PositivePercent > 50 && d.NegativePercent < 25 }},
	{NotRecommended, func(d Distribution) bool { return d.NegativePercent > 40 }},
}

func Level(d Distribution) RecommendationLevel {
	for _, r := range levelRules {
		if r.match(d) {
			return r.level
		}
	}
	return NeutralLevel
}

// Dominant returns the category with a strictly larger share than both
// others. Ties resolve to Negative.
func Dominant(d Distribution) Category {
	p, n, g := d.PositivePercent, d.NeutralPercent, d.NegativePercent
	switch {
	case p > n && p > g:
		return Positive
	case n > p && n > g:
		return Neutral
	default:
		return Negative
	}
}

type Summary struct {
	Dominant     Category            `json:"dominant"`
	Distribution Distribution        `json:"distribution"`
	Level        RecommendationLevel `json:"recommendation"`
}

// Summarize aggregates reviews and derives the dominant category and level.
func Summarize(reviews []types.Review) (Summary, error) {
	d, err := Aggregate(reviews)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Dominant: Dominant(d), Distribution: d, Level: Level(d)}, nil
}
