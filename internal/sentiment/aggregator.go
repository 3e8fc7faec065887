package sentiment

import (
	"errors"
	"math"
	"strconv"

	"shopping-advisor-go/internal/types"
)

// ErrNoReviews means there is nothing to aggregate. Callers should report
// sentiment as unavailable rather than as a zero distribution.
var ErrNoReviews = errors.New("sentiment: no reviews to aggregate")

type Distribution struct {
	Positive        int `json:"positive"`
	Neutral         int `json:"neutral"`
	Negative        int `json:"negative"`
	Total           int `json:"total"`
	PositivePercent int `json:"positive_percent"`
	NeutralPercent  int `json:"neutral_percent"`
	NegativePercent int `json:"negative_percent"`
}

// Count returns the number of reviews in a category.
func (d Distribution) Count(c Category) int {
	switch c {
	case Positive:
		return d.Positive
	case Neutral:
		return d.Neutral
	default:
		return d.Negative
	}
}

// Percent returns the rounded share of a category.
func (d Distribution) Percent(c Category) int {
	switch c {
	case Positive:
		return d.PositivePercent
	case Neutral:
		return d.NeutralPercent
	default:
		return d.NegativePercent
	}
}

// Aggregate classifies every review and computes per-category counts and
// percentages. Each percentage is rounded on its own, so the three may not
// add up to exactly 100.
func Aggregate(reviews []types.Review) (Distribution, error) {
	if len(reviews) == 0 {
		return Distribution{}, ErrNoReviews
	}
	var d Distribution
	for _, r := range reviews {
		switch Classify(float64(r.Rating)) {
		case Positive:
			d.Positive++
		case Neutral:
			d.Neutral++
		default:
			d.Negative++
		}
	}
	d.Total = len(reviews)
	d.PositivePercent = percent(d.Positive, d.Total)
	d.NeutralPercent = percent(d.Neutral, d.Total)
	d.NegativePercent = percent(d.Negative, d.Total)
	return d, nil
}

func percent(count, total int) int {
	return int(math.Round(float64(count) / float64(total) * 100))
}

// RatingHistogram counts reviews per raw rating value. Unparsable ratings
// are grouped under "unknown".
func RatingHistogram(reviews []types.Review) map[string]int {
	out := map[string]int{}
	for _, r := range reviews {
		key := "unknown"
		if r.Rating.Valid() {
			key = strconv.FormatFloat(float64(r.Rating), 'f', -1, 64)
		}
		out[key]++
	}
	return out
}
