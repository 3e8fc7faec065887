package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	cases := []struct {
		name     string
		pos, neg int
		want     RecommendationLevel
	}{
		{"strong positive", 80, 10, HighlyRecommended},
		{"positive with some negatives", 75, 20, Recommended},
		{"moderate", 55, 20, Recommended},
		{"heavily negative", 30, 45, NotRecommended},
		{"middling", 45, 30, NeutralLevel},
		{"boundary 70 is not highly", 70, 10, Recommended},
		{"boundary 40 negative is neutral", 30, 40, NeutralLevel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Distribution{PositivePercent: tc.pos, NegativePercent: tc.neg}
			assert.Equal(t, tc.want, Level(d))
		})
	}
}

func TestDominant(t *testing.T) {
	assert.Equal(t, Positive, Dominant(Distribution{PositivePercent: 50, NeutralPercent: 17, NegativePercent: 33}))
	assert.Equal(t, Neutral, Dominant(Distribution{PositivePercent: 20, NeutralPercent: 60, NegativePercent: 20}))
	assert.Equal(t, Negative, Dominant(Distribution{PositivePercent: 10, NeutralPercent: 20, NegativePercent: 70}))
	// ties fall through to negative
	assert.Equal(t, Negative, Dominant(Distribution{PositivePercent: 50, NeutralPercent: 0, NegativePercent: 50}))
	assert.Equal(t, Negative, Dominant(Distribution{PositivePercent: 33, NeutralPercent: 33, NegativePercent: 33}))
}

func TestSummarize(t *testing.T) {
	s, err := Summarize(reviews(5, 5, 4, 3, 2, 1))
	require.NoError(t, err)
	assert.Equal(t, Positive, s.Dominant)
	assert.Equal(t, NeutralLevel, s.Level)
	assert.Equal(t, 6, s.Distribution.Total)

	_, err = Summarize(nil)
	assert.ErrorIs(t, err, ErrNoReviews)
}
