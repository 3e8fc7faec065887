package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shopping-advisor-go/internal/sentiment"
)

func dist(pos, neu, neg int) sentiment.Distribution {
	return sentiment.Distribution{
		Total:           10,
		PositivePercent: pos,
		NeutralPercent:  neu,
		NegativePercent: neg,
	}
}

func keys(fs []Fragment) []string {
	var out []string
	for _, f := range fs {
		out = append(out, f.Key)
	}
	return out
}

func TestNarrate_Headline(t *testing.T) {
	assert.Equal(t, "very_positive", Narrate(dist(61, 20, 19)).Headline.Key)
	assert.Equal(t, "positive", Narrate(dist(60, 20, 20)).Headline.Key)
	assert.Equal(t, "positive", Narrate(dist(41, 30, 29)).Headline.Key)
	assert.Equal(t, "mixed", Narrate(dist(40, 30, 30)).Headline.Key)
}

func TestNarrate_Notes(t *testing.T) {
	assert.Empty(t, Narrate(dist(80, 10, 10)).Notes)
	assert.Equal(t, []string{"significant_neutral"}, keys(Narrate(dist(70, 26, 4)).Notes))
	assert.Equal(t, []string{"acceptable_negative"}, keys(Narrate(dist(70, 9, 21)).Notes))
	assert.Equal(t, []string{"significant_neutral", "high_negative"}, keys(Narrate(dist(30, 30, 40)).Notes))
	// 30 is not above 30
	assert.Equal(t, []string{"acceptable_negative"}, keys(Narrate(dist(50, 20, 30)).Notes))
}

func TestNarrate_Verdict(t *testing.T) {
	assert.Equal(t, VerdictFavorable, Narrate(dist(61, 20, 19)).Verdict.Key)
	assert.Equal(t, VerdictNeutral, Narrate(dist(61, 19, 20)).Verdict.Key)
	assert.Equal(t, VerdictUnfavorable, Narrate(dist(50, 9, 31)).Verdict.Key)
	assert.Equal(t, VerdictNeutral, Narrate(dist(40, 30, 30)).Verdict.Key)
}

func TestNarrate_Text(t *testing.T) {
	n := Narrate(sentiment.Distribution{
		Positive: 3, Neutral: 1, Negative: 2, Total: 6,
		PositivePercent: 50, NeutralPercent: 17, NegativePercent: 33,
	})
	assert.Equal(t, 6, n.Total)
	assert.Equal(t, "positive", n.Headline.Key)
	assert.Equal(t, []string{"high_negative"}, keys(n.Notes))
	assert.Equal(t, VerdictUnfavorable, n.Verdict.Key)
	assert.Equal(t,
		"Based on 6 customer reviews: "+
			"Sentiment is positive (50%) and fairly dominant. Most customers had a good experience. "+
			"Warning: negative reviews are high (33%). Read the customer complaints in detail before buying. "+
			"Caution: consider alternatives or research further before buying.",
		n.Text)
}
