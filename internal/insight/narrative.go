package insight

import (
	"fmt"
	"strings"

	"shopping-advisor-go/internal/sentiment"
)

// Fragment is one sentence of the review narrative, tagged with the rule
// that produced it.
type Fragment struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

const (
	VerdictFavorable   = "favorable"
	VerdictUnfavorable = "unfavorable"
	VerdictNeutral     = "neutral"
)

type Narrative struct {
	Total    int        `json:"total"`
	Headline Fragment   `json:"headline"`
	Notes    []Fragment `json:"notes,omitempty"`
	Verdict  Fragment   `json:"verdict"`
	Text     string     `json:"text"`
}

type rule struct {
	key   string
	match func(d sentiment.Distribution) bool
	text  func(d sentiment.Distribution) string
}

func always(sentiment.Distribution) bool { return true }

// Each table is checked top to bottom and contributes at most one fragment.
var (
	headlineRules = []rule{
		{
			key:   "very_positive",
			match: func(d sentiment.Distribution) bool { return d.PositivePercent > 60 },
			text: func(d sentiment.Distribution) string {
				return fmt.Sprintf("Sentiment is very positive (%d%%) and dominant. Most customers are highly satisfied with this product.", d.PositivePercent)
			},
		},
		{
			key:   "positive",
			match: func(d sentiment.Distribution) bool { return d.PositivePercent > 40 },
			text: func(d sentiment.Distribution) string {
				return fmt.Sprintf("Sentiment is positive (%d%%) and fairly dominant. Most customers had a good experience.", d.PositivePercent)
			},
		},
		{
			key:   "mixed",
			match: always,
			text: func(sentiment.Distribution) string {
				return "Sentiment is mixed, with a distribution worth a closer look."
			},
		},
	}

	neutralRules = []rule{
		{
			key:   "significant_neutral",
			match: func(d sentiment.Distribution) bool { return d.NeutralPercent > 25 },
			text: func(d sentiment.Distribution) string {
				return fmt.Sprintf("Neutral reviews make up a significant share (%d%%), which points to room for improvement.", d.NeutralPercent)
			},
		},
	}

	negativeRules = []rule{
		{
			key:   "high_negative",
			match: func(d sentiment.Distribution) bool { return d.NegativePercent > 30 },
			text: func(d sentiment.Distribution) string {
				return fmt.Sprintf("Warning: negative reviews are high (%d%%). Read the customer complaints in detail before buying.", d.NegativePercent)
			},
		},
		{
			key:   "acceptable_negative",
			match: func(d sentiment.Distribution) bool { return d.NegativePercent > 20 },
			text: func(d sentiment.Distribution) string {
				return fmt.Sprintf("Negative reviews (%d%%) are within an acceptable range but still worth weighing.", d.NegativePercent)
			},
		},
	}

	verdictRules = []rule{
		{
			key:   VerdictFavorable,
			match: func(d sentiment.Distribution) bool { return d.PositivePercent > 60 && d.NegativePercent < 20 },
			text: func(sentiment.Distribution) string {
				return "Recommendation: customer satisfaction with this product is high."
			},
		},
		{
			key:   VerdictUnfavorable,
			match: func(d sentiment.Distribution) bool { return d.NegativePercent > 30 },
			text: func(sentiment.Distribution) string {
				return "Caution: consider alternatives or research further before buying."
			},
		},
		{
			key:   VerdictNeutral,
			match: always,
			text: func(sentiment.Distribution) string {
				return "Consideration: read the reviews in detail before deciding."
			},
		},
	}
)

func pick(rules []rule, d sentiment.Distribution) (Fragment, bool) {
	for _, r := range rules {
		if r.match(d) {
			return Fragment{Key: r.key, Text: r.text(d)}, true
		}
	}
	return Fragment{}, false
}

// Narrate turns a distribution into a headline, optional notes and a
// verdict, then joins them into a single paragraph.
func Narrate(d sentiment.Distribution) Narrative {
	n := Narrative{Total: d.Total}
	n.Headline, _ = pick(headlineRules, d)
	for _, rules := range [][]rule{neutralRules, negativeRules} {
		if f, ok := pick(rules, d); ok {
			n.Notes = append(n.Notes, f)
		}
	}
	n.Verdict, _ = pick(verdictRules, d)

	parts := []string{fmt.Sprintf("Based on %d customer reviews:", d.Total), n.Headline.Text}
	for _, f := range n.Notes {
		parts = append(parts, f.Text)
	}
	parts = append(parts, n.Verdict.Text)
	n.Text = strings.Join(parts, " ")
	return n
}
