package insight

import (
	"strings"

	"shopping-advisor-go/internal/types"
)

var recommendationLabels = map[string]string{
	types.RecommendBuy:           "Worth buying",
	types.RecommendDoNotBuy:      "Not worth buying",
	types.RecommendBuyWithCaveat: "Worth buying with caveats",
}

// RecommendationLabel returns the display label for an advisory code.
// Unknown codes are returned as-is.
func RecommendationLabel(code string) string {
	if l, ok := recommendationLabels[code]; ok {
		return l
	}
	return code
}

// RecommendationClass is the lower kebab-case form of a code, e.g.
// "layak-beli-dengan-catatan".
func RecommendationClass(code string) string {
	return strings.ReplaceAll(strings.ToLower(code), "_", "-")
}

// KnownRecommendation reports whether code is one the advisory service is
// documented to return.
func KnownRecommendation(code string) bool {
	_, ok := recommendationLabels[code]
	return ok
}
