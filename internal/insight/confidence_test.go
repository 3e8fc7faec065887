package insight

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpretConfidence_TierBoundaries(t *testing.T) {
	cases := []struct {
		percent int
		want    Tier
	}{
		{0, TierVeryLow},
		{39, TierVeryLow},
		{40, TierLow},
		{54, TierLow},
		{55, TierMedium},
		{69, TierMedium},
		{70, TierHigh},
		{84, TierHigh},
		{85, TierVeryHigh},
		{100, TierVeryHigh},
	}
	for _, tc := range cases {
		c := InterpretConfidence(float64(tc.percent) / 100)
		assert.Equal(t, tc.percent, c.Percent)
		assert.Equal(t, tc.want, c.Tier, "percent %d", tc.percent)
	}
}

func TestInterpretConfidence_TypicalScore(t *testing.T) {
	c := InterpretConfidence(0.72)
	assert.Equal(t, 72, c.Percent)
	assert.Equal(t, TierHigh, c.Tier)
	assert.Equal(t, "High", c.Label)
	assert.Equal(t, "Low", c.Risk)
	assert.Equal(t, "✅", c.Icon)
	assert.NotEmpty(t, c.Description)
}

func TestInterpretConfidence_RiskIsInverse(t *testing.T) {
	assert.Equal(t, "Very low", InterpretConfidence(0.9).Risk)
	assert.Equal(t, "Medium", InterpretConfidence(0.6).Risk)
	assert.Equal(t, "High", InterpretConfidence(0.45).Risk)
	assert.Equal(t, "Very high", InterpretConfidence(0.1).Risk)
}

func TestInterpretConfidence_ClampsOutOfRange(t *testing.T) {
	hi := InterpretConfidence(1.7)
	assert.Equal(t, 1.0, hi.Score)
	assert.Equal(t, 100, hi.Percent)
	assert.Equal(t, TierVeryHigh, hi.Tier)

	lo := InterpretConfidence(-0.3)
	assert.Equal(t, 0.0, lo.Score)
	assert.Equal(t, 0, lo.Percent)
	assert.Equal(t, TierVeryLow, lo.Tier)

	nan := InterpretConfidence(math.NaN())
	assert.Equal(t, 0, nan.Percent)
	assert.Equal(t, TierVeryLow, nan.Tier)
}

func TestInterpretConfidence_RoundsHalfUp(t *testing.T) {
	// 0.845 is stored slightly below itself, 0.8451 is not
	assert.Equal(t, 85, InterpretConfidence(0.8451).Percent)
	assert.Equal(t, TierVeryHigh, InterpretConfidence(0.8451).Tier)
	assert.Equal(t, TierHigh, InterpretConfidence(0.844).Tier)
}
