package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketScope/internal/model"
)

func TestNormalize(t *testing.T) {
	in := map[string]*model.TickerSeries{
		"AAA": typedSeries("AAA", []float64{10, 20, 30}),
		"BBB": typedSeries("BBB", []float64{200, 100, 300}),
	}
	out := Normalize(in)

	assert.Equal(t, []float64{0, 0.5, 1}, out["AAA"].Close)
	assert.Equal(t, []float64{0.5, 0, 1}, out["BBB"].Close, "scaling is fit per ticker")
	assert.Equal(t, []float64{10, 20, 30}, in["AAA"].Close, "input not mutated")
}

func TestNormalize_ConstantColumn(t *testing.T) {
	in := map[string]*model.TickerSeries{
		"AAA": typedSeries("AAA", []float64{5, 5, 5}),
	}
	out := Normalize(in)

	require.Len(t, out["AAA"].Close, 3)
	for _, v := range out["AAA"].Close {
		assert.Zero(t, v, "degenerate min==max maps to 0")
	}
}

func TestNormalize_LeavesDerivedColumnsRaw(t *testing.T) {
	s := typedSeries("AAA", []float64{10, 20, 30})
	derived, err := DeriveFeatures(map[string]*model.TickerSeries{"AAA": s}, FeatureOptions{
		RollingWindow:    2,
		OutlierThreshold: 3,
		ReturnThreshold:  2,
	})
	require.NoError(t, err)

	out := Normalize(derived)
	assert.InDelta(t, 100.0, out["AAA"].DailyReturn[1], 1e-9, "returns keep their raw-price scale")
	assert.InDelta(t, 50.0, out["AAA"].DailyReturn[2], 1e-9)
	assert.Equal(t, derived["AAA"].ZScore, out["AAA"].ZScore)
}
