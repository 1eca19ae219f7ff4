package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niveshlabs/quantmomentum/internal/contracts"
	"github.com/niveshlabs/quantmomentum/pkg/logger"
)

// fakeBars serves deterministic geometric bar series per symbol.
type fakeBars struct {
	// dailyReturn per symbol; missing symbols fail the fetch.
	growth map[string]float64
	// barsFor overrides the series length per symbol.
	short map[string]int
}

func (f *fakeBars) GetDailyBars(ctx context.Context, symbol string, from, to time.Time) ([]contracts.Bar, error) {
	r, ok := f.growth[symbol]
	if !ok {
		return nil, errors.New("unknown symbol")
	}

	n := 300
	if override, ok := f.short[symbol]; ok {
		n = override
	}

	bars := make([]contracts.Bar, n)
	price := 100.0
	for i := range bars {
		bars[i] = contracts.Bar{
			Date:   to.AddDate(0, 0, i-n+1),
			Close:  price,
			Volume: 1000,
		}
		price *= 1 + r
	}
	return bars, nil
}

func newTestScorer(bars contracts.BarProvider) *UniverseScorer {
	return NewUniverseScorer(
		NewMomentumScorer(LookbackReturns, SkipRecentReturns),
		NewFIPScorer(LookbackReturns),
		bars,
		4,
		logger.NewNop(),
	)
}

func TestUniverseScorer_SkipsFailuresWithoutBlocking(t *testing.T) {
	bars := &fakeBars{
		growth: map[string]float64{
			"AAA": 0.01,
			"BBB": 0.002,
			"CCC": -0.001,
			"DDD": 0.005,
		},
		short: map[string]int{
			// Too few bars for the lookback.
			"DDD": 100,
		},
	}
	scorer := newTestScorer(bars)

	date := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	scores := scorer.ScoreUniverse(context.Background(),
		[]string{"AAA", "BBB", "CCC", "DDD", "MISSING"}, date)

	require.Len(t, scores, 3)

	// Result keeps universe order.
	assert.Equal(t, "AAA", scores[0].Symbol)
	assert.Equal(t, "BBB", scores[1].Symbol)
	assert.Equal(t, "CCC", scores[2].Symbol)

	for _, s := range scores {
		assert.Equal(t, date, s.EvalDate)
		assert.Greater(t, s.LastPrice, 0.0)
	}

	// Stronger growth scores higher momentum.
	assert.Greater(t, scores[0].Momentum, scores[1].Momentum)
	assert.Greater(t, scores[1].Momentum, scores[2].Momentum)
	assert.Less(t, scores[2].Momentum, 0.0)
}

func TestUniverseScorer_EmptyUniverse(t *testing.T) {
	scorer := newTestScorer(&fakeBars{growth: map[string]float64{}})

	scores := scorer.ScoreUniverse(context.Background(), nil, time.Now())
	assert.Empty(t, scores)
}
