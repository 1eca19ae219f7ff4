package jobs

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niveshlabs/quantmomentum/internal/calendar"
	"github.com/niveshlabs/quantmomentum/internal/contracts"
	"github.com/niveshlabs/quantmomentum/internal/scoring"
	"github.com/niveshlabs/quantmomentum/internal/selection"
	"github.com/niveshlabs/quantmomentum/pkg/logger"
)

type fakeMembers []string

func (f fakeMembers) Constituents(ctx context.Context, index string) ([]string, error) {
	return f, nil
}

// fakeGrowthBars serves a daily geometric series per symbol.
type fakeGrowthBars map[string]float64

func (f fakeGrowthBars) GetDailyBars(ctx context.Context, symbol string, from, to time.Time) ([]contracts.Bar, error) {
	growth := f[symbol]
	base := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	var bars []contracts.Bar
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		days := int(day.Sub(base).Hours() / 24)
		bars = append(bars, contracts.Bar{
			Date:   day,
			Close:  100 * math.Pow(1+growth, float64(days)),
			Volume: 1000,
		})
	}
	return bars, nil
}

// memoryPortfolios keeps snapshots in memory, keyed by date.
type memoryPortfolios struct {
	snapshots map[time.Time]*contracts.Portfolio
	latest    time.Time
}

func newMemoryPortfolios() *memoryPortfolios {
	return &memoryPortfolios{snapshots: make(map[time.Time]*contracts.Portfolio)}
}

func (m *memoryPortfolios) SaveSnapshot(ctx context.Context, p *contracts.Portfolio) error {
	m.snapshots[p.Date] = p
	if p.Date.After(m.latest) {
		m.latest = p.Date
	}
	return nil
}

func (m *memoryPortfolios) GetLatest(ctx context.Context) (*contracts.Portfolio, error) {
	return m.snapshots[m.latest], nil
}

func (m *memoryPortfolios) GetByDate(ctx context.Context, date time.Time) (*contracts.Portfolio, error) {
	return m.snapshots[date], nil
}

func newScreeningFixture(gate float64) (*ScreeningJob, *memoryPortfolios) {
	bars := fakeGrowthBars{"FAST": 0.003, "MID": 0.001, "SLOW": -0.001}
	scorer := scoring.NewUniverseScorer(
		scoring.NewMomentumScorer(scoring.LookbackReturns, scoring.SkipRecentReturns),
		scoring.NewFIPScorer(scoring.LookbackReturns),
		bars,
		2,
		logger.NewNop(),
	)
	selector := selection.NewSelector(selection.Config{
		MomentumGate:   gate,
		PortfolioSize:  2,
		MomentumWeight: 0.70,
		FIPWeight:      0.30,
	}, selection.NewRanker(logger.NewNop()), logger.NewNop())

	portfolios := newMemoryPortfolios()
	job := NewScreeningJob(
		scorer, selector,
		fakeMembers{"FAST", "MID", "SLOW"},
		portfolios,
		calendar.Default(),
		"TEST", "@daily",
		logger.NewNop(),
	)
	return job, portfolios
}

func TestScreeningJob_SavesSnapshot(t *testing.T) {
	job, portfolios := newScreeningFixture(0.90)
	date := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)

	require.NoError(t, job.RunForDate(context.Background(), date))

	saved, err := portfolios.GetByDate(context.Background(), date)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, 2, saved.Size())
	assert.True(t, saved.Contains("FAST"))
	assert.True(t, saved.Contains("MID"))
}

func TestScreeningJob_EmptyGateDoesNotSave(t *testing.T) {
	job, portfolios := newScreeningFixture(0.05)
	date := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)

	require.NoError(t, job.RunForDate(context.Background(), date))

	saved, err := portfolios.GetByDate(context.Background(), date)
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestScreeningJob_Metadata(t *testing.T) {
	job, _ := newScreeningFixture(0.90)
	assert.Equal(t, "screening", job.Name())
	assert.Equal(t, "@daily", job.Schedule())
}
