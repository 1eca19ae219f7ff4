package selection

import (
	"sort"
	"time"

	"github.com/niveshlabs/quantmomentum/internal/contracts"
	"github.com/niveshlabs/quantmomentum/pkg/logger"
)

// Config holds portfolio construction parameters.
type Config struct {
	// MomentumGate keeps instruments with MomentumRank <= gate.
	MomentumGate float64

	// PortfolioSize caps the number of selected candidates.
	PortfolioSize int

	// MomentumWeight and FIPWeight blend the two percentile ranks into
	// the combined score. They should sum to 1.0.
	MomentumWeight float64
	FIPWeight      float64
}

// DefaultConfig returns the standard quantitative momentum parameters:
// top decile momentum, 40 names, 70/30 momentum/quality blend.
func DefaultConfig() Config {
	return Config{
		MomentumGate:   0.90,
		PortfolioSize:  40,
		MomentumWeight: 0.70,
		FIPWeight:      0.30,
	}
}

// Selector builds the portfolio from ranked instrument scores.
type Selector struct {
	config Config
	ranker *Ranker
	logger *logger.Logger
}

// NewSelector creates a new selector.
func NewSelector(config Config, ranker *Ranker, log *logger.Logger) *Selector {
	return &Selector{
		config: config,
		ranker: ranker,
		logger: log,
	}
}

// Select ranks the valid scores and returns the portfolio for date.
// An empty gated subset yields an empty portfolio, which callers treat
// as a skipped rebalance.
func (s *Selector) Select(scores []contracts.InstrumentScore, date time.Time) *contracts.Portfolio {
	portfolio := &contracts.Portfolio{Date: date}
	if len(scores) == 0 {
		return portfolio
	}

	// Momentum ranks are universe-relative: ranked over the full valid
	// set before any filtering.
	candidates := s.ranker.RankMomentum(scores)

	gated := make([]contracts.RankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.MomentumRank <= s.config.MomentumGate {
			gated = append(gated, c)
		}
	}

	if len(gated) == 0 {
		s.logger.WithFields(map[string]interface{}{
			"date":     date.Format("2006-01-02"),
			"universe": len(candidates),
		}).Warn("Momentum gate left no candidates")
		return portfolio
	}

	// Quality ranks are rebuilt within the gated subset only.
	s.ranker.RankFIP(gated)

	for i := range gated {
		gated[i].CombinedScore = s.config.MomentumWeight*(1-gated[i].MomentumRank) +
			s.config.FIPWeight*(1-gated[i].FIPRank)
	}

	gatedCount := len(gated)

	// Stable sort keeps input order on ties for reproducibility.
	sort.SliceStable(gated, func(a, b int) bool {
		return gated[a].CombinedScore > gated[b].CombinedScore
	})

	if len(gated) > s.config.PortfolioSize {
		gated = gated[:s.config.PortfolioSize]
	}

	portfolio.Candidates = gated

	s.logger.WithFields(map[string]interface{}{
		"date":      date.Format("2006-01-02"),
		"universe":  len(candidates),
		"gated":     gatedCount,
		"selected":  portfolio.Size(),
		"top":       portfolio.Candidates[0].Symbol,
		"top_score": portfolio.Candidates[0].CombinedScore,
	}).Info("Portfolio selection completed")

	return portfolio
}
