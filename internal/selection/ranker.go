package selection

import (
	"sort"

	"github.com/niveshlabs/quantmomentum/internal/contracts"
	"github.com/niveshlabs/quantmomentum/pkg/logger"
)

// Ranker converts raw instrument scores into cross-sectional percentile
// ranks. Ranks are fractional percentiles in (0, 1] with average-rank
// tie handling; for momentum the sort is descending so the strongest
// instrument gets the rank nearest zero.
type Ranker struct {
	logger *logger.Logger
}

// NewRanker creates a new ranker.
func NewRanker(log *logger.Logger) *Ranker {
	return &Ranker{logger: log}
}

// RankMomentum assigns MomentumRank to every score. Ranks are computed
// over the full valid set; filtering must happen after, never before,
// so ranks stay universe-relative.
func (r *Ranker) RankMomentum(scores []contracts.InstrumentScore) []contracts.RankedCandidate {
	values := make([]float64, len(scores))
	for i, s := range scores {
		values[i] = s.Momentum
	}

	ranks := FractionalRank(values, true)

	candidates := make([]contracts.RankedCandidate, len(scores))
	for i, s := range scores {
		candidates[i] = contracts.RankedCandidate{
			InstrumentScore: s,
			MomentumRank:    ranks[i],
		}
	}

	if len(candidates) > 0 {
		r.logger.WithFields(map[string]interface{}{
			"universe": len(candidates),
		}).Debug("Momentum ranking completed")
	}

	return candidates
}

// RankFIP assigns FIPRank within the given candidate set. The ranking
// context is rebuilt from this set alone: lower (smoother) FIP gets the
// rank nearest zero.
func (r *Ranker) RankFIP(candidates []contracts.RankedCandidate) {
	values := make([]float64, len(candidates))
	for i, c := range candidates {
		values[i] = c.FIP
	}

	ranks := FractionalRank(values, false)
	for i := range candidates {
		candidates[i].FIPRank = ranks[i]
	}
}

// FractionalRank computes fractional percentile ranks with average-rank
// tie handling, aligned to the input order. With descending=true the
// largest value ranks first. Results are avgOrdinalRank/n, in (0, 1].
func FractionalRank(values []float64, descending bool) []float64 {
	n := len(values)
	if n == 0 {
		return nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		if descending {
			return values[order[a]] > values[order[b]]
		}
		return values[order[a]] < values[order[b]]
	})

	ranks := make([]float64, n)
	for start := 0; start < n; {
		end := start
		for end+1 < n && values[order[end+1]] == values[order[start]] {
			end++
		}

		// Tied values share the average of their ordinal ranks.
		avg := float64(start+end+2) / 2 // ordinal ranks are 1-based
		for i := start; i <= end; i++ {
			ranks[order[i]] = avg / float64(n)
		}

		start = end + 1
	}

	return ranks
}
