package selection

import "github.com/niveshlabs/quantmomentum/internal/contracts"

// EntryRules is the strict conviction profile layered on top of the
// selected portfolio: top-decile momentum, a clearly smooth path and a
// combined score with margin. Candidates failing it stay in the
// portfolio; the flag only marks the strongest entries.
type EntryRules struct {
	MomentumRankMax  float64
	FIPMax           float64
	CombinedScoreMin float64
}

// Signal reports whether a candidate meets every entry condition.
func (r EntryRules) Signal(c contracts.RankedCandidate) bool {
	return c.MomentumRank <= r.MomentumRankMax &&
		c.FIP < r.FIPMax &&
		c.CombinedScore >= r.CombinedScoreMin
}
