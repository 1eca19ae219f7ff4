package contracts

import "time"

// InstrumentScore holds the raw signal values for one instrument at one
// evaluation date. Scores are only created for instruments with enough
// history; instruments that fail scoring never reach the ranker.
type InstrumentScore struct {
	Symbol     string    `json:"symbol"`
	Momentum   float64   `json:"momentum"`
	FIP        float64   `json:"fip"`
	LastPrice  float64   `json:"last_price"`
	LastVolume int64     `json:"last_volume"`
	EvalDate   time.Time `json:"eval_date"`
}

// RankedCandidate is an InstrumentScore augmented with percentile ranks
// and the combined selection score. Ranks are fractional percentiles in
// (0, 1]; lower is better for both metrics.
type RankedCandidate struct {
	InstrumentScore

	MomentumRank  float64 `json:"momentum_rank"`
	FIPRank       float64 `json:"fip_rank"`
	CombinedScore float64 `json:"combined_score"`
}

// Portfolio is the selected candidate set for one evaluation date,
// ordered by combined score descending.
type Portfolio struct {
	Date       time.Time         `json:"date"`
	Candidates []RankedCandidate `json:"candidates"`
}

// Empty reports whether the portfolio holds no candidates.
func (p *Portfolio) Empty() bool {
	return len(p.Candidates) == 0
}

// Size returns the number of candidates.
func (p *Portfolio) Size() int {
	return len(p.Candidates)
}

// Symbols returns the candidate symbols in portfolio order.
func (p *Portfolio) Symbols() []string {
	symbols := make([]string, len(p.Candidates))
	for i, c := range p.Candidates {
		symbols[i] = c.Symbol
	}
	return symbols
}

// Contains checks if a symbol is in the portfolio.
func (p *Portfolio) Contains(symbol string) bool {
	for _, c := range p.Candidates {
		if c.Symbol == symbol {
			return true
		}
	}
	return false
}
