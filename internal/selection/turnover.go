package selection

import (
	"sort"

	"github.com/niveshlabs/quantmomentum/internal/contracts"
)

// Turnover describes the membership change between two consecutive
// portfolio snapshots.
type Turnover struct {
	Entering    []string `json:"entering"`
	Exiting     []string `json:"exiting"`
	Continuing  []string `json:"continuing"`
	TurnoverPct float64  `json:"turnover_pct"`
}

// ComputeTurnover diffs the current portfolio against the previous
// snapshot. A nil previous portfolio means everything is entering and
// turnover is 100%.
func ComputeTurnover(previous, current *contracts.Portfolio) Turnover {
	t := Turnover{
		Entering:   []string{},
		Exiting:    []string{},
		Continuing: []string{},
	}
	if current == nil || current.Empty() {
		if previous != nil {
			t.Exiting = append(t.Exiting, previous.Symbols()...)
			sort.Strings(t.Exiting)
		}
		return t
	}

	prevSet := make(map[string]bool)
	if previous != nil {
		for _, sym := range previous.Symbols() {
			prevSet[sym] = true
		}
	}

	for _, sym := range current.Symbols() {
		if prevSet[sym] {
			t.Continuing = append(t.Continuing, sym)
			delete(prevSet, sym)
		} else {
			t.Entering = append(t.Entering, sym)
		}
	}

	for sym := range prevSet {
		t.Exiting = append(t.Exiting, sym)
	}

	sort.Strings(t.Entering)
	sort.Strings(t.Exiting)
	sort.Strings(t.Continuing)

	t.TurnoverPct = float64(len(t.Entering)) / float64(current.Size()) * 100
	return t
}
