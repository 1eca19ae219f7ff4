package strategyconfig

import (
	"fmt"
	"math"
	"time"
)

// ValidationError is a hard constraint violation. The process must not
// run with an invalid strategy config.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning is a recommended-constraint violation. Logged, never fatal.
type Warning struct {
	Code    string
	Message string
}

// Validate checks all hard constraints and returns the first failure.
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.StrategyID == "" {
		return ValidationError{"meta.strategy_id", "required"}
	}
	if cfg.Meta.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Meta.Timezone); err != nil {
			return ValidationError{"meta.timezone", err.Error()}
		}
	}

	// === Universe ===
	if cfg.Universe.Index == "" {
		return ValidationError{"universe.index", "required"}
	}

	// === Signals ===
	m := cfg.Signals.Momentum
	if m.LookbackDays <= 0 {
		return ValidationError{"signals.momentum.lookback_days", "must be > 0"}
	}
	if m.SkipDays < 0 {
		return ValidationError{"signals.momentum.skip_days", "must be >= 0"}
	}
	if m.SkipDays >= m.LookbackDays {
		return ValidationError{"signals.momentum", "skip_days must be < lookback_days"}
	}
	if cfg.Signals.FIP.LookbackDays <= 0 {
		return ValidationError{"signals.fip.lookback_days", "must be > 0"}
	}

	// === Selection ===
	s := cfg.Selection
	if s.MomentumGate <= 0 || s.MomentumGate > 1 {
		return ValidationError{"selection.momentum_gate", "must be in (0, 1]"}
	}
	if s.PortfolioSize <= 0 {
		return ValidationError{"selection.portfolio_size", "must be > 0"}
	}
	if s.MomentumWeight < 0 || s.FIPWeight < 0 {
		return ValidationError{"selection", "weights must be >= 0"}
	}
	if math.Abs(s.MomentumWeight+s.FIPWeight-1.0) > 1e-6 {
		return ValidationError{"selection", fmt.Sprintf(
			"weights must sum to 1.0, got %.4f", s.MomentumWeight+s.FIPWeight)}
	}

	// === Rules ===
	if cfg.Rules.Entry.MomentumRankMax <= 0 || cfg.Rules.Entry.MomentumRankMax > 1 {
		return ValidationError{"rules.entry.momentum_rank_max", "must be in (0, 1]"}
	}
	if cfg.Rules.Exit.MomentumRankExit <= 0 || cfg.Rules.Exit.MomentumRankExit > 1 {
		return ValidationError{"rules.exit.momentum_rank_exit", "must be in (0, 1]"}
	}
	if cfg.Rules.Exit.StopLossPct <= 0 {
		return ValidationError{"rules.exit.stop_loss_pct", "must be > 0"}
	}
	if cfg.Rules.Exit.MaxHoldingDays <= 0 {
		return ValidationError{"rules.exit.max_holding_days", "must be > 0"}
	}

	// === Rebalance ===
	if len(cfg.Rebalance.Months) == 0 {
		return ValidationError{"rebalance.months", "required"}
	}
	seen := make(map[int]bool)
	for i, month := range cfg.Rebalance.Months {
		if month < 1 || month > 12 {
			return ValidationError{
				Field:   fmt.Sprintf("rebalance.months[%d]", i),
				Message: "must be in [1, 12]",
			}
		}
		if seen[month] {
			return ValidationError{
				Field:   fmt.Sprintf("rebalance.months[%d]", i),
				Message: "duplicate month",
			}
		}
		seen[month] = true
	}

	// === Backtest ===
	if cfg.Backtest.InitialCapital <= 0 {
		return ValidationError{"backtest.initial_capital", "must be > 0"}
	}

	return nil
}

// Warn checks recommended constraints.
func Warn(cfg *Config) []Warning {
	var warnings []Warning

	if cfg.Signals.Momentum.LookbackDays < 126 {
		warnings = append(warnings, Warning{
			Code:    "SHORT_LOOKBACK",
			Message: "momentum lookback < 126 trading days leans toward short-term reversal noise",
		})
	}

	if cfg.Selection.MomentumGate > 0.95 {
		warnings = append(warnings, Warning{
			Code:    "WIDE_GATE",
			Message: "momentum gate > 0.95 admits nearly the whole universe",
		})
	}

	if cfg.Selection.PortfolioSize < 20 {
		warnings = append(warnings, Warning{
			Code:    "CONCENTRATED_PORTFOLIO",
			Message: "fewer than 20 holdings increases idiosyncratic risk",
		})
	}

	return warnings
}
