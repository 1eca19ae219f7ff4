// Package strategyconfig is the single source of truth for strategy
// parameters. Every tunable number in the pipeline comes from here so a
// run can be reproduced from its config hash alone.
package strategyconfig

import "time"

// Config is the full strategy parameter set.
type Config struct {
	Meta      Meta      `yaml:"meta" json:"meta"`
	Universe  Universe  `yaml:"universe" json:"universe"`
	Signals   Signals   `yaml:"signals" json:"signals"`
	Selection Selection `yaml:"selection" json:"selection"`
	Rules     Rules     `yaml:"rules" json:"rules"`
	Rebalance Rebalance `yaml:"rebalance" json:"rebalance"`
	Backtest  Backtest  `yaml:"backtest" json:"backtest"`
}

// Meta identifies the strategy.
type Meta struct {
	StrategyID string `yaml:"strategy_id" json:"strategy_id"`
	Version    string `yaml:"version" json:"version"`
	Timezone   string `yaml:"timezone" json:"timezone"`
}

// Universe names the index whose constituents form the eligible pool.
type Universe struct {
	Index string `yaml:"index" json:"index"`
}

// Signals holds the momentum and quality signal parameters.
type Signals struct {
	Momentum Momentum `yaml:"momentum" json:"momentum"`
	FIP      FIP      `yaml:"fip" json:"fip"`
}

// Momentum is the intermediate-term momentum window: LookbackDays
// trailing daily returns with the most recent SkipDays excluded for
// short-term reversal.
type Momentum struct {
	LookbackDays int `yaml:"lookback_days" json:"lookback_days"`
	SkipDays     int `yaml:"skip_days" json:"skip_days"`
}

// FIP is the frog-in-the-pan smoothness window.
type FIP struct {
	LookbackDays int `yaml:"lookback_days" json:"lookback_days"`
}

// Selection holds the gate, blend weights and portfolio size.
type Selection struct {
	MomentumGate   float64 `yaml:"momentum_gate" json:"momentum_gate"`
	MomentumWeight float64 `yaml:"momentum_weight" json:"momentum_weight"`
	FIPWeight      float64 `yaml:"fip_weight" json:"fip_weight"`
	PortfolioSize  int     `yaml:"portfolio_size" json:"portfolio_size"`
}

// Rules are the entry and exit guides printed alongside screen output.
// They flag conviction, not membership: the gate and blend in Selection
// alone decide the portfolio.
type Rules struct {
	Entry EntryRules `yaml:"entry" json:"entry"`
	Exit  ExitRules  `yaml:"exit" json:"exit"`
}

// EntryRules is the strict entry profile. All conditions must hold.
type EntryRules struct {
	MomentumRankMax  float64 `yaml:"momentum_rank_max" json:"momentum_rank_max"`
	FIPMax           float64 `yaml:"fip_max" json:"fip_max"`
	CombinedScoreMin float64 `yaml:"combined_score_min" json:"combined_score_min"`
}

// ExitRules lists the conditions any one of which suggests an exit
// before the next scheduled rebalance.
type ExitRules struct {
	MomentumRankExit float64 `yaml:"momentum_rank_exit" json:"momentum_rank_exit"`
	FIPExit          float64 `yaml:"fip_exit" json:"fip_exit"`
	StopLossPct      float64 `yaml:"stop_loss_pct" json:"stop_loss_pct"`
	MaxHoldingDays   int     `yaml:"max_holding_days" json:"max_holding_days"`
}

// Rebalance names the months whose last trading day triggers a
// rebalance. Positions are held until the next rebalance date.
type Rebalance struct {
	Months []int `yaml:"months" json:"months"`
}

// Backtest holds simulation-only parameters.
type Backtest struct {
	InitialCapital     float64 `yaml:"initial_capital" json:"initial_capital"`
	CloseTailPositions bool    `yaml:"close_tail_positions" json:"close_tail_positions"`
}

// DecisionSnapshot freezes the exact configuration a run used, for
// reproducibility.
type DecisionSnapshot struct {
	ConfigHash string    `json:"config_hash"`
	ConfigYAML string    `json:"config_yaml"`
	StrategyID string    `json:"strategy_id"`
	GitCommit  string    `json:"git_commit"`
	CreatedAt  time.Time `json:"created_at"`
}
