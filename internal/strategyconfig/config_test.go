package strategyconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Meta.StrategyID = "test-strategy"
	cfg.Universe.Index = "NIFTY500"
	cfg.Signals.Momentum.LookbackDays = 252
	cfg.Signals.Momentum.SkipDays = 21
	cfg.Signals.FIP.LookbackDays = 252
	cfg.Selection.MomentumGate = 0.90
	cfg.Selection.MomentumWeight = 0.70
	cfg.Selection.FIPWeight = 0.30
	cfg.Selection.PortfolioSize = 40
	cfg.Rules.Entry.MomentumRankMax = 0.10
	cfg.Rules.Entry.FIPMax = -0.1
	cfg.Rules.Entry.CombinedScoreMin = 0.5
	cfg.Rules.Exit.MomentumRankExit = 0.30
	cfg.Rules.Exit.StopLossPct = 15
	cfg.Rules.Exit.MaxHoldingDays = 90
	cfg.Rebalance.Months = []int{2, 5, 8, 11}
	cfg.Backtest.InitialCapital = 10_000_000
	return cfg
}

func TestLoad_ShippedConfig(t *testing.T) {
	path := "../../config/strategy/nifty_momentum.yaml"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skip("config file not found")
	}

	cfg, yamlData, err := Load(path)
	require.NoError(t, err)
	require.NotEmpty(t, yamlData)

	assert.Equal(t, "nifty-momentum-v1", cfg.Meta.StrategyID)
	assert.Equal(t, 252, cfg.Signals.Momentum.LookbackDays)
	assert.Equal(t, 21, cfg.Signals.Momentum.SkipDays)
	assert.InDelta(t, 0.90, cfg.Selection.MomentumGate, 1e-12)
	assert.Equal(t, 40, cfg.Selection.PortfolioSize)
	assert.Equal(t, []int{2, 5, 8, 11}, cfg.Rebalance.Months)
	assert.InDelta(t, 0.10, cfg.Rules.Entry.MomentumRankMax, 1e-12)
	assert.Equal(t, 90, cfg.Rules.Exit.MaxHoldingDays)
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	yaml := `
meta:
  strategy_id: "x"
  typo_field: true
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	_, _, err := Load(path)
	assert.Error(t, err)
}

func TestHash_Deterministic(t *testing.T) {
	cfg := validConfig()

	first, err := Hash(cfg)
	require.NoError(t, err)
	assert.Len(t, first, 64)

	second, err := Hash(cfg)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Any parameter change must change the hash.
	cfg.Selection.PortfolioSize = 41
	third, err := Hash(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestNewDecisionSnapshot(t *testing.T) {
	cfg := validConfig()
	yamlData := []byte("strategy: test")

	snap, err := NewDecisionSnapshot(cfg, yamlData, "abc123")
	require.NoError(t, err)

	expected, err := Hash(cfg)
	require.NoError(t, err)

	assert.Equal(t, expected, snap.ConfigHash)
	assert.Equal(t, "strategy: test", snap.ConfigYAML)
	assert.Equal(t, "test-strategy", snap.StrategyID)
	assert.Equal(t, "abc123", snap.GitCommit)
	assert.False(t, snap.CreatedAt.IsZero())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(validConfig()))

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing strategy id", func(c *Config) { c.Meta.StrategyID = "" }},
		{"missing index", func(c *Config) { c.Universe.Index = "" }},
		{"zero lookback", func(c *Config) { c.Signals.Momentum.LookbackDays = 0 }},
		{"skip >= lookback", func(c *Config) { c.Signals.Momentum.SkipDays = 252 }},
		{"gate out of range", func(c *Config) { c.Selection.MomentumGate = 1.5 }},
		{"zero portfolio", func(c *Config) { c.Selection.PortfolioSize = 0 }},
		{"weights not summing", func(c *Config) { c.Selection.FIPWeight = 0.4 }},
		{"no rebalance months", func(c *Config) { c.Rebalance.Months = nil }},
		{"month out of range", func(c *Config) { c.Rebalance.Months = []int{0} }},
		{"duplicate month", func(c *Config) { c.Rebalance.Months = []int{2, 2} }},
		{"entry rank out of range", func(c *Config) { c.Rules.Entry.MomentumRankMax = 0 }},
		{"exit rank out of range", func(c *Config) { c.Rules.Exit.MomentumRankExit = 1.2 }},
		{"zero stop loss", func(c *Config) { c.Rules.Exit.StopLossPct = 0 }},
		{"zero max holding", func(c *Config) { c.Rules.Exit.MaxHoldingDays = 0 }},
		{"zero capital", func(c *Config) { c.Backtest.InitialCapital = 0 }},
		{"bad timezone", func(c *Config) { c.Meta.Timezone = "Mars/Olympus" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}

func TestWarn(t *testing.T) {
	cfg := validConfig()
	assert.Empty(t, Warn(cfg))

	cfg.Signals.Momentum.LookbackDays = 60
	cfg.Selection.PortfolioSize = 10
	warnings := Warn(cfg)
	assert.Len(t, warnings, 2)
}
