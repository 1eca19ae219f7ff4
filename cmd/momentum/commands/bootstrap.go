package commands

import (
	"fmt"
	"os"

	"github.com/niveshlabs/quantmomentum/internal/backtest"
	"github.com/niveshlabs/quantmomentum/internal/calendar"
	"github.com/niveshlabs/quantmomentum/internal/data"
	"github.com/niveshlabs/quantmomentum/internal/external/nse"
	"github.com/niveshlabs/quantmomentum/internal/external/yahoo"
	"github.com/niveshlabs/quantmomentum/internal/scoring"
	"github.com/niveshlabs/quantmomentum/internal/selection"
	"github.com/niveshlabs/quantmomentum/internal/strategyconfig"
	"github.com/niveshlabs/quantmomentum/internal/universe"
	"github.com/niveshlabs/quantmomentum/pkg/config"
	"github.com/niveshlabs/quantmomentum/pkg/database"
	"github.com/niveshlabs/quantmomentum/pkg/httputil"
	"github.com/niveshlabs/quantmomentum/pkg/logger"
	"github.com/niveshlabs/quantmomentum/pkg/redis"
)

// scoringWorkers bounds the per-date scoring fan-out.
const scoringWorkers = 8

// app holds the wired components shared across commands. Built once
// per command invocation by newApp and torn down by close.
type app struct {
	cfg      *config.Config
	strategy *strategyconfig.Config
	snapshot *strategyconfig.DecisionSnapshot
	log      *logger.Logger

	db    *database.DB
	redis *redis.Client
	cache *redis.Cache

	prices     *data.PriceRepository
	trades     *data.TradeRepository
	portfolios *data.PortfolioRepository

	yahoo    *yahoo.Client
	universe *universe.Provider

	scorer   *scoring.UniverseScorer
	selector *selection.Selector
	schedule calendar.Schedule
}

// newApp loads configuration and wires the full pipeline. The scorer
// reads bars from the local price store; run fetch first to populate
// it.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
		cfg.LogFormat = "console"
	}

	log := logger.New(cfg)

	strategyPath := cfg.StrategyPath
	if strategyFile != "" {
		strategyPath = strategyFile
	}
	strategy, yamlData, err := strategyconfig.Load(strategyPath)
	if err != nil {
		return nil, fmt.Errorf("load strategy config: %w", err)
	}
	for _, warning := range strategyconfig.Warn(strategy) {
		log.WithFields(map[string]interface{}{
			"code": warning.Code,
		}).Warn(warning.Message)
	}

	snapshot, err := strategyconfig.NewDecisionSnapshot(strategy, yamlData, os.Getenv("GIT_COMMIT"))
	if err != nil {
		return nil, fmt.Errorf("snapshot strategy config: %w", err)
	}
	log.WithFields(map[string]interface{}{
		"strategy":    strategy.Meta.StrategyID,
		"config_hash": snapshot.ConfigHash[:12],
		"yaml_bytes":  len(yamlData),
	}).Info("Strategy config loaded")

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	cache := redis.NewCache(redisClient, "quantmomentum")

	prices := data.NewPriceRepository(db.Pool)
	trades := data.NewTradeRepository(db.Pool)
	portfolios := data.NewPortfolioRepository(db.Pool)
	members := data.NewMembershipRepository(db.Pool)

	httpClient := httputil.New(log).
		WithRateLimit(cfg.Yahoo.RatePerSec, cfg.Yahoo.Burst)
	yahooClient := yahoo.NewClient(httpClient, cache, log, cfg.Yahoo.BaseURL, ".NS")
	nseClient := nse.NewClient(httputil.New(log), log, cfg.NSE.BaseURL)

	universeProvider := universe.NewProvider(members, nseClient, cache, log)

	scorer := scoring.NewUniverseScorer(
		scoring.NewMomentumScorer(strategy.Signals.Momentum.LookbackDays, strategy.Signals.Momentum.SkipDays),
		scoring.NewFIPScorer(strategy.Signals.FIP.LookbackDays),
		prices,
		scoringWorkers,
		log,
	)

	selector := selection.NewSelector(selection.Config{
		MomentumGate:   strategy.Selection.MomentumGate,
		PortfolioSize:  strategy.Selection.PortfolioSize,
		MomentumWeight: strategy.Selection.MomentumWeight,
		FIPWeight:      strategy.Selection.FIPWeight,
	}, selection.NewRanker(log), log)

	schedule, err := calendar.NewSchedule(strategy.Rebalance.Months)
	if err != nil {
		db.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("build rebalance schedule: %w", err)
	}

	return &app{
		cfg:        cfg,
		strategy:   strategy,
		snapshot:   snapshot,
		log:        log,
		db:         db,
		redis:      redisClient,
		cache:      cache,
		prices:     prices,
		trades:     trades,
		portfolios: portfolios,
		yahoo:      yahooClient,
		universe:   universeProvider,
		scorer:     scorer,
		selector:   selector,
		schedule:   schedule,
	}, nil
}

// entryRules maps the strategy's entry profile for screen output.
func (a *app) entryRules() selection.EntryRules {
	return selection.EntryRules{
		MomentumRankMax:  a.strategy.Rules.Entry.MomentumRankMax,
		FIPMax:           a.strategy.Rules.Entry.FIPMax,
		CombinedScoreMin: a.strategy.Rules.Entry.CombinedScoreMin,
	}
}

// newEngine builds a simulation engine from the wired components.
func (a *app) newEngine() *backtest.Engine {
	return backtest.NewEngine(backtest.Config{
		InitialCapital:     a.strategy.Backtest.InitialCapital,
		PortfolioSize:      a.strategy.Selection.PortfolioSize,
		CloseTailPositions: a.strategy.Backtest.CloseTailPositions,
	}, a.schedule, a.scorer, a.selector, a.universe, a.strategy.Universe.Index, a.log)
}

// close releases connections.
func (a *app) close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
