package contracts

import (
	"context"
	"time"
)

// Repository and provider interfaces are defined here so that the
// pipeline packages depend on contracts only.

// BarProvider supplies daily bar series for instruments. Implemented by
// the database-backed price repository and by the remote chart client.
type BarProvider interface {
	GetDailyBars(ctx context.Context, symbol string, from, to time.Time) ([]Bar, error)
}

// MembershipProvider supplies index constituent lists.
type MembershipProvider interface {
	Constituents(ctx context.Context, index string) ([]string, error)
}

// PriceRepository manages persisted daily bars.
type PriceRepository interface {
	BarProvider
	GetLatestBar(ctx context.Context, symbol string) (*Bar, error)
	SaveBatch(ctx context.Context, symbol string, bars []Bar) error
}

// TradeRepository persists closed trades from backtest runs.
type TradeRepository interface {
	SaveBatch(ctx context.Context, runID string, trades []Trade) error
	GetByRun(ctx context.Context, runID string) ([]Trade, error)
}

// PortfolioRepository persists portfolio snapshots between process
// invocations. Snapshots round-trip the full RankedCandidate field set
// so turnover can be computed against the previous rebalance.
type PortfolioRepository interface {
	SaveSnapshot(ctx context.Context, portfolio *Portfolio) error
	GetLatest(ctx context.Context) (*Portfolio, error)
	GetByDate(ctx context.Context, date time.Time) (*Portfolio, error)
}
