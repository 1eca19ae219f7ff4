package data

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/niveshlabs/quantmomentum/internal/contracts"
	"github.com/niveshlabs/quantmomentum/internal/strategyconfig"
)

// TradeRepository implements contracts.TradeRepository on top of
// quant.trades, with run metadata in quant.backtest_runs.
type TradeRepository struct {
	pool *pgxpool.Pool
}

// NewTradeRepository creates a new trade repository.
func NewTradeRepository(pool *pgxpool.Pool) *TradeRepository {
	return &TradeRepository{pool: pool}
}

// SaveBatch persists the closed trades of a backtest run.
func (r *TradeRepository) SaveBatch(ctx context.Context, runID string, trades []contracts.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	query := `
		INSERT INTO quant.trades
			(run_id, symbol, entry_date, exit_date, entry_price, exit_price, return_pct, holding_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	batch := &pgx.Batch{}
	for _, t := range trades {
		batch.Queue(query,
			runID, t.Symbol, t.EntryDate, t.ExitDate,
			t.EntryPrice, t.ExitPrice, t.ReturnPct, t.HoldingDays,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range trades {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun records run metadata together with the decision snapshot the
// run was produced under, so any saved trade log can be traced back to
// the exact strategy configuration.
func (r *TradeRepository) SaveRun(ctx context.Context, runID string, start, end time.Time, snap *strategyconfig.DecisionSnapshot) error {
	query := `
		INSERT INTO quant.backtest_runs
			(run_id, strategy_id, config_hash, config_yaml, git_commit, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		runID, snap.StrategyID, snap.ConfigHash, snap.ConfigYAML,
		snap.GitCommit, start, end, snap.CreatedAt,
	)
	return err
}

// GetByRun retrieves all trades of a run in entry-date order.
func (r *TradeRepository) GetByRun(ctx context.Context, runID string) ([]contracts.Trade, error) {
	query := `
		SELECT symbol, entry_date, exit_date, entry_price, exit_price, return_pct, holding_days
		FROM quant.trades
		WHERE run_id = $1
		ORDER BY entry_date ASC, symbol ASC
	`

	rows, err := r.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []contracts.Trade
	for rows.Next() {
		var t contracts.Trade
		if err := rows.Scan(
			&t.Symbol, &t.EntryDate, &t.ExitDate,
			&t.EntryPrice, &t.ExitPrice, &t.ReturnPct, &t.HoldingDays,
		); err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}
