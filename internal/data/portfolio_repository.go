package data

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/niveshlabs/quantmomentum/internal/contracts"
)

// PortfolioRepository implements contracts.PortfolioRepository on top
// of quant.portfolio_snapshots. One row per candidate per snapshot
// date; the full rank context round-trips so turnover is computable
// later.
type PortfolioRepository struct {
	pool *pgxpool.Pool
}

// NewPortfolioRepository creates a new portfolio repository.
func NewPortfolioRepository(pool *pgxpool.Pool) *PortfolioRepository {
	return &PortfolioRepository{pool: pool}
}

// SaveSnapshot replaces any snapshot at the portfolio's date.
func (r *PortfolioRepository) SaveSnapshot(ctx context.Context, portfolio *contracts.Portfolio) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM quant.portfolio_snapshots WHERE snapshot_date = $1`,
		portfolio.Date,
	); err != nil {
		return err
	}

	query := `
		INSERT INTO quant.portfolio_snapshots
			(snapshot_date, rank_order, symbol, momentum, fip, last_price, last_volume,
			 momentum_rank, fip_rank, combined_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for i, c := range portfolio.Candidates {
		if _, err := tx.Exec(ctx, query,
			portfolio.Date, i+1, c.Symbol, c.Momentum, c.FIP,
			c.LastPrice, c.LastVolume, c.MomentumRank, c.FIPRank, c.CombinedScore,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetLatest retrieves the most recent snapshot, or nil if none exists.
func (r *PortfolioRepository) GetLatest(ctx context.Context) (*contracts.Portfolio, error) {
	var date time.Time
	err := r.pool.QueryRow(ctx,
		`SELECT MAX(snapshot_date) FROM quant.portfolio_snapshots`,
	).Scan(&date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if date.IsZero() {
		return nil, nil
	}
	return r.GetByDate(ctx, date)
}

// GetByDate retrieves the snapshot at date, or nil if none exists.
func (r *PortfolioRepository) GetByDate(ctx context.Context, date time.Time) (*contracts.Portfolio, error) {
	query := `
		SELECT snapshot_date, symbol, momentum, fip, last_price, last_volume,
		       momentum_rank, fip_rank, combined_score
		FROM quant.portfolio_snapshots
		WHERE snapshot_date = $1
		ORDER BY rank_order ASC
	`

	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	portfolio := &contracts.Portfolio{Date: date}
	for rows.Next() {
		var c contracts.RankedCandidate
		if err := rows.Scan(
			&c.EvalDate, &c.Symbol, &c.Momentum, &c.FIP,
			&c.LastPrice, &c.LastVolume,
			&c.MomentumRank, &c.FIPRank, &c.CombinedScore,
		); err != nil {
			return nil, err
		}
		portfolio.Candidates = append(portfolio.Candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if portfolio.Empty() {
		return nil, nil
	}
	return portfolio, nil
}
