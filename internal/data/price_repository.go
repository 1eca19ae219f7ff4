// Package data holds the PostgreSQL repositories. All SQL lives here;
// pipeline packages see only the contracts interfaces.
package data

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/niveshlabs/quantmomentum/internal/contracts"
)

// PriceRepository implements contracts.PriceRepository on top of
// data.daily_bars.
type PriceRepository struct {
	pool *pgxpool.Pool
}

// NewPriceRepository creates a new price repository.
func NewPriceRepository(pool *pgxpool.Pool) *PriceRepository {
	return &PriceRepository{pool: pool}
}

// GetDailyBars retrieves the bars for a symbol within [from, to],
// ordered by trade date ascending.
func (r *PriceRepository) GetDailyBars(ctx context.Context, symbol string, from, to time.Time) ([]contracts.Bar, error) {
	query := `
		SELECT trade_date, close_price, volume
		FROM data.daily_bars
		WHERE symbol = $1 AND trade_date BETWEEN $2 AND $3
		ORDER BY trade_date ASC
	`

	rows, err := r.pool.Query(ctx, query, symbol, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bars []contracts.Bar
	for rows.Next() {
		var b contracts.Bar
		if err := rows.Scan(&b.Date, &b.Close, &b.Volume); err != nil {
			return nil, err
		}
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

// GetLatestBar retrieves the most recent bar for a symbol.
func (r *PriceRepository) GetLatestBar(ctx context.Context, symbol string) (*contracts.Bar, error) {
	query := `
		SELECT trade_date, close_price, volume
		FROM data.daily_bars
		WHERE symbol = $1
		ORDER BY trade_date DESC
		LIMIT 1
	`

	var b contracts.Bar
	err := r.pool.QueryRow(ctx, query, symbol).Scan(&b.Date, &b.Close, &b.Volume)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// SaveBatch upserts a bar series for one symbol in a single batch
// round-trip.
func (r *PriceRepository) SaveBatch(ctx context.Context, symbol string, bars []contracts.Bar) error {
	if len(bars) == 0 {
		return nil
	}

	query := `
		INSERT INTO data.daily_bars (symbol, trade_date, close_price, volume)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (symbol, trade_date) DO UPDATE SET
			close_price = EXCLUDED.close_price,
			volume = EXCLUDED.volume
	`

	batch := &pgx.Batch{}
	for _, bar := range bars {
		batch.Queue(query, symbol, bar.Date, bar.Close, bar.Volume)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range bars {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}
