package data

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/niveshlabs/quantmomentum/internal/contracts"
)

// MembershipRepository persists index constituent lists in
// data.index_members. Satisfies contracts.MembershipProvider.
type MembershipRepository struct {
	pool *pgxpool.Pool
}

var _ contracts.MembershipProvider = (*MembershipRepository)(nil)

// NewMembershipRepository creates a new membership repository.
func NewMembershipRepository(pool *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{pool: pool}
}

// Constituents returns the stored member symbols of an index.
func (r *MembershipRepository) Constituents(ctx context.Context, index string) ([]string, error) {
	query := `
		SELECT symbol
		FROM data.index_members
		WHERE index_name = $1
		ORDER BY symbol ASC
	`

	rows, err := r.pool.Query(ctx, query, index)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		symbols = append(symbols, s)
	}
	return symbols, rows.Err()
}

// Replace swaps the full member list of an index in one transaction.
func (r *MembershipRepository) Replace(ctx context.Context, index string, symbols []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM data.index_members WHERE index_name = $1`, index,
	); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	now := time.Now()
	for _, symbol := range symbols {
		batch.Queue(
			`INSERT INTO data.index_members (index_name, symbol, updated_at) VALUES ($1, $2, $3)`,
			index, symbol, now,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range symbols {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return err
		}
	}
	if err := results.Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
