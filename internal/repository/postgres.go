package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/dispatch/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	leftoverDriver  = "driver"
	leftoverAddress = "address"
)

// FetchDriverNames returns the names of active drivers ordered by driver_id.
func (r *Repository) FetchDriverNames(ctx context.Context) ([]string, error) {
	query := `
		SELECT name
		FROM public.drivers
		WHERE is_active = true
		ORDER BY driver_id ASC;
	`

	names, err := r.fetchStrings(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch drivers: %w", err)
	}
	r.log.DebugContext(ctx, "Drivers loaded from database", "count", len(names))

	return names, nil
}

// FetchAddressLines returns destination address lines ordered by address_id.
func (r *Repository) FetchAddressLines(ctx context.Context) ([]string, error) {
	query := `
		SELECT address
		FROM public.destinations
		ORDER BY address_id ASC;
	`

	lines, err := r.fetchStrings(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch destinations: %w", err)
	}
	r.log.DebugContext(ctx, "Destinations loaded from database", "count", len(lines))

	return lines, nil
}

func (r *Repository) fetchStrings(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var value string
		if errScan := rows.Scan(&value); errScan != nil {
			return nil, fmt.Errorf("failed to scan row: %w", errScan)
		}
		values = append(values, value)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return values, nil
}

// SaveResult stores a run together with its matches and leftovers in a single transaction.
// Nothing is written if any statement fails.
func (r *Repository) SaveResult(ctx context.Context, runID uuid.UUID, strategy string, result models.Result) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err = insertResult(ctx, tx, runID, strategy, result); err != nil {
		if errRollback := tx.Rollback(ctx); errRollback != nil {
			r.log.ErrorContext(ctx, "Failed to roll back result transaction", "run", runID, "error", errRollback)
		}
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.log.InfoContext(ctx, "Assignment result saved", "run", runID, "matches", len(result.Matches))

	return nil
}

func insertResult(ctx context.Context, tx pgx.Tx, runID uuid.UUID, strategy string, result models.Result) error {
	runQuery := `
		INSERT INTO assignment_runs (run_id, strategy, total_score, match_count)
		VALUES ($1, $2, $3, $4);
	`
	if _, err := tx.Exec(ctx, runQuery, runID, strategy, result.TotalScore, len(result.Matches)); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	matchQuery := `
		INSERT INTO assignment_matches (run_id, seq, driver, address, score)
		VALUES ($1, $2, $3, $4, $5);
	`
	for seq, match := range result.Matches {
		if _, err := tx.Exec(ctx, matchQuery, runID, seq, match.Driver, match.Address, match.Score); err != nil {
			return fmt.Errorf("failed to insert match: %w", err)
		}
	}

	leftoverQuery := `
		INSERT INTO assignment_leftovers (run_id, kind, seq, value)
		VALUES ($1, $2, $3, $4);
	`
	for seq, driver := range result.LeftoverDrivers {
		if _, err := tx.Exec(ctx, leftoverQuery, runID, leftoverDriver, seq, driver.Name); err != nil {
			return fmt.Errorf("failed to insert leftover driver: %w", err)
		}
	}
	for seq, addr := range result.LeftoverAddresses {
		if _, err := tx.Exec(ctx, leftoverQuery, runID, leftoverAddress, seq, addr.Full); err != nil {
			return fmt.Errorf("failed to insert leftover address: %w", err)
		}
	}

	return nil
}
