package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/ballotwizard/internal/core/domain"
	"github.com/vncsmyrnk/ballotwizard/internal/core/ports"
)

type scratchRepository struct {
	db *sql.DB
}

func NewScratchRepository(db *sql.DB) ports.ScratchStore {
	return &scratchRepository{
		db: db,
	}
}

func (r *scratchRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT payload FROM autosave_slots WHERE slot_key = $1`
	var payload []byte
	err := r.db.QueryRowContext(ctx, query, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSlotEmpty
		}
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	return payload, nil
}

func (r *scratchRepository) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO autosave_slots (slot_key, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (slot_key) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, key, string(value))
	if err != nil {
		return fmt.Errorf("failed to put slot: %w", err)
	}
	return nil
}

func (r *scratchRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM autosave_slots WHERE slot_key = $1`
	_, err := r.db.ExecContext(ctx, query, key)
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	return nil
}
