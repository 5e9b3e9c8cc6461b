// internal/database/game.go
package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Schema:
//
//	CREATE TABLE euchre_games (
//	    id         uuid PRIMARY KEY,
//	    state      jsonb NOT NULL,
//	    updated_at timestamptz NOT NULL DEFAULT now()
//	);
//
// One row per session holding the full aggregate snapshot; updated_at is
// used for staleness/expiry sweeps.

// SaveGameSnapshot upserts the full state of a session, stamping the
// last-write time.
func SaveGameSnapshot(ctx context.Context, gameID uuid.UUID, snapshot interface{}) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal game snapshot: %w", err)
	}
	q := `
		INSERT INTO euchre_games (id, state, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id)
		DO UPDATE SET state = EXCLUDED.state, updated_at = NOW()
	`
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, e := tx.Exec(ctx, q, gameID, data)
		return e
	})
}

// LoadGameSnapshot fetches the persisted state of a session into dest,
// which must be a pointer to the snapshot type.
func LoadGameSnapshot(ctx context.Context, gameID uuid.UUID, dest interface{}) error {
	var data []byte
	q := `SELECT state FROM euchre_games WHERE id = $1`
	if err := DB.QueryRow(ctx, q, gameID).Scan(&data); err != nil {
		return fmt.Errorf("load game snapshot: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal game snapshot: %w", err)
	}
	return nil
}

// DeleteStaleGames removes sessions whose last write is older than the
// given interval, e.g. "48 hours".
func DeleteStaleGames(ctx context.Context, olderThan string) (int64, error) {
	q := `DELETE FROM euchre_games WHERE updated_at < NOW() - $1::interval`
	tag, err := DB.Exec(ctx, q, olderThan)
	if err != nil {
		return 0, fmt.Errorf("delete stale games: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteGameSnapshot removes the persisted state of a single session.
func DeleteGameSnapshot(ctx context.Context, gameID uuid.UUID) error {
	q := `DELETE FROM euchre_games WHERE id = $1`
	if _, err := DB.Exec(ctx, q, gameID); err != nil {
		return fmt.Errorf("delete game snapshot: %w", err)
	}
	return nil
}
