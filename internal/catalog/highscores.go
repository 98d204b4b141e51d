package catalog

import (
	"context"
	"fmt"
)

const maxHighscoreSlots = 30

// HighscoreEntry is one ranked row of a world's highscore table
// (SPEC_FULL.md §5, sourced from original_source/ruzzt's title-screen
// highscore list).
type HighscoreEntry struct {
	PlayerName string
	Score      int
}

type HighscoreRepo struct {
	store *Store
}

func NewHighscoreRepo(s *Store) *HighscoreRepo { return &HighscoreRepo{store: s} }

// List returns up to 30 entries for worldName, highest score first.
func (r *HighscoreRepo) List(ctx context.Context, worldName string) ([]HighscoreEntry, error) {
	rows, err := r.store.Pool.Query(ctx,
		`SELECT player_name, score FROM highscores
		 WHERE world_name = $1
		 ORDER BY score DESC
		 LIMIT $2`, worldName, maxHighscoreSlots)
	if err != nil {
		return nil, fmt.Errorf("list highscores: %w", err)
	}
	defer rows.Close()

	var out []HighscoreEntry
	for rows.Next() {
		var e HighscoreEntry
		if err := rows.Scan(&e.PlayerName, &e.Score); err != nil {
			return nil, fmt.Errorf("scan highscore: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Submit inserts a new entry and trims the table back to the top 30
// (SPEC_FULL.md §5 Highscore table).
func (r *HighscoreRepo) Submit(ctx context.Context, worldName string, e HighscoreEntry) error {
	tx, err := r.store.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("submit highscore begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO highscores (world_name, player_name, score) VALUES ($1, $2, $3)`,
		worldName, e.PlayerName, e.Score,
	); err != nil {
		return fmt.Errorf("insert highscore: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM highscores WHERE id IN (
			SELECT id FROM highscores WHERE world_name = $1
			ORDER BY score DESC OFFSET $2
		)`, worldName, maxHighscoreSlots,
	); err != nil {
		return fmt.Errorf("trim highscores: %w", err)
	}

	return tx.Commit(ctx)
}
