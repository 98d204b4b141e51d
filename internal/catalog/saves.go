package catalog

import (
	"context"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// SaveRepo stores save-game byte blobs (spec.md §6 Persisted state layout,
// the same record format written to a world-file) keyed by world and slot
// name, with an integrity digest so a truncated write is detected on load
// rather than silently corrupting a board (SPEC_FULL.md §5).
type SaveRepo struct {
	store *Store
}

func NewSaveRepo(s *Store) *SaveRepo { return &SaveRepo{store: s} }

func (r *SaveRepo) Store(ctx context.Context, worldName, slotName string, data []byte) error {
	digest := blake2b.Sum256(data)
	_, err := r.store.Pool.Exec(ctx,
		`INSERT INTO save_slots (world_name, slot_name, data, digest, saved_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (world_name, slot_name)
		 DO UPDATE SET data = EXCLUDED.data, digest = EXCLUDED.digest, saved_at = now()`,
		worldName, slotName, data, digest[:],
	)
	if err != nil {
		return fmt.Errorf("store save slot: %w", err)
	}
	return nil
}

// Load returns the slot's bytes, or an error if the stored digest no
// longer matches the stored data.
func (r *SaveRepo) Load(ctx context.Context, worldName, slotName string) ([]byte, error) {
	var data, digest []byte
	err := r.store.Pool.QueryRow(ctx,
		`SELECT data, digest FROM save_slots WHERE world_name = $1 AND slot_name = $2`,
		worldName, slotName,
	).Scan(&data, &digest)
	if err != nil {
		return nil, fmt.Errorf("load save slot: %w", err)
	}
	want := blake2b.Sum256(data)
	if string(want[:]) != string(digest) {
		return nil, fmt.Errorf("save slot %s/%s failed integrity check", worldName, slotName)
	}
	return data, nil
}

func (r *SaveRepo) List(ctx context.Context, worldName string) ([]string, error) {
	rows, err := r.store.Pool.Query(ctx,
		`SELECT slot_name FROM save_slots WHERE world_name = $1 ORDER BY saved_at DESC`, worldName)
	if err != nil {
		return nil, fmt.Errorf("list save slots: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan save slot: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
