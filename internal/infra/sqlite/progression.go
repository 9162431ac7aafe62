package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spendquest-app/spendquest/internal/domain"
)

// LoadProgression loads one user's record. Returns (nil, nil) when the
// user has no record yet. A row that fails to decode is reported as
// domain.ErrCorruptRecord so the engine can fall back to defaults;
// driver and context errors surface as domain.ErrStoreUnavailable.
func (d *DB) LoadProgression(ctx context.Context, userID string) (*domain.UserProgression, error) {
	var data string
	err := d.db.QueryRowContext(ctx,
		`SELECT data FROM progression WHERE user_id = ?`, userID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %v", domain.ErrStoreUnavailable, userID, err)
	}

	var u domain.UserProgression
	if err := json.Unmarshal([]byte(data), &u); err != nil {
		return nil, fmt.Errorf("%w: user %s: %v", domain.ErrCorruptRecord, userID, err)
	}
	return &u, nil
}

// SaveProgression upserts one user's record.
func (d *DB) SaveProgression(ctx context.Context, userID string, u *domain.UserProgression) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode progression for %s: %w", userID, err)
	}

	_, err = d.db.ExecContext(ctx,
		`INSERT INTO progression (user_id, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET data=excluded.data, updated_at=excluded.updated_at`,
		userID, string(data), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("%w: save %s: %v", domain.ErrStoreUnavailable, userID, err)
	}
	return nil
}
