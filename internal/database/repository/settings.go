package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jask/qslcard/internal/database"
)

const upsertSetting = `
INSERT INTO settings(key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=CURRENT_TIMESTAMP;
`

// SettingsRepo stores string key-value pairs.
type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// Get returns the value for key and whether it was present.
func (r *SettingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

// SetMany writes all pairs in one transaction so a save is never half-applied.
func (r *SettingsRepo) SetMany(ctx context.Context, kv map[string]string) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for k, v := range kv {
			if _, err := tx.ExecContext(ctx, upsertSetting, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}
