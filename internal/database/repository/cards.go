package repository

import (
	"context"
	"database/sql"
)

// CardRepo handles the history of issued cards.
type CardRepo struct {
	db *sql.DB
}

func NewCardRepo(db *sql.DB) *CardRepo { return &CardRepo{db: db} }

func (r *CardRepo) Insert(ctx context.Context, c Card) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO cards(
	 id, operator_callsign, callsign, day, month, year, utc, mhz, rst, mode, qsl, image_path, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`,
		c.ID, c.OperatorCallsign, c.Callsign, c.Day, c.Month, c.Year, c.UTC, c.MHz, c.RST, c.Mode,
		c.QSL, c.ImagePath)
	return err
}

func (r *CardRepo) Get(ctx context.Context, id string) (*Card, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	c, err := scanCard(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// List returns the most recent cards first. limit <= 0 returns all.
func (r *CardRepo) List(ctx context.Context, limit int) ([]Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards ORDER BY created_at DESC, rowid DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CardRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards`).Scan(&n)
	return n, err
}

const cardColumns = "id, operator_callsign, callsign, day, month, year, utc, mhz, rst, mode, qsl, image_path, created_at"

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCard(s scanner) (Card, error) {
	var c Card
	err := s.Scan(&c.ID, &c.OperatorCallsign, &c.Callsign, &c.Day, &c.Month, &c.Year, &c.UTC,
		&c.MHz, &c.RST, &c.Mode, &c.QSL, &c.ImagePath, &c.CreatedAt)
	return c, err
}
