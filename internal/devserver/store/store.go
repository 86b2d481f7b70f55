// Package store keeps dishes and feedback for the development API in
// sqlite. Records are stored as JSON documents so the wire format is the
// storage format.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/atomicstack/confusion-tui/internal/menu"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when a dish id is unknown.
var ErrNotFound = errors.New("not found")

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
// ":memory:" gives a private in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// every connection to :memory: is a separate database
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ReplaceDishes drops every dish and stores dishes in the given order.
func (s *Store) ReplaceDishes(ctx context.Context, dishes []menu.Dish) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM dishes`); err != nil {
		return fmt.Errorf("clear dishes: %w", err)
	}
	for i, d := range dishes {
		payload, err := encodeDish(d)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO dishes (id, position, payload) VALUES (?, ?, ?)`, d.ID, i, payload); err != nil {
			return fmt.Errorf("insert dish %s: %w", d.ID, err)
		}
	}
	return tx.Commit()
}

func (s *Store) CountDishes(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM dishes`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Dishes returns every dish in menu order.
func (s *Store) Dishes(ctx context.Context) ([]menu.Dish, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM dishes ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	dishes := []menu.Dish{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		d, err := decodeDish(payload)
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, d)
	}
	return dishes, rows.Err()
}

func (s *Store) Dish(ctx context.Context, id string) (menu.Dish, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM dishes WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return menu.Dish{}, ErrNotFound
	}
	if err != nil {
		return menu.Dish{}, err
	}
	return decodeDish(payload)
}

// PutDish replaces the stored document of an existing dish.
func (s *Store) PutDish(ctx context.Context, dish menu.Dish) error {
	payload, err := encodeDish(dish)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE dishes SET payload = ? WHERE id = ?`, payload, dish.ID)
	if err != nil {
		return fmt.Errorf("update dish %s: %w", dish.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// AddFeedback stores fb, which must already carry its id and date.
func (s *Store) AddFeedback(ctx context.Context, fb menu.Feedback) error {
	payload, err := json.Marshal(fb)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO feedback (id, created_at, payload) VALUES (?, ?, ?)`, fb.ID, fb.Date, string(payload)); err != nil {
		return fmt.Errorf("insert feedback %s: %w", fb.ID, err)
	}
	return nil
}

// Feedback returns every record, oldest first.
func (s *Store) Feedback(ctx context.Context) ([]menu.Feedback, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM feedback ORDER BY created_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []menu.Feedback{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var fb menu.Feedback
		if err := json.Unmarshal([]byte(payload), &fb); err != nil {
			return nil, fmt.Errorf("decode feedback: %w", err)
		}
		out = append(out, fb)
	}
	return out, rows.Err()
}

func encodeDish(d menu.Dish) (string, error) {
	if d.Comments == nil {
		d.Comments = []menu.Comment{}
	}
	payload, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encode dish %s: %w", d.ID, err)
	}
	return string(payload), nil
}

func decodeDish(payload string) (menu.Dish, error) {
	var d menu.Dish
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		return menu.Dish{}, fmt.Errorf("decode dish: %w", err)
	}
	if d.Comments == nil {
		d.Comments = []menu.Comment{}
	}
	return d, nil
}
