// Package session persists the client-side session between process runs:
// the bearer token, the signed-in user snapshot, the applied coupon and the
// saved cart. One sqlite row plays the role the browser's local storage
// played for the original storefront.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fjod/go_market/internal/domain"
)

type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens (or creates) the session database and runs the schema init.
func Open(ctx context.Context, log *slog.Logger, storagePath string) (*Store, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_pragma=foreign_keys(1)", storagePath))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err = db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("unable to establish connection to database: %w", err)
	}

	if err = initSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("schema initialization error: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	const migrationQuery = `
	CREATE TABLE IF NOT EXISTS session (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		token TEXT NOT NULL DEFAULT '',
		user_json TEXT NOT NULL DEFAULT '',
		coupon_json TEXT NOT NULL DEFAULT '',
		cart_json TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMP
	);
	INSERT OR IGNORE INTO session (id) VALUES (1);
	`
	if _, err := db.ExecContext(ctx, migrationQuery); err != nil {
		return fmt.Errorf("failed to execute migration query: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) setColumn(ctx context.Context, column, value string) error {
	query := fmt.Sprintf("UPDATE session SET %s = ?, updated_at = ? WHERE id = 1", column)
	if _, err := s.db.ExecContext(ctx, query, value, time.Now()); err != nil {
		return fmt.Errorf("failed to update session %s: %w", column, err)
	}
	return nil
}

func (s *Store) getColumn(ctx context.Context, column string) (string, error) {
	query := fmt.Sprintf("SELECT %s FROM session WHERE id = 1", column)
	var value string
	if err := s.db.QueryRowContext(ctx, query).Scan(&value); err != nil {
		return "", fmt.Errorf("failed to read session %s: %w", column, err)
	}
	return value, nil
}

// SaveToken stores the bearer token issued at login.
func (s *Store) SaveToken(ctx context.Context, token string) error {
	return s.setColumn(ctx, "token", token)
}

// Token returns the stored bearer token, empty when signed out. This makes
// the store usable as the API client's token source.
func (s *Store) Token(ctx context.Context) (string, error) {
	return s.getColumn(ctx, "token")
}

func (s *Store) SaveUser(ctx context.Context, u domain.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return s.setColumn(ctx, "user_json", string(data))
}

// User returns the signed-in user snapshot; ok is false when anonymous.
func (s *Store) User(ctx context.Context) (domain.User, bool, error) {
	raw, err := s.getColumn(ctx, "user_json")
	if err != nil || raw == "" {
		return domain.User{}, false, err
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return domain.User{}, false, fmt.Errorf("unmarshal user: %w", err)
	}
	return u, true, nil
}

func (s *Store) SaveCoupon(ctx context.Context, c domain.Coupon) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal coupon: %w", err)
	}
	return s.setColumn(ctx, "coupon_json", string(data))
}

// Coupon returns the coupon applied to the current cart, if any.
func (s *Store) Coupon(ctx context.Context) (*domain.Coupon, error) {
	raw, err := s.getColumn(ctx, "coupon_json")
	if err != nil || raw == "" {
		return nil, err
	}
	var c domain.Coupon
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("unmarshal coupon: %w", err)
	}
	return &c, nil
}

func (s *Store) ClearCoupon(ctx context.Context) error {
	return s.setColumn(ctx, "coupon_json", "")
}

// SaveCart persists the cart snapshot so the next invocation can rehydrate.
func (s *Store) SaveCart(ctx context.Context, c domain.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	return s.setColumn(ctx, "cart_json", string(data))
}

func (s *Store) Cart(ctx context.Context) (domain.Cart, error) {
	raw, err := s.getColumn(ctx, "cart_json")
	if err != nil || raw == "" {
		return domain.Cart{}, err
	}
	var c domain.Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return domain.Cart{}, fmt.Errorf("unmarshal cart: %w", err)
	}
	return c, nil
}

// Reset wipes the whole session: token, user, coupon and cart. Used at
// logout.
func (s *Store) Reset(ctx context.Context) error {
	query := "UPDATE session SET token = '', user_json = '', coupon_json = '', cart_json = '', updated_at = ? WHERE id = 1"
	if _, err := s.db.ExecContext(ctx, query, time.Now()); err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}
	return nil
}
