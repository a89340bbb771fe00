// Package sqlite provides a SQLite-backed account store for single-node
// deployments.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/store"
	"github.com/osse101/BrandishEvents_Go/internal/store/sqlite/migrations"
)

// Store persists player accounts in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ store.Accounts = (*Store)(nil)

// Open opens a SQLite account store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := migrate(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return New(sqlDB), nil
}

// New wraps an open, migrated handle
func New(db *sql.DB) *Store {
	return &Store{sqlDB: db, now: time.Now}
}

func migrate(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		return err
	}
	_, err = provider.Up(ctx)
	return err
}

// Ping reports whether the database file is still usable
func (s *Store) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) stamp() int64 {
	return s.now().UTC().UnixMilli()
}

// GetPoints returns the balance, zero for unknown players
func (s *Store) GetPoints(ctx context.Context, id int64) (int64, error) {
	var points int64
	err := s.sqlDB.QueryRowContext(ctx, `SELECT points FROM accounts WHERE player_id = ?`, id).Scan(&points)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get points: %w", err)
	}
	return points, nil
}

// UpdatePoints adds delta to the balance
func (s *Store) UpdatePoints(ctx context.Context, id int64, delta int64) error {
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO accounts (player_id, points, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE
		SET points = accounts.points + excluded.points, updated_at = excluded.updated_at`,
		id, delta, s.stamp())
	if err != nil {
		return fmt.Errorf("update points: %w", err)
	}
	return nil
}

// DebitPoints subtracts amount if the balance covers it
func (s *Store) DebitPoints(ctx context.Context, id int64, amount int64) error {
	res, err := s.sqlDB.ExecContext(ctx, `
		UPDATE accounts SET points = points - ?, updated_at = ?
		WHERE player_id = ? AND points >= ?`,
		amount, s.stamp(), id, amount)
	if err != nil {
		return fmt.Errorf("debit points: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("debit points: %w", err)
	}
	if n == 0 {
		return domain.ErrInsufficientPoints
	}
	return nil
}

// LinkExternalID stores the player's chat account id
func (s *Store) LinkExternalID(ctx context.Context, id int64, externalID string) error {
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO accounts (player_id, external_id, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE
		SET external_id = excluded.external_id, updated_at = excluded.updated_at`,
		id, externalID, s.stamp())
	if err != nil {
		return fmt.Errorf("link account: %w", err)
	}
	return nil
}

// ExternalID returns the linked chat account id, empty when unlinked
func (s *Store) ExternalID(ctx context.Context, id int64) (string, error) {
	var ext string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT external_id FROM accounts WHERE player_id = ?`, id).Scan(&ext)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get external id: %w", err)
	}
	return ext, nil
}

// RegisterPlayer records the player's display name
func (s *Store) RegisterPlayer(ctx context.Context, id int64, name string) error {
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO accounts (player_id, name, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE
		SET name = excluded.name, updated_at = excluded.updated_at`,
		id, name, s.stamp())
	if err != nil {
		return fmt.Errorf("register player: %w", err)
	}
	return nil
}

// GetTopN returns the n richest players
func (s *Store) GetTopN(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT player_id, name, points FROM accounts
		ORDER BY points DESC, player_id ASC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var (
			id     int64
			name   string
			points int64
		)
		if err := rows.Scan(&id, &name, &points); err != nil {
			return nil, fmt.Errorf("scan leaderboard: %w", err)
		}
		entries = append(entries, domain.LeaderboardEntry{Name: store.DisplayName(id, name), Points: points})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}
	return entries, nil
}
