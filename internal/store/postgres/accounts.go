package postgres

//go:generate go run github.com/sqlc-dev/sqlc/cmd/sqlc generate -f ../../../sqlc.yaml

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/store"
	"github.com/osse101/BrandishEvents_Go/internal/store/postgres/generated"
)

// AccountStore implements store.Accounts on PostgreSQL through the
// sqlc-generated queries.
type AccountStore struct {
	q    *generated.Queries
	pool *pgxpool.Pool
}

// NewAccountStore creates an account store on an open pool
func NewAccountStore(pool *pgxpool.Pool) *AccountStore {
	return &AccountStore{q: generated.New(pool), pool: pool}
}

var _ store.Accounts = (*AccountStore)(nil)

// GetPoints returns the balance, zero for unknown players
func (s *AccountStore) GetPoints(ctx context.Context, id int64) (int64, error) {
	points, err := s.q.GetPoints(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToGetPoints, err)
	}
	return points, nil
}

// UpdatePoints adds delta to the balance
func (s *AccountStore) UpdatePoints(ctx context.Context, id int64, delta int64) error {
	if err := s.q.UpdatePoints(ctx, generated.UpdatePointsParams{PlayerID: id, Points: delta}); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdatePoints, err)
	}
	return nil
}

// DebitPoints subtracts amount if the balance covers it
func (s *AccountStore) DebitPoints(ctx context.Context, id int64, amount int64) error {
	n, err := s.q.DebitPoints(ctx, generated.DebitPointsParams{Amount: amount, PlayerID: id})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDebitPoints, err)
	}
	if n == 0 {
		return domain.ErrInsufficientPoints
	}
	return nil
}

// LinkExternalID stores the player's chat account id
func (s *AccountStore) LinkExternalID(ctx context.Context, id int64, externalID string) error {
	if err := s.q.LinkExternalID(ctx, generated.LinkExternalIDParams{PlayerID: id, ExternalID: externalID}); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLinkAccount, err)
	}
	return nil
}

// ExternalID returns the linked chat account id, empty when unlinked
func (s *AccountStore) ExternalID(ctx context.Context, id int64) (string, error) {
	ext, err := s.q.GetExternalID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgFailedToGetExternalID, err)
	}
	return ext, nil
}

// RegisterPlayer records the player's display name
func (s *AccountStore) RegisterPlayer(ctx context.Context, id int64, name string) error {
	if err := s.q.RegisterPlayer(ctx, generated.RegisterPlayerParams{PlayerID: id, Name: name}); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRegisterPlayer, err)
	}
	return nil
}

// GetTopN returns the n richest players
func (s *AccountStore) GetTopN(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := s.q.GetTopN(ctx, int32(min(n, math.MaxInt32)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetLeaderboard, err)
	}
	entries := make([]domain.LeaderboardEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, domain.LeaderboardEntry{Name: store.DisplayName(r.PlayerID, r.Name), Points: r.Points})
	}
	return entries, nil
}

// Close releases the pool
func (s *AccountStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
