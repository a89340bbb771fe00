// Package store declares the player account persistence used by the reward
// economy, and selects a backend from configuration.
package store

import (
	"context"
	"strconv"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
)

// Accounts persists player point balances. Unknown players read as a zero
// balance with no linked account; writes create the record on demand.
type Accounts interface {
	GetPoints(ctx context.Context, id int64) (int64, error)
	// UpdatePoints applies delta unconditionally. The balance may go negative.
	UpdatePoints(ctx context.Context, id int64, delta int64) error
	// DebitPoints subtracts amount only if the balance covers it, returning
	// domain.ErrInsufficientPoints otherwise.
	DebitPoints(ctx context.Context, id int64, amount int64) error
	LinkExternalID(ctx context.Context, id int64, externalID string) error
	ExternalID(ctx context.Context, id int64) (string, error)
	RegisterPlayer(ctx context.Context, id int64, name string) error
	GetTopN(ctx context.Context, n int) ([]domain.LeaderboardEntry, error)
	Close() error
}

// DisplayName falls back to a generic label for accounts created before the
// player was registered by name.
func DisplayName(id int64, name string) string {
	if name != "" {
		return name
	}
	return "Player " + strconv.FormatInt(id, 10)
}
