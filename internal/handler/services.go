package handler

import (
	"context"

	"github.com/osse101/BrandishEvents_Go/internal/config"
	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/economy"
	"github.com/osse101/BrandishEvents_Go/internal/lifecycle"
)

// EventService is the event manager as seen by the command surface
type EventService interface {
	Join(ctx context.Context, name string, id int64) (string, error)
	Leave(ctx context.Context, name string, id int64) error
	RecordKill(ctx context.Context, name string, killer, victim int64) error
	ForceStart(ctx context.Context, name string) error
	ForceStop(ctx context.Context, name string) error
	List() []lifecycle.Status
	Reload(ctx context.Context, defs []domain.EventDefinition) lifecycle.ReloadResult
}

// EconomyService is the reward economy as seen by the command surface
type EconomyService interface {
	Balance(ctx context.Context, id int64) (int64, error)
	AwardPoints(ctx context.Context, id int64, delta int64, reason string) error
	Leaderboard(ctx context.Context, n int) ([]domain.LeaderboardEntry, error)
	InitiateTransfer(ctx context.Context, sender int64, amount int64) (string, error)
	CompleteTransfer(ctx context.Context, code string, receiver int64) (domain.PointsTransfer, error)
	PurchaseReward(ctx context.Context, id int64, name string) (*economy.PurchaseResult, error)
	SetCatalog(catalog domain.RewardCatalog)
}

// AccountLinker registers players and their external chat accounts
type AccountLinker interface {
	RegisterPlayer(ctx context.Context, id int64, name string) error
	LinkExternalID(ctx context.Context, id int64, externalID string) error
}

// CatalogLoader reads the event and reward configuration from disk
type CatalogLoader func() (*config.Catalog, error)

var (
	_ EventService   = (*lifecycle.Manager)(nil)
	_ EconomyService = (*economy.Service)(nil)
)
