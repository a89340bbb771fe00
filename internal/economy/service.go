// Package economy settles points: awards, drops, reward purchases and
// player-to-player transfers.
package economy

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/text/cases"

	"github.com/osse101/BrandishEvents_Go/internal/concurrency"
	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/event"
	"github.com/osse101/BrandishEvents_Go/internal/logger"
	"github.com/osse101/BrandishEvents_Go/internal/store"
	"github.com/osse101/BrandishEvents_Go/internal/utils"
	"github.com/osse101/BrandishEvents_Go/internal/world"
)

// Config tunes economy policy
type Config struct {
	// AllowNegativeBalance lets awards push a balance below zero. When false,
	// deductions stop at zero. Purchases and transfers always require funds.
	AllowNegativeBalance bool
	// TransferCodeTTL expires unclaimed codes. Zero keeps them until claimed.
	TransferCodeTTL     time.Duration
	MaxPendingTransfers int
}

// DefaultConfig matches the historical behaviour
func DefaultConfig() Config {
	return Config{
		AllowNegativeBalance: true,
		TransferCodeTTL:      noTTL,
		MaxPendingTransfers:  DefaultMaxPendingTransfers,
	}
}

// reward is either a bundle or a single catalog item
type reward struct {
	name  string
	items []domain.RewardItem
}

func (r reward) cost() int64 {
	var total int64
	for _, it := range r.items {
		total += it.CostInPoints
	}
	return total
}

type catalogIndex struct {
	raw     domain.RewardCatalog
	rewards map[string]reward
}

// Service implements the reward economy
type Service struct {
	accounts store.Accounts
	world    world.World
	bus      event.Publisher
	locks    *concurrency.LockManager
	rnd      utils.RandSource
	cfg      Config
	now      func() time.Time

	catalog atomic.Pointer[catalogIndex]
	pending *expirable.LRU[string, domain.PointsTransfer]
}

// NewService creates the economy. bus may be nil.
func NewService(accounts store.Accounts, w world.World, bus event.Publisher, catalog domain.RewardCatalog, cfg Config) *Service {
	if bus == nil {
		bus = event.NopPublisher{}
	}
	if cfg.MaxPendingTransfers <= 0 {
		cfg.MaxPendingTransfers = DefaultMaxPendingTransfers
	}
	s := &Service{
		accounts: accounts,
		world:    w,
		bus:      bus,
		locks:    concurrency.NewLockManager(),
		rnd:      utils.DefaultSource,
		cfg:      cfg,
		now:      time.Now,
		pending:  expirable.NewLRU[string, domain.PointsTransfer](cfg.MaxPendingTransfers, nil, cfg.TransferCodeTTL),
	}
	s.SetCatalog(catalog)
	return s
}

// WithRandSource swaps the randomness used for drops and loadouts
func (s *Service) WithRandSource(src utils.RandSource) *Service {
	s.rnd = src
	return s
}

// SetCatalog replaces the reward catalog. Bundles shadow single items of the
// same name.
func (s *Service) SetCatalog(catalog domain.RewardCatalog) {
	idx := &catalogIndex{raw: catalog, rewards: make(map[string]reward)}
	add := func(r reward) {
		key := foldName(r.name)
		if _, dup := idx.rewards[key]; dup {
			logger.Warn(LogMsgDuplicateRewardName, "name", r.name)
			return
		}
		idx.rewards[key] = r
	}
	for _, set := range catalog.Sets {
		add(reward{name: set.Name, items: set.Items})
	}
	for _, item := range catalog.Items {
		add(reward{name: item.Name, items: []domain.RewardItem{item}})
	}
	s.catalog.Store(idx)
	logger.Info(LogMsgCatalogUpdated, "rewards", len(idx.rewards))
}

// Catalog returns the current reward catalog
func (s *Service) Catalog() domain.RewardCatalog {
	return s.catalog.Load().raw
}

// RewardSet finds a bundle by name, ignoring case
func (s *Service) RewardSet(name string) (domain.RewardSet, bool) {
	key := foldName(name)
	for _, set := range s.catalog.Load().raw.Sets {
		if foldName(set.Name) == key {
			return set, true
		}
	}
	return domain.RewardSet{}, false
}

func (s *Service) lookup(name string) (reward, bool) {
	r, ok := s.catalog.Load().rewards[foldName(name)]
	return r, ok
}

func playerLock(id int64) string {
	return lockPrefixPlayer + strconv.FormatInt(id, 10)
}

func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

func (s *Service) publish(ctx context.Context, evt event.Event) {
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}
