package economy

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/event"
	"github.com/osse101/BrandishEvents_Go/internal/logger"
)

// PurchaseResult describes a completed purchase
type PurchaseResult struct {
	Reward    string   `json:"reward"`
	Delivered []string `json:"delivered"`
	Skipped   []string `json:"skipped,omitempty"`
	Cost      int64    `json:"cost"`
	Balance   int64    `json:"balance"`
}

// PurchaseReward buys a bundle or single item by name, ignoring case. The
// balance is checked up front but only the items that were actually
// delivered are charged, after delivery. Nothing delivered means no store
// writes and ErrInventoryFull.
func (s *Service) PurchaseReward(ctx context.Context, id int64, name string) (*PurchaseResult, error) {
	r, ok := s.lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrRewardNotFound, name)
	}

	var result *PurchaseResult
	err := s.locks.WithLock(playerLock(id), func() error {
		var err error
		result, err = s.purchaseLocked(ctx, id, r)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgRewardPurchased, "player_id", id, "reward", r.name, "cost", result.Cost, "delivered", len(result.Delivered))
	s.publish(ctx, event.NewRewardPurchasedEvent(id, r.name, result.Delivered, result.Cost))
	return result, nil
}

// purchaseLocked runs with the player's lock held, so no other purchase or
// transfer claim can spend the balance between the check and the debit.
func (s *Service) purchaseLocked(ctx context.Context, id int64, r reward) (*PurchaseResult, error) {
	bal, err := s.accounts.GetPoints(ctx, id)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetPointsFailed, err)
	}
	if bal < r.cost() {
		return nil, domain.ErrInsufficientPoints
	}

	delivered, skipped := s.GrantItems(ctx, id, r.items)
	if len(delivered) == 0 {
		return nil, domain.ErrInventoryFull
	}

	result := &PurchaseResult{Reward: r.name}
	var paid int64
	for _, item := range delivered {
		result.Delivered = append(result.Delivered, item.Name)
		paid += item.CostInPoints
	}
	for _, item := range skipped {
		result.Skipped = append(result.Skipped, item.Name)
	}

	if paid > 0 {
		if err := s.accounts.DebitPoints(ctx, id, paid); err != nil {
			// The items are already in the player's inventory.
			logger.FromContext(ctx).Error(LogMsgChargeFailed,
				"player_id", id, "reward", r.name, "cost", paid, "delivered", result.Delivered, "error", err)
			if errors.Is(err, domain.ErrInsufficientPoints) {
				return nil, domain.ErrInsufficientPoints
			}
			return nil, fmt.Errorf(ErrMsgDebitFailed, err)
		}
	}

	result.Cost = paid
	result.Balance = bal - paid
	return result, nil
}
