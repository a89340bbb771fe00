package economy

import (
	"context"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/logger"
	"github.com/osse101/BrandishEvents_Go/internal/utils"
)

// ResolveDrops rolls every entry independently against its drop chance and
// returns the winners, possibly none.
func (s *Service) ResolveDrops(items []domain.RewardItem) []domain.RewardItem {
	var won []domain.RewardItem
	for _, item := range items {
		if utils.RollPercent(s.rnd, item.DropChance) {
			won = append(won, item)
		}
	}
	return won
}

// PickWeighted returns exactly one index drawn in proportion to weights, or
// -1 if no weight is positive.
func (s *Service) PickWeighted(weights []float64) int {
	return utils.WeightedIndex(s.rnd, weights)
}

// PickLoadout chooses one loadout by weight
func (s *Service) PickLoadout(loadouts []domain.Loadout) (domain.Loadout, bool) {
	weights := make([]float64, len(loadouts))
	for i, l := range loadouts {
		weights[i] = l.Weight
	}
	i := s.PickWeighted(weights)
	if i < 0 {
		return domain.Loadout{}, false
	}
	return loadouts[i], true
}

// GrantItems hands items to a player, splitting them into those that fit and
// those that did not. Grant errors are logged and count as not delivered.
func (s *Service) GrantItems(ctx context.Context, id int64, items []domain.RewardItem) (delivered, skipped []domain.RewardItem) {
	log := logger.FromContext(ctx)
	for _, item := range items {
		ok, err := s.world.GrantItem(ctx, id, item.Spec(), item.Amount)
		if err != nil {
			log.Warn(LogMsgGrantFailed, "player_id", id, "item", item.Name, "error", err)
		}
		if ok && err == nil {
			delivered = append(delivered, item)
		} else {
			skipped = append(skipped, item)
		}
	}
	return delivered, skipped
}
