package economy

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/event"
	"github.com/osse101/BrandishEvents_Go/internal/logger"
)

// Balance returns a player's points
func (s *Service) Balance(ctx context.Context, id int64) (int64, error) {
	pts, err := s.accounts.GetPoints(ctx, id)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgGetPointsFailed, err)
	}
	return pts, nil
}

// AwardPoints adds delta to a player's balance. Negative deltas deduct; with
// AllowNegativeBalance unset they stop at zero.
func (s *Service) AwardPoints(ctx context.Context, id int64, delta int64, reason string) error {
	if delta == 0 {
		return nil
	}

	applied := delta
	if delta < 0 && !s.cfg.AllowNegativeBalance {
		var err error
		if applied, err = s.deductClamped(ctx, id, -delta); err != nil {
			return err
		}
		if applied == 0 {
			return nil
		}
	} else if err := s.accounts.UpdatePoints(ctx, id, delta); err != nil {
		return fmt.Errorf(ErrMsgUpdatePointsFailed, err)
	}

	logger.FromContext(ctx).Debug(LogMsgPointsAwarded, "player_id", id, "delta", applied, "reason", reason)
	s.publish(ctx, event.NewPointsAwardedEvent(id, applied, reason))
	return nil
}

// deductClamped removes up to amount, never crossing zero. Returns the
// (negative) delta actually applied.
func (s *Service) deductClamped(ctx context.Context, id int64, amount int64) (int64, error) {
	err := s.accounts.DebitPoints(ctx, id, amount)
	if err == nil {
		return -amount, nil
	}
	if !errors.Is(err, domain.ErrInsufficientPoints) {
		return 0, fmt.Errorf(ErrMsgDebitFailed, err)
	}

	bal, err := s.accounts.GetPoints(ctx, id)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgGetPointsFailed, err)
	}
	if bal <= 0 {
		return 0, nil
	}
	if err := s.accounts.DebitPoints(ctx, id, bal); err != nil {
		if errors.Is(err, domain.ErrInsufficientPoints) {
			// Balance moved under us; leave it alone.
			return 0, nil
		}
		return 0, fmt.Errorf(ErrMsgDebitFailed, err)
	}
	logger.FromContext(ctx).Info(LogMsgPointsClamped, "player_id", id, "requested", amount, "applied", bal)
	return -bal, nil
}

// Leaderboard returns the top n players by points
func (s *Service) Leaderboard(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	if n <= 0 {
		n = domain.LeaderboardSize
	}
	return s.accounts.GetTopN(ctx, n)
}
