package economy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/event"
	"github.com/osse101/BrandishEvents_Go/internal/idgen"
	"github.com/osse101/BrandishEvents_Go/internal/logger"
)

// InitiateTransfer records a pending transfer and returns its claim code.
// Nothing is reserved; the sender is only charged when the code is claimed.
func (s *Service) InitiateTransfer(ctx context.Context, sender int64, amount int64) (string, error) {
	if amount <= 0 {
		return "", domain.ErrInvalidAmount
	}
	bal, err := s.Balance(ctx, sender)
	if err != nil {
		return "", err
	}
	if bal < amount {
		return "", domain.ErrInsufficientPoints
	}

	var code string
	err = s.locks.WithLock(lockPendingSet, func() error {
		// A full set rejects new codes rather than evicting an unclaimed one
		if s.pending.Len() >= s.cfg.MaxPendingTransfers {
			return domain.ErrTooManyPendingTransfers
		}
		code, err = s.issueCode(sender, amount)
		return err
	})
	if err != nil {
		return "", err
	}
	logger.FromContext(ctx).Info(LogMsgTransferInitiated, "sender_id", sender, "amount", amount)
	return code, nil
}

// issueCode stores a transfer under a fresh code. Caller holds lockPendingSet.
func (s *Service) issueCode(sender, amount int64) (string, error) {
	for range codeAttempts {
		code, err := idgen.TransferCode()
		if err != nil {
			return "", fmt.Errorf(ErrMsgCodeFailed, err)
		}
		if s.pending.Contains(code) {
			continue
		}
		s.pending.Add(code, domain.PointsTransfer{
			Code:      code,
			SenderID:  sender,
			Amount:    amount,
			CreatedAt: s.now(),
		})
		return code, nil
	}
	return "", errors.New(ErrMsgCodeCollision)
}

// CompleteTransfer claims a code for receiver: the sender is debited, the
// receiver credited, and the code retired. A failed credit refunds the sender
// and leaves the code claimable.
func (s *Service) CompleteTransfer(ctx context.Context, code string, receiver int64) (domain.PointsTransfer, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	key := lockPrefixTransfer + code

	var (
		done    domain.PointsTransfer
		retired bool
	)
	err := s.locks.WithLock(key, func() error {
		t, ok := s.pending.Get(code)
		if !ok {
			return domain.ErrTransferCodeNotFound
		}
		if t.SenderID == receiver {
			return domain.ErrSelfTransfer
		}

		debit := func() error { return s.accounts.DebitPoints(ctx, t.SenderID, t.Amount) }
		if err := s.locks.WithLock(playerLock(t.SenderID), debit); err != nil {
			if errors.Is(err, domain.ErrInsufficientPoints) {
				s.pending.Remove(code)
				retired = true
				return domain.ErrSenderShortOnPoints
			}
			return fmt.Errorf(ErrMsgDebitFailed, err)
		}

		if err := s.accounts.UpdatePoints(ctx, receiver, t.Amount); err != nil {
			if cerr := s.accounts.UpdatePoints(ctx, t.SenderID, t.Amount); cerr != nil {
				logger.FromContext(ctx).Error(LogMsgCompensationFailed, "sender_id", t.SenderID, "amount", t.Amount, "error", cerr)
			}
			return fmt.Errorf(ErrMsgCreditFailed, err)
		}

		s.pending.Remove(code)
		retired = true
		done = t
		return nil
	})
	if retired {
		s.locks.Release(key)
	}
	if err != nil {
		return domain.PointsTransfer{}, err
	}

	logger.FromContext(ctx).Info(LogMsgTransferCompleted, "sender_id", done.SenderID, "receiver_id", receiver, "amount", done.Amount)
	s.publish(ctx, event.NewTransferCompletedEvent(done.SenderID, receiver, done.Amount))
	return done, nil
}

// PendingTransfers is the number of unclaimed codes
func (s *Service) PendingTransfers() int {
	return s.pending.Len()
}
