package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
)

// TransferRequest starts a points transfer
type TransferRequest struct {
	PlayerID int64 `json:"player_id" validate:"required,gt=0"`
	Amount   int64 `json:"amount" validate:"required,gt=0,max=1000000"`
}

// ClaimRequest redeems a transfer code
type ClaimRequest struct {
	PlayerID int64  `json:"player_id" validate:"required,gt=0"`
	Code     string `json:"code" validate:"required,transfercode"`
}

// BuyRewardRequest purchases a reward bundle or item
type BuyRewardRequest struct {
	PlayerID int64  `json:"player_id" validate:"required,gt=0"`
	Reward   string `json:"reward" validate:"required,max=100"`
}

// PointsResponse is a balance with leaderboard context
type PointsResponse struct {
	PlayerID     int64                     `json:"player_id"`
	Points       int64                     `json:"points"`
	Rank         int                       `json:"rank,omitempty"`
	PointsToNext int64                     `json:"points_to_next,omitempty"`
	Leaderboard  []domain.LeaderboardEntry `json:"leaderboard"`
}

// EconomyHandlers serves the points and reward commands
type EconomyHandlers struct {
	economy EconomyService
}

// NewEconomyHandlers creates economy command handlers
func NewEconomyHandlers(economy EconomyService) *EconomyHandlers {
	return &EconomyHandlers{economy: economy}
}

// HandleCheckPoints returns a player's balance and where it places them
func (h *EconomyHandlers) HandleCheckPoints() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPlayerIDParam(r, w)
		if !ok {
			return
		}
		balance, err := h.economy.Balance(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "check_points", err)
			return
		}
		top, err := h.economy.Leaderboard(r.Context(), domain.LeaderboardSize)
		if err != nil {
			respondServiceError(w, r, "check_points", err)
			return
		}

		resp := PointsResponse{PlayerID: id, Points: balance, Leaderboard: top}
		resp.Rank, resp.PointsToNext = rankOf(balance, top, domain.LeaderboardSize)
		msg := fmt.Sprintf(MsgBalance, balance)
		if resp.Rank > 0 {
			msg = fmt.Sprintf(MsgBalanceRanked, balance, resp.Rank)
		}
		respondOK(w, msg, resp)
	}
}

// rankOf places balance within a top-n board sorted by descending points.
// Rank is zero when the board is full and the balance does not reach it.
// PointsToNext is what it takes to pass the next entry up.
func rankOf(balance int64, top []domain.LeaderboardEntry, n int) (rank int, toNext int64) {
	above := 0
	for _, e := range top {
		if e.Points > balance {
			above++
			toNext = e.Points - balance + 1
		}
	}
	rank = above + 1
	if rank > len(top) && len(top) >= n {
		return 0, toNext
	}
	return rank, toNext
}

// HandleLeaderboard returns the top players
func (h *EconomyHandlers) HandleLeaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := strconv.Atoi(GetOptionalQueryParam(r, "limit", strconv.Itoa(domain.LeaderboardSize)))
		if err != nil || limit <= 0 || limit > 100 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
			return
		}
		top, err := h.economy.Leaderboard(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, "leaderboard", err)
			return
		}
		respondOK(w, "", top)
	}
}

// HandleTransfer creates a claim code for a points transfer
func (h *EconomyHandlers) HandleTransfer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TransferRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Transfer"); err != nil {
			return
		}
		code, err := h.economy.InitiateTransfer(r.Context(), req.PlayerID, req.Amount)
		if err != nil {
			respondServiceError(w, r, "transfer", err)
			return
		}
		respondOK(w, fmt.Sprintf(MsgTransferCreated, req.Amount, code), map[string]string{"code": code})
	}
}

// HandleClaim redeems a transfer code
func (h *EconomyHandlers) HandleClaim() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ClaimRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim"); err != nil {
			return
		}
		t, err := h.economy.CompleteTransfer(r.Context(), req.Code, req.PlayerID)
		if err != nil {
			respondServiceError(w, r, "claim", err)
			return
		}
		respondOK(w, fmt.Sprintf(MsgTransferClaimed, t.Amount), t)
	}
}

// HandleBuyReward purchases a reward with points
func (h *EconomyHandlers) HandleBuyReward() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BuyRewardRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Buy reward"); err != nil {
			return
		}
		res, err := h.economy.PurchaseReward(r.Context(), req.PlayerID, req.Reward)
		if err != nil {
			respondServiceError(w, r, "buy_reward", err)
			return
		}
		msg := fmt.Sprintf(MsgRewardBought, res.Reward, res.Cost)
		if len(res.Skipped) > 0 {
			msg = fmt.Sprintf(MsgRewardPartial, res.Reward, res.Cost, len(res.Skipped))
		}
		respondOK(w, msg, res)
	}
}
