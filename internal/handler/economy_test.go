package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/economy"
)

func board(points ...int64) []domain.LeaderboardEntry {
	out := make([]domain.LeaderboardEntry, len(points))
	for i, p := range points {
		out[i] = domain.LeaderboardEntry{Name: fmt.Sprintf("p%d", i+1), Points: p}
	}
	return out
}

func TestRankOf(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		top     []domain.LeaderboardEntry
		n       int
		rank    int
		toNext  int64
	}{
		{"leader", 100, board(100, 50, 10), 3, 1, 0},
		{"middle", 50, board(100, 50, 10), 3, 2, 51},
		{"tied with last", 10, board(100, 50, 10), 3, 3, 41},
		{"below a full board", 5, board(100, 50, 10), 3, 0, 6},
		{"board not full", 0, board(100), 3, 2, 101},
		{"empty board", 0, nil, 3, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rank, toNext := rankOf(tt.balance, tt.top, tt.n)
			assert.Equal(t, tt.rank, rank)
			assert.Equal(t, tt.toNext, toNext)
		})
	}
}

func TestHandleCheckPoints(t *testing.T) {
	t.Run("ranked", func(t *testing.T) {
		econ := &MockEconomy{}
		econ.On("Balance", mock.Anything, int64(4)).Return(int64(50), nil)
		econ.On("Leaderboard", mock.Anything, domain.LeaderboardSize).Return(board(100, 50, 10), nil)

		w := httptest.NewRecorder()
		NewEconomyHandlers(econ).HandleCheckPoints().ServeHTTP(w, httptest.NewRequest("GET", "/?player_id=4", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Message string         `json:"message"`
			Data    PointsResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, fmt.Sprintf(MsgBalanceRanked, 50, 2), resp.Message)
		assert.Equal(t, 2, resp.Data.Rank)
		assert.Equal(t, int64(51), resp.Data.PointsToNext)
		econ.AssertExpectations(t)
	})

	t.Run("missing player id", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewEconomyHandlers(&MockEconomy{}).HandleCheckPoints().ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("store failure is generic", func(t *testing.T) {
		econ := &MockEconomy{}
		econ.On("Balance", mock.Anything, int64(4)).Return(int64(0), assert.AnError)

		w := httptest.NewRecorder()
		NewEconomyHandlers(econ).HandleCheckPoints().ServeHTTP(w, httptest.NewRequest("GET", "/?player_id=4", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, domain.ErrMsgGeneric, decodeCommand(t, w).Message)
	})
}

func TestHandleLeaderboard(t *testing.T) {
	econ := &MockEconomy{}
	econ.On("Leaderboard", mock.Anything, 3).Return(board(9, 8, 7), nil)
	h := NewEconomyHandlers(econ)

	w := httptest.NewRecorder()
	h.HandleLeaderboard().ServeHTTP(w, httptest.NewRequest("GET", "/?limit=3", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"points":9`)

	w = httptest.NewRecorder()
	h.HandleLeaderboard().ServeHTTP(w, httptest.NewRequest("GET", "/?limit=0", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	econ.AssertExpectations(t)
}

func TestHandleTransferAndClaim(t *testing.T) {
	econ := &MockEconomy{}
	econ.On("InitiateTransfer", mock.Anything, int64(1), int64(25)).Return("ABCD2345", nil)
	econ.On("CompleteTransfer", mock.Anything, "ABCD2345", int64(2)).
		Return(domain.PointsTransfer{Code: "ABCD2345", SenderID: 1, Amount: 25}, nil)
	econ.On("CompleteTransfer", mock.Anything, "ZZZZ2345", int64(2)).
		Return(domain.PointsTransfer{}, domain.ErrTransferCodeNotFound)
	h := NewEconomyHandlers(econ)

	w := httptest.NewRecorder()
	h.HandleTransfer().ServeHTTP(w, jsonRequest("POST", "/", `{"player_id":1,"amount":25}`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, fmt.Sprintf(MsgTransferCreated, 25, "ABCD2345"), decodeCommand(t, w).Message)

	w = httptest.NewRecorder()
	h.HandleClaim().ServeHTTP(w, jsonRequest("POST", "/", `{"player_id":2,"code":"ABCD2345"}`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, fmt.Sprintf(MsgTransferClaimed, 25), decodeCommand(t, w).Message)

	w = httptest.NewRecorder()
	h.HandleClaim().ServeHTTP(w, jsonRequest("POST", "/", `{"player_id":2,"code":"ZZZZ2345"}`))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.HandleTransfer().ServeHTTP(w, jsonRequest("POST", "/", `{"player_id":1,"amount":-5}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	econ.AssertExpectations(t)
}

func TestHandleBuyReward(t *testing.T) {
	econ := &MockEconomy{}
	econ.On("PurchaseReward", mock.Anything, int64(1), "Starter").Return(&economy.PurchaseResult{
		Reward: "Starter", Delivered: []string{"sword"}, Skipped: []string{"shield"}, Cost: 40, Balance: 60,
	}, nil)
	econ.On("PurchaseReward", mock.Anything, int64(2), "Starter").Return(nil, domain.ErrInsufficientPoints)
	h := NewEconomyHandlers(econ)

	w := httptest.NewRecorder()
	h.HandleBuyReward().ServeHTTP(w, jsonRequest("POST", "/", `{"player_id":1,"reward":"Starter"}`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, fmt.Sprintf(MsgRewardPartial, "Starter", 40, 1), decodeCommand(t, w).Message)

	w = httptest.NewRecorder()
	h.HandleBuyReward().ServeHTTP(w, jsonRequest("POST", "/", `{"player_id":2,"reward":"Starter"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.ErrMsgInsufficientPoints, decodeCommand(t, w).Message)
}
