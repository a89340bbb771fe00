package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/BrandishEvents_Go/internal/config"
	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/lifecycle"
)

func TestHandleModifyPoints(t *testing.T) {
	econ := &MockEconomy{}
	econ.On("AwardPoints", mock.Anything, int64(5), int64(-20), domain.PointReasonAdmin).Return(nil)
	econ.On("Balance", mock.Anything, int64(5)).Return(int64(80), nil)

	w := httptest.NewRecorder()
	NewAdminHandlers(&MockEvents{}, econ, nil).HandleModifyPoints().
		ServeHTTP(w, jsonRequest("POST", "/", `{"player_id":5,"delta":-20}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, fmt.Sprintf(MsgPointsModified, 5, -20), decodeCommand(t, w).Message)
	assert.Contains(t, w.Body.String(), `"balance":80`)
	econ.AssertExpectations(t)
}

func TestHandleStartStopEvent(t *testing.T) {
	events := &MockEvents{}
	events.On("ForceStart", mock.Anything, "Arena").Return(nil)
	events.On("ForceStop", mock.Anything, "Arena").Return(fmt.Errorf("%w: Idle", domain.ErrInvalidTransition))
	events.On("ForceStart", mock.Anything, "Nope").Return(domain.ErrEventNotFound)
	h := NewAdminHandlers(events, &MockEconomy{}, nil)

	w := httptest.NewRecorder()
	h.HandleStartEvent().ServeHTTP(w, withEventName(httptest.NewRequest("POST", "/", nil), "Arena"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, fmt.Sprintf(MsgEventStarted, "Arena"), decodeCommand(t, w).Message)

	w = httptest.NewRecorder()
	h.HandleStopEvent().ServeHTTP(w, withEventName(httptest.NewRequest("POST", "/", nil), "Arena"))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = httptest.NewRecorder()
	h.HandleStartEvent().ServeHTTP(w, withEventName(httptest.NewRequest("POST", "/", nil), "Nope"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	events.AssertExpectations(t)
}

func TestHandleReload(t *testing.T) {
	t.Run("applies events and rewards", func(t *testing.T) {
		catalog := &config.Catalog{
			Events: []domain.EventDefinition{{Name: "Arena"}},
			Rewards: domain.RewardCatalog{
				Sets:  []domain.RewardSet{{Name: "Starter"}},
				Items: []domain.RewardItem{{Name: "sword"}},
			},
			Warnings: []string{"rewards.toml: duplicate item \"sword\""},
		}
		events := &MockEvents{}
		events.On("Reload", mock.Anything, catalog.Events).Return(lifecycle.ReloadResult{Updated: []string{"Arena"}})
		econ := &MockEconomy{}
		econ.On("SetCatalog", catalog.Rewards).Return()

		w := httptest.NewRecorder()
		NewAdminHandlers(events, econ, func() (*config.Catalog, error) { return catalog, nil }).
			HandleReload().ServeHTTP(w, httptest.NewRequest("POST", "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `"rewards":2`)
		assert.Contains(t, body, `"updated":["Arena"]`)
		assert.Contains(t, body, "duplicate item")
		events.AssertExpectations(t)
		econ.AssertExpectations(t)
	})

	t.Run("broken config keeps the running set", func(t *testing.T) {
		events := &MockEvents{}
		econ := &MockEconomy{}

		w := httptest.NewRecorder()
		NewAdminHandlers(events, econ, func() (*config.Catalog, error) { return nil, errors.New("bad toml") }).
			HandleReload().ServeHTTP(w, httptest.NewRequest("POST", "/", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, ErrMsgReloadConfigFailed, decodeCommand(t, w).Message)
		events.AssertNotCalled(t, "Reload", mock.Anything, mock.Anything)
		econ.AssertNotCalled(t, "SetCatalog", mock.Anything)
	})
}

func TestHandleLink(t *testing.T) {
	accounts := &MockLinker{}
	accounts.On("RegisterPlayer", mock.Anything, int64(3), "Alice").Return(nil)
	accounts.On("LinkExternalID", mock.Anything, int64(3), "123456789").Return(nil)

	w := httptest.NewRecorder()
	HandleLink(accounts).ServeHTTP(w, jsonRequest("POST", "/", `{"player_id":3,"name":"Alice","external_id":"123456789"}`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, MsgAccountLinked, decodeCommand(t, w).Message)
	accounts.AssertExpectations(t)

	w = httptest.NewRecorder()
	HandleLink(&MockLinker{}).ServeHTTP(w, jsonRequest("POST", "/", `{"player_id":3,"external_id":"not-a-number"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
