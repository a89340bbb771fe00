package handler

import (
	"fmt"
	"net/http"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/lifecycle"
	"github.com/osse101/BrandishEvents_Go/internal/logger"
)

// ModifyPointsRequest adjusts a balance by an admin
type ModifyPointsRequest struct {
	PlayerID int64 `json:"player_id" validate:"required,gt=0"`
	Delta    int64 `json:"delta" validate:"required,ne=0,min=-1000000,max=1000000"`
}

// ReloadResponse summarises a configuration reload
type ReloadResponse struct {
	Events   lifecycle.ReloadResult `json:"events"`
	Rewards  int                    `json:"rewards"`
	Warnings []string               `json:"warnings,omitempty"`
}

// AdminHandlers serves the admin commands
type AdminHandlers struct {
	events  EventService
	economy EconomyService
	load    CatalogLoader
}

// NewAdminHandlers creates admin command handlers
func NewAdminHandlers(events EventService, economy EconomyService, load CatalogLoader) *AdminHandlers {
	return &AdminHandlers{events: events, economy: economy, load: load}
}

// HandleModifyPoints adds or removes points from a player
func (h *AdminHandlers) HandleModifyPoints() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ModifyPointsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Modify points"); err != nil {
			return
		}
		if err := h.economy.AwardPoints(r.Context(), req.PlayerID, req.Delta, domain.PointReasonAdmin); err != nil {
			respondServiceError(w, r, "modify_points", err)
			return
		}
		balance, err := h.economy.Balance(r.Context(), req.PlayerID)
		if err != nil {
			respondServiceError(w, r, "modify_points", err)
			return
		}
		logger.FromContext(r.Context()).Info(LogMsgAdminModified, "player_id", req.PlayerID, "delta", req.Delta, "balance", balance)
		respondOK(w, fmt.Sprintf(MsgPointsModified, req.PlayerID, req.Delta), map[string]int64{"balance": balance})
	}
}

// HandleStartEvent force-starts the named event
func (h *AdminHandlers) HandleStartEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := eventNameParam(r, w)
		if !ok {
			return
		}
		if err := h.events.ForceStart(r.Context(), name); err != nil {
			respondServiceError(w, r, "start_event", err)
			return
		}
		logger.FromContext(r.Context()).Info(LogMsgAdminForceStart, "event", name)
		respondOK(w, fmt.Sprintf(MsgEventStarted, name), nil)
	}
}

// HandleStopEvent ends the named event's round
func (h *AdminHandlers) HandleStopEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := eventNameParam(r, w)
		if !ok {
			return
		}
		if err := h.events.ForceStop(r.Context(), name); err != nil {
			respondServiceError(w, r, "stop_event", err)
			return
		}
		logger.FromContext(r.Context()).Info(LogMsgAdminForceStop, "event", name)
		respondOK(w, fmt.Sprintf(MsgEventStopped, name), nil)
	}
}

// HandleReload re-reads the event and reward configuration
func (h *AdminHandlers) HandleReload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		catalog, err := h.load()
		if err != nil {
			log.Error(LogMsgReloadFailed, "error", err)
			respondJSON(w, http.StatusUnprocessableEntity, CommandResponse{Success: false, Message: ErrMsgReloadConfigFailed})
			return
		}

		res := h.events.Reload(r.Context(), catalog.Events)
		h.economy.SetCatalog(catalog.Rewards)
		log.Info(LogMsgReloadCompleted, "added", len(res.Added), "updated", len(res.Updated), "removed", len(res.Removed))

		respondOK(w, MsgConfigReloaded, ReloadResponse{
			Events:   res,
			Rewards:  len(catalog.Rewards.Sets) + len(catalog.Rewards.Items),
			Warnings: catalog.Warnings,
		})
	}
}
