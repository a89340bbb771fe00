package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/metrics"
)

// JoinRequest is the body of join and leave
type JoinRequest struct {
	Event    string `json:"event" validate:"required,max=100"`
	PlayerID int64  `json:"player_id" validate:"required,gt=0"`
}

// KillRequest reports one kill inside a running event
type KillRequest struct {
	KillerID int64 `json:"killer_id" validate:"required,gt=0"`
	VictimID int64 `json:"victim_id" validate:"required,gt=0,nefield=KillerID"`
}

// EventHandlers serves the event commands
type EventHandlers struct {
	events EventService
}

// NewEventHandlers creates event command handlers
func NewEventHandlers(events EventService) *EventHandlers {
	return &EventHandlers{events: events}
}

// HandleJoin adds a player to an event
func (h *EventHandlers) HandleJoin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req JoinRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Join"); err != nil {
			return
		}

		team, err := h.events.Join(r.Context(), req.Event, req.PlayerID)
		if err != nil {
			metrics.JoinRejections.WithLabelValues(rejectionReason(err)).Inc()
			respondServiceError(w, r, "join", err)
			return
		}

		msg := fmt.Sprintf(MsgJoinedEvent, req.Event)
		if team != "" {
			msg = fmt.Sprintf(MsgJoinedEventTeam, req.Event, team)
		}
		respondOK(w, msg, map[string]string{"team": team})
	}
}

// HandleLeave removes a player from an event
func (h *EventHandlers) HandleLeave() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req JoinRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Leave"); err != nil {
			return
		}
		if err := h.events.Leave(r.Context(), req.Event, req.PlayerID); err != nil {
			respondServiceError(w, r, "leave", err)
			return
		}
		respondOK(w, fmt.Sprintf(MsgLeftEvent, req.Event), nil)
	}
}

// HandleListEvents reports every registered event
func (h *EventHandlers) HandleListEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list := h.events.List()
		respondOK(w, fmt.Sprintf(MsgEventList, len(list)), list)
	}
}

// HandleReportKill scores a kill in the named event
func (h *EventHandlers) HandleReportKill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := eventNameParam(r, w)
		if !ok {
			return
		}
		var req KillRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Report kill"); err != nil {
			return
		}
		if err := h.events.RecordKill(r.Context(), name, req.KillerID, req.VictimID); err != nil {
			respondServiceError(w, r, "report_kill", err)
			return
		}
		respondOK(w, MsgKillRecorded, nil)
	}
}

// rejectionReason labels a failed join for metrics
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrAlreadyParticipating):
		return "already_participating"
	case errors.Is(err, domain.ErrInOtherEvent):
		return "other_event"
	case errors.Is(err, domain.ErrEventAlreadyStarted):
		return "already_started"
	case errors.Is(err, domain.ErrEventNotRunning):
		return "not_running"
	case errors.Is(err, domain.ErrTeamsFull):
		return "teams_full"
	case errors.Is(err, domain.ErrNoSignUp):
		return "no_sign_up"
	case errors.Is(err, domain.ErrEventNotFound):
		return "not_found"
	}
	return "error"
}
