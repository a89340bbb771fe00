package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/logger"
)

// CommandResponse is the (success, message) pair every command returns, with
// optional structured data for clients that want more than the message.
type CommandResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse represents a transport-level error
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		logger.Error(LogMsgEncodeFailed, "error", err)
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error(LogMsgWriteFailed, "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

func respondOK(w http.ResponseWriter, message string, data any) {
	respondJSON(w, http.StatusOK, CommandResponse{Success: true, Message: message, Data: data})
}

// respondServiceError logs err and sends the user-facing failure
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := mapServiceError(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "operation", op, "error", err)
	} else {
		log.Info(LogMsgServiceError, "operation", op, "reason", msg)
	}
	respondJSON(w, status, CommandResponse{Success: false, Message: msg})
}

// mapServiceError maps domain errors to a status code and the user-facing
// message. Anything unrecognised is a generic server error.
func mapServiceError(err error) (int, string) {
	_, msg := domain.Outcome(err)
	switch {
	case errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrRewardNotFound),
		errors.Is(err, domain.ErrTransferCodeNotFound),
		errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, msg
	case errors.Is(err, domain.ErrAlreadyParticipating),
		errors.Is(err, domain.ErrInOtherEvent),
		errors.Is(err, domain.ErrEventAlreadyStarted),
		errors.Is(err, domain.ErrTeamsFull),
		errors.Is(err, domain.ErrEventBusy):
		return http.StatusConflict, msg
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrTooManyPendingTransfers):
		return http.StatusServiceUnavailable, msg
	case domain.IsUserFacing(err):
		return http.StatusBadRequest, msg
	}
	return http.StatusInternalServerError, msg
}
