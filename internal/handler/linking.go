package handler

import (
	"net/http"

	"github.com/osse101/BrandishEvents_Go/internal/logger"
)

// LinkRequest attaches an external chat account to a player
type LinkRequest struct {
	PlayerID   int64  `json:"player_id" validate:"required,gt=0"`
	Name       string `json:"name" validate:"omitempty,max=64,excludesall=\x00\n\r\t"`
	ExternalID string `json:"external_id" validate:"required,max=32,numeric"`
}

// HandleLink registers the player and stores their external id, so chat
// notifications can reach them directly.
func HandleLink(accounts AccountLinker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LinkRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Link"); err != nil {
			return
		}
		ctx := r.Context()
		if req.Name != "" {
			if err := accounts.RegisterPlayer(ctx, req.PlayerID, req.Name); err != nil {
				respondServiceError(w, r, "link", err)
				return
			}
		}
		if err := accounts.LinkExternalID(ctx, req.PlayerID, req.ExternalID); err != nil {
			respondServiceError(w, r, "link", err)
			return
		}
		logger.FromContext(ctx).Info(LogMsgLinkedExternalID, "player_id", req.PlayerID)
		respondOK(w, MsgAccountLinked, nil)
	}
}
