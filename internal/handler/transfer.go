package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/fichaje/roster/internal/domain"
	"github.com/fichaje/roster/internal/service"
)

// TransferHandler handles the transfer endpoint.
type TransferHandler struct {
	transfers *service.TransferService
}

// NewTransferHandler creates a TransferHandler.
func NewTransferHandler(transfers *service.TransferService) *TransferHandler {
	return &TransferHandler{transfers: transfers}
}

type transferRequest struct {
	PlayerID string  `json:"player_id"`
	TeamFrom *string `json:"team_from,omitempty"`
	TeamTo   string  `json:"team_to"`
	Price    *int64  `json:"price,omitempty"`
	Year     int     `json:"year"`
}

// Transfer handles POST /transfers.
func (h *TransferHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	playerID, err := parseUUID(req.PlayerID, "player_id")
	if err != nil {
		RespondError(w, err)
		return
	}
	teamTo, err := parseUUID(req.TeamTo, "team_to")
	if err != nil {
		RespondError(w, err)
		return
	}
	var teamFrom *uuid.UUID
	if req.TeamFrom != nil {
		parsed, err := parseUUID(*req.TeamFrom, "team_from")
		if err != nil {
			RespondError(w, err)
			return
		}
		teamFrom = &parsed
	}
	if req.Year == 0 {
		RespondError(w, domain.ErrValidation("year is required"))
		return
	}

	result, err := h.transfers.Transfer(r.Context(), domain.TransferParams{
		PlayerID: playerID,
		TeamFrom: teamFrom,
		TeamTo:   teamTo,
		Price:    req.Price,
		Year:     req.Year,
	})
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, result)
}

func parseUUID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrValidation(field + " must be a valid uuid")
	}
	return id, nil
}
