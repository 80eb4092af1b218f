package handler

import (
	"net/http"

	"github.com/fichaje/roster/internal/domain"
	"github.com/fichaje/roster/internal/service"
)

// RecordHandler handles the record-history endpoints of one player.
type RecordHandler struct {
	roster *service.RosterService
}

// NewRecordHandler creates a RecordHandler.
func NewRecordHandler(roster *service.RosterService) *RecordHandler {
	return &RecordHandler{roster: roster}
}

type openTeamRecordRequest struct {
	TeamID    string `json:"team_id"`
	YearStart int    `json:"year_start"`
}

// OpenTeamRecord handles POST /players/{playerID}/team-records.
func (h *RecordHandler) OpenTeamRecord(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathUUID(r, "playerID")
	if err != nil {
		RespondError(w, err)
		return
	}
	var req openTeamRecordRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}
	teamID, err := parseUUID(req.TeamID, "team_id")
	if err != nil {
		RespondError(w, err)
		return
	}

	record, err := h.roster.OpenTeamRecord(r.Context(), playerID, teamID, req.YearStart)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, record)
}

type closeRecordRequest struct {
	YearFinish int `json:"year_finish"`
}

// CloseTeamRecord handles POST /players/{playerID}/team-records/close.
func (h *RecordHandler) CloseTeamRecord(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathUUID(r, "playerID")
	if err != nil {
		RespondError(w, err)
		return
	}
	var req closeRecordRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	record, err := h.roster.CloseTeamRecord(r.Context(), playerID, req.YearFinish)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, record)
}

type openDorsalRecordRequest struct {
	Dorsal    int `json:"dorsal"`
	YearStart int `json:"year_start"`
}

// OpenDorsalRecord handles POST /players/{playerID}/dorsal-records.
func (h *RecordHandler) OpenDorsalRecord(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathUUID(r, "playerID")
	if err != nil {
		RespondError(w, err)
		return
	}
	var req openDorsalRecordRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	record, err := h.roster.OpenDorsalRecord(r.Context(), playerID, req.Dorsal, req.YearStart)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, record)
}

// CloseDorsalRecord handles POST /players/{playerID}/dorsal-records/close.
func (h *RecordHandler) CloseDorsalRecord(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathUUID(r, "playerID")
	if err != nil {
		RespondError(w, err)
		return
	}
	var req closeRecordRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	record, err := h.roster.CloseDorsalRecord(r.Context(), playerID, req.YearFinish)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, record)
}

type priceRecordRequest struct {
	Year   int     `json:"year"`
	Prices []int64 `json:"prices"`
}

// AppendPriceRecord handles POST /players/{playerID}/price-records.
func (h *RecordHandler) AppendPriceRecord(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathUUID(r, "playerID")
	if err != nil {
		RespondError(w, err)
		return
	}
	var req priceRecordRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	if err := h.roster.AppendPriceRecord(r.Context(), playerID, req.Year, req.Prices); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, map[string]int{"year": req.Year})
}

type mediaRecordRequest struct {
	Year    int   `json:"year"`
	Ratings []int `json:"ratings"`
}

// AppendMediaRecord handles POST /players/{playerID}/media-records.
func (h *RecordHandler) AppendMediaRecord(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathUUID(r, "playerID")
	if err != nil {
		RespondError(w, err)
		return
	}
	var req mediaRecordRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	if err := h.roster.AppendMediaRecord(r.Context(), playerID, req.Year, req.Ratings); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, map[string]int{"year": req.Year})
}

// AppendSeasonRecord handles POST /players/{playerID}/season-records.
func (h *RecordHandler) AppendSeasonRecord(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathUUID(r, "playerID")
	if err != nil {
		RespondError(w, err)
		return
	}
	var rec domain.SeasonRecord
	if err := DecodeJSON(r, &rec); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	if err := h.roster.AppendSeasonRecord(r.Context(), playerID, rec); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, rec)
}
