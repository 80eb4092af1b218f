package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fichaje/roster/internal/domain"
	"github.com/fichaje/roster/internal/service"
)

// PlayerHandler handles player lifecycle and query endpoints.
type PlayerHandler struct {
	roster *service.RosterService
}

// NewPlayerHandler creates a PlayerHandler.
func NewPlayerHandler(roster *service.RosterService) *PlayerHandler {
	return &PlayerHandler{roster: roster}
}

type createPlayerRequest struct {
	FirstName   string            `json:"first_name"`
	LastName    string            `json:"last_name"`
	Alias       *string           `json:"alias,omitempty"`
	BirthDate   string            `json:"birth_date"`
	Country     string            `json:"country"`
	Gender      string            `json:"gender"`
	Position    string            `json:"position"`
	Image       string            `json:"image"`
	Salary      *int64            `json:"salary,omitempty"`
	SocialMedia map[string]string `json:"social_media,omitempty"`
	NationStats json.RawMessage   `json:"nation_stats,omitempty"`
}

// playerResponse decorates the aggregate with its derived attributes, which
// are recomputed on every read and never persisted.
type playerResponse struct {
	*domain.Player
	FullName           string     `json:"full_name"`
	Age                int        `json:"age"`
	TotalSeasonsPlayed int        `json:"total_seasons_played"`
	CurrentTeam        *uuid.UUID `json:"current_team"`
	FreeToTransfer     bool       `json:"free_to_transfer"`
}

func newPlayerResponse(p *domain.Player) playerResponse {
	now := time.Now()
	return playerResponse{
		Player:             p,
		FullName:           p.FullName(),
		Age:                p.Age(now),
		TotalSeasonsPlayed: p.TotalSeasonsPlayed(now),
		CurrentTeam:        p.CurrentTeam(),
		FreeToTransfer:     p.FreeToTransfer(),
	}
}

func newPlayerResponses(players []domain.Player) []playerResponse {
	resp := make([]playerResponse, len(players))
	for i := range players {
		resp[i] = newPlayerResponse(&players[i])
	}
	return resp
}

// Create handles POST /players.
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		RespondError(w, domain.ErrValidation("birth_date must be formatted as YYYY-MM-DD"))
		return
	}

	player, err := h.roster.CreatePlayer(r.Context(), domain.NewPlayerParams{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Alias:       req.Alias,
		BirthDate:   birthDate,
		Country:     req.Country,
		Gender:      domain.Gender(req.Gender),
		Position:    domain.Position(req.Position),
		Image:       req.Image,
		Salary:      req.Salary,
		SocialMedia: req.SocialMedia,
		NationStats: req.NationStats,
	})
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, newPlayerResponse(player))
}

// Get handles GET /players/{playerID}.
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathUUID(r, "playerID")
	if err != nil {
		RespondError(w, err)
		return
	}
	player, err := h.roster.GetPlayer(r.Context(), playerID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, newPlayerResponse(player))
}

// ListFree handles GET /players/free.
func (h *PlayerHandler) ListFree(w http.ResponseWriter, r *http.Request) {
	players, err := h.roster.FindFreePlayers(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, newPlayerResponses(players))
}

// ListByTeam handles GET /teams/{teamID}/players.
func (h *PlayerHandler) ListByTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathUUID(r, "teamID")
	if err != nil {
		RespondError(w, err)
		return
	}
	players, err := h.roster.FetchOwnPlayers(r.Context(), teamID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, newPlayerResponses(players))
}

// Delete handles DELETE /players/{playerID}.
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathUUID(r, "playerID")
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := h.roster.DeletePlayer(r.Context(), playerID); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusNoContent, nil)
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domain.ErrValidation(name + " must be a valid uuid")
	}
	return id, nil
}
