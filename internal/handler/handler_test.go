package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fichaje/roster/internal/domain"
	"github.com/fichaje/roster/internal/repository"
	"github.com/fichaje/roster/internal/service"
)

// --- RespondJSON Tests ---

func TestRespondJSON(t *testing.T) {
	t.Run("200 with body", func(t *testing.T) {
		w := httptest.NewRecorder()
		RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("204 with nil body", func(t *testing.T) {
		w := httptest.NewRecorder()
		RespondJSON(w, http.StatusNoContent, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

// --- RespondError Tests ---

func TestRespondError(t *testing.T) {
	t.Run("AppError maps to correct status", func(t *testing.T) {
		tests := []struct {
			err        *domain.AppError
			wantStatus int
			wantCode   string
		}{
			{domain.ErrNotFound("player", "123"), 404, "NOT_FOUND"},
			{domain.ErrValidation("bad input"), 400, "VALIDATION_ERROR"},
			{domain.ErrInvariant("open record exists"), 409, "INVARIANT_VIOLATION"},
			{domain.ErrDuplicateYear("price record", 2024), 409, "DUPLICATE_YEAR"},
			{domain.ErrOwnershipConflict("wrong team"), 409, "OWNERSHIP_CONFLICT"},
			{domain.ErrNoOpTransfer("team-1"), 409, "NO_OP_TRANSFER"},
			{domain.ErrConcurrentModification("player", "123"), 409, "CONCURRENT_MODIFICATION"},
			{domain.ErrInternal("oops", nil), 500, "INTERNAL_ERROR"},
		}

		for _, tt := range tests {
			t.Run(tt.wantCode, func(t *testing.T) {
				w := httptest.NewRecorder()
				RespondError(w, tt.err)
				assert.Equal(t, tt.wantStatus, w.Code)

				var body map[string]string
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, tt.wantCode, body["code"])
			})
		}
	})

	t.Run("generic error returns 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		RespondError(w, assert.AnError)
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var body map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "INTERNAL_ERROR", body["code"])
	})
}

// --- DecodeJSON Tests ---

func TestDecodeJSON(t *testing.T) {
	t.Run("valid JSON body", func(t *testing.T) {
		body := bytes.NewBufferString(`{"name":"test","value":42}`)
		r := httptest.NewRequest(http.MethodPost, "/", body)
		var dst struct {
			Name  string `json:"name"`
			Value int    `json:"value"`
		}
		require.NoError(t, DecodeJSON(r, &dst))
		assert.Equal(t, "test", dst.Name)
		assert.Equal(t, 42, dst.Value)
	})

	t.Run("invalid JSON returns error", func(t *testing.T) {
		body := bytes.NewBufferString(`{invalid`)
		r := httptest.NewRequest(http.MethodPost, "/", body)
		var dst map[string]interface{}
		require.Error(t, DecodeJSON(r, &dst))
	})
}

// --- Endpoint Tests ---

type testEnv struct {
	store   *repository.MemoryStore
	players *PlayerHandler
	records *RecordHandler
	moves   *TransferHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := repository.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rosterSvc := service.NewRosterService(nil, store, store.Players(), store.Outbox(), logger)
	transferSvc := service.NewTransferService(store, store.Players(), store.Transfers(), store.Outbox(), logger)
	return &testEnv{
		store:   store,
		players: NewPlayerHandler(rosterSvc),
		records: NewRecordHandler(rosterSvc),
		moves:   NewTransferHandler(transferSvc),
	}
}

func (e *testEnv) router() http.Handler {
	r := chi.NewRouter()
	r.Post("/players", e.players.Create)
	r.Get("/players/free", e.players.ListFree)
	r.Get("/players/{playerID}", e.players.Get)
	r.Delete("/players/{playerID}", e.players.Delete)
	r.Post("/players/{playerID}/team-records", e.records.OpenTeamRecord)
	r.Post("/players/{playerID}/team-records/close", e.records.CloseTeamRecord)
	r.Post("/players/{playerID}/dorsal-records", e.records.OpenDorsalRecord)
	r.Post("/players/{playerID}/price-records", e.records.AppendPriceRecord)
	r.Get("/teams/{teamID}/players", e.players.ListByTeam)
	r.Post("/transfers", e.moves.Transfer)
	return r
}

func (e *testEnv) do(t *testing.T, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	w := httptest.NewRecorder()
	e.router().ServeHTTP(w, req)
	return w
}

func (e *testEnv) createPlayer(t *testing.T, first, last string) uuid.UUID {
	t.Helper()
	w := e.do(t, http.MethodPost, "/players", map[string]interface{}{
		"first_name": first,
		"last_name":  last,
		"birth_date": "1999-03-05",
		"country":    "Spain",
		"gender":     "MALE",
		"position":   "EXT",
		"image":      "https://cdn.example.com/p.png",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp.ID
}

func TestPlayerEndpoints(t *testing.T) {
	t.Run("create returns derived attributes", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPost, "/players", map[string]interface{}{
			"first_name": "Lamine",
			"last_name":  "Yamal",
			"birth_date": "2007-07-13",
			"country":    "Spain",
			"gender":     "MALE",
			"position":   "EXT",
			"image":      "https://cdn.example.com/yamal.png",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Lamine Yamal", resp["full_name"])
		assert.Equal(t, true, resp["free_to_transfer"])
		assert.Nil(t, resp["current_team"])
	})

	t.Run("create rejects malformed birth date", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPost, "/players", map[string]interface{}{
			"first_name": "A",
			"last_name":  "B",
			"birth_date": "13/07/2007",
			"country":    "Spain",
			"gender":     "MALE",
			"position":   "EXT",
			"image":      "x",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("create rejects invalid position", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPost, "/players", map[string]interface{}{
			"first_name": "A",
			"last_name":  "B",
			"birth_date": "2000-01-01",
			"country":    "Spain",
			"gender":     "MALE",
			"position":   "WINGER",
			"image":      "x",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get unknown player", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodGet, "/players/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("get rejects malformed uuid", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodGet, "/players/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.createPlayer(t, "Pedri", "Gonzalez")
		w := env.do(t, http.MethodDelete, "/players/"+id.String(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = env.do(t, http.MethodGet, "/players/"+id.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListingEndpoints(t *testing.T) {
	env := newTestEnv(t)
	teamA := uuid.New()

	freeID := env.createPlayer(t, "Marco", "Asensio")
	signedID := env.createPlayer(t, "Dani", "Olmo")
	w := env.do(t, http.MethodPost, "/players/"+signedID.String()+"/team-records", map[string]interface{}{
		"team_id":    teamA.String(),
		"year_start": 2023,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("free players", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/players/free", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp []map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Len(t, resp, 1)
		assert.Equal(t, freeID.String(), resp[0]["id"])
	})

	t.Run("own players", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/teams/"+teamA.String()+"/players", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp []map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Len(t, resp, 1)
		assert.Equal(t, signedID.String(), resp[0]["id"])
		assert.Equal(t, teamA.String(), resp[0]["current_team"])
	})

	t.Run("unknown team yields empty list", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/teams/"+uuid.NewString()+"/players", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp []map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Empty(t, resp)
	})
}

func TestRecordEndpoints(t *testing.T) {
	env := newTestEnv(t)
	id := env.createPlayer(t, "Mikel", "Oyarzabal")
	teamA := uuid.New()

	t.Run("open and close team record", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/players/"+id.String()+"/team-records", map[string]interface{}{
			"team_id":    teamA.String(),
			"year_start": 2020,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		// Second open interval conflicts.
		w = env.do(t, http.MethodPost, "/players/"+id.String()+"/team-records", map[string]interface{}{
			"team_id":    uuid.NewString(),
			"year_start": 2022,
		})
		assert.Equal(t, http.StatusConflict, w.Code)

		w = env.do(t, http.MethodPost, "/players/"+id.String()+"/team-records/close", map[string]interface{}{
			"year_finish": 2024,
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("dorsal out of range", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/players/"+id.String()+"/dorsal-records", map[string]interface{}{
			"dorsal":     120,
			"year_start": 2020,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate price year", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/players/"+id.String()+"/price-records", map[string]interface{}{
			"year":   2024,
			"prices": []int64{1_000_000},
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w = env.do(t, http.MethodPost, "/players/"+id.String()+"/price-records", map[string]interface{}{
			"year":   2024,
			"prices": []int64{2_000_000},
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestTransferEndpoint(t *testing.T) {
	env := newTestEnv(t)
	id := env.createPlayer(t, "Nico", "Williams")
	teamA := uuid.New()

	t.Run("free agent signing", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/transfers", map[string]interface{}{
			"player_id": id.String(),
			"team_to":   teamA.String(),
			"price":     40_000_000,
			"year":      2024,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.NotEmpty(t, resp["transfer_id"])
	})

	t.Run("transfer to current team conflicts", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/transfers", map[string]interface{}{
			"player_id": id.String(),
			"team_from": teamA.String(),
			"team_to":   teamA.String(),
			"year":      2025,
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing year", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/transfers", map[string]interface{}{
			"player_id": id.String(),
			"team_to":   uuid.NewString(),
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed player id", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/transfers", map[string]interface{}{
			"player_id": "nope",
			"team_to":   uuid.NewString(),
			"year":      2024,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
