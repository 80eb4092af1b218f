package app

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fichaje/roster/internal/handler"
	"github.com/fichaje/roster/internal/repository"
	"github.com/fichaje/roster/internal/service"
)

// RouterDeps holds all dependencies needed by NewRouter. Pool may be nil when
// the repositories are backed by the in-memory store.
type RouterDeps struct {
	Pool      *pgxpool.Pool
	DB        repository.DBTX
	Tx        repository.TxRunner
	Players   repository.PlayerRepository
	Transfers repository.TransferRepository
	Outbox    repository.OutboxRepository
	Logger    *slog.Logger
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	// Services
	rosterSvc := service.NewRosterService(deps.DB, deps.Tx, deps.Players, deps.Outbox, deps.Logger)
	transferSvc := service.NewTransferService(deps.Tx, deps.Players, deps.Transfers, deps.Outbox, deps.Logger)

	// Handlers
	playerHandler := handler.NewPlayerHandler(rosterSvc)
	recordHandler := handler.NewRecordHandler(rosterSvc)
	transferHandler := handler.NewTransferHandler(transferSvc)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(deps.Logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(deps.Logger))
	r.Use(handler.CORS)
	r.Use(handler.JSONContentType)

	r.Get("/health", handler.HealthHandler(deps.Pool))

	r.Route("/players", func(r chi.Router) {
		r.Post("/", playerHandler.Create)
		r.Get("/free", playerHandler.ListFree)

		r.Route("/{playerID}", func(r chi.Router) {
			r.Get("/", playerHandler.Get)
			r.Delete("/", playerHandler.Delete)

			r.Post("/team-records", recordHandler.OpenTeamRecord)
			r.Post("/team-records/close", recordHandler.CloseTeamRecord)
			r.Post("/dorsal-records", recordHandler.OpenDorsalRecord)
			r.Post("/dorsal-records/close", recordHandler.CloseDorsalRecord)
			r.Post("/price-records", recordHandler.AppendPriceRecord)
			r.Post("/media-records", recordHandler.AppendMediaRecord)
			r.Post("/season-records", recordHandler.AppendSeasonRecord)
		})
	})

	r.Get("/teams/{teamID}/players", playerHandler.ListByTeam)
	r.Post("/transfers", transferHandler.Transfer)

	return r
}
