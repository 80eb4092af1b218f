package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fichaje/roster/internal/domain"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// TxRunner runs a function inside one atomic transaction. The function's
// writes become visible all at once on commit, or not at all.
type TxRunner interface {
	InTx(ctx context.Context, fn func(db DBTX) error) error
}

// PlayerRepository persists the Player aggregate, one row per player.
type PlayerRepository interface {
	// Create inserts a new aggregate.
	Create(ctx context.Context, db DBTX, player *domain.Player) error

	// FindByID returns the aggregate, or nil when absent.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Player, error)

	// Update writes the whole aggregate guarded by its version stamp and
	// increments it. Returns CONCURRENT_MODIFICATION on a stale version.
	Update(ctx context.Context, db DBTX, player *domain.Player) error

	// FindFree returns players with no open team record.
	FindFree(ctx context.Context, db DBTX) ([]domain.Player, error)

	// FindByCurrentTeam returns players whose current team is teamID.
	FindByCurrentTeam(ctx context.Context, db DBTX, teamID uuid.UUID) ([]domain.Player, error)

	// Delete removes the whole aggregate. Partial removal is not a thing.
	Delete(ctx context.Context, db DBTX, id uuid.UUID) error
}

// TransferRepository persists issued transfer references.
type TransferRepository interface {
	// Insert records a transfer reference.
	Insert(ctx context.Context, db DBTX, transfer *domain.Transfer) error

	// FindByID returns a transfer, or nil when absent.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Transfer, error)

	// ListByPlayer returns a player's transfers, oldest first.
	ListByPlayer(ctx context.Context, db DBTX, playerID uuid.UUID) ([]domain.Transfer, error)
}

// OutboxRow is a stored outbox event with its sequence id.
type OutboxRow struct {
	SeqID int64
	domain.OutboxDraft
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event (within the same transaction as the
	// aggregate write).
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns unpublished events for the poller, oldest first.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]OutboxRow, error)

	// MarkPublished stamps events as published.
	MarkPublished(ctx context.Context, db DBTX, ids []int64) error
}
