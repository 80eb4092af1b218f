package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fichaje/roster/internal/domain"
	"github.com/fichaje/roster/internal/repository"
)

// TransferService moves a player between teams as one atomic workflow:
// validate, close the open team interval, open the next one, record the
// valuation, commit. Every step mutates an in-memory clone; the store sees a
// single version-guarded write at commit, so a failed step leaves nothing
// behind.
type TransferService struct {
	tx        repository.TxRunner
	players   repository.PlayerRepository
	transfers repository.TransferRepository
	outbox    repository.OutboxRepository
	logger    *slog.Logger
}

// NewTransferService creates a TransferService.
func NewTransferService(
	tx repository.TxRunner,
	players repository.PlayerRepository,
	transfers repository.TransferRepository,
	outbox repository.OutboxRepository,
	logger *slog.Logger,
) *TransferService {
	return &TransferService{
		tx:        tx,
		players:   players,
		transfers: transfers,
		outbox:    outbox,
		logger:    logger,
	}
}

// Transfer executes the move described by params.
//
// Failure modes: NOT_FOUND (unknown player), OWNERSHIP_CONFLICT (teamFrom
// does not match the current team, or a free-agent signing against a player
// under contract), NO_OP_TRANSFER (destination equals current team),
// VALIDATION_ERROR (price out of bounds), CONCURRENT_MODIFICATION (version
// conflict at commit, surfaced without retry).
func (s *TransferService) Transfer(ctx context.Context, params domain.TransferParams) (*domain.TransferResult, error) {
	var result *domain.TransferResult

	err := s.tx.InTx(ctx, func(db repository.DBTX) error {
		player, err := s.players.FindByID(ctx, db, params.PlayerID)
		if err != nil {
			return domain.ErrInternal("load player", err)
		}
		if player == nil {
			return domain.ErrNotFound("player", params.PlayerID.String())
		}

		next := player.Clone()

		current := next.CurrentTeam()
		if params.TeamFrom != nil {
			if current == nil || *current != *params.TeamFrom {
				return domain.ErrOwnershipConflict("team_from does not match the player's current team")
			}
		} else if !next.FreeToTransfer() {
			return domain.ErrOwnershipConflict("player is under contract; team_from is required")
		}
		if current != nil && *current == params.TeamTo {
			return domain.ErrNoOpTransfer(params.TeamTo.String())
		}

		if !next.FreeToTransfer() {
			if _, err := next.CloseTeamRecord(params.Year); err != nil {
				return err
			}
		}

		transferID := uuid.New()
		record, err := next.OpenTeamRecord(params.TeamTo, params.Year, &transferID)
		if err != nil {
			return err
		}

		if params.Price != nil {
			if err := next.RecordValuation(params.Year, *params.Price); err != nil {
				return err
			}
		}

		transfer := &domain.Transfer{
			ID:        transferID,
			PlayerID:  params.PlayerID,
			TeamFrom:  params.TeamFrom,
			TeamTo:    params.TeamTo,
			Price:     params.Price,
			Year:      params.Year,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.transfers.Insert(ctx, db, transfer); err != nil {
			return domain.ErrInternal("record transfer", err)
		}
		if err := s.players.Update(ctx, db, next); err != nil {
			return err
		}
		if err := s.outbox.Insert(ctx, db, domain.NewPlayerTransferredEvent(transfer)); err != nil {
			return domain.ErrInternal("enqueue transfer event", err)
		}

		result = &domain.TransferResult{TransferID: transferID, Record: *record}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("player transferred",
		"player_id", params.PlayerID,
		"team_to", params.TeamTo,
		"transfer_id", result.TransferID,
		"year", params.Year,
	)
	return result, nil
}
