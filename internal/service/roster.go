package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fichaje/roster/internal/domain"
	"github.com/fichaje/roster/internal/repository"
)

// RosterService owns the non-transfer operations on the aggregate: creation,
// lookups, and the record history mutations. Every mutation is one
// load-mutate-commit transaction with the same version guard the transfer
// workflow uses.
type RosterService struct {
	db      repository.DBTX
	tx      repository.TxRunner
	players repository.PlayerRepository
	outbox  repository.OutboxRepository
	logger  *slog.Logger
}

// NewRosterService creates a RosterService. db serves plain reads; tx wraps
// mutations.
func NewRosterService(
	db repository.DBTX,
	tx repository.TxRunner,
	players repository.PlayerRepository,
	outbox repository.OutboxRepository,
	logger *slog.Logger,
) *RosterService {
	return &RosterService{
		db:      db,
		tx:      tx,
		players: players,
		outbox:  outbox,
		logger:  logger,
	}
}

// CreatePlayer validates the identity fields and persists a new aggregate.
func (s *RosterService) CreatePlayer(ctx context.Context, params domain.NewPlayerParams) (*domain.Player, error) {
	player, err := domain.NewPlayer(params)
	if err != nil {
		return nil, err
	}

	err = s.tx.InTx(ctx, func(db repository.DBTX) error {
		if err := s.players.Create(ctx, db, player); err != nil {
			return domain.ErrInternal("create player", err)
		}
		if err := s.outbox.Insert(ctx, db, domain.NewPlayerCreatedEvent(player)); err != nil {
			return domain.ErrInternal("enqueue created event", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("player created", "player_id", player.ID, "full_name", player.FullName())
	return player, nil
}

// GetPlayer loads one aggregate.
func (s *RosterService) GetPlayer(ctx context.Context, id uuid.UUID) (*domain.Player, error) {
	player, err := s.players.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, domain.ErrInternal("load player", err)
	}
	if player == nil {
		return nil, domain.ErrNotFound("player", id.String())
	}
	return player, nil
}

// FindFreePlayers lists players with no open team record.
func (s *RosterService) FindFreePlayers(ctx context.Context) ([]domain.Player, error) {
	players, err := s.players.FindFree(ctx, s.db)
	if err != nil {
		return nil, domain.ErrInternal("find free players", err)
	}
	return players, nil
}

// FetchOwnPlayers lists players whose current team is teamID. An unknown
// team yields an empty list.
func (s *RosterService) FetchOwnPlayers(ctx context.Context, teamID uuid.UUID) ([]domain.Player, error) {
	players, err := s.players.FindByCurrentTeam(ctx, s.db, teamID)
	if err != nil {
		return nil, domain.ErrInternal("fetch own players", err)
	}
	return players, nil
}

// DeletePlayer removes the whole aggregate.
func (s *RosterService) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	err := s.tx.InTx(ctx, func(db repository.DBTX) error {
		if err := s.players.Delete(ctx, db, id); err != nil {
			return err
		}
		if err := s.outbox.Insert(ctx, db, domain.NewPlayerDeletedEvent(id)); err != nil {
			return domain.ErrInternal("enqueue deleted event", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("player deleted", "player_id", id)
	return nil
}

// OpenTeamRecord opens a team interval outside the transfer workflow, e.g.
// an initial squad registration.
func (s *RosterService) OpenTeamRecord(ctx context.Context, playerID, teamID uuid.UUID, yearStart int) (*domain.TeamRecord, error) {
	var record domain.TeamRecord
	err := s.mutate(ctx, playerID, func(p *domain.Player) error {
		rec, err := p.OpenTeamRecord(teamID, yearStart, nil)
		if err != nil {
			return err
		}
		record = *rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// CloseTeamRecord closes the open team interval.
func (s *RosterService) CloseTeamRecord(ctx context.Context, playerID uuid.UUID, yearFinish int) (*domain.TeamRecord, error) {
	var record domain.TeamRecord
	err := s.mutate(ctx, playerID, func(p *domain.Player) error {
		rec, err := p.CloseTeamRecord(yearFinish)
		if err != nil {
			return err
		}
		record = *rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// OpenDorsalRecord opens a squad-number interval.
func (s *RosterService) OpenDorsalRecord(ctx context.Context, playerID uuid.UUID, dorsal, yearStart int) (*domain.DorsalRecord, error) {
	var record domain.DorsalRecord
	err := s.mutate(ctx, playerID, func(p *domain.Player) error {
		rec, err := p.OpenDorsalRecord(dorsal, yearStart)
		if err != nil {
			return err
		}
		record = *rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// CloseDorsalRecord closes the open squad-number interval.
func (s *RosterService) CloseDorsalRecord(ctx context.Context, playerID uuid.UUID, yearFinish int) (*domain.DorsalRecord, error) {
	var record domain.DorsalRecord
	err := s.mutate(ctx, playerID, func(p *domain.Player) error {
		rec, err := p.CloseDorsalRecord(yearFinish)
		if err != nil {
			return err
		}
		record = *rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// AppendPriceRecord records a year's valuations.
func (s *RosterService) AppendPriceRecord(ctx context.Context, playerID uuid.UUID, year int, prices []int64) error {
	return s.mutate(ctx, playerID, func(p *domain.Player) error {
		return p.AppendPriceRecord(year, prices)
	})
}

// AppendMediaRecord records a year's performance ratings.
func (s *RosterService) AppendMediaRecord(ctx context.Context, playerID uuid.UUID, year int, ratings []int) error {
	return s.mutate(ctx, playerID, func(p *domain.Player) error {
		return p.AppendMediaRecord(year, ratings)
	})
}

// AppendSeasonRecord records one season's statistics.
func (s *RosterService) AppendSeasonRecord(ctx context.Context, playerID uuid.UUID, rec domain.SeasonRecord) error {
	return s.mutate(ctx, playerID, func(p *domain.Player) error {
		return p.AppendSeasonRecord(rec)
	})
}

// mutate loads the aggregate, applies fn to a clone, and commits the clone
// with the version guard.
func (s *RosterService) mutate(ctx context.Context, playerID uuid.UUID, fn func(p *domain.Player) error) error {
	return s.tx.InTx(ctx, func(db repository.DBTX) error {
		player, err := s.players.FindByID(ctx, db, playerID)
		if err != nil {
			return domain.ErrInternal("load player", err)
		}
		if player == nil {
			return domain.ErrNotFound("player", playerID.String())
		}

		next := player.Clone()
		if err := fn(next); err != nil {
			return err
		}
		return s.players.Update(ctx, db, next)
	})
}
