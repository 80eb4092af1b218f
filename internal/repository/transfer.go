package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fichaje/roster/internal/domain"
)

type transferRepo struct{}

// NewTransferRepository returns a pgx-backed TransferRepository.
func NewTransferRepository() TransferRepository {
	return &transferRepo{}
}

func (r *transferRepo) Insert(ctx context.Context, db DBTX, transfer *domain.Transfer) error {
	_, err := db.Exec(ctx, `
		INSERT INTO transfers (id, player_id, team_from, team_to, price, year, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		transfer.ID, transfer.PlayerID, transfer.TeamFrom, transfer.TeamTo,
		transfer.Price, transfer.Year, transfer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

func (r *transferRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Transfer, error) {
	row := db.QueryRow(ctx, `
		SELECT id, player_id, team_from, team_to, price, year, created_at
		FROM transfers WHERE id = $1`, id)
	return scanTransfer(row)
}

func (r *transferRepo) ListByPlayer(ctx context.Context, db DBTX, playerID uuid.UUID) ([]domain.Transfer, error) {
	rows, err := db.Query(ctx, `
		SELECT id, player_id, team_from, team_to, price, year, created_at
		FROM transfers WHERE player_id = $1
		ORDER BY year, created_at`, playerID)
	if err != nil {
		return nil, fmt.Errorf("query transfers: %w", err)
	}
	defer rows.Close()

	var transfers []domain.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, *t)
	}
	return transfers, rows.Err()
}

func scanTransfer(row pgx.Row) (*domain.Transfer, error) {
	var t domain.Transfer
	err := row.Scan(&t.ID, &t.PlayerID, &t.TeamFrom, &t.TeamTo, &t.Price, &t.Year, &t.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transfer: %w", err)
	}
	return &t, nil
}
