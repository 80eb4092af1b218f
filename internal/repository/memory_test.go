package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fichaje/roster/internal/domain"
)

func newTestPlayer(t *testing.T, first, last string) *domain.Player {
	t.Helper()
	p, err := domain.NewPlayer(domain.NewPlayerParams{
		FirstName: first,
		LastName:  last,
		BirthDate: time.Date(1995, 7, 1, 0, 0, 0, 0, time.UTC),
		Country:   "Spain",
		Gender:    domain.GenderMale,
		Position:  domain.PositionDC,
		Image:     "https://cdn.example.com/p.png",
	})
	require.NoError(t, err)
	return p
}

func TestMemoryStore_PlayerCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	players := store.Players()

	p := newTestPlayer(t, "Sergio", "Ramos")
	require.NoError(t, players.Create(ctx, nil, p))

	t.Run("find returns an independent copy", func(t *testing.T) {
		got, err := players.FindByID(ctx, nil, p.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, p.ID, got.ID)

		got.FirstName = "mutated"
		again, err := players.FindByID(ctx, nil, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Sergio", again.FirstName)
	})

	t.Run("unknown id yields nil without error", func(t *testing.T) {
		got, err := players.FindByID(ctx, nil, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, players.Delete(ctx, nil, p.ID))
		got, err := players.FindByID(ctx, nil, p.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		err = players.Delete(ctx, nil, p.ID)
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

func TestMemoryStore_UpdateVersionGuard(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	players := store.Players()

	p := newTestPlayer(t, "Luka", "Modric")
	require.NoError(t, players.Create(ctx, nil, p))

	t.Run("matching version commits and bumps", func(t *testing.T) {
		loaded, err := players.FindByID(ctx, nil, p.ID)
		require.NoError(t, err)
		_, err = loaded.OpenDorsalRecord(10, 2020)
		require.NoError(t, err)

		require.NoError(t, players.Update(ctx, nil, loaded))
		assert.Equal(t, int64(1), loaded.Version)

		stored, err := players.FindByID(ctx, nil, p.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stored.Version)
		assert.Len(t, stored.DorsalRecords, 1)
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		stale, err := players.FindByID(ctx, nil, p.ID)
		require.NoError(t, err)
		fresh, err := players.FindByID(ctx, nil, p.ID)
		require.NoError(t, err)

		require.NoError(t, players.Update(ctx, nil, fresh))

		err = players.Update(ctx, nil, stale)
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "CONCURRENT_MODIFICATION", appErr.Code)
	})
}

func TestMemoryStore_FindFreeAndByTeam(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	players := store.Players()
	teamA := uuid.New()

	free := newTestPlayer(t, "Aaron", "Zamora")
	signed := newTestPlayer(t, "Bruno", "Alves")
	_, err := signed.OpenTeamRecord(teamA, 2021, nil)
	require.NoError(t, err)
	released := newTestPlayer(t, "Carlos", "Baena")
	_, err = released.OpenTeamRecord(teamA, 2019, nil)
	require.NoError(t, err)
	_, err = released.CloseTeamRecord(2022)
	require.NoError(t, err)

	require.NoError(t, players.Create(ctx, nil, free))
	require.NoError(t, players.Create(ctx, nil, signed))
	require.NoError(t, players.Create(ctx, nil, released))

	t.Run("free players sorted by name", func(t *testing.T) {
		got, err := players.FindFree(ctx, nil)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Baena", got[0].LastName)
		assert.Equal(t, "Zamora", got[1].LastName)
	})

	t.Run("by current team includes closed last record", func(t *testing.T) {
		got, err := players.FindByCurrentTeam(ctx, nil, teamA)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Alves", got[0].LastName)
		assert.Equal(t, "Baena", got[1].LastName)
	})

	t.Run("unknown team yields empty list", func(t *testing.T) {
		got, err := players.FindByCurrentTeam(ctx, nil, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestMemoryStore_InTxRollback(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	players := store.Players()
	outbox := store.Outbox()

	p := newTestPlayer(t, "Iker", "Casillas")
	require.NoError(t, players.Create(ctx, nil, p))

	boom := errors.New("boom")
	err := store.InTx(ctx, func(db DBTX) error {
		loaded, err := players.FindByID(ctx, db, p.ID)
		require.NoError(t, err)
		_, err = loaded.OpenDorsalRecord(1, 2020)
		require.NoError(t, err)
		require.NoError(t, players.Update(ctx, db, loaded))
		require.NoError(t, outbox.Insert(ctx, db, domain.NewPlayerDeletedEvent(p.ID)))
		return boom
	})
	require.ErrorIs(t, err, boom)

	stored, err := players.FindByID(ctx, nil, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.Version)
	assert.Empty(t, stored.DorsalRecords)
	assert.Empty(t, store.Events())
}

func TestMemoryStore_Outbox(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	outbox := store.Outbox()

	first := domain.NewPlayerDeletedEvent(uuid.New())
	second := domain.NewPlayerDeletedEvent(uuid.New())
	require.NoError(t, outbox.Insert(ctx, nil, first))
	require.NoError(t, outbox.Insert(ctx, nil, second))

	rows, err := outbox.FetchUnpublished(ctx, nil, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, first.EventID, rows[0].EventID)
	assert.Less(t, rows[0].SeqID, rows[1].SeqID)

	require.NoError(t, outbox.MarkPublished(ctx, nil, []int64{rows[0].SeqID}))
	rows, err = outbox.FetchUnpublished(ctx, nil, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, second.EventID, rows[0].EventID)
}
