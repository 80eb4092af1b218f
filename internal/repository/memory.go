package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/fichaje/roster/internal/domain"
)

// MemoryStore backs the repository interfaces with maps. InTx snapshots the
// whole store and restores it when fn fails, mirroring the all-or-nothing
// commit of the Postgres store. Used by service and handler tests; the db
// argument is ignored everywhere.
type MemoryStore struct {
	mu        sync.Mutex
	players   map[uuid.UUID]*domain.Player
	transfers map[uuid.UUID]*domain.Transfer
	outbox    []OutboxRow
	outboxSeq int64

	// beforeUpdate, when set, runs at the top of every aggregate update
	// outside the lock. Tests use it to interleave a conflicting write.
	beforeUpdate func()
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		players:   make(map[uuid.UUID]*domain.Player),
		transfers: make(map[uuid.UUID]*domain.Transfer),
	}
}

// Players returns the store's PlayerRepository view.
func (s *MemoryStore) Players() PlayerRepository { return memoryPlayers{s} }

// Transfers returns the store's TransferRepository view.
func (s *MemoryStore) Transfers() TransferRepository { return memoryTransfers{s} }

// Outbox returns the store's OutboxRepository view.
func (s *MemoryStore) Outbox() OutboxRepository { return memoryOutbox{s} }

// SetBeforeUpdate installs a hook invoked before every aggregate update.
func (s *MemoryStore) SetBeforeUpdate(fn func()) {
	s.beforeUpdate = fn
}

func (s *MemoryStore) InTx(ctx context.Context, fn func(db DBTX) error) error {
	snapshot := s.snapshot()
	if err := fn(nil); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

// Events returns the pending outbox rows, oldest first.
func (s *MemoryStore) Events() []OutboxRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]OutboxRow(nil), s.outbox...)
}

type memorySnapshot struct {
	players   map[uuid.UUID]*domain.Player
	transfers map[uuid.UUID]*domain.Transfer
	outbox    []OutboxRow
	outboxSeq int64
}

func (s *MemoryStore) snapshot() memorySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := memorySnapshot{
		players:   make(map[uuid.UUID]*domain.Player, len(s.players)),
		transfers: make(map[uuid.UUID]*domain.Transfer, len(s.transfers)),
		outbox:    append([]OutboxRow(nil), s.outbox...),
		outboxSeq: s.outboxSeq,
	}
	for id, p := range s.players {
		snap.players[id] = p.Clone()
	}
	for id, t := range s.transfers {
		cp := *t
		snap.transfers[id] = &cp
	}
	return snap
}

func (s *MemoryStore) restore(snap memorySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = snap.players
	s.transfers = snap.transfers
	s.outbox = snap.outbox
	s.outboxSeq = snap.outboxSeq
}

// --- PlayerRepository view ---

type memoryPlayers struct{ s *MemoryStore }

func (m memoryPlayers) Create(ctx context.Context, _ DBTX, player *domain.Player) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.players[player.ID] = player.Clone()
	return nil
}

func (m memoryPlayers) FindByID(ctx context.Context, _ DBTX, id uuid.UUID) (*domain.Player, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	p, ok := m.s.players[id]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

func (m memoryPlayers) Update(ctx context.Context, _ DBTX, player *domain.Player) error {
	if m.s.beforeUpdate != nil {
		m.s.beforeUpdate()
	}

	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	stored, ok := m.s.players[player.ID]
	if !ok || stored.Version != player.Version {
		return domain.ErrConcurrentModification("player", player.ID.String())
	}
	player.Version++
	m.s.players[player.ID] = player.Clone()
	return nil
}

func (m memoryPlayers) FindFree(ctx context.Context, _ DBTX) ([]domain.Player, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var free []domain.Player
	for _, p := range m.s.players {
		if p.FreeToTransfer() {
			free = append(free, *p.Clone())
		}
	}
	sortPlayers(free)
	return free, nil
}

func (m memoryPlayers) FindByCurrentTeam(ctx context.Context, _ DBTX, teamID uuid.UUID) ([]domain.Player, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var own []domain.Player
	for _, p := range m.s.players {
		if current := p.CurrentTeam(); current != nil && *current == teamID {
			own = append(own, *p.Clone())
		}
	}
	sortPlayers(own)
	return own, nil
}

func (m memoryPlayers) Delete(ctx context.Context, _ DBTX, id uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.players[id]; !ok {
		return domain.ErrNotFound("player", id.String())
	}
	delete(m.s.players, id)
	return nil
}

// --- TransferRepository view ---

type memoryTransfers struct{ s *MemoryStore }

func (m memoryTransfers) Insert(ctx context.Context, _ DBTX, transfer *domain.Transfer) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	cp := *transfer
	m.s.transfers[transfer.ID] = &cp
	return nil
}

func (m memoryTransfers) FindByID(ctx context.Context, _ DBTX, id uuid.UUID) (*domain.Transfer, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	t, ok := m.s.transfers[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m memoryTransfers) ListByPlayer(ctx context.Context, _ DBTX, playerID uuid.UUID) ([]domain.Transfer, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var transfers []domain.Transfer
	for _, t := range m.s.transfers {
		if t.PlayerID == playerID {
			transfers = append(transfers, *t)
		}
	}
	sort.Slice(transfers, func(i, j int) bool { return transfers[i].Year < transfers[j].Year })
	return transfers, nil
}

// --- OutboxRepository view ---

type memoryOutbox struct{ s *MemoryStore }

func (m memoryOutbox) Insert(ctx context.Context, _ DBTX, draft domain.OutboxDraft) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.outboxSeq++
	m.s.outbox = append(m.s.outbox, OutboxRow{SeqID: m.s.outboxSeq, OutboxDraft: draft})
	return nil
}

func (m memoryOutbox) FetchUnpublished(ctx context.Context, _ DBTX, limit int) ([]OutboxRow, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if limit > len(m.s.outbox) {
		limit = len(m.s.outbox)
	}
	return append([]OutboxRow(nil), m.s.outbox[:limit]...), nil
}

func (m memoryOutbox) MarkPublished(ctx context.Context, _ DBTX, ids []int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	keep := m.s.outbox[:0]
	for _, row := range m.s.outbox {
		published := false
		for _, id := range ids {
			if row.SeqID == id {
				published = true
				break
			}
		}
		if !published {
			keep = append(keep, row)
		}
	}
	m.s.outbox = keep
	return nil
}

func sortPlayers(players []domain.Player) {
	sort.Slice(players, func(i, j int) bool {
		if players[i].LastName != players[j].LastName {
			return players[i].LastName < players[j].LastName
		}
		return players[i].FirstName < players[j].FirstName
	})
}
