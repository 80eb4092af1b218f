package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates the domain event types written to the outbox.
type EventType string

const (
	EventPlayerCreated     EventType = "roster.player.created"
	EventPlayerTransferred EventType = "roster.player.transferred"
	EventPlayerDeleted     EventType = "roster.player.deleted"
)

// AggregateType enumerates the aggregate root types for outbox events.
type AggregateType string

const AggregatePlayer AggregateType = "player"

// OutboxDraft is the payload written to the event_outbox table in the same
// transaction as the aggregate write.
type OutboxDraft struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateType AggregateType   `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     EventType       `json:"event_type"`
	PartitionKey  string          `json:"partition_key"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// NewPlayerCreatedEvent announces a freshly created aggregate.
func NewPlayerCreatedEvent(p *Player) OutboxDraft {
	payload, _ := json.Marshal(map[string]string{
		"player_id": p.ID.String(),
		"full_name": p.FullName(),
		"position":  string(p.Position),
		"country":   p.Country,
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregatePlayer,
		AggregateID:   p.ID.String(),
		EventType:     EventPlayerCreated,
		PartitionKey:  p.ID.String(),
		Payload:       payload,
		OccurredAt:    time.Now().UTC(),
	}
}

// NewPlayerTransferredEvent announces a committed transfer.
func NewPlayerTransferredEvent(t *Transfer) OutboxDraft {
	payload, _ := json.Marshal(t)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregatePlayer,
		AggregateID:   t.PlayerID.String(),
		EventType:     EventPlayerTransferred,
		PartitionKey:  t.PlayerID.String(),
		Payload:       payload,
		OccurredAt:    time.Now().UTC(),
	}
}

// NewPlayerDeletedEvent announces a removed aggregate.
func NewPlayerDeletedEvent(playerID uuid.UUID) OutboxDraft {
	payload, _ := json.Marshal(map[string]string{"player_id": playerID.String()})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregatePlayer,
		AggregateID:   playerID.String(),
		EventType:     EventPlayerDeleted,
		PartitionKey:  playerID.String(),
		Payload:       payload,
		OccurredAt:    time.Now().UTC(),
	}
}
