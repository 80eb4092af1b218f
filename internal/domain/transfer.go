package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transfer is the issued reference for one completed player move. The team
// record it created points back at it.
type Transfer struct {
	ID        uuid.UUID  `json:"id"`
	PlayerID  uuid.UUID  `json:"player_id"`
	TeamFrom  *uuid.UUID `json:"team_from,omitempty"`
	TeamTo    uuid.UUID  `json:"team_to"`
	Price     *int64     `json:"price,omitempty"`
	Year      int        `json:"year"`
	CreatedAt time.Time  `json:"created_at"`
}

// TransferParams are the inputs of the transfer workflow. A nil TeamFrom
// means the player is expected to be a free agent.
type TransferParams struct {
	PlayerID uuid.UUID
	TeamFrom *uuid.UUID
	TeamTo   uuid.UUID
	Price    *int64
	Year     int
}

// TransferResult is returned on commit: the issued reference and the team
// record it opened.
type TransferResult struct {
	TransferID uuid.UUID  `json:"transfer_id"`
	Record     TeamRecord `json:"record"`
}
