package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Gender enumerates the accepted player genders.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Position enumerates the accepted field positions.
type Position string

const (
	PositionPOR Position = "POR"
	PositionDEF Position = "DEF"
	PositionCAD Position = "CAD"
	PositionMCD Position = "MCD"
	PositionMED Position = "MED"
	PositionEXT Position = "EXT"
	PositionSD  Position = "SD"
	PositionDC  Position = "DC"
)

// TeamRecord is one interval of team membership. A nil YearFinish means the
// player currently belongs to the team.
type TeamRecord struct {
	YearStart  int        `json:"year_start"`
	YearFinish *int       `json:"year_finish"`
	TeamID     uuid.UUID  `json:"team_id"`
	TransferID *uuid.UUID `json:"transfer_id,omitempty"`
}

// DorsalRecord is one interval of squad-number assignment.
type DorsalRecord struct {
	YearStart  int  `json:"year_start"`
	YearFinish *int `json:"year_finish"`
	Dorsal     int  `json:"dorsal"`
}

// PriceRecord holds up to 12 valuations recorded during one year.
type PriceRecord struct {
	Year   int     `json:"year"`
	Prices []int64 `json:"prices"`
}

// MediaRecord holds up to 12 performance ratings recorded during one year.
type MediaRecord struct {
	Year    int   `json:"year"`
	Ratings []int `json:"ratings"`
}

// SeasonRecord aggregates one season's statistics.
type SeasonRecord struct {
	YearStart   int `json:"year_start"`
	YearFinish  int `json:"year_finish"`
	Minutes     int `json:"minutes"`
	Assists     int `json:"assists"`
	MatchPlayed int `json:"match_played"`
	Goals       int `json:"goals"`
}

// Player is the aggregate root. It exclusively owns its history sequences;
// team and transfer ids are foreign references resolved elsewhere.
type Player struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Alias     *string   `json:"alias,omitempty"`
	BirthDate time.Time `json:"birth_date"`
	Country   string    `json:"country"`
	Gender    Gender    `json:"gender"`
	Position  Position  `json:"position"`
	Image     string    `json:"image"`
	Salary    *int64    `json:"salary,omitempty"`

	TeamRecords   []TeamRecord   `json:"team_records"`
	DorsalRecords []DorsalRecord `json:"dorsal_records"`
	PriceRecords  []PriceRecord  `json:"price_records"`
	MediaRecords  []MediaRecord  `json:"media_records"`
	SeasonRecords []SeasonRecord `json:"season_records"`

	SocialMedia map[string]string `json:"social_media,omitempty"`
	NationStats json.RawMessage   `json:"nation_stats,omitempty"`

	// Version is the optimistic-locking stamp checked and incremented on
	// every aggregate write.
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPlayerParams carries the identity fields fixed at creation.
type NewPlayerParams struct {
	FirstName   string
	LastName    string
	Alias       *string
	BirthDate   time.Time
	Country     string
	Gender      Gender
	Position    Position
	Image       string
	Salary      *int64
	SocialMedia map[string]string
	NationStats json.RawMessage
}

// NewPlayer validates the identity fields and returns a fresh aggregate with
// empty history sequences.
func NewPlayer(params NewPlayerParams) (*Player, error) {
	if err := ValidateIdentity(params); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Player{
		ID:          uuid.New(),
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		Alias:       params.Alias,
		BirthDate:   params.BirthDate,
		Country:     params.Country,
		Gender:      params.Gender,
		Position:    params.Position,
		Image:       params.Image,
		Salary:      params.Salary,
		SocialMedia: params.SocialMedia,
		NationStats: params.NationStats,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// FullName joins first and last name.
func (p *Player) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Age is the difference in calendar years between now and the birth date.
func (p *Player) Age(now time.Time) int {
	return now.Year() - p.BirthDate.Year()
}

// TotalSeasonsPlayed assumes a career starting at age 16. It deliberately does
// not count season records; callers must not conflate the two.
func (p *Player) TotalSeasonsPlayed(now time.Time) int {
	return now.Year() - 16 - p.BirthDate.Year()
}

// CurrentTeam returns the team of the record with the greatest yearStart, or
// nil when the player has no team history. The record may already be closed:
// membership history persists even when inactive.
func (p *Player) CurrentTeam() *uuid.UUID {
	if len(p.TeamRecords) == 0 {
		return nil
	}
	team := p.TeamRecords[len(p.TeamRecords)-1].TeamID
	return &team
}

// FreeToTransfer reports whether the player has no open team interval.
func (p *Player) FreeToTransfer() bool {
	if len(p.TeamRecords) == 0 {
		return true
	}
	return p.TeamRecords[len(p.TeamRecords)-1].YearFinish != nil
}

// Clone returns a deep copy. Mutating workflows operate on a clone and commit
// it in a single write, so a failed workflow never touches the loaded state.
func (p *Player) Clone() *Player {
	cp := *p

	cp.TeamRecords = make([]TeamRecord, len(p.TeamRecords))
	for i, r := range p.TeamRecords {
		cp.TeamRecords[i] = r
		if r.YearFinish != nil {
			yf := *r.YearFinish
			cp.TeamRecords[i].YearFinish = &yf
		}
		if r.TransferID != nil {
			tid := *r.TransferID
			cp.TeamRecords[i].TransferID = &tid
		}
	}

	cp.DorsalRecords = make([]DorsalRecord, len(p.DorsalRecords))
	for i, r := range p.DorsalRecords {
		cp.DorsalRecords[i] = r
		if r.YearFinish != nil {
			yf := *r.YearFinish
			cp.DorsalRecords[i].YearFinish = &yf
		}
	}

	cp.PriceRecords = make([]PriceRecord, len(p.PriceRecords))
	for i, r := range p.PriceRecords {
		cp.PriceRecords[i] = PriceRecord{Year: r.Year, Prices: append([]int64(nil), r.Prices...)}
	}

	cp.MediaRecords = make([]MediaRecord, len(p.MediaRecords))
	for i, r := range p.MediaRecords {
		cp.MediaRecords[i] = MediaRecord{Year: r.Year, Ratings: append([]int(nil), r.Ratings...)}
	}

	cp.SeasonRecords = append([]SeasonRecord(nil), p.SeasonRecords...)

	if p.Alias != nil {
		alias := *p.Alias
		cp.Alias = &alias
	}
	if p.Salary != nil {
		salary := *p.Salary
		cp.Salary = &salary
	}
	if p.SocialMedia != nil {
		cp.SocialMedia = make(map[string]string, len(p.SocialMedia))
		for k, v := range p.SocialMedia {
			cp.SocialMedia[k] = v
		}
	}
	cp.NationStats = append(json.RawMessage(nil), p.NationStats...)

	return &cp
}
