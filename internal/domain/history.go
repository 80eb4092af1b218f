package domain

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// History mutations for the record sequences owned by the aggregate.
//
// Every method validates before touching state, so a rejected call leaves the
// aggregate exactly as it was. Interval sequences stay ordered by yearStart,
// hold at most one open record, and a closed record is never mutated again.

// OpenTeam returns the currently open team record, or nil.
func (p *Player) OpenTeam() *TeamRecord {
	if len(p.TeamRecords) == 0 {
		return nil
	}
	last := &p.TeamRecords[len(p.TeamRecords)-1]
	if last.YearFinish == nil {
		return last
	}
	return nil
}

// OpenDorsal returns the currently open dorsal record, or nil.
func (p *Player) OpenDorsal() *DorsalRecord {
	if len(p.DorsalRecords) == 0 {
		return nil
	}
	last := &p.DorsalRecords[len(p.DorsalRecords)-1]
	if last.YearFinish == nil {
		return last
	}
	return nil
}

// OpenTeamRecord appends an open team interval. transferID links the transfer
// that produced the record, when there is one.
func (p *Player) OpenTeamRecord(teamID uuid.UUID, yearStart int, transferID *uuid.UUID) (*TeamRecord, error) {
	if p.OpenTeam() != nil {
		return nil, ErrInvariant("an open team record already exists")
	}
	if n := len(p.TeamRecords); n > 0 {
		if last := p.TeamRecords[n-1]; yearStart < *last.YearFinish {
			return nil, ErrInvariant(fmt.Sprintf("year start %d overlaps the previous team record ending %d", yearStart, *last.YearFinish))
		}
	}
	p.TeamRecords = append(p.TeamRecords, TeamRecord{
		YearStart:  yearStart,
		TeamID:     teamID,
		TransferID: transferID,
	})
	return &p.TeamRecords[len(p.TeamRecords)-1], nil
}

// CloseTeamRecord closes the open team interval. The record becomes immutable.
func (p *Player) CloseTeamRecord(yearFinish int) (*TeamRecord, error) {
	open := p.OpenTeam()
	if open == nil {
		return nil, ErrNotFound("open team record for player", p.ID.String())
	}
	if yearFinish < open.YearStart {
		return nil, ErrInvariant(fmt.Sprintf("year finish %d precedes year start %d", yearFinish, open.YearStart))
	}
	open.YearFinish = &yearFinish
	return open, nil
}

// OpenDorsalRecord appends an open squad-number interval.
func (p *Player) OpenDorsalRecord(dorsal, yearStart int) (*DorsalRecord, error) {
	if err := ValidateDorsal(dorsal); err != nil {
		return nil, err
	}
	if p.OpenDorsal() != nil {
		return nil, ErrInvariant("an open dorsal record already exists")
	}
	if n := len(p.DorsalRecords); n > 0 {
		if last := p.DorsalRecords[n-1]; yearStart < *last.YearFinish {
			return nil, ErrInvariant(fmt.Sprintf("year start %d overlaps the previous dorsal record ending %d", yearStart, *last.YearFinish))
		}
	}
	p.DorsalRecords = append(p.DorsalRecords, DorsalRecord{
		YearStart: yearStart,
		Dorsal:    dorsal,
	})
	return &p.DorsalRecords[len(p.DorsalRecords)-1], nil
}

// CloseDorsalRecord closes the open squad-number interval.
func (p *Player) CloseDorsalRecord(yearFinish int) (*DorsalRecord, error) {
	open := p.OpenDorsal()
	if open == nil {
		return nil, ErrNotFound("open dorsal record for player", p.ID.String())
	}
	if yearFinish < open.YearStart {
		return nil, ErrInvariant(fmt.Sprintf("year finish %d precedes year start %d", yearFinish, open.YearStart))
	}
	open.YearFinish = &yearFinish
	return open, nil
}

// AppendPriceRecord records a year's valuations. One record per year.
func (p *Player) AppendPriceRecord(year int, prices []int64) error {
	if err := ValidatePrices(prices); err != nil {
		return err
	}
	for _, rec := range p.PriceRecords {
		if rec.Year == year {
			return ErrDuplicateYear("price record", year)
		}
	}
	p.PriceRecords = append(p.PriceRecords, PriceRecord{Year: year, Prices: append([]int64(nil), prices...)})
	sort.Slice(p.PriceRecords, func(i, j int) bool { return p.PriceRecords[i].Year < p.PriceRecords[j].Year })
	return nil
}

// RecordValuation appends one valuation to the year's price record, creating
// the record when the year has none yet.
func (p *Player) RecordValuation(year int, price int64) error {
	if err := ValidatePrice(price); err != nil {
		return err
	}
	for i := range p.PriceRecords {
		rec := &p.PriceRecords[i]
		if rec.Year != year {
			continue
		}
		if len(rec.Prices) >= MaxEntriesPerYear {
			return ErrValidation(fmt.Sprintf("year %d already holds %d prices", year, MaxEntriesPerYear))
		}
		rec.Prices = append(rec.Prices, price)
		return nil
	}
	return p.AppendPriceRecord(year, []int64{price})
}

// AppendMediaRecord records a year's performance ratings. One record per year.
func (p *Player) AppendMediaRecord(year int, ratings []int) error {
	if err := ValidateRatings(ratings); err != nil {
		return err
	}
	for _, rec := range p.MediaRecords {
		if rec.Year == year {
			return ErrDuplicateYear("media record", year)
		}
	}
	p.MediaRecords = append(p.MediaRecords, MediaRecord{Year: year, Ratings: append([]int(nil), ratings...)})
	sort.Slice(p.MediaRecords, func(i, j int) bool { return p.MediaRecords[i].Year < p.MediaRecords[j].Year })
	return nil
}

// AppendSeasonRecord records one season's statistics.
func (p *Player) AppendSeasonRecord(rec SeasonRecord) error {
	if err := ValidateSeason(rec); err != nil {
		return err
	}
	p.SeasonRecords = append(p.SeasonRecords, rec)
	sort.Slice(p.SeasonRecords, func(i, j int) bool { return p.SeasonRecords[i].YearStart < p.SeasonRecords[j].YearStart })
	return nil
}
