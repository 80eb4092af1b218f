package domain

import "fmt"

// Field bounds carried over from the persisted schema. Violations are
// rejected at construction time, never clamped.
const (
	MaxNameLength = 50

	MinDorsal = 1
	MaxDorsal = 99

	MinPrice = 30_000
	MaxPrice = 300_000_000

	MinMediaRating = 50
	MaxMediaRating = 99

	// MaxEntriesPerYear caps the valuations/ratings recorded in one year.
	MaxEntriesPerYear = 12
)

var validPositions = map[Position]bool{
	PositionPOR: true, PositionDEF: true, PositionCAD: true, PositionMCD: true,
	PositionMED: true, PositionEXT: true, PositionSD: true, PositionDC: true,
}

// ValidateIdentity checks the creation-time identity fields.
func ValidateIdentity(params NewPlayerParams) error {
	if params.FirstName == "" || len(params.FirstName) > MaxNameLength {
		return ErrValidation(fmt.Sprintf("first name is required and must be at most %d characters", MaxNameLength))
	}
	if params.LastName == "" || len(params.LastName) > MaxNameLength {
		return ErrValidation(fmt.Sprintf("last name is required and must be at most %d characters", MaxNameLength))
	}
	if params.BirthDate.IsZero() {
		return ErrValidation("birth date is required")
	}
	if params.Country == "" || len(params.Country) > MaxNameLength {
		return ErrValidation(fmt.Sprintf("country is required and must be at most %d characters", MaxNameLength))
	}
	if params.Gender != GenderMale && params.Gender != GenderFemale {
		return ErrValidation(fmt.Sprintf("invalid gender %q", params.Gender))
	}
	if !validPositions[params.Position] {
		return ErrValidation(fmt.Sprintf("invalid position %q", params.Position))
	}
	if params.Image == "" {
		return ErrValidation("image is required")
	}
	if params.Salary != nil && *params.Salary < 0 {
		return ErrValidation(fmt.Sprintf("salary must not be negative, got %d", *params.Salary))
	}
	return nil
}

// ValidateDorsal checks the squad-number range.
func ValidateDorsal(dorsal int) error {
	if dorsal < MinDorsal || dorsal > MaxDorsal {
		return ErrValidation(fmt.Sprintf("dorsal must be in [%d,%d], got %d", MinDorsal, MaxDorsal, dorsal))
	}
	return nil
}

// ValidatePrice checks a single valuation against the declared range.
func ValidatePrice(price int64) error {
	if price < MinPrice || price > MaxPrice {
		return ErrValidation(fmt.Sprintf("price must be in [%d,%d], got %d", MinPrice, MaxPrice, price))
	}
	return nil
}

// ValidatePrices checks a year's valuation sequence.
func ValidatePrices(prices []int64) error {
	if len(prices) == 0 {
		return ErrValidation("at least one price is required")
	}
	if len(prices) > MaxEntriesPerYear {
		return ErrValidation(fmt.Sprintf("at most %d prices per year, got %d", MaxEntriesPerYear, len(prices)))
	}
	for _, price := range prices {
		if err := ValidatePrice(price); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRatings checks a year's rating sequence.
func ValidateRatings(ratings []int) error {
	if len(ratings) == 0 {
		return ErrValidation("at least one rating is required")
	}
	if len(ratings) > MaxEntriesPerYear {
		return ErrValidation(fmt.Sprintf("at most %d ratings per year, got %d", MaxEntriesPerYear, len(ratings)))
	}
	for _, rating := range ratings {
		if rating < MinMediaRating || rating > MaxMediaRating {
			return ErrValidation(fmt.Sprintf("rating must be in [%d,%d], got %d", MinMediaRating, MaxMediaRating, rating))
		}
	}
	return nil
}

// ValidateSeason checks a season record's range and statistics.
func ValidateSeason(rec SeasonRecord) error {
	if rec.YearFinish < rec.YearStart {
		return ErrValidation(fmt.Sprintf("season year finish %d precedes year start %d", rec.YearFinish, rec.YearStart))
	}
	if rec.Minutes < 0 || rec.Assists < 0 || rec.MatchPlayed < 0 || rec.Goals < 0 {
		return ErrValidation("season statistics must not be negative")
	}
	return nil
}
