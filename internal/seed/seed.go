package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/fichaje/roster/internal/domain"
)

// Generator produces synthetic player aggregates for demo and seed content.
// Everything goes through the domain constructors, so a generated aggregate
// always satisfies the history invariants and field bounds.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator driven by rng.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

var firstNames = []string{
	"Sergio", "Iker", "Andres", "Xavi", "David", "Fernando", "Raul", "Carles",
	"Marco", "Luka", "Kylian", "Erling", "Pedri", "Gavi", "Jude", "Vinicius",
}

var lastNames = []string{
	"Ramos", "Casillas", "Iniesta", "Hernandez", "Silva", "Torres", "Gonzalez",
	"Puyol", "Asensio", "Modric", "Navas", "Busquets", "Alba", "Carvajal",
}

var countries = []string{
	"Spain", "France", "Croatia", "Norway", "England", "Brazil", "Argentina",
	"Portugal", "Germany", "Italy", "Uruguay", "Netherlands",
}

var positions = []domain.Position{
	domain.PositionPOR, domain.PositionDEF, domain.PositionCAD, domain.PositionMCD,
	domain.PositionMED, domain.PositionEXT, domain.PositionSD, domain.PositionDC,
}

// Player generates one aggregate with a full career history: one season,
// media and price record per year since the career start at age 16, plus an
// open dorsal assignment.
func (g *Generator) Player(now time.Time) (*domain.Player, error) {
	birthDate := g.birthDate(now)
	firstName := firstNames[g.rng.Intn(len(firstNames))]
	lastName := lastNames[g.rng.Intn(len(lastNames))]
	salary := int64(g.intBetween(500, 3_000_000))

	player, err := domain.NewPlayer(domain.NewPlayerParams{
		FirstName: firstName,
		LastName:  lastName,
		BirthDate: birthDate,
		Country:   countries[g.rng.Intn(len(countries))],
		Gender:    domain.GenderMale,
		Position:  positions[g.rng.Intn(len(positions))],
		Image:     fmt.Sprintf("https://avatars.example.com/%s-%s.png", firstName, lastName),
		Salary:    &salary,
		SocialMedia: map[string]string{
			"facebook":  fmt.Sprintf("https://facebook.com/%s.%s", firstName, lastName),
			"instagram": fmt.Sprintf("https://instagram.com/%s_%s", firstName, lastName),
			"twitter":   fmt.Sprintf("https://twitter.com/%s_%s", firstName, lastName),
		},
	})
	if err != nil {
		return nil, err
	}

	yearStart := birthDate.Year() + 16
	seasons := now.Year() - yearStart

	for i := 0; i < seasons; i++ {
		year := yearStart + i
		if err := player.AppendSeasonRecord(domain.SeasonRecord{
			YearStart:   year,
			YearFinish:  year + 1,
			Minutes:     g.intBetween(100, 4000),
			Assists:     g.intBetween(0, 30),
			MatchPlayed: g.intBetween(0, 50),
			Goals:       g.intBetween(0, 70),
		}); err != nil {
			return nil, err
		}
		if err := player.AppendMediaRecord(year, g.ratings()); err != nil {
			return nil, err
		}
		if err := player.AppendPriceRecord(year, g.prices()); err != nil {
			return nil, err
		}
	}

	if _, err := player.OpenDorsalRecord(g.intBetween(domain.MinDorsal, domain.MaxDorsal), yearStart); err != nil {
		return nil, err
	}

	return player, nil
}

// birthDate picks a date putting the player between 16 and 45 years old.
func (g *Generator) birthDate(now time.Time) time.Time {
	year := now.Year() - g.intBetween(16, 45)
	month := time.Month(g.intBetween(1, 12))
	day := g.intBetween(1, 28)
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (g *Generator) ratings() []int {
	ratings := make([]int, domain.MaxEntriesPerYear)
	for i := range ratings {
		ratings[i] = g.intBetween(domain.MinMediaRating, domain.MaxMediaRating)
	}
	return ratings
}

func (g *Generator) prices() []int64 {
	prices := make([]int64, domain.MaxEntriesPerYear)
	for i := range prices {
		prices[i] = int64(g.intBetween(domain.MinPrice, domain.MaxPrice))
	}
	return prices
}

func (g *Generator) intBetween(min, max int) int {
	return min + g.rng.Intn(max-min+1)
}
