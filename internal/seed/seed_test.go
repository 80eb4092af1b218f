package seed

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fichaje/roster/internal/domain"
)

func TestGenerator_Player(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	gen := NewGenerator(rand.New(rand.NewSource(42)))

	for i := 0; i < 50; i++ {
		p, err := gen.Player(now)
		require.NoError(t, err)

		age := p.Age(now)
		assert.GreaterOrEqual(t, age, 16)
		assert.LessOrEqual(t, age, 45)

		careerYears := p.TotalSeasonsPlayed(now)
		assert.Len(t, p.SeasonRecords, careerYears)
		assert.Len(t, p.MediaRecords, careerYears)
		assert.Len(t, p.PriceRecords, careerYears)

		for _, rec := range p.PriceRecords {
			require.LessOrEqual(t, len(rec.Prices), domain.MaxEntriesPerYear)
			for _, price := range rec.Prices {
				assert.GreaterOrEqual(t, price, int64(domain.MinPrice))
				assert.LessOrEqual(t, price, int64(domain.MaxPrice))
			}
		}
		for _, rec := range p.MediaRecords {
			for _, rating := range rec.Ratings {
				assert.GreaterOrEqual(t, rating, domain.MinMediaRating)
				assert.LessOrEqual(t, rating, domain.MaxMediaRating)
			}
		}

		require.NotNil(t, p.OpenDorsal())
		assert.GreaterOrEqual(t, p.OpenDorsal().Dorsal, domain.MinDorsal)
		assert.LessOrEqual(t, p.OpenDorsal().Dorsal, domain.MaxDorsal)

		assert.True(t, p.FreeToTransfer())
		assert.Nil(t, p.CurrentTeam())
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	a, err := NewGenerator(rand.New(rand.NewSource(7))).Player(now)
	require.NoError(t, err)
	b, err := NewGenerator(rand.New(rand.NewSource(7))).Player(now)
	require.NoError(t, err)

	assert.Equal(t, a.FullName(), b.FullName())
	assert.Equal(t, a.BirthDate, b.BirthDate)
	assert.Equal(t, a.SeasonRecords, b.SeasonRecords)
}
