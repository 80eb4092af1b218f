package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.APIPort)
	assert.Equal(t, 10, cfg.PGMaxConns)
	assert.Equal(t, 25, cfg.SeedPlayers)
	assert.False(t, cfg.KafkaEnabled)
	require.NoError(t, cfg.Validate())
}

func TestConfig_DSN(t *testing.T) {
	t.Run("built from parts", func(t *testing.T) {
		cfg := &Config{PGUser: "roster", PGPassword: "secret", PGHost: "db", PGPort: 5433, PGDatabase: "roster"}
		assert.Equal(t, "postgres://roster:secret@db:5433/roster?sslmode=disable", cfg.DSN())
	})

	t.Run("DATABASE_URL wins", func(t *testing.T) {
		cfg := &Config{DatabaseURL: "postgres://x:y@z:5432/w"}
		assert.Equal(t, "postgres://x:y@z:5432/w", cfg.DSN())
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{APIPort: 3000, PGMaxConns: 10}, false},
		{"port zero", Config{APIPort: 0, PGMaxConns: 10}, true},
		{"port too large", Config{APIPort: 70000, PGMaxConns: 10}, true},
		{"no connections", Config{APIPort: 3000, PGMaxConns: 0}, true},
		{"negative seed count", Config{APIPort: 3000, PGMaxConns: 10, SeedPlayers: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
