package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	settings := LoadSettings()

	assert.Equal(t, "sqlite://./tetris.db", settings.DatabaseURL)
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, settings.CORSOrigins)
	assert.Equal(t, "development", settings.Environment)
	assert.Equal(t, "8080", settings.Port)
	assert.False(t, settings.IsProduction())
}

func TestLoadSettingsFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://tetris:secret@db:5432/tetris")
	t.Setenv("CORS_ORIGINS", "https://tetris.example.com, https://www.tetris.example.com")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "5")

	settings := LoadSettings()

	assert.Equal(t, "postgres://tetris:secret@db:5432/tetris", settings.DatabaseURL)
	assert.Equal(t, []string{"https://tetris.example.com", "https://www.tetris.example.com"}, settings.CORSOrigins)
	assert.True(t, settings.IsProduction())
	assert.Equal(t, "9000", settings.Port)
	assert.Equal(t, 2.5, settings.RateLimitRPS)
	assert.Equal(t, 5, settings.RateLimitBurst)
}

func TestDialectorFor(t *testing.T) {
	for _, url := range []string{"sqlite://./tetris.db", "sqlite://:memory:", "postgres://u:p@h/db", "postgresql://u:p@h/db"} {
		dialector, err := dialectorFor(url)
		require.NoError(t, err, url)
		assert.NotNil(t, dialector)
	}

	_, err := dialectorFor("mysql://u:p@h/db")
	assert.Error(t, err)
}
