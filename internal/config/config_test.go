package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Applies defaults", func(t *testing.T) {
		// Given: a config file with only a log level
		path := writeConfig(t, "log-level: debug\n")

		// When: loading it
		conf, err := Load(path)

		// Then: the game defaults match the classic rules
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 120*time.Second, conf.Game.TurnTimeout)
		assert.Equal(t, 5, conf.Game.HandSize)
		assert.Equal(t, 1, conf.Game.MinRank)
		assert.Equal(t, 9, conf.Game.MaxRank)
		assert.False(t, conf.NATS.Enabled())
	})

	t.Run("Reads game settings and NPCs", func(t *testing.T) {
		path := writeConfig(t, `
game:
  turn-timeout: 30s
  hand-size: 6
npcs:
  - name: Quistis
    kind: character
    bot: true
  - name: Statue
    kind: object
nats:
  url: nats://localhost:4222
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, conf.Game.TurnTimeout)
		assert.Equal(t, 6, conf.Game.HandSize)
		require.Len(t, conf.NPCs, 2)
		assert.True(t, conf.NPCs[0].Bot)
		assert.Equal(t, "object", conf.NPCs[1].Kind)
		assert.True(t, conf.NATS.Enabled())
		assert.Equal(t, "tripletriad.match", conf.NATS.Subject)
	})

	t.Run("Rejects a hand that cannot fill the board", func(t *testing.T) {
		path := writeConfig(t, "game:\n  hand-size: 4\n")

		_, err := Load(path)

		assert.ErrorIs(t, err, ErrInvalidHandSize)
	})

	t.Run("Rejects inverted ranks", func(t *testing.T) {
		path := writeConfig(t, "game:\n  min-rank: 8\n  max-rank: 3\n")

		_, err := Load(path)

		assert.ErrorIs(t, err, ErrInvalidRanks)
	})

	t.Run("MustLoad panics on a missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}
