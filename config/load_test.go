package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/metaraffle/backend/config"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, uint64(1000), cfg.Raffle.InitialPoints)
	require.Equal(t, time.Hour, cfg.Raffle.LeadWindow)
	require.Equal(t, uint64(50), cfg.Reward.BasePoints)
	require.Equal(t, uint64(450), cfg.Reward.BonusPoints)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
Env = "staging"

[Database]
Driver = "sqlite"
SqlitePath = "raffle.db"

[ApiServer]
Port = "9000"
EnableTestingAPI = true

[Raffle]
InitialPoints = 500
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("API_PORT", "9100")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("RAFFLE_LEAD_WINDOW", "30m")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "staging", cfg.Env)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "raffle.db", cfg.Database.SqlitePath)
	require.Equal(t, "9100", cfg.ApiServer.Port)
	require.True(t, cfg.ApiServer.EnableTestingAPI)
	require.True(t, cfg.Kafka.Enabled)
	require.Equal(t, uint64(500), cfg.Raffle.InitialPoints)
	require.Equal(t, 30*time.Minute, cfg.Raffle.LeadWindow)

	// Untouched values keep their defaults.
	require.Equal(t, uint64(10000), cfg.Raffle.MaxEntryPoints)
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "maybe")
	_, err := config.Load("")
	require.Error(t, err)
}
