package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:3000", cfg.Server.Addr)
	require.Equal(t, "data/app.db", cfg.Database.Path)
	require.Equal(t, "dist", cfg.Server.StaticDir)
	require.Equal(t, "juan", cfg.Auth.Username)
	require.False(t, cfg.Production())
	require.Equal(t, "0.0.0.0:3000", cfg.ListenAddr())
}

func TestPortOverrideWins(t *testing.T) {
	t.Setenv("PORT", "8081")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8081", cfg.ListenAddr())
}

func TestDatabasePathAlias(t *testing.T) {
	t.Setenv("SQLITE_PATH", "/tmp/dashboard.db")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/dashboard.db", cfg.Database.Path)
}

func TestProductionFlag(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.Production())
}
