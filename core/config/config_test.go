package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "PKGBUILD", cfg.Repo.File)
		assert.Equal(t, "./mirror", cfg.Mirror.Root)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.False(t, cfg.Storage.Enabled)
	})

	t.Run("Environment Override", func(t *testing.T) {
		t.Setenv("MIRROR_ROOT", "/srv/mirrors")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("DATABASE_DRIVER", "mysql")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "/srv/mirrors", cfg.Mirror.Root)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "mysql", cfg.Database.Driver)
	})
}
