package main

import (
	"os"
	"path/filepath"
	"testing"

	"gelbeseiten-scraper/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configFromArgs(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	cmd, f := newRootCmd()
	require.NoError(t, cmd.ParseFlags(args))
	return buildConfig(cmd, f)
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("location is required", func(t *testing.T) {
		t.Parallel()

		_, err := configFromArgs(t)
		require.Error(t, err)
	})

	t.Run("default professions without input file", func(t *testing.T) {
		t.Parallel()

		cfg, err := configFromArgs(t, "--location", "Hamburg")
		require.NoError(t, err)
		assert.Equal(t, config.DefaultProfessions, cfg.Professions)
		assert.Equal(t, "results", cfg.OutputDir)
		assert.True(t, cfg.Headless)
	})

	t.Run("flags override the config file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cfgPath := filepath.Join(dir, "scraper.json5")
		require.NoError(t, os.WriteFile(cfgPath, []byte(`{location: "Berlin", maxPages: 2, outputDir: "out"}`), 0o644))
		input := filepath.Join(dir, "professions.txt")
		require.NoError(t, os.WriteFile(input, []byte("Arzt\n\nRechtsanwalt\n"), 0o644))

		cfg, err := configFromArgs(t,
			"--config", cfgPath,
			"--location", "München",
			"--input-file", input,
			"--headless=false",
		)
		require.NoError(t, err)

		assert.Equal(t, "München", cfg.Location)
		assert.Equal(t, []string{"arzt", "rechtsanwalt"}, cfg.Professions)
		assert.Equal(t, 2, cfg.MaxPages)
		assert.Equal(t, "out", cfg.OutputDir)
		assert.False(t, cfg.Headless)
	})

	t.Run("missing input file", func(t *testing.T) {
		t.Parallel()

		_, err := configFromArgs(t, "--location", "Hamburg", "--input-file", filepath.Join(t.TempDir(), "none.txt"))
		require.Error(t, err)
	})
}
