package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tennissim.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
player "Federer" {
  serve_win_prob    = 0.65
  ace_prob          = 0.10
  double_fault_prob = 0.05
}

player "Nadal" {
  serve_win_prob    = 0.62
  ace_prob          = 0.08
  double_fault_prob = 0.04
}

run {
  simulations  = 500
  best_of      = 3
  grand_slam   = false
  batch_size   = 25
  log_interval = 100
  workers      = 2
  log_file     = "out.csv"
  seed         = 42
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	p1, p2 := cfg.Players2()
	assert.Equal(t, "Federer", p1.Name)
	assert.Equal(t, 0.65, p1.ServeWinProb)
	assert.Equal(t, "Nadal", p2.Name)
	assert.Equal(t, 0.04, p2.DoubleFaultProb)

	assert.Equal(t, 500, cfg.Run.Simulations)
	assert.Equal(t, 3, cfg.Run.BestOf)
	require.NotNil(t, cfg.Run.GrandSlam)
	assert.False(t, *cfg.Run.GrandSlam)
	assert.Equal(t, 25, cfg.Run.BatchSize)
	assert.Equal(t, 100, cfg.Run.LogInterval)
	assert.Equal(t, 2, cfg.Run.Workers)
	assert.Equal(t, "out.csv", cfg.Run.LogFile)
	assert.Equal(t, int64(42), cfg.Run.Seed)
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
player "A" {
  serve_win_prob    = 0.6
  ace_prob          = 0.1
  double_fault_prob = 0.05
}

player "B" {
  serve_win_prob    = 0.6
  ace_prob          = 0.1
  double_fault_prob = 0.05
}

run {}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	defaults := Default().Run
	assert.Equal(t, defaults.Simulations, cfg.Run.Simulations)
	assert.Equal(t, defaults.BestOf, cfg.Run.BestOf)
	require.NotNil(t, cfg.Run.GrandSlam)
	assert.True(t, *cfg.Run.GrandSlam)
	assert.Equal(t, defaults.BatchSize, cfg.Run.BatchSize)
	assert.Equal(t, defaults.LogFile, cfg.Run.LogFile)
	assert.Zero(t, cfg.Run.Seed)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}

func TestLoadRejectsMalformedHCL(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `player "A" { serve_win_prob = `)
	_, err := Load(path)
	assert.ErrorContains(t, err, "parse")
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	t.Parallel()

	base := func() *File {
		f := Default()
		return f
	}

	tests := []struct {
		name   string
		mutate func(*File)
		want   string
	}{
		{"one player", func(f *File) { f.Players = f.Players[:1] }, "two players"},
		{"duplicate names", func(f *File) { f.Players[1].Name = f.Players[0].Name }, "distinct"},
		{"bad probability", func(f *File) { f.Players[0].ServeWinProb = 1.5 }, "out of range"},
		{"zero simulations", func(f *File) { f.Run.Simulations = 0 }, "simulations"},
		{"even best of", func(f *File) { f.Run.BestOf = 4 }, "odd"},
		{"batch does not divide", func(f *File) { f.Run.BatchSize = 3 }, "divide"},
		{"negative workers", func(f *File) { f.Run.Workers = -1 }, "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := base()
			tt.mutate(f)
			err := f.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Default().Validate())
}
