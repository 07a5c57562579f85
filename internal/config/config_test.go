package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/qwalk/internal/walk"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Walk != "quantum" {
		t.Errorf("expected walk quantum, got %s", cfg.Walk)
	}
	if cfg.Qubits != 7 || cfg.Steps != 30 || cfg.Repetitions != 5000 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("quantum", "symmetric")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Coin != "symmetric" {
		t.Errorf("expected coin symmetric, got %s", cfg.Coin)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("quantum", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "default") != nil {
		t.Error("expected nil for nonexistent walk")
	}
}

func TestListPresets(t *testing.T) {
	assert.Equal(t, []string{"biased", "default", "long"}, ListPresets("random"))
	assert.Nil(t, ListPresets("nonexistent"))
}

func TestPresetsValidate(t *testing.T) {
	for walkName, presets := range Presets {
		for name, preset := range presets {
			cfg := DefaultConfig()
			cfg.Apply(preset)
			assert.NoError(t, cfg.Validate(), "%s/%s", walkName, name)
		}
	}
}

func TestApplyPresetKeepsOtherWalkDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Apply(GetPreset("quantum", "default"))

	cfg.Walk = "random"
	p, err := cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, walk.DefaultBias, p.Bias)

	cfg = DefaultConfig()
	cfg.Apply(GetPreset("random", "biased"))
	assert.Equal(t, 0.7, cfg.Bias)

	cfg.Walk = "quantum"
	p, err = cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, walk.DefaultQubits, p.Qubits)
	assert.Equal(t, walk.CoinOne, p.Coin)
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk.yaml")
	start := 5

	cfg := DefaultConfig()
	cfg.Walk = "random"
	cfg.Steps = 12
	cfg.Bias = 0.25
	cfg.Start = &start
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps: 9\ncoin: symmetric\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Steps)
	assert.Equal(t, 7, cfg.Qubits)
	assert.Equal(t, "symmetric", cfg.Coin)
}

func TestMergeOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repetitions: 8000\n"), 0644))

	cfg := DefaultConfig()
	cfg.Apply(GetPreset("quantum", "wide"))
	require.NoError(t, cfg.Merge(path))

	assert.Equal(t, 10, cfg.Qubits)
	assert.Equal(t, 100, cfg.Steps)
	assert.Equal(t, 8000, cfg.Repetitions)
	assert.Equal(t, "symmetric", cfg.Coin)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps: [1, 2"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDataDir, "/tmp/runs")
	t.Setenv(EnvSeed, "1234")
	t.Setenv(EnvLogLevel, "debug")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "/tmp/runs", cfg.DataDir)
	assert.Equal(t, uint64(1234), cfg.Seed)
	assert.Equal(t, "debug", cfg.LogLevel)

	t.Setenv(EnvSeed, "abc")
	assert.Error(t, cfg.ApplyEnv())
}

func TestParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Coin = "Symmetric"
	p, err := cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, walk.KindQuantum, p.Kind)
	assert.Equal(t, walk.CoinSymmetric, p.Coin)

	cfg.Qubits = 20
	_, err = cfg.Params()
	assert.ErrorIs(t, err, walk.ErrParameterBounds)

	cfg = DefaultConfig()
	cfg.Walk = "levy"
	_, err = cfg.Params()
	assert.ErrorIs(t, err, walk.ErrUnknownWalk)
}
