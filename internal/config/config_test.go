package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHasMapTTAndLVB(t *testing.T) {
	cfg := Default()
	assert.Equal(t, TTMap, cfg.TranspositionTable.Kind)
	assert.Equal(t, MethodLVB, cfg.Method)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Method = MethodBRAsp
	cfg.TranspositionTable.Kind = TTSuccinct
	cfg.TranspositionTable.CapacityLog2 = 20
	cfg.TranspositionTable.ClusterPolicy = PolicyLRU
	cfg.EndDB.Dir = "/tmp/edb"
	cfg.EndDB.TargetSizeMiB = 512

	path := filepath.Join(t.TempDir(), "solver.toml")
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadOfSavedConfigOverridesEveryField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	require.NoError(t, Save(path, Config{Method: MethodDEF}))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, MethodDEF, loaded.Method)
	assert.Equal(t, TTKind(""), loaded.TranspositionTable.Kind)
}
