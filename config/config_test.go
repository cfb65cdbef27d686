package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moltblox/game-sandbox/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1<<20, cfg.Compiler.MaxCodeSize)
	assert.True(t, cfg.Compiler.SourceMap)
	assert.False(t, cfg.Compiler.Strict)
	assert.Equal(t, uint64(64<<20), cfg.Sandbox.MaxMemory)
	assert.Equal(t, 16, cfg.Sandbox.MaxTickTimeMs)
	assert.False(t, cfg.Sandbox.Debug)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox.yaml")
	data := []byte(`
log_level: debug
compiler:
  strict: true
  max_code_size: 4096
sandbox:
  max_memory: 1048576
  max_tick_time_ms: 50
  debug: true
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Compiler.Strict)
	assert.Equal(t, 4096, cfg.Compiler.MaxCodeSize)
	// Unset keys keep their defaults.
	assert.True(t, cfg.Compiler.SourceMap)
	assert.Equal(t, uint64(1<<20), cfg.Sandbox.MaxMemory)
	assert.Equal(t, 50, cfg.Sandbox.MaxTickTimeMs)
	assert.True(t, cfg.Sandbox.Debug)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestRuntimeConversion(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	cc := cfg.CompilerConfig()
	assert.Equal(t, 1<<20, cc.MaxCodeSize)
	assert.True(t, cc.SourceMap)

	sc := cfg.SandboxConfig()
	assert.Equal(t, uint64(64<<20), sc.MaxMemory)
	assert.Equal(t, 16*time.Millisecond, sc.MaxTickTime)
}
