package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelguard/internal/modelpath"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvModelPath, EnvLogLevel, EnvLogFormat, EnvLogFile, EnvAddr, EnvConfig} {
		t.Setenv(k, "")
	}
}

func TestResolve_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Resolve("", Overrides{ModelPath: "/m.gguf"})
	require.NoError(t, err)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, DefaultWatchDebounce, cfg.WatchDebounceMS)
}

func TestResolve_Precedence(t *testing.T) {
	clearEnv(t)
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "model_path: /file.gguf\nlog_level: error\naddr: :1\n")

	cfg, err := Resolve(p, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "/file.gguf", cfg.ModelPath)
	assert.Equal(t, "error", cfg.LogLevel)

	t.Setenv(EnvModelPath, "/env.gguf")
	t.Setenv(EnvLogLevel, "warn")
	cfg, err = Resolve(p, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "/env.gguf", cfg.ModelPath, "env overrides file")
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, ":1", cfg.Addr)

	cfg, err = Resolve(p, Overrides{ModelPath: "/flag.gguf"})
	require.NoError(t, err)
	assert.Equal(t, "/flag.gguf", cfg.ModelPath, "flag overrides env")
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestResolve_ConfigFromEnv(t *testing.T) {
	clearEnv(t)
	p := writeTempFile(t, t.TempDir(), "cfg.json", `{"model_path":"/via-env-config.gguf"}`)
	t.Setenv(EnvConfig, p)
	cfg, err := Resolve("", Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "/via-env-config.gguf", cfg.ModelPath)
}

func TestResolve_MissingModelPath(t *testing.T) {
	clearEnv(t)
	cfg, err := Resolve("", Overrides{LogLevel: "debug"})
	assert.True(t, modelpath.IsConfigurationError(err), "got %v", err)
	assert.Equal(t, "debug", cfg.LogLevel, "config is still returned for logging")
}

func TestResolve_NullModelPathIsUnset(t *testing.T) {
	clearEnv(t)
	p := writeTempFile(t, t.TempDir(), "cfg.yaml", "model_path: ~\n")
	_, err := Resolve(p, Overrides{})
	assert.True(t, modelpath.IsConfigurationError(err), "got %v", err)
}

func TestResolve_ExpandsHome(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	cfg, err := Resolve("", Overrides{ModelPath: "~/models/m.gguf"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "models", "m.gguf"), cfg.ModelPath)
}

func TestResolve_BadFile(t *testing.T) {
	clearEnv(t)
	p := writeTempFile(t, t.TempDir(), "cfg.ini", "x")
	_, err := Resolve(p, Overrides{ModelPath: "/m.gguf"})
	require.Error(t, err)
	assert.False(t, modelpath.IsConfigurationError(err))
}
