package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelguard/internal/config"
	"modelguard/internal/modelpath"
)

func runWatcher(t *testing.T, w *Watcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Errorf("watcher did not stop")
		}
	})
	// give fsnotify a moment to register the watches
	time.Sleep(50 * time.Millisecond)
}

func TestWatcher_InitialCheck(t *testing.T) {
	var got []modelpath.Result
	p := filepath.Join(t.TempDir(), "m.gguf")
	w := New(Options{ModelPath: p, OnResult: func(r modelpath.Result) { got = append(got, r) }, Logger: zerolog.Nop()})

	require.Len(t, got, 1)
	assert.Equal(t, modelpath.StateFailed, w.Latest().State)
	assert.EqualValues(t, 1, w.Checks())
	assert.Equal(t, p, w.Path())
}

func TestWatcher_FileAppears(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "m.gguf")
	w := New(Options{ModelPath: p, Debounce: 20 * time.Millisecond, Logger: zerolog.Nop()})
	require.False(t, w.Latest().OK())
	runWatcher(t, w)

	require.NoError(t, os.WriteFile(p, []byte("GGUF"), 0o644))
	require.Eventually(t, func() bool { return w.Latest().OK() }, 3*time.Second, 20*time.Millisecond)

	require.NoError(t, os.Remove(p))
	require.Eventually(t, func() bool { return w.Latest().State == modelpath.StateFailed }, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	w := New(Options{ModelPath: filepath.Join(dir, "m.gguf"), Debounce: 10 * time.Millisecond, Logger: zerolog.Nop()})
	runWatcher(t, w)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.gguf"), []byte("x"), 0o644))
	time.Sleep(150 * time.Millisecond)
	assert.EqualValues(t, 1, w.Checks())
}

func TestWatcher_ConfigChangeSwitchesPath(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.gguf")
	require.NoError(t, os.WriteFile(present, []byte("GGUF"), 0o644))
	cfgPath := filepath.Join(dir, "modelguard.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("model_path: "+filepath.Join(dir, "absent.gguf")+"\n"), 0o644))

	resolve := func() (string, error) {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return "", err
		}
		return cfg.ModelPath, nil
	}
	start, err := resolve()
	require.NoError(t, err)

	w := New(Options{ModelPath: start, ConfigFile: cfgPath, Resolve: resolve, Debounce: 20 * time.Millisecond, Logger: zerolog.Nop()})
	require.False(t, w.Latest().OK())
	runWatcher(t, w)

	require.NoError(t, os.WriteFile(cfgPath, []byte("model_path: "+present+"\n"), 0o644))
	require.Eventually(t, func() bool { return w.Latest().OK() }, 3*time.Second, 20*time.Millisecond)
	assert.Equal(t, present, w.Path())
}

func TestWatcher_DirectoryRecreated(t *testing.T) {
	models := filepath.Join(t.TempDir(), "models")
	require.NoError(t, os.Mkdir(models, 0o755))
	p := filepath.Join(models, "m.gguf")
	require.NoError(t, os.WriteFile(p, []byte("GGUF"), 0o644))

	w := New(Options{ModelPath: p, Debounce: 20 * time.Millisecond, Logger: zerolog.Nop()})
	require.True(t, w.Latest().OK())
	runWatcher(t, w)

	require.NoError(t, os.RemoveAll(models))
	require.Eventually(t, func() bool { return w.Latest().State == modelpath.StateFailed }, 3*time.Second, 20*time.Millisecond)

	require.NoError(t, os.Mkdir(models, 0o755))
	require.NoError(t, os.WriteFile(p, []byte("GGUF"), 0o644))
	require.Eventually(t, func() bool { return w.Latest().OK() }, 3*time.Second, 20*time.Millisecond)

	// the restored watch keeps reporting changes
	require.NoError(t, os.Remove(p))
	require.Eventually(t, func() bool { return w.Latest().State == modelpath.StateFailed }, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_NestedDirectoryRecreated(t *testing.T) {
	root := t.TempDir()
	models := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(models, 0o755))
	p := filepath.Join(models, "m.gguf")

	w := New(Options{ModelPath: p, Debounce: 20 * time.Millisecond, Logger: zerolog.Nop()})
	runWatcher(t, w)

	require.NoError(t, os.RemoveAll(filepath.Join(root, "a")))
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.MkdirAll(models, 0o755))
	require.NoError(t, os.WriteFile(p, []byte("GGUF"), 0o644))
	require.Eventually(t, func() bool { return w.Latest().OK() }, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_RunFailsForMissingDir(t *testing.T) {
	w := New(Options{ModelPath: "/nonexistent-modelguard-dir/m.gguf", Logger: zerolog.Nop()})
	err := w.Run(context.Background())
	assert.Error(t, err)
}
