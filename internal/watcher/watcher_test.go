package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/cadpost/pkg/cadpost"
)

const testDebounce = 100 * time.Millisecond

type recorder struct {
	mu    sync.Mutex
	calls [][]string
	ch    chan struct{}
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan struct{}, 16)}
}

func (r *recorder) callback(files []string) {
	r.mu.Lock()
	r.calls = append(r.calls, files)
	r.mu.Unlock()
	r.ch <- struct{}{}
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.ch:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.calls...)
}

func startWatcher(t *testing.T, dir string, rec *recorder) *Watcher {
	t.Helper()
	w, err := New(dir, cadpost.InputFiles, testDebounce, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })
	require.NoError(t, w.Start(context.Background(), rec.callback))
	// Wait for watcher to initialize
	time.Sleep(50 * time.Millisecond)
	return w
}

func TestNew_InvalidDirectory(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "nonexistent"), cadpost.InputFiles, testDebounce, nil)
	assert.Error(t, err)
	assert.Nil(t, w)
}

func TestStart_NilCallback(t *testing.T) {
	w, err := New(t.TempDir(), cadpost.InputFiles, testDebounce, nil)
	require.NoError(t, err)
	defer w.Stop()

	assert.Error(t, w.Start(context.Background(), nil))
}

func TestWatcher_BatchesRapidChanges(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	rec := newRecorder()
	startWatcher(t, dir, rec)

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, cadpost.ComputedValuesFile), []byte("<Components/>"), 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, cadpost.CADAssemblyFile), []byte("<Assemblies/>"), 0644))

	rec.wait(t)
	time.Sleep(2 * testDebounce)

	calls := rec.snapshot()
	require.Len(t, calls, 1, "rapid changes coalesce into one callback")
	assert.Equal(t, []string{cadpost.CADAssemblyFile, cadpost.ComputedValuesFile}, calls[0])
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	rec := newRecorder()
	startWatcher(t, dir, rec)

	require.NoError(t, os.WriteFile(filepath.Join(dir, cadpost.DefaultOutputFile), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	time.Sleep(3 * testDebounce)
	assert.Empty(t, rec.snapshot())

	require.NoError(t, os.WriteFile(filepath.Join(dir, cadpost.CADAssemblyMetricsFile), []byte("<CADMetrics/>"), 0644))
	rec.wait(t)
	assert.Equal(t, [][]string{{cadpost.CADAssemblyMetricsFile}}, rec.snapshot())
}

func TestWatcher_RemovalTriggers(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	target := filepath.Join(dir, cadpost.CADAssemblyFile)
	require.NoError(t, os.WriteFile(target, []byte("<Assemblies/>"), 0644))

	rec := newRecorder()
	startWatcher(t, dir, rec)

	require.NoError(t, os.Remove(target))
	rec.wait(t)
	assert.Equal(t, [][]string{{cadpost.CADAssemblyFile}}, rec.snapshot())
}

func TestWatcher_ContextCancellationStops(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, cadpost.InputFiles, testDebounce, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx, func([]string) {}))
	cancel()

	select {
	case <-w.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not exit")
	}
	require.NoError(t, w.Stop())
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, err := New(t.TempDir(), cadpost.InputFiles, testDebounce, nil)
	require.NoError(t, err)

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}
