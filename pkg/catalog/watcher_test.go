package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctxtier/ctxtier/pkg/tier"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(validOverride), 0644))

	cat := Default()
	require.NoError(t, cat.LoadFile(path))

	w, err := NewWatcher(cat, path)
	require.NoError(t, err)
	w.debounce = 50 * time.Millisecond

	reloaded := make(chan error, 8)
	w.OnReload = func(err error) { reloaded <- err }

	require.NoError(t, w.Start())
	defer w.Stop()
	assert.True(t, w.IsRunning())

	updated := `
[tiers]
tier_1 = ["core-principles", "updated-module"]
tier_2 = ["core-principles", "updated-module"]
tier_3 = ["core-principles", "updated-module"]
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0644))

	select {
	case err := <-reloaded:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for catalog reload")
	}

	assert.Equal(t, []string{"core-principles", "updated-module"}, cat.ModulesFor(tier.Tier1))
}

func TestWatcher_BadFileKeepsTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(validOverride), 0644))

	cat := Default()
	require.NoError(t, cat.LoadFile(path))
	before := cat.ModulesFor(tier.Tier2)

	w, err := NewWatcher(cat, path)
	require.NoError(t, err)
	w.debounce = 50 * time.Millisecond

	reloaded := make(chan error, 8)
	w.OnReload = func(err error) { reloaded <- err }

	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("not valid toml [["), 0644))

	select {
	case err := <-reloaded:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload attempt")
	}

	assert.Equal(t, before, cat.ModulesFor(tier.Tier2))
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(validOverride), 0644))

	cat := Default()
	w, err := NewWatcher(cat, path)
	require.NoError(t, err)
	w.debounce = 50 * time.Millisecond

	reloaded := make(chan error, 8)
	w.OnReload = func(err error) { reloaded <- err }

	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))

	select {
	case <-reloaded:
		t.Fatal("unrelated file should not trigger a reload")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_StopIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(validOverride), 0644))

	w, err := NewWatcher(Default(), path)
	require.NoError(t, err)
	require.NoError(t, w.Start())

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	assert.False(t, w.IsRunning())
}
