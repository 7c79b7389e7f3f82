package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_RoundTrip(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	_, ok, err := f.Get("staffsync_users_v1")
	require.NoError(t, err)
	assert.False(t, ok, "missing key should not exist")

	require.NoError(t, f.Set("staffsync_users_v1", []byte(`[{"id":"usr-1"}]`)))
	got, ok, err := f.Get("staffsync_users_v1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"usr-1"}]`, string(got))
}

func TestFile_OverwriteReplacesWhole(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, f.Set("slot", []byte("first version, long payload")))
	require.NoError(t, f.Set("slot", []byte("second")))
	got, ok, err := f.Get("slot")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", string(got))
}

func TestFile_KeyCannotEscapeDataDir(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, f.Set("../escape", []byte("x")))
	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "escape.json"))
	assert.True(t, os.IsNotExist(err), "key must not write outside the data dir")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMemory_RoundTrip(t *testing.T) {
	m := NewMemory()
	_, ok, err := m.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set("k", []byte("v")))
	got, ok, err := m.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(got))

	// The returned slice is a copy; mutating it must not touch the slot.
	got[0] = 'x'
	again, _, _ := m.Get("k")
	assert.Equal(t, "v", string(again))
}
