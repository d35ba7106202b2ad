package settings

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStorage opens a gdata manager rooted in a per-test directory.
func testStorage(t *testing.T) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)

	storage, err := gdata.Open(gdata.Config{AppName: "stargate_test"})
	require.NoError(t, err)
	return storage
}

func TestDefaultsWithoutPersistedData(t *testing.T) {
	m := NewManager(testStorage(t))
	assert.False(t, m.Muted())
}

func TestMutedRoundTrip(t *testing.T) {
	storage := testStorage(t)

	m := NewManager(storage)
	m.SetMuted(true)

	// A fresh manager over the same storage sees the persisted flag.
	again := NewManager(storage)
	assert.True(t, again.Muted())

	again.SetMuted(false)
	assert.False(t, NewManager(storage).Muted())
}

func TestNilStorageDegradesToMemory(t *testing.T) {
	m := NewManager(nil)
	assert.False(t, m.Muted())

	m.SetMuted(true)
	assert.True(t, m.Muted())

	// Nothing persists without storage.
	assert.False(t, NewManager(nil).Muted())
}

func TestMalformedPersistedDataFallsBack(t *testing.T) {
	storage := testStorage(t)
	require.NoError(t, storage.SaveObjectProp(settingsObject, settingsProperty, []byte("{not yaml")))

	m := NewManager(storage)
	assert.False(t, m.Muted())

	// Saving repairs the stored document.
	m.SetMuted(true)
	assert.True(t, NewManager(storage).Muted())
}
