package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRecords = `
- slug: weather-archive
  title: WEATHER ARCHIVE
  synopsis: Storm observations.
  published: true
  posted_at: 2025-11-20T12:00:00Z
- slug: activation-log
  title: ACTIVATION LOG
  synopsis: Charge readings from the last cycle.
  published: true
  posted_at: 2026-02-10T12:00:00Z
- slug: field-notes
  title: FIELD NOTES
  synopsis: Notes from the survey team.
  published: true
  posted_at: 2026-01-05T12:00:00Z
- slug: unverified
  title: UNVERIFIED READINGS
  synopsis: Awaiting review.
  published: false
  posted_at: 2026-03-01T12:00:00Z
`

func TestPublishedSortedNewestFirst(t *testing.T) {
	lib, err := NewLibrary([]byte(testRecords))
	require.NoError(t, err)

	published := lib.Published()
	require.Len(t, published, 3)
	assert.Equal(t, "activation-log", published[0].Slug)
	assert.Equal(t, "field-notes", published[1].Slug)
	assert.Equal(t, "weather-archive", published[2].Slug)
}

func TestBySlugOnlyFindsPublished(t *testing.T) {
	lib, err := NewLibrary([]byte(testRecords))
	require.NoError(t, err)

	record, ok := lib.BySlug("activation-log")
	require.True(t, ok)
	assert.Equal(t, "ACTIVATION LOG", record.Title)

	_, ok = lib.BySlug("unverified")
	assert.False(t, ok)

	_, ok = lib.BySlug("missing")
	assert.False(t, ok)
}

func TestOverlongSynopsisSkipped(t *testing.T) {
	long := strings.Repeat("x", 161)
	lib, err := NewLibrary([]byte(`
- slug: too-long
  title: TOO LONG
  synopsis: ` + long + `
  published: true
- slug: fits
  title: FITS
  synopsis: ` + strings.Repeat("y", 160) + `
  published: true
`))
	require.NoError(t, err)

	_, ok := lib.BySlug("too-long")
	assert.False(t, ok)
	_, ok = lib.BySlug("fits")
	assert.True(t, ok)
}

func TestSynopsisLimitCountsRunesNotBytes(t *testing.T) {
	// 160 runes, three bytes each in UTF-8.
	lib, err := NewLibrary([]byte(`
- slug: multibyte
  title: MULTIBYTE
  synopsis: ` + strings.Repeat("止", 160) + `
  published: true
`))
	require.NoError(t, err)

	rec, ok := lib.BySlug("multibyte")
	require.True(t, ok)
	assert.Len(t, []rune(rec.Synopsis), 160)
}

func TestEmptySlugSkipped(t *testing.T) {
	lib, err := NewLibrary([]byte(`
- title: NO SLUG
  published: true
- slug: named
  title: NAMED
  published: true
`))
	require.NoError(t, err)

	assert.Len(t, lib.Published(), 1)
}

func TestMalformedDocumentFails(t *testing.T) {
	_, err := NewLibrary([]byte("slug: [not a list"))
	assert.Error(t, err)
}

func TestLoadLibraryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testRecords), 0o644))

	lib, err := LoadLibrary(path)
	require.NoError(t, err)
	assert.Len(t, lib.Published(), 3)

	_, err = LoadLibrary(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
