package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadExpandsNestedField(t *testing.T) {
	path := writeFixture(t, "events.json", `[
		{"title": "Meetup", "date": "2024-02-10T18:00:00Z", "eventGuests": {"going": 12, "total": 20}},
		{"title": "Workshop", "date": "2024-05-01"}
	]`)

	ds, err := Load(path, Options{DateField: "date", NestedField: "eventGuests"})
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())

	going, ok := ds.Num(0, "eventGuests_going")
	assert.True(t, ok)
	assert.Equal(t, 12.0, going)

	// The container column is gone and the second row reads as null in every
	// expanded column.
	_, ok = ds.Row(0)["eventGuests"]
	assert.False(t, ok)
	_, ok = ds.Num(1, "eventGuests_going")
	assert.False(t, ok)
}

func TestLoadDerivesDatePermissively(t *testing.T) {
	path := writeFixture(t, "articles.json", `[
		{"publishedDate": "2023-11-05T09:30:00Z"},
		{"publishedDate": "2023-11-06"},
		{"publishedDate": "not a date"},
		{}
	]`)

	ds, err := Load(path, Options{DateField: "publishedDate"})
	require.NoError(t, err)
	require.Equal(t, 4, ds.Len())

	d, ok := ds.Date(0)
	assert.True(t, ok)
	assert.Equal(t, 2023, d.Year())
	assert.Equal(t, time.November, d.Month())

	_, ok = ds.Date(1)
	assert.True(t, ok)

	// Unparseable and absent source values yield no date, never an error.
	_, ok = ds.Date(2)
	assert.False(t, ok)
	_, ok = ds.Date(3)
	assert.False(t, ok)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), Options{DateField: "date"})
	assert.Error(t, err)
}

func TestLoadMalformedJSONFails(t *testing.T) {
	path := writeFixture(t, "bad.json", `{"not": "an array"`)
	_, err := Load(path, Options{DateField: "date"})
	assert.Error(t, err)
}

func TestMultiValueFieldsAreWrappedAtLoad(t *testing.T) {
	ds := FromRecords([]Row{
		{"tags": "ai"},
		{"tags": []any{"ai", "events"}},
		{},
	}, Options{DateField: "publishedDate", MultiValueFields: []string{"tags"}})

	assert.Equal(t, []string{"ai"}, ds.Strings(0, "tags"))
	assert.Equal(t, []string{"ai", "events"}, ds.Strings(1, "tags"))
	assert.Nil(t, ds.Strings(2, "tags"))
}

func TestLoadIsIdempotent(t *testing.T) {
	content := `[
		{"title": "a", "date": "2024-02-10", "eventGuests": {"going": 1, "total": 2}},
		{"title": "b", "date": "junk"}
	]`
	path := writeFixture(t, "events.json", content)
	opts := Options{DateField: "date", NestedField: "eventGuests"}

	first, err := Load(path, opts)
	require.NoError(t, err)
	second, err := Load(path, opts)
	require.NoError(t, err)

	assert.Equal(t, first.Len(), second.Len())
	assert.Equal(t, first.Columns(), second.Columns())
	for i := 0; i < first.Len(); i++ {
		assert.Equal(t, first.Row(i), second.Row(i))
	}
}

func TestRowOrderIsPreserved(t *testing.T) {
	ds := FromRecords([]Row{
		{"title": "third", "date": "2024-03-01"},
		{"title": "first", "date": "2024-01-01"},
	}, Options{DateField: "date"})

	title, _ := ds.Str(0, "title")
	assert.Equal(t, "third", title)
}
