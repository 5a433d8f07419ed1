package storage

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/matst80/slask-table/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `[
  {"name":"Cheap","category":"A","subcategory":"x","price":10,"createdAt":"2024-01-01T10:00:00Z","updatedAt":"2024-01-02T10:00:00Z"},
  {"name":"Mid","category":"B","subcategory":"y","price":20,"createdAt":"2024-02-01T10:00:00Z","updatedAt":"broken"}
]`

func TestLoadBundledRecords(t *testing.T) {
	records, err := LoadBundledRecords()
	require.NoError(t, err)
	assert.Len(t, records, 64)
	for i, r := range records {
		assert.Equal(t, types.ItemId(i), r.Id)
	}
	assert.False(t, records[17].UpdatedAt.Valid)
	assert.Equal(t, types.InvalidDate, types.FormatCellDate(records[17].UpdatedAt))
}

func TestLoadRecordsFromFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.json"), []byte(sample), 0o644))

	ds := NewDiskStorage(dir)
	records, err := ds.LoadRecords("data.json")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Mid", records[1].Name)
	assert.Equal(t, types.ItemId(1), records[1].Id)
	assert.True(t, records[0].UpdatedAt.Valid)
	assert.False(t, records[1].UpdatedAt.Valid)
}

func TestLoadGzippedRecords(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "data.json.gz"))
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	records, err := NewDiskStorage(dir).LoadRecords("data.json.gz")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewDiskStorage(t.TempDir()).LoadRecords("missing.json")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
