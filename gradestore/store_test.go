package gradestore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradelab/backend/gradestore"
)

func newStore(t *testing.T) *gradestore.Store {
	t.Helper()
	store, err := gradestore.New(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestLoadWithoutRecordReturnsAbsent(t *testing.T) {
	store := newStore(t)

	record, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestPersistThenLoadRoundTrip(t *testing.T) {
	store := newStore(t)

	saved := &gradestore.SessionRecord{
		Scores:       []int{-1, 11, -1},
		EssayPrompt:  "我的暑假生活",
		CurrentIndex: 1,
		FileHash:     "abc123",
		SavedTime:    "2026-08-31 14:03:11",
	}
	require.NoError(t, store.Persist(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, saved.Scores, loaded.Scores)
	assert.Equal(t, saved.EssayPrompt, loaded.EssayPrompt)
	assert.Equal(t, saved.CurrentIndex, loaded.CurrentIndex)
	assert.Equal(t, saved.FileHash, loaded.FileHash)
	assert.Equal(t, saved.SavedTime, loaded.SavedTime)
	assert.False(t, loaded.SavedAt().IsZero())
}

func TestPersistReplacesPreviousRecord(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.Persist(&gradestore.SessionRecord{
		Scores:   []int{-1, -1},
		FileHash: "first",
	}))
	require.NoError(t, store.Persist(&gradestore.SessionRecord{
		Scores:   []int{5, -1},
		FileHash: "second",
	}))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "second", loaded.FileHash)
	assert.Equal(t, []int{5, -1}, loaded.Scores)
}

func TestLoadCorruptRecordIsParseError(t *testing.T) {
	store := newStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	record, err := store.Load()
	assert.Nil(t, record)

	parseErr := &gradestore.ParseError{}
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, store.Path(), parseErr.Path)
}

func TestLoadToleratesMissingOptionalFields(t *testing.T) {
	store := newStore(t)
	minimal := []byte(`{"scores": [3, -1], "file_hash": "abc", "saved_time": "2026-08-31 09:00:00"}`)
	require.NoError(t, os.WriteFile(store.Path(), minimal, 0o644))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, "", loaded.EssayPrompt)
	assert.Equal(t, 0, loaded.CurrentIndex)
	assert.Equal(t, []int{3, -1}, loaded.Scores)
}

func TestPersistLeavesNoTempFiles(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Persist(&gradestore.SessionRecord{Scores: []int{-1}}))

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(store.Path()), entries[0].Name())
}

func TestArchiveRoundTrip(t *testing.T) {
	store := newStore(t)

	content := []byte("raw workbook bytes, raw workbook bytes, raw workbook bytes")
	id, err := store.ArchiveUpload(content)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	restored, err := store.ReadArchive(id)
	require.NoError(t, err)
	assert.Equal(t, content, restored)
}

func TestArchiveKeepsOnlyLatestUpload(t *testing.T) {
	store := newStore(t)

	first, err := store.ArchiveUpload([]byte("first upload"))
	require.NoError(t, err)
	second, err := store.ArchiveUpload([]byte("second upload"))
	require.NoError(t, err)

	_, err = store.ReadArchive(first)
	assert.Error(t, err)

	restored, err := store.ReadArchive(second)
	require.NoError(t, err)
	assert.Equal(t, []byte("second upload"), restored)
}

func TestReadArchiveRejectsBogusID(t *testing.T) {
	store := newStore(t)

	_, err := store.ReadArchive("../../etc/passwd")
	assert.Error(t, err)
}
