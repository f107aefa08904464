package grading_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradelab/backend/grading"
)

func TestRestoreAfterRestart(t *testing.T) {
	srvc, store := newSrvc(t)
	loadRoster(t, srvc, 3)

	_, err := srvc.SetScore(1, 11)
	require.NoError(t, err)
	_, err = srvc.SetPrompt("我的暑假生活")
	require.NoError(t, err)

	// fresh service on the same store simulates a process restart
	restarted := grading.NewGradingSrvc(store, slog.Default())
	restarted.RequestRestore()

	result, err := restarted.LoadDataset(rosterXlsx(t, 3, ""))
	require.NoError(t, err)
	assert.True(t, result.Restored)

	view := restarted.View()
	assert.Equal(t, []int{-1, 11, -1}, view.Scores)
	assert.Equal(t, "我的暑假生活", view.Prompt)
	assert.False(t, view.LastSavedAt.IsZero())
}

func TestRestoreGatedByFingerprint(t *testing.T) {
	srvc, store := newSrvc(t)
	loadRoster(t, srvc, 3)
	_, err := srvc.SetScore(0, 15)
	require.NoError(t, err)

	restarted := grading.NewGradingSrvc(store, slog.Default())
	restarted.RequestRestore()

	// different roster content: saved progress must not leak onto it
	result, err := restarted.LoadDataset(rosterXlsx(t, 3, "-other"))
	require.NoError(t, err)
	assert.False(t, result.Restored)

	view := restarted.View()
	assert.Equal(t, []int{-1, -1, -1}, view.Scores)
}

func TestRestoreWithoutIntentIsNotApplied(t *testing.T) {
	srvc, store := newSrvc(t)
	loadRoster(t, srvc, 3)
	_, err := srvc.SetScore(2, 6)
	require.NoError(t, err)

	restarted := grading.NewGradingSrvc(store, slog.Default())
	result, err := restarted.LoadDataset(rosterXlsx(t, 3, ""))
	require.NoError(t, err)
	assert.False(t, result.Restored)
	assert.Equal(t, []int{-1, -1, -1}, restarted.View().Scores)
}

func TestRestoreIntentConsumedByUpload(t *testing.T) {
	srvc, store := newSrvc(t)
	loadRoster(t, srvc, 2)
	_, err := srvc.SetScore(0, 4)
	require.NoError(t, err)

	restarted := grading.NewGradingSrvc(store, slog.Default())
	restarted.RequestRestore()

	// the first upload does not match, consuming the intent
	_, err = restarted.LoadDataset(rosterXlsx(t, 2, "-x"))
	require.NoError(t, err)

	// re-uploading the matching roster without a new request stays fresh
	result, err := restarted.LoadDataset(rosterXlsx(t, 2, ""))
	require.NoError(t, err)
	assert.False(t, result.Restored)
}

func TestCorruptRecordTreatedAsAbsent(t *testing.T) {
	srvc, store := newSrvc(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("garbage"), 0o644))

	srvc.RequestRestore()
	result, err := srvc.LoadDataset(rosterXlsx(t, 2, ""))
	require.NoError(t, err)
	assert.False(t, result.Restored)
	assert.Equal(t, []int{-1, -1}, srvc.View().Scores)
}

func TestNewUploadDiscardsPreviousProgress(t *testing.T) {
	srvc, _ := newSrvc(t)
	loadRoster(t, srvc, 3)
	_, err := srvc.SetScore(1, 10)
	require.NoError(t, err)
	_, err = srvc.JumpTo(3)
	require.NoError(t, err)

	// a different roster replaces the bound session wholesale
	result, err := srvc.LoadDataset(rosterXlsx(t, 4, "-new"))
	require.NoError(t, err)
	assert.Equal(t, 4, result.Total)

	view := srvc.View()
	assert.Equal(t, []int{-1, -1, -1, -1}, view.Scores)
	assert.Equal(t, 0, view.CurrentIndex)
	assert.Equal(t, "", view.Prompt)
}

func TestSavedRecordVisibleBeforeUpload(t *testing.T) {
	srvc, store := newSrvc(t)
	assert.False(t, srvc.View().HasSavedRecord)

	loadRoster(t, srvc, 1)

	restarted := grading.NewGradingSrvc(store, slog.Default())
	assert.True(t, restarted.View().HasSavedRecord)
}

func TestRestoreSanitizesTamperedRecord(t *testing.T) {
	srvc, store := newSrvc(t)
	loadRoster(t, srvc, 3)
	_, err := srvc.SetScore(0, 9)
	require.NoError(t, err)

	record, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, record)
	record.Scores = []int{99, -5, 7}
	record.CurrentIndex = 40
	require.NoError(t, store.Store.Persist(record))

	restarted := grading.NewGradingSrvc(store, slog.Default())
	restarted.RequestRestore()
	result, err := restarted.LoadDataset(rosterXlsx(t, 3, ""))
	require.NoError(t, err)
	require.True(t, result.Restored)

	view := restarted.View()
	assert.Equal(t, []int{-1, -1, 7}, view.Scores)
	assert.Equal(t, 2, view.CurrentIndex)
}
