package grading_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gradelab/backend/dataset"
	"github.com/gradelab/backend/gradestore"
	"github.com/gradelab/backend/grading"
)

// rosterXlsx builds an uploadable workbook with n submission rows. An
// optional salt changes cell content so two rosters get different
// fingerprints.
func rosterXlsx(t *testing.T, n int, salt string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	header := []interface{}{"学号", dataset.ColImage1, dataset.ColImage2, dataset.ColRubric}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))

	for i := 0; i < n; i++ {
		row := []interface{}{
			fmt.Sprintf("s%03d%s", i+1, salt),
			fmt.Sprintf("img/%da.png", i+1),
			fmt.Sprintf("img/%db.png", i+1),
			"内容切题，语言流畅",
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

// countingStore wraps the real file store to observe and fail persists.
type countingStore struct {
	*gradestore.Store
	persistCalls int
	failPersist  bool
}

func (s *countingStore) Persist(record *gradestore.SessionRecord) error {
	s.persistCalls++
	if s.failPersist {
		return fmt.Errorf("disk unavailable")
	}
	return s.Store.Persist(record)
}

func newSrvc(t *testing.T) (*grading.GradingSrvc, *countingStore) {
	t.Helper()
	fileStore, err := gradestore.New(t.TempDir())
	require.NoError(t, err)
	store := &countingStore{Store: fileStore}
	return grading.NewGradingSrvc(store, slog.Default()), store
}

func loadRoster(t *testing.T, srvc *grading.GradingSrvc, n int) *grading.UploadResult {
	t.Helper()
	result, err := srvc.LoadDataset(rosterXlsx(t, n, ""))
	require.NoError(t, err)
	return result
}
