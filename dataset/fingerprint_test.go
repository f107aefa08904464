package dataset_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradelab/backend/dataset"
)

func readRoster(t *testing.T, header []string, rows [][]string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Read(bytes.NewReader(buildXlsx(t, header, rows)))
	require.NoError(t, err)
	return ds
}

func TestFingerprintStableForIdenticalContent(t *testing.T) {
	first := readRoster(t, defaultHeader(), defaultRows())
	second := readRoster(t, defaultHeader(), defaultRows())

	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
}

func TestFingerprintChangesWithCellValue(t *testing.T) {
	base := readRoster(t, defaultHeader(), defaultRows())

	changed := defaultRows()
	changed[2][1] = "img/3a-v2.png"
	other := readRoster(t, defaultHeader(), changed)

	assert.NotEqual(t, base.Fingerprint(), other.Fingerprint())
}

func TestFingerprintChangesWithRowOrder(t *testing.T) {
	base := readRoster(t, defaultHeader(), defaultRows())

	swapped := defaultRows()
	swapped[0], swapped[1] = swapped[1], swapped[0]
	other := readRoster(t, defaultHeader(), swapped)

	assert.NotEqual(t, base.Fingerprint(), other.Fingerprint())
}

func TestFingerprintChangesWithHeader(t *testing.T) {
	base := readRoster(t, defaultHeader(), defaultRows())

	header := append([]string{}, defaultHeader()...)
	header[0] = "考号"
	other := readRoster(t, header, defaultRows())

	assert.NotEqual(t, base.Fingerprint(), other.Fingerprint())
}
