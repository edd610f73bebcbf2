package report_test

import (
	"os"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"leadscraper/internal/core/report"
	"leadscraper/internal/platform/places"
)

func sampleBusinesses() []report.Business {
	return []report.Business{
		{
			Details: places.Details{
				Name:    "Beyoğlu Diş Polikliniği",
				Phone:   "+90 212 555 0101",
				Address: "Cihangir, Beyoğlu/İstanbul",
				Website: "https://dis.example",
				Rating:  4.6,
				Reviews: 41,
				MapsURL: "https://maps.google.com/?cid=1",
			},
			Sectors: []string{"Diş Klinikleri"},
		},
		{
			Details: places.Details{
				Name:    "Taksim Veteriner",
				Phone:   "+90 212 555 0202",
				Address: "Taksim, Beyoğlu/İstanbul",
				Rating:  4.2,
				Reviews: 12,
			},
			Sectors: []string{"Veteriner"},
		},
	}
}

func TestWriteProducesBothArtifacts(t *testing.T) {
	w := report.NewWriter(t.TempDir())

	files, err := w.Write("job_1", sampleBusinesses(), "Beyoğlu", "Diş Klinikleri, Veteriner")
	require.NoError(t, err)

	assert.FileExists(t, files.TXT.Path)
	assert.FileExists(t, files.XLSX.Path)
	assert.Contains(t, files.TXT.Filename, "beyoglu")
	assert.True(t, strings.HasSuffix(files.TXT.Filename, ".txt"))
	assert.True(t, strings.HasSuffix(files.XLSX.Filename, ".xlsx"))
}

func TestTXTContent(t *testing.T) {
	w := report.NewWriter(t.TempDir())
	files, err := w.Write("job_1", sampleBusinesses(), "Beyoğlu", "Test Araması")
	require.NoError(t, err)

	raw, err := os.ReadFile(files.TXT.Path)
	require.NoError(t, err)
	text := string(raw)

	assert.Contains(t, text, "Beyoğlu - Test Araması")
	assert.Contains(t, text, "Toplam: 2 isletme")
	assert.Contains(t, text, "1. Beyoğlu Diş Polikliniği")
	assert.Contains(t, text, "2. Taksim Veteriner")
	assert.Contains(t, text, "Sektorler: Diş Klinikleri")

	// Flat phone list after the trailer banner.
	trailer := text[strings.Index(text, "TELEFON NUMARALARI"):]
	assert.Contains(t, trailer, "(2 adet)")
	assert.Contains(t, trailer, "+90 212 555 0101")
	assert.Contains(t, trailer, "+90 212 555 0202")
}

func TestXLSXOneSheetPerSector(t *testing.T) {
	w := report.NewWriter(t.TempDir())
	files, err := w.Write("job_1", sampleBusinesses(), "Beyoğlu", "label")
	require.NoError(t, err)

	f, err := excelize.OpenFile(files.XLSX.Path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Diş Klinikleri", "Veteriner"}, f.GetSheetList())

	rows, err := f.GetRows("Diş Klinikleri")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "No", rows[0][0])
	assert.Equal(t, "İşletme Adı", rows[0][1])
	assert.Equal(t, "Beyoğlu Diş Polikliniği", rows[1][1])
	assert.Equal(t, "+90 212 555 0101", rows[1][2])
	// Digits-only phone in the last column.
	assert.Equal(t, "902125550101", rows[1][8])
}

func TestXLSXBusinessOnMultipleSectorsAppearsOnEachSheet(t *testing.T) {
	biz := sampleBusinesses()[0]
	biz.Sectors = []string{"Diş Klinikleri", "Sağlık"}

	w := report.NewWriter(t.TempDir())
	files, err := w.Write("job_1", []report.Business{biz}, "Beyoğlu", "label")
	require.NoError(t, err)

	f, err := excelize.OpenFile(files.XLSX.Path)
	require.NoError(t, err)
	defer f.Close()

	for _, sheet := range []string{"Diş Klinikleri", "Sağlık"} {
		rows, err := f.GetRows(sheet)
		require.NoError(t, err)
		require.Len(t, rows, 2, "sheet %s", sheet)
		assert.Equal(t, biz.Name, rows[1][1])
	}
}

func TestXLSXSheetNameSanitized(t *testing.T) {
	biz := sampleBusinesses()[0]
	biz.Sectors = []string{"A/B:C*D?E[F]G\\" + strings.Repeat("x", 40)}

	w := report.NewWriter(t.TempDir())
	files, err := w.Write("job_1", []report.Business{biz}, "Beyoğlu", "label")
	require.NoError(t, err)

	f, err := excelize.OpenFile(files.XLSX.Path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 1)
	assert.LessOrEqual(t, len(sheets[0]), 31)
	assert.NotContains(t, sheets[0], "/")
	assert.NotContains(t, sheets[0], "*")
	assert.NotContains(t, sheets[0], "[")
}

func TestXLSXSheetNameTruncatedAtRuneBoundary(t *testing.T) {
	// A multibyte character straddling the cap must not be cut mid-rune.
	biz := sampleBusinesses()[0]
	biz.Sectors = []string{strings.Repeat("a", 30) + "şube"}

	w := report.NewWriter(t.TempDir())
	files, err := w.Write("job_1", []report.Business{biz}, "Beyoğlu", "label")
	require.NoError(t, err)

	f, err := excelize.OpenFile(files.XLSX.Path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 1)
	assert.True(t, utf8.ValidString(sheets[0]))
	assert.Equal(t, strings.Repeat("a", 30)+"ş", sheets[0])
	assert.LessOrEqual(t, utf8.RuneCountInString(sheets[0]), 31)

	rows, err := f.GetRows(sheets[0])
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, biz.Name, rows[1][1])
}

func TestXLSXEmptyListGetsPlaceholderSheet(t *testing.T) {
	w := report.NewWriter(t.TempDir())
	files, err := w.Write("job_1", nil, "Beyoğlu", "label")
	require.NoError(t, err)

	f, err := excelize.OpenFile(files.XLSX.Path)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"Liste"}, f.GetSheetList())
	val, err := f.GetCellValue("Liste", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Sonuç bulunamadı", val)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "kucukcekmece", report.SanitizeFilename("Küçükçekmece"))
	assert.Equal(t, "dis-klinigi-beyoglu", report.SanitizeFilename("Diş Kliniği / Beyoğlu!"))
	assert.Equal(t, "", report.SanitizeFilename("!!!"))
}
