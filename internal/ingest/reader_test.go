package ingest

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/AngelCh415/dayparting-go/internal/apperr"
	"github.com/AngelCh415/dayparting-go/internal/models"
	"github.com/AngelCh415/dayparting-go/internal/store"
)

const csvHeader = "Start Date,Start Time,Campaign Name,Impressions,Clicks,Spend,14 Day Total Sales\n"

func TestReadCSV(t *testing.T) {
	in := "\xEF\xBB\xBF" + csvHeader +
		"2024-07-01,09:00,\"Bottles, large\",100,10,$5.00,$20.00\n" +
		"\n" +
		"2024-07-02,10:00,Short\n"

	recs, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "2024-07-01", recs[0][models.FieldStartDate], "BOM must not leak into the first header")
	assert.Equal(t, "Bottles, large", recs[0][models.FieldCampaignName])
	assert.Equal(t, "$5.00", recs[0][models.FieldSpend])

	_, ok := recs[1][models.FieldClicks]
	assert.False(t, ok, "short row leaves trailing fields absent")
}

func TestReadCSVHeaderOnly(t *testing.T) {
	recs, err := ReadCSV(strings.NewReader(csvHeader))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestReadCSVInputErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty file", ""},
		{"bad quote in header", "Start \"Date\"x,Clicks\n"},
		{"bad quote in row", csvHeader + "2024-07-01,\"09:00\"x,a,1,1,1,1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Equal(t, apperr.KindInput, apperr.KindOf(err))
			assert.Equal(t, "error processing file", err.Error())
		})
	}
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{models.FieldStartDate, models.FieldStartTime, models.FieldClicks, models.FieldImpressions},
		{"07/01/2024", "9:00 AM", "10", "100"},
		{"", "", "", ""},
		{"07/01/2024", "9:30 AM", "5", "50"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	recs, err := ReadRecords("report.XLSX", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "9:00 AM", recs[0][models.FieldStartTime])
	assert.Equal(t, "5", recs[1][models.FieldClicks])
}

func TestReadXLSXTypedDateCells(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{models.FieldStartDate, models.FieldStartTime, models.FieldClicks}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))

	require.NoError(t, f.SetCellValue(sheet, "A2", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, f.SetCellValue(sheet, "B2", 9.0/24))
	require.NoError(t, f.SetCellValue(sheet, "C2", 10))

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(t, err)
	timeStyle, err := f.NewStyle(&excelize.Style{NumFmt: 20})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "A2", "A2", dateStyle))
	require.NoError(t, f.SetCellStyle(sheet, "B2", "B2", timeStyle))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	recs, err := ReadXLSX(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	h, ok := store.HourOf(recs[0][models.FieldStartDate], recs[0][models.FieldStartTime])
	require.True(t, ok, "date %q time %q", recs[0][models.FieldStartDate], recs[0][models.FieldStartTime])
	assert.Equal(t, 9, h)
	assert.Equal(t, 10, Normalize(recs[0]).Clicks)
}

func TestReadXLSXRejectsGarbage(t *testing.T) {
	_, err := ReadRecords("report.xlsx", strings.NewReader("not a zip"))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInput))
}

func TestReadRecordsDefaultsToCSV(t *testing.T) {
	recs, err := ReadRecords("export.txt", strings.NewReader(csvHeader+"2024-07-01,09:00,a,1,1,1,1\n"))
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}
