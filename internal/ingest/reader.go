package ingest

import (
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/AngelCh415/dayparting-go/internal/apperr"
	"github.com/AngelCh415/dayparting-go/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func ReadRecords(filename string, r io.Reader) ([]models.RawRecord, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(r)
	default:
		return ReadCSV(r)
	}
}

// ReadCSV maps every data row onto the header. Short rows leave the
// trailing fields absent and blank lines are skipped.
func ReadCSV(r io.Reader) ([]models.RawRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, inputErr(errors.Wrap(err, "read upload"))
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, inputErr(errors.New("empty file"))
	}
	if err != nil {
		return nil, inputErr(errors.Wrap(err, "read csv header"))
	}

	var out []models.RawRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, inputErr(errors.Wrap(err, "read csv row"))
		}
		if blankRow(row) {
			continue
		}
		out = append(out, toRecord(header, row))
	}
	return out, nil
}

func toRecord(header, row []string) models.RawRecord {
	rec := make(models.RawRecord, len(header))
	for i, h := range header {
		if i >= len(row) {
			break
		}
		rec[strings.TrimSpace(h)] = row[i]
	}
	return rec
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func inputErr(err error) error {
	return apperr.New(apperr.KindInput, "error processing file", err)
}
