package ingest

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/AngelCh415/dayparting-go/internal/models"
)

func ReadXLSX(r io.Reader) ([]models.RawRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, inputErr(errors.Wrap(err, "open workbook"))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, inputErr(errors.New("workbook has no sheets"))
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, inputErr(errors.Wrapf(err, "read sheet %q", sheets[0]))
	}
	if len(rows) == 0 {
		return nil, inputErr(errors.New("empty sheet"))
	}

	header := rows[0]
	out := make([]models.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		out = append(out, toRecord(header, row))
	}
	return out, nil
}
