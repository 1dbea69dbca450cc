package receiving

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	pkgerrors "github.com/weilintw/farmgate-backend/pkg/errors"
)

// ReadTable extracts the raw cell grid from an uploaded spreadsheet. The
// filename's extension selects the decoder: .xlsx/.xls go through excelize,
// anything else is treated as CSV. A file that cannot be decoded at all yields
// a single PARSE_FAILURE; content problems inside individual cells are left
// for the normalizer to default away.
func ReadTable(r io.Reader, filename string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return readWorkbook(r)
	default:
		return readCSV(r)
	}
}

// readWorkbook pulls every row of the first worksheet.
func readWorkbook(r io.Reader) ([][]string, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeParseFailure, err, "file format error or unreadable")
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeParseFailure, "workbook has no sheets")
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeParseFailure, err, "file format error or unreadable")
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows may be ragged
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeParseFailure, err, "file format error or unreadable")
	}
	return rows, nil
}
