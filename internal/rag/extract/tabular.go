package extract

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"

	"github.com/akolanti/DocRAG/internal/domain/ragErrors"
	"github.com/xuri/excelize/v2"
)

// extractCSV parses with the first record as header row and serializes
// the remaining rows as a JSON array of objects, so downstream chunking
// treats the whole table textually.
func extractCSV(data []byte) (string, error) {
	reader := csv.NewReader(bytes.NewReader(data))

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "[]", nil
		}
		return "", &ragErrors.ParseError{Format: "csv", Err: err}
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", &ragErrors.ParseError{Format: "csv", Err: err}
		}
		rows = append(rows, rowObject(header, record))
	}

	return marshalRows(rows)
}

// extractSpreadsheet reads only the first sheet of an xlsx/xls workbook
// and converts it to the same header-keyed JSON shape as extractCSV.
func extractSpreadsheet(data []byte) (string, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", &ragErrors.ParseError{Format: "spreadsheet", Err: err}
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return "[]", nil
	}

	allRows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return "", &ragErrors.ParseError{Format: "spreadsheet", Err: err}
	}
	if len(allRows) == 0 {
		return "[]", nil
	}

	header := allRows[0]
	var rows []map[string]string
	for _, record := range allRows[1:] {
		rows = append(rows, rowObject(header, record))
	}

	return marshalRows(rows)
}

func rowObject(header []string, record []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, key := range header {
		if i < len(record) {
			row[key] = record[i]
		} else {
			row[key] = ""
		}
	}
	return row
}

func marshalRows(rows []map[string]string) (string, error) {
	if rows == nil {
		rows = []map[string]string{}
	}
	out, err := json.Marshal(rows)
	if err != nil {
		return "", &ragErrors.ParseError{Format: "tabular", Err: err}
	}
	return string(out), nil
}
