package extract

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/akolanti/DocRAG/internal/domain/docModel"
	"github.com/akolanti/DocRAG/internal/domain/ragErrors"
)

type mockVision struct {
	describeFunc func(ctx context.Context, model string, mimeType string, image []byte) (string, error)
}

func (m *mockVision) DescribeImage(ctx context.Context, model string, mimeType string, image []byte) (string, error) {
	return m.describeFunc(ctx, model, mimeType, image)
}

func textDocument(name string, mimeType string, body string) docModel.Document {
	return docModel.Document{
		Id:       "doc-1",
		Name:     name,
		MimeType: mimeType,
		OwnerId:  "user-1",
		RawBytes: []byte(body),
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		mimeType string
		filename string
		want     docModel.FileFormat
	}{
		{"text/csv", "data.csv", docModel.FormatCSV},
		{"application/octet-stream", "data.csv", docModel.FormatCSV},
		{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "book.xlsx", docModel.FormatSpreadsheet},
		{"application/vnd.ms-excel", "legacy.xls", docModel.FormatSpreadsheet},
		{"application/pdf", "report.pdf", docModel.FormatPDF},
		{"image/png", "chart.png", docModel.FormatImage},
		{"image/jpeg", "photo", docModel.FormatImage},
		{"application/octet-stream", "letter.docx", docModel.FormatDoc},
		{"text/plain", "notes.txt", docModel.FormatText},
		{"application/json", "payload.json", docModel.FormatText},
		{"application/octet-stream", "blob.bin", docModel.FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := docModel.DetectFormat(tt.mimeType, tt.filename); got != tt.want {
				t.Errorf("DetectFormat(%q, %q) got %v, want %v", tt.mimeType, tt.filename, got, tt.want)
			}
		})
	}
}

func TestExtract_CSV(t *testing.T) {
	e := NewExtractor(nil)
	doc := textDocument("people.csv", "text/csv", "name,age\nAlice,30\nBob,25")

	text, err := e.Extract(context.Background(), doc, "")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	for _, want := range []string{`"name":"Alice"`, `"age":"30"`, `"name":"Bob"`, `"age":"25"`} {
		if !strings.Contains(text, want) {
			t.Errorf("Extracted text missing %s: %s", want, text)
		}
	}
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") {
		t.Errorf("Expected a JSON array, got %s", text)
	}
}

func TestExtract_CSV_HeaderOnly(t *testing.T) {
	e := NewExtractor(nil)
	doc := textDocument("empty.csv", "text/csv", "name,age")

	text, err := e.Extract(context.Background(), doc, "")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if text != "[]" {
		t.Errorf("Header-only CSV should yield empty array, got %s", text)
	}
}

func TestExtract_CSV_Malformed(t *testing.T) {
	e := NewExtractor(nil)
	doc := textDocument("broken.csv", "text/csv", "a,b\n\"unterminated,1")

	_, err := e.Extract(context.Background(), doc, "")
	var parseErr *ragErrors.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ParseError, got %v", err)
	}
	if parseErr.Format != "csv" {
		t.Errorf("ParseError format got %q, want csv", parseErr.Format)
	}
}

func TestExtract_Spreadsheet(t *testing.T) {
	book := excelize.NewFile()
	rows := [][]string{{"city", "population"}, {"Berlin", "3600000"}, {"Hamburg", "1800000"}}
	for i, row := range rows {
		for j, cell := range row {
			axis, _ := excelize.CoordinatesToCellName(j+1, i+1)
			if err := book.SetCellValue("Sheet1", axis, cell); err != nil {
				t.Fatalf("SetCellValue: %v", err)
			}
		}
	}
	buf, err := book.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}

	e := NewExtractor(nil)
	doc := docModel.Document{
		Id:       "doc-1",
		Name:     "cities.xlsx",
		MimeType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		RawBytes: buf.Bytes(),
	}

	text, err := e.Extract(context.Background(), doc, "")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	for _, want := range []string{`"city":"Berlin"`, `"population":"1800000"`} {
		if !strings.Contains(text, want) {
			t.Errorf("Extracted text missing %s: %s", want, text)
		}
	}
}

func TestExtract_Spreadsheet_Corrupt(t *testing.T) {
	e := NewExtractor(nil)
	doc := docModel.Document{
		Id:       "doc-1",
		Name:     "broken.xlsx",
		MimeType: "application/vnd.ms-excel",
		RawBytes: []byte("not a zip archive"),
	}

	_, err := e.Extract(context.Background(), doc, "")
	var parseErr *ragErrors.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ParseError, got %v", err)
	}
}

func TestExtract_PlainText(t *testing.T) {
	e := NewExtractor(nil)
	doc := textDocument("notes.txt", "text/plain", "hello world")

	text, err := e.Extract(context.Background(), doc, "")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if text != "hello world" {
		t.Errorf("Extracted text got %q", text)
	}
}

func TestExtract_UnknownBinary(t *testing.T) {
	e := NewExtractor(nil)
	doc := docModel.Document{
		Id:       "doc-1",
		Name:     "blob.bin",
		MimeType: "application/octet-stream",
		RawBytes: []byte{0xff, 0xfe, 0x00, 0x01},
	}

	_, err := e.Extract(context.Background(), doc, "")
	var unsupported *ragErrors.UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Expected UnsupportedFormatError, got %v", err)
	}
}

func TestExtract_Image(t *testing.T) {
	var gotModel, gotMime string
	vision := &mockVision{
		describeFunc: func(ctx context.Context, model string, mimeType string, image []byte) (string, error) {
			gotModel = model
			gotMime = mimeType
			return "a bar chart of quarterly revenue", nil
		},
	}
	e := NewExtractor(vision)
	doc := docModel.Document{
		Id:       "doc-1",
		Name:     "chart.png",
		MimeType: "image/png",
		RawBytes: []byte{0x89, 0x50, 0x4e, 0x47},
	}

	text, err := e.Extract(context.Background(), doc, "gpt-4o")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if text != "a bar chart of quarterly revenue" {
		t.Errorf("Extracted text got %q", text)
	}
	if gotModel != "gpt-4o" {
		t.Errorf("Vision model got %q, want gpt-4o", gotModel)
	}
	if gotMime != "image/png" {
		t.Errorf("Vision mime type got %q, want image/png", gotMime)
	}
}

func TestExtract_Image_VisionFailure(t *testing.T) {
	vision := &mockVision{
		describeFunc: func(ctx context.Context, model string, mimeType string, image []byte) (string, error) {
			return "", errors.New("model overloaded")
		},
	}
	e := NewExtractor(vision)
	doc := docModel.Document{Id: "doc-1", Name: "chart.png", MimeType: "image/png", RawBytes: []byte{1}}

	_, err := e.Extract(context.Background(), doc, "")
	var extractErr *ragErrors.ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("Expected ExtractionError, got %v", err)
	}
}

func TestExtract_CSV_LargeInput(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("id,value\n")
	for i := 0; i < 500; i++ {
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString(",v\n")
	}
	e := NewExtractor(nil)
	doc := textDocument("large.csv", "text/csv", sb.String())

	text, err := e.Extract(context.Background(), doc, "")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if !strings.Contains(text, `"id":"499"`) {
		t.Errorf("Last row missing from output")
	}
}
