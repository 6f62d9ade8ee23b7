package docModel

import (
	"path/filepath"
	"strings"
)

// FileFormat is the closed set of formats the extractor understands.
// Dispatch is an exhaustive switch over this type, so adding a format is
// a compile-time extension rather than a string-matching fallthrough.
type FileFormat string

const (
	FormatCSV         FileFormat = "CSV"
	FormatSpreadsheet FileFormat = "SPREADSHEET"
	FormatPDF         FileFormat = "PDF"
	FormatImage       FileFormat = "IMAGE"
	FormatDoc         FileFormat = "DOC" //docx, rtf, odt via converter
	FormatText        FileFormat = "TEXT"
	FormatUnknown     FileFormat = "UNKNOWN"
)

// DetectFormat maps a declared mime type plus filename suffix onto the
// format enum. The suffix only decides when the mime type is not specific
// enough, mirroring how the upstream upload handler declares types.
func DetectFormat(mimeType string, filename string) FileFormat {
	mime := strings.ToLower(mimeType)
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case strings.Contains(mime, "csv") || ext == ".csv":
		return FormatCSV
	case strings.Contains(mime, "spreadsheet") || mime == "application/vnd.ms-excel" || ext == ".xlsx" || ext == ".xls":
		return FormatSpreadsheet
	case mime == "application/pdf" || ext == ".pdf":
		return FormatPDF
	case strings.HasPrefix(mime, "image/"):
		return FormatImage
	case ext == ".docx" || ext == ".rtf" || ext == ".odt":
		return FormatDoc
	case strings.HasPrefix(mime, "text/") || mime == "application/json" || ext == ".txt" || ext == ".json":
		return FormatText
	default:
		return FormatUnknown
	}
}
