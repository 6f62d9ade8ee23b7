// Package ragErrors holds the pipeline error taxonomy. Extraction and
// embedding errors are fatal for the document being ingested and propagate
// to the caller; query-side errors are recovered locally and degrade to an
// empty result instead of surfacing.
package ragErrors

import "fmt"

// UnsupportedFormatError - the declared mime type / suffix maps to no
// known extractor, or a textual payload failed UTF-8 decoding.
type UnsupportedFormatError struct {
	MimeType string
	Filename string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q for file %q", e.MimeType, e.Filename)
}

// ParseError - malformed CSV or spreadsheet content. There is no fallback
// chain: the caller decides whether to skip or abort.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s failed: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExtractionError - unreadable/encrypted PDF or a failed vision call.
type ExtractionError struct {
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting %s failed: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// EmbeddingError - provider failure, quota exhaustion or timeout while
// embedding a chunk or query.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// IndexError - listing or creating the vector index failed.
type IndexError struct {
	Index string
	Err   error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %q: %v", e.Index, e.Err)
}

func (e *IndexError) Unwrap() error { return e.Err }

// WriteError - a batch upsert failed. Batches written before the failure
// remain written; BatchesWritten records how many committed.
type WriteError struct {
	BatchesWritten int
	Err            error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("batch upsert failed after %d committed batches: %v", e.BatchesWritten, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
