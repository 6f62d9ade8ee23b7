// Package chunker splits extracted document text into bounded, overlapping
// chunks. Splitting walks a prioritized separator list from most to least
// semantic; a unit too large for the current separator recurses to the next
// one, and fixed-width character slicing is the last resort.
package chunker

import (
	"strings"

	"github.com/akolanti/DocRAG/internal/domain/docModel"
)

// Separators ordered from "best" to "worst" for semantic meaning.
// Character slicing handles whatever none of these can break up.
var separators = []string{"\n\n", "\n", " "}

// Split cuts text into ordered chunks of at most chunkSize characters,
// with consecutive chunks sharing overlap trailing characters. Output is
// deterministic for a given input and parameters. A single indivisible
// unit longer than chunkSize never happens here because the character
// fallback can always cut; oversized chunks only occur if chunkSize <= 0.
func Split(text string, chunkSize int, overlap int) []docModel.Chunk {
	if chunkSize <= 0 {
		chunkSize = 1
	}
	if overlap < 0 {
		overlap = 0
	}

	pieces := splitRecursive(text, chunkSize, overlap, 0)

	chunks := make([]docModel.Chunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, docModel.Chunk{
			Text:      piece,
			Index:     i,
			CharCount: len(piece),
		})
	}
	return chunks
}

func splitRecursive(text string, limit int, overlap int, sepIndex int) []string {
	if len(text) == 0 {
		return nil
	}
	if len(text) <= limit {
		return []string{text}
	}
	if sepIndex >= len(separators) {
		return sliceFixedWidth(text, limit, overlap)
	}

	sep := separators[sepIndex]
	if !strings.Contains(text, sep) {
		return splitRecursive(text, limit, overlap, sepIndex+1)
	}

	parts := strings.Split(text, sep)

	var out []string
	var current strings.Builder
	fresh := false //whether current holds anything beyond carried overlap

	flush := func() {
		if current.Len() == 0 {
			return
		}
		closed := current.String()
		out = append(out, closed)
		current.Reset()
		current.WriteString(tail(closed, overlap))
		fresh = false
	}

	for _, part := range parts {
		if len(part) > limit {
			// This unit cannot fit any chunk at this separator level;
			// close what we have and go one separator finer.
			if fresh && current.Len() > 0 {
				out = append(out, current.String())
			}
			current.Reset()
			fresh = false
			out = append(out, splitRecursive(part, limit, overlap, sepIndex+1)...)
			continue
		}

		joined := len(part)
		if current.Len() > 0 {
			joined += len(sep)
		}
		if current.Len()+joined > limit {
			if fresh {
				flush()
			}
			// Trim the carried overlap so the chunk bound still holds.
			if current.Len()+joined > limit {
				carry := tail(current.String(), limit-joined)
				current.Reset()
				current.WriteString(carry)
			}
		}

		if current.Len() > 0 {
			current.WriteString(sep)
		}
		current.WriteString(part)
		fresh = true
	}

	if fresh && current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}

// sliceFixedWidth is the raw character fallback: fixed windows of limit
// characters advancing by limit-overlap each step.
func sliceFixedWidth(text string, limit int, overlap int) []string {
	step := limit - overlap
	if step <= 0 {
		step = limit
	}

	var out []string
	for start := 0; start < len(text); start += step {
		end := start + limit
		if end > len(text) {
			end = len(text)
		}
		out = append(out, text[start:end])
		if end == len(text) {
			break
		}
	}
	return out
}

func tail(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
