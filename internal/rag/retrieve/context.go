package retrieve

import (
	"strings"

	"github.com/akolanti/DocRAG/internal/domain/docModel"
)

// AssembleContext joins the retained match texts, highest score first,
// into the single context string handed to the prompt builder. No
// matches yields an empty string, not an error.
func AssembleContext(matches []docModel.Match) string {
	if len(matches) == 0 {
		return ""
	}

	parts := make([]string, 0, len(matches))
	for _, match := range matches {
		if match.Text == "" {
			continue
		}
		parts = append(parts, match.Text)
	}
	return strings.Join(parts, "\n\n")
}
