package analyze

import (
	"errors"

	"github.com/SHIVANSHU-TECH/ApplyAI/internal/match"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/sections"
)

var (
	// ErrNoInput means neither a document nor skills text was supplied.
	ErrNoInput = errors.New("no resume or skills provided")
)

// ExtractionResult is the processed view of one uploaded résumé.
// Immutable once produced; TextLength always equals len(RawText).
type ExtractionResult struct {
	RawText       string            `json:"rawText"`
	TextLength    int               `json:"textLength"`
	Keywords      []string          `json:"keywords"`
	Sections      *sections.Sections `json:"sections,omitempty"`
	LowConfidence bool              `json:"lowConfidence,omitempty"`
}

// Output is the full analysis response: what was extracted plus the
// ranked job recommendations.
type Output struct {
	Extraction      ExtractionResult `json:"extraction"`
	Recommendations []match.Result   `json:"recommendations"`
}
