package model

import (
	"fmt"
	"strconv"
)

// Well-known column names in the tabular checkpoint format
const (
	ColumnURI            = "uri"
	ColumnCountry        = "country"
	ColumnCombinedText   = "combined_text"
	ColumnTranslatedText = "translated_text"

	ColumnLabel      = "llm_label"
	ColumnRationale  = "llm_rationale"
	ColumnConfidence = "llm_confidence"
	ColumnEvidence   = "llm_evidence"

	ColumnHighlightedText = "highlighted_text"
)

// SentinelLabel marks a category record produced by a pipeline failure
// rather than by the model. Matching excludes it; downstream consumers
// filter on it.
const SentinelLabel = "Error"

// TranslationFailedMarker replaces a chunk whose translation was rejected
// by the quality gate. Accepted lossy behavior: the article no longer
// reconstructs exactly, but the remaining chunks survive.
const TranslationFailedMarker = "[Translation Failed]"

// Status is the persisted per-item annotation state for one stage
type Status string

const (
	StatusPending Status = ""      // not yet processed
	StatusDone    Status = "done"  // all output fields written
	StatusError   Status = "error" // sentinel written; skipped on re-run
)

// Item is one article as seen by an annotation stage
type Item struct {
	Index          int    // Row index in the checkpoint table
	ID             string // URI when present, row index otherwise
	Country        string
	Lang           string // Source language code resolved from Country
	CombinedText   string
	TranslatedText string
}

// CategoryRecord is the model's claim about one category for one item.
// A zero CategoryRecord means "not evidenced".
type CategoryRecord struct {
	Label      string   `json:"frame"`      // Label text as emitted by the model
	Highlights []string `json:"highlights"` // Verbatim evidence spans
	Rationale  string   `json:"rationale"`
	Confidence *int     `json:"confidence"` // 0-100; nil means not reported
}

// IsEmpty reports whether the record carries no annotation at all
func (r CategoryRecord) IsEmpty() bool {
	return r.Label == "" && r.Rationale == "" && len(r.Highlights) == 0 && r.Confidence == nil
}

// ConfidenceString renders the confidence for tabular output, empty when
// the model did not report one. Absence must stay distinguishable from 0.
func (r CategoryRecord) ConfidenceString() string {
	if r.Confidence == nil {
		return ""
	}
	return strconv.Itoa(*r.Confidence)
}

// AnnotationResult maps each taxonomy position to exactly one record.
// Index i holds the record for the category at Position i+1.
type AnnotationResult []CategoryRecord

// FrameColumn names the output column for taxonomy position pos (1-based)
// and field suffix ("name", "rationale", "confidence", "evidence").
func FrameColumn(pos int, suffix string) string {
	return fmt.Sprintf("frame_%d_%s", pos, suffix)
}

// Confidence wraps an int for use as a CategoryRecord confidence
func Confidence(v int) *int {
	return &v
}
