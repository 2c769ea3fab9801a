// Package parse turns raw model output into structured annotation
// records. The model service is not contractually bound to one encoding,
// so parsing degrades through three strategies: strict JSON, JSON dug out
// of surrounding prose, and free-form labeled text.
package parse

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/annekroon/respond-media/internal/model"
)

// OutcomeKind tags the result of parsing a frame response
type OutcomeKind int

const (
	// OutcomeEmpty means the response parsed but claims no categories
	OutcomeEmpty OutcomeKind = iota

	// OutcomeRecords means one or more category records were recovered
	OutcomeRecords

	// OutcomeUnparsable means no strategy succeeded; Diagnostic carries
	// a truncated copy of the raw content
	OutcomeUnparsable
)

// Outcome is the tagged result of ParseFrames. Callers must switch on
// Kind: Unparsable is zero records plus a diagnostic, never a
// record-count of one with empty fields.
type Outcome struct {
	Kind       OutcomeKind
	Records    []model.CategoryRecord
	Diagnostic string
}

const diagnosticLimit = 800

var (
	codeFenceRE   = regexp.MustCompile("```(?:json)?")
	doubledQuotes = regexp.MustCompile(`"\s*"\s*([^"]+)"`)
	confidenceRE  = regexp.MustCompile(`\d{1,3}`)
)

// ParseFrames parses a frame-annotation response
func ParseFrames(content string) Outcome {
	content = strings.TrimSpace(content)
	if content == "" {
		return Outcome{Kind: OutcomeEmpty}
	}

	// Strategy 1: strict JSON after stripping markdown code fences
	stripped := strings.TrimSpace(codeFenceRE.ReplaceAllString(content, ""))
	if records, ok := parseJSONArray(stripped); ok {
		return recordsOutcome(records)
	}

	// Strategy 2: bracket-balanced extraction plus quote repair
	if candidate := extractJSONArray(stripped); candidate != "" {
		candidate = sanitizeDoubledQuotes(candidate)
		if records, ok := parseJSONArray(candidate); ok {
			return recordsOutcome(records)
		}
	}

	// Strategy 3: free-form labeled text blocks
	if records := parseFreeForm(stripped); len(records) > 0 {
		return recordsOutcome(records)
	}

	diag := content
	if len(diag) > diagnosticLimit {
		diag = diag[:diagnosticLimit]
	}
	return Outcome{Kind: OutcomeUnparsable, Diagnostic: diag}
}

func recordsOutcome(records []model.CategoryRecord) Outcome {
	if len(records) == 0 {
		return Outcome{Kind: OutcomeEmpty}
	}
	return Outcome{Kind: OutcomeRecords, Records: records}
}

// frameJSON tolerates the field spellings observed in model output
type frameJSON struct {
	Frame      string          `json:"frame"`
	Label      string          `json:"label"`
	Highlights json.RawMessage `json:"highlights"`
	Rationale  string          `json:"rationale"`
	Confidence json.RawMessage `json:"confidence"`
}

func parseJSONArray(s string) ([]model.CategoryRecord, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") {
		return nil, false
	}

	var raw []frameJSON
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, false
	}

	records := make([]model.CategoryRecord, 0, len(raw))
	for _, f := range raw {
		label := f.Frame
		if label == "" {
			label = f.Label
		}
		records = append(records, model.CategoryRecord{
			Label:      label,
			Highlights: decodeHighlights(f.Highlights),
			Rationale:  strings.TrimSpace(f.Rationale),
			Confidence: decodeConfidence(f.Confidence),
		})
	}
	return records, true
}

// decodeHighlights accepts either an array of strings or a bare string
func decodeHighlights(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		out := list[:0]
		for _, h := range list {
			if h = strings.TrimSpace(h); h != "" {
				out = append(out, h)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if single = strings.TrimSpace(single); single != "" {
			return []string{single}
		}
	}
	return nil
}

// decodeConfidence accepts a number, a digit string, or null. Anything
// outside [0,100] counts as not reported; absence is not zero.
func decodeConfidence(raw json.RawMessage) *int {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		return boundedConfidence(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return boundedConfidence(int(f))
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if m := confidenceRE.FindString(str); m != "" {
			if n, err := strconv.Atoi(m); err == nil {
				return boundedConfidence(n)
			}
		}
	}
	return nil
}

func boundedConfidence(n int) *int {
	if n < 0 || n > 100 {
		return nil
	}
	return &n
}

// extractJSONArray returns the first bracket-balanced [...] slice of the
// content, skipping brackets that appear inside JSON strings
func extractJSONArray(content string) string {
	start := strings.Index(content, "[")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(content); i++ {
		c := content[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return content[start : i+1]
			}
		}
	}
	return ""
}

// sanitizeDoubledQuotes repairs a known malformation where the model
// emits a stray quote pair before a field value: `"" "value"` -> `"value"`
func sanitizeDoubledQuotes(s string) string {
	return doubledQuotes.ReplaceAllString(s, `"$1"`)
}
