// Package highlight wraps evidence spans and key terms in marker tags so
// human coders can review model-selected passages in context.
package highlight

import (
	"regexp"
	"strings"
)

const (
	openTag  = "<highlight>"
	closeTag = "</highlight>"
)

var taggedSpanRE = regexp.MustCompile(`(?s)<highlight>.*?</highlight>`)

// KeyTerms is the fixed corruption vocabulary used for keyword
// highlighting
var KeyTerms = []string{
	"bribery", "embezzlement", "nepotism", "corruption", "fraud",
	"abuse of power", "favoritism", "money laundering", "kickback", "cronyism",
}

// Spans wraps the first occurrence of each evidence span in marker tags.
// Matching is case-insensitive on the literal span text; duplicate spans
// are applied once.
func Spans(text string, highlights []string) string {
	used := make(map[string]bool)
	for _, hl := range highlights {
		hl = strings.TrimSpace(hl)
		key := strings.ToLower(hl)
		if hl == "" || used[key] {
			continue
		}

		re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(hl))
		if err != nil {
			continue
		}
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}

		text = text[:loc[0]] + openTag + text[loc[0]:loc[1]] + closeTag + text[loc[1]:]
		used[key] = true
	}
	return text
}

// Keywords wraps whole-word occurrences of the given terms, skipping any
// occurrence that falls inside an already-wrapped span. RE2 has no
// lookbehind, so protection is done by tracking existing tag spans.
func Keywords(text string, terms []string) string {
	for _, term := range terms {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
		if err != nil {
			continue
		}

		protected := taggedSpanRE.FindAllStringIndex(text, -1)

		var b strings.Builder
		last := 0
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if insideAny(protected, loc[0]) || loc[0] < last {
				continue
			}
			b.WriteString(text[last:loc[0]])
			b.WriteString(openTag)
			b.WriteString(text[loc[0]:loc[1]])
			b.WriteString(closeTag)
			last = loc[1]
		}
		b.WriteString(text[last:])
		text = b.String()
	}
	return text
}

func insideAny(spans [][]int, pos int) bool {
	for _, s := range spans {
		if pos >= s[0] && pos < s[1] {
			return true
		}
	}
	return false
}
