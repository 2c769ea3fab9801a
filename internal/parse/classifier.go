package parse

import (
	"strconv"
	"strings"
	"unicode"
)

// Classification is the parsed output of the political-corruption
// screening transcript
type Classification struct {
	Label      string
	Rationale  string
	Confidence *int
	Highlights []string
}

// LabelUnclear is reported when the model answer carried no recognizable
// tentative label
const LabelUnclear = "Unclear"

var validLabels = map[string]bool{
	"Yes":                       true,
	"No":                        true,
	"Unsure":                    true,
	"Mentioned but not central": true,
}

// ParseClassifier scans the screener's free-form answer:
//
//	Highlights:
//	- <key sentence>
//	Tentative Label: Yes / Mentioned but not central / No / Unsure
//	Reasoning: <short explanation>
//	Confidence: <0-100>
func ParseClassifier(answer string) Classification {
	out := Classification{Label: LabelUnclear}

	var rationale []string
	readingHighlights := false
	readingRationale := false

	for _, raw := range strings.Split(answer, "\n") {
		line := strings.TrimSpace(raw)
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, "highlights:"):
			readingHighlights = true
			readingRationale = false
			continue

		case strings.HasPrefix(lower, "tentative label:"):
			readingHighlights = false
			readingRationale = false
			val := capitalize(strings.TrimSpace(line[strings.Index(line, ":")+1:]))
			if validLabels[val] {
				out.Label = val
			}
			continue

		case strings.HasPrefix(lower, "reasoning:"):
			readingHighlights = false
			readingRationale = true
			if rest := strings.TrimSpace(line[strings.Index(line, ":")+1:]); rest != "" {
				rationale = append(rationale, rest)
			}
			continue

		case strings.HasPrefix(lower, "confidence:"):
			readingHighlights = false
			readingRationale = false
			if m := confidenceRE.FindString(line); m != "" {
				if n, err := strconv.Atoi(m); err == nil {
					out.Confidence = boundedConfidence(n)
				}
			}
			continue
		}

		if readingHighlights && strings.HasPrefix(line, "- ") {
			out.Highlights = append(out.Highlights, strings.TrimSpace(line[2:]))
		} else if readingRationale && line != "" {
			rationale = append(rationale, line)
		}
	}

	out.Rationale = strings.TrimSpace(strings.Join(rationale, " "))
	return out
}

// capitalize upper-cases the first rune and lower-cases the rest, so
// "YES" and "yes" both normalize to "Yes"
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
