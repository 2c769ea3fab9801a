package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/annekroon/respond-media/internal/model"
)

// scanState tracks what a free-form line belongs to. The state resets on
// every recognized header line.
type scanState int

const (
	stateIdle scanState = iota
	stateInFrame
	stateInHighlights
	stateInRationale
)

// A line consisting only of emphasised text ("**Elite collusion**") acts
// as an implicit frame header.
var emphasisLineRE = regexp.MustCompile(`^(?:\*{1,3}|_{1,2})\s*([^*_]+?)\s*(?:\*{1,3}|_{1,2})$`)

// parseFreeForm scans labeled text blocks of the shape
//
//	Frame: <name>
//	Highlights:
//	- <quote>
//	Reasoning: <text>
//	Confidence: <integer>
//
// A record closes when a new frame header starts or the input ends.
func parseFreeForm(content string) []model.CategoryRecord {
	var records []model.CategoryRecord
	var cur *model.CategoryRecord
	var rationale []string
	state := stateIdle

	closeCurrent := func() {
		if cur == nil {
			return
		}
		cur.Rationale = strings.TrimSpace(strings.Join(rationale, " "))
		if !cur.IsEmpty() {
			records = append(records, *cur)
		}
		cur = nil
		rationale = nil
	}

	openIfNeeded := func() {
		if cur == nil {
			cur = &model.CategoryRecord{}
		}
	}

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, "frame:"):
			closeCurrent()
			cur = &model.CategoryRecord{Label: strings.TrimSpace(line[len("frame:"):])}
			state = stateInFrame

		case emphasisLineRE.MatchString(line):
			closeCurrent()
			m := emphasisLineRE.FindStringSubmatch(line)
			cur = &model.CategoryRecord{Label: strings.TrimSpace(m[1])}
			state = stateInFrame

		case strings.HasPrefix(lower, "highlights:"):
			openIfNeeded()
			state = stateInHighlights

		case strings.HasPrefix(lower, "reasoning:") || strings.HasPrefix(lower, "rationale:"):
			openIfNeeded()
			rest := strings.TrimSpace(line[strings.Index(line, ":")+1:])
			if rest != "" {
				rationale = append(rationale, rest)
			}
			state = stateInRationale

		case strings.HasPrefix(lower, "confidence:"):
			openIfNeeded()
			if m := confidenceRE.FindString(line); m != "" {
				if n, err := strconv.Atoi(m); err == nil {
					cur.Confidence = boundedConfidence(n)
				}
			}
			state = stateInFrame

		case state == stateInHighlights && strings.HasPrefix(line, "- "):
			cur.Highlights = append(cur.Highlights, strings.TrimSpace(line[2:]))

		case state == stateInRationale && line != "":
			rationale = append(rationale, line)
		}
	}

	closeCurrent()
	return records
}
