// Package chunk splits long article text into bounded-size pieces for
// the translation service. Splitting happens at paragraph boundaries;
// there is no sentence-boundary awareness, a deliberate simplicity
// tradeoff.
package chunk

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxSize is the default chunk bound in runes
const DefaultMaxSize = 1500

// Split breaks text into chunks of at most maxSize runes. Paragraphs
// (double-newline delimited) are accumulated into a chunk until the next
// one would not fit; a single paragraph exceeding the bound is hard-
// sliced into fixed-size pieces. Order is preserved and joining the
// chunks with "\n\n" reconstructs the text when no paragraph exceeds the
// bound. Sizes are counted in runes so multibyte scripts are not
// over-split.
func Split(text string, maxSize int) []string {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if text == "" {
		return nil
	}

	paragraphs := strings.Split(text, "\n\n")

	var chunks []string
	current := ""
	curLen := 0

	for _, para := range paragraphs {
		paraLen := utf8.RuneCountInString(para)

		// +2 accounts for the paragraph joiner
		if curLen+paraLen+2 <= maxSize {
			current += para + "\n\n"
			curLen += paraLen + 2
			continue
		}

		if current != "" {
			chunks = append(chunks, strings.TrimSpace(current))
		}

		runes := []rune(para)
		for len(runes) > maxSize {
			chunks = append(chunks, strings.TrimSpace(string(runes[:maxSize])))
			runes = runes[maxSize:]
		}

		current = string(runes) + "\n\n"
		curLen = len(runes) + 2
	}

	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	return chunks
}
