// Package quality holds the heuristics that reject a translation as
// unusable. Both checks are advisory: they flag, they never fail.
package quality

import "unicode/utf8"

// DefaultSameLanguageThreshold is the non-ASCII fraction above which a
// translation is considered untranslated
const DefaultSameLanguageThreshold = 0.3

// DefaultMinLengthRatio is the minimum translated/original length ratio
const DefaultMinLengthRatio = 0.7

// LikelySameLanguage reports whether the translation is probably still in
// the source language. It measures the fraction of non-ASCII characters
// in the translated text; English output should be almost entirely ASCII.
// Callers must not apply this to English sources.
func LikelySameLanguage(original, translated string, threshold float64) bool {
	if threshold <= 0 {
		threshold = DefaultSameLanguageThreshold
	}

	nonASCII := 0
	total := 0
	for _, r := range translated {
		total++
		if r > 127 {
			nonASCII++
		}
	}
	if total == 0 {
		total = 1
	}

	return float64(nonASCII)/float64(total) > threshold
}

// TooShort reports whether the translation lost too much content
// relative to the original. Lengths are counted in runes so Cyrillic and
// other multibyte sources compare fairly against ASCII output.
func TooShort(original, translated string, ratio float64) bool {
	if ratio <= 0 {
		ratio = DefaultMinLengthRatio
	}
	return float64(utf8.RuneCountInString(translated)) < ratio*float64(utf8.RuneCountInString(original))
}
