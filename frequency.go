package newsdigest

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultRepeatThreshold is the count a word must exceed to be reported.
const DefaultRepeatThreshold = 2

// wordRE matches maximal runs of word characters. Letters and digits of any
// script count, so accented words are not split.
var wordRE = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// WordCount is the number of occurrences of a word.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// FrequencyReport lists words whose count exceeded the threshold, in order
// of first occurrence. The order is not meaningful; use Map for lookups.
type FrequencyReport []WordCount

// Map returns the report as a word to count mapping.
func (r FrequencyReport) Map() map[string]int {
	m := make(map[string]int, len(r))
	for _, wc := range r {
		m[wc.Word] = wc.Count
	}
	return m
}

// Tokenize lower-cases text and splits it into words.
func Tokenize(text string) []string {
	return wordRE.FindAllString(cases.Lower(language.Und).String(text), -1)
}

// AnalyzeFrequency counts words across texts and returns those appearing
// strictly more than threshold times. Matching is case-insensitive.
func AnalyzeFrequency(texts []string, threshold int) FrequencyReport {
	words := Tokenize(strings.Join(texts, " "))

	counts := make(map[string]int)
	var order []string
	for _, w := range words {
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	report := FrequencyReport{}
	for _, w := range order {
		if counts[w] > threshold {
			report = append(report, WordCount{Word: w, Count: counts[w]})
		}
	}
	return report
}
