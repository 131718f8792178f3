// Package keywords extracts the most frequent significant words from
// free-text observation descriptions for the taxonomy report.
package keywords

import (
	"sort"
	"strings"
	"unicode"
)

// minWordLen filters out stop-word noise; only words of 5+ letters count.
const minWordLen = 5

// Top returns the n most frequent words of minWordLen+ letters across the
// given texts, lowercased. Ties break alphabetically so the result is
// deterministic.
func Top(texts []string, n int) []string {
	freq := Frequencies(texts)
	if len(freq) == 0 {
		return []string{}
	}

	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})

	if n > len(words) {
		n = len(words)
	}
	return words[:n]
}

// Frequencies counts qualifying words across all texts.
func Frequencies(texts []string) map[string]int {
	freq := make(map[string]int)
	for _, text := range texts {
		for _, w := range split(strings.ToLower(text)) {
			if len([]rune(w)) >= minWordLen {
				freq[w]++
			}
		}
	}
	return freq
}

// split breaks text into maximal runs of letters. Accented letters count as
// word characters, so French descriptions tokenize correctly.
func split(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
