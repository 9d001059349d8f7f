package pricing

import (
	"regexp"
	"strings"
)

// DedupeMap tracks sentences already rendered elsewhere on a pricing page so
// key facts, FAQ answers and usage notes never repeat each other. It is scoped
// to one render and must be created at the page level and passed down.
type DedupeMap struct {
	seen map[string]bool
}

// NewDedupeMap creates an empty page-level dedupe map
func NewDedupeMap() *DedupeMap {
	return &DedupeMap{seen: make(map[string]bool)}
}

var nonWordRe = regexp.MustCompile(`[^\w\s]`)

func normalizeSentence(text string) string {
	text = nonWordRe.ReplaceAllString(strings.ToLower(text), " ")
	return strings.Join(strings.Fields(text), " ")
}

// significantWords returns lowercase words longer than three characters
func significantWords(normalized string) []string {
	var words []string
	for _, w := range strings.Fields(normalized) {
		if len(w) > 3 {
			words = append(words, w)
		}
	}
	return words
}

// IsDuplicate reports whether text repeats a seen sentence, either exactly or
// by word-overlap similarity at the given threshold.
func (m *DedupeMap) IsDuplicate(text string, threshold float64) bool {
	if m == nil {
		return false
	}
	normalized := normalizeSentence(text)
	if m.seen[normalized] {
		return true
	}

	words := significantWords(normalized)
	for seenText := range m.seen {
		seenWords := significantWords(seenText)
		common := 0
		for _, w := range words {
			for _, s := range seenWords {
				if w == s {
					common++
					break
				}
			}
		}
		longest := len(words)
		if len(seenWords) > longest {
			longest = len(seenWords)
		}
		if longest > 0 && float64(common)/float64(longest) >= threshold {
			return true
		}
	}
	return false
}

// Add records text as seen
func (m *DedupeMap) Add(text string) {
	if m == nil {
		return
	}
	m.seen[normalizeSentence(text)] = true
}

// JaccardSimilarity measures word-set overlap between two texts
func JaccardSimilarity(a, b string) float64 {
	setA := make(map[string]bool)
	for _, w := range strings.Fields(normalizeSentence(a)) {
		setA[w] = true
	}
	setB := make(map[string]bool)
	for _, w := range strings.Fields(normalizeSentence(b)) {
		setB[w] = true
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}
