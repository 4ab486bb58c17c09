package keyword

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kapu/ayovirals-go/internal/util"
)

// wordPattern matches Unicode word runs. Runs containing digits or
// underscores are dropped afterwards, so "abc123" yields nothing.
var wordPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)

const minWordLength = 3

// Heuristic ranks non-stop-word tokens by frequency.
type Heuristic struct {
	maxKeywords int
}

func NewHeuristic(maxKeywords int) *Heuristic {
	return &Heuristic{maxKeywords: maxKeywords}
}

func (h *Heuristic) Name() string {
	return StrategyHeuristic
}

func (h *Heuristic) Extract(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	if len(words) == 0 {
		return []string{}
	}

	counts := make(map[string]*termCount)
	for i, word := range words {
		if utf8.RuneCountInString(word) < minWordLength || !isAlpha(word) || isStopWord(word) {
			continue
		}
		countTerm(counts, word, i)
	}

	terms := rankTerms(counts, 1, h.maxKeywords)
	tags := make([]string, len(terms))
	for i, term := range terms {
		tags[i] = util.Hashtag(term)
	}
	return tags
}
