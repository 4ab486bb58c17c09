package keyword

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"
	"github.com/kapu/ayovirals-go/internal/util"
)

// Entity labels kept as keywords. prose emits PERSON and GPE; the rest cover
// models trained with the wider OntoNotes label set.
var entityLabels = map[string]struct{}{
	"PERSON":       {},
	"GPE":          {},
	"LOC":          {},
	"LOCATION":     {},
	"ORG":          {},
	"ORGANIZATION": {},
	"PRODUCT":      {},
}

const probeSentence = "Maria opened a bakery in Brooklyn last spring."

// Linguistic extracts named entities and frequent nouns/adjectives using a
// part-of-speech tagger and entity recogniser.
type Linguistic struct {
	maxKeywords int
}

// NewLinguistic verifies that the tagging model loads before returning.
func NewLinguistic(maxKeywords int) (l *Linguistic, err error) {
	defer recoverAsError(&err)

	if _, err := prose.NewDocument(probeSentence); err != nil {
		return nil, fmt.Errorf("failed to load tagging model: %w", err)
	}
	return &Linguistic{maxKeywords: maxKeywords}, nil
}

func (l *Linguistic) Name() string {
	return StrategyLinguistic
}

// Extract swallows engine failures and returns an empty slice; use
// TryExtract to observe them.
func (l *Linguistic) Extract(text string) []string {
	tags, err := l.TryExtract(text)
	if err != nil {
		return []string{}
	}
	return tags
}

func (l *Linguistic) TryExtract(text string) (tags []string, err error) {
	defer recoverAsError(&err)

	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("failed to tag document: %w", err)
	}

	result := util.NewOrderedSet(l.maxKeywords)

	for _, ent := range doc.Entities() {
		if _, ok := entityLabels[ent.Label]; !ok {
			continue
		}
		result.Add(util.Hashtag(util.CompactTag(ent.Text)))
	}

	counts := make(map[string]*termCount)
	for i, tok := range doc.Tokens() {
		if !isContentTag(tok.Tag) {
			continue
		}
		word := strings.ToLower(tok.Text)
		if utf8.RuneCountInString(word) <= minWordLength || !isAlpha(word) || isStopWord(word) {
			continue
		}
		countTerm(counts, word, i)
	}

	for _, word := range rankTerms(counts, 2, 0) {
		result.Add(util.Hashtag(word))
	}

	tags = result.Items()
	if l.maxKeywords > 0 && len(tags) > l.maxKeywords {
		tags = tags[:l.maxKeywords]
	}
	return tags, nil
}

// isContentTag matches Penn Treebank noun and adjective tags.
func isContentTag(tag string) bool {
	return strings.HasPrefix(tag, "NN") || strings.HasPrefix(tag, "JJ")
}

func isAlpha(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) && !unicode.IsMark(r) {
			return false
		}
	}
	return word != ""
}
