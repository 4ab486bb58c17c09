// Package summary builds short extractive summaries from video content text.
package summary

import (
	"strings"

	"github.com/kapu/ayovirals-go/internal/util"
)

// Placeholder is returned when there is not enough text to summarise.
const Placeholder = "Video content analysis in progress. Hooks and keywords were generated from platform and persona patterns."

// Generator picks the first, middle and last sentence of the input.
type Generator struct {
	minInput    int
	shortLength int
	maxLength   int
}

func NewGenerator(minInput, shortLength, maxLength int) *Generator {
	return &Generator{
		minInput:    minInput,
		shortLength: shortLength,
		maxLength:   maxLength,
	}
}

// Generate never fails and never returns an empty string.
func (g *Generator) Generate(text string) string {
	text = strings.TrimSpace(text)
	if len([]rune(text)) < g.minInput {
		return Placeholder
	}

	sentences := splitSentences(text)
	if len(sentences) < 3 {
		return util.TruncateString(text, g.shortLength)
	}

	picked := []string{
		sentences[0],
		sentences[len(sentences)/2],
		sentences[len(sentences)-1],
	}
	return util.TruncateString(strings.Join(picked, ". ")+".", g.maxLength)
}

func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
