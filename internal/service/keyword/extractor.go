// Package keyword turns free text into ranked hashtag lists.
package keyword

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

const (
	StrategyAuto       = "auto"
	StrategyLinguistic = "linguistic"
	StrategyHeuristic  = "heuristic"
)

// Extractor returns at most a fixed number of unique hashtags for text. It
// never fails; degenerate input yields an empty slice.
type Extractor interface {
	Extract(text string) []string
	Name() string
}

// FallibleExtractor is implemented by engines that can report a per-call
// failure instead of swallowing it.
type FallibleExtractor interface {
	Extractor
	TryExtract(text string) ([]string, error)
}

// New selects the extractor for strategy. auto and linguistic probe the
// linguistic engine once and fall back to the heuristic when it cannot start.
func New(strategy string, maxKeywords int, logger *zap.Logger) Extractor {
	heuristic := NewHeuristic(maxKeywords)

	switch strategy {
	case StrategyHeuristic:
		logger.Info("Keyword extractor selected", zap.String("engine", heuristic.Name()))
		return heuristic
	case StrategyAuto, StrategyLinguistic, "":
	default:
		logger.Warn("Unknown keyword strategy, using heuristic", zap.String("strategy", strategy))
		return heuristic
	}

	linguistic, err := NewLinguistic(maxKeywords)
	if err != nil {
		logger.Warn("Linguistic engine unavailable, using heuristic keyword extraction", zap.Error(err))
		return heuristic
	}

	logger.Info("Keyword extractor selected",
		zap.String("engine", linguistic.Name()),
		zap.String("fallback", heuristic.Name()),
	)
	return NewFallback(linguistic, heuristic, logger)
}

type termCount struct {
	term  string
	count int
	first int
}

// rankTerms orders terms by descending count; ties keep first-occurrence order.
func rankTerms(counts map[string]*termCount, minCount, limit int) []string {
	ranked := make([]*termCount, 0, len(counts))
	for _, tc := range counts {
		if tc.count >= minCount {
			ranked = append(ranked, tc)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].first < ranked[j].first
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, len(ranked))
	for i, tc := range ranked {
		out[i] = tc.term
	}
	return out
}

func countTerm(counts map[string]*termCount, term string, position int) {
	if tc, ok := counts[term]; ok {
		tc.count++
		return
	}
	counts[term] = &termCount{term: term, count: 1, first: position}
}

func recoverAsError(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("keyword engine panic: %v", r)
	}
}
