package domain

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ViralPatternCatalog groups descriptive word lists exposed to clients. The
// generators do not read it.
type ViralPatternCatalog struct {
	PowerWords        []string `yaml:"power_words" json:"power_words"`
	UrgencyWords      []string `yaml:"urgency_words" json:"urgency_words"`
	EmotionalTriggers []string `yaml:"emotional_triggers" json:"emotional_triggers"`
	CuriosityGaps     []string `yaml:"curiosity_gaps" json:"curiosity_gaps"`
	SocialProof       []string `yaml:"social_proof" json:"social_proof"`
	NumberPatterns    []string `yaml:"number_patterns" json:"number_patterns"`
}

//go:embed data/viral_patterns.yaml
var viralPatternsYAML []byte

func LoadViralPatterns() (*ViralPatternCatalog, error) {
	var catalog ViralPatternCatalog
	if err := yaml.Unmarshal(viralPatternsYAML, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse viral pattern catalog: %w", err)
	}
	return &catalog, nil
}
