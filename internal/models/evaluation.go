package models

import (
	"github.com/goccy/go-json"
)

const (
	MinSubScore = 1.0
	MaxSubScore = 10.0
	MaxTotal    = 6 * MaxSubScore
)

// EvaluationScore holds the six independent sub-scores. The total is derived,
// never stored.
type EvaluationScore struct {
	TasteMatchStrength   float64 `json:"taste_match_strength"`
	AntiPatternAvoidance float64 `json:"anti_pattern_avoidance"`
	ContextFit           float64 `json:"context_fit"`
	DiscoveryValue       float64 `json:"discovery_value"`
	SourceValidation     float64 `json:"source_validation"`
	CraftQuality         float64 `json:"craft_quality"`
}

func (s EvaluationScore) Total() float64 {
	return s.TasteMatchStrength + s.AntiPatternAvoidance + s.ContextFit +
		s.DiscoveryValue + s.SourceValidation + s.CraftQuality
}

// ConfidencePercentage maps the total onto 0-100.
func (s EvaluationScore) ConfidencePercentage() float64 {
	return s.Total() / MaxTotal * 100
}

func (s EvaluationScore) MarshalJSON() ([]byte, error) {
	type plain EvaluationScore
	return json.Marshal(struct {
		plain
		TotalScore float64 `json:"total_score"`
	}{plain(s), s.Total()})
}

// ClampScore bounds v to the sub-score range.
func ClampScore(v float64) float64 {
	if v < MinSubScore {
		return MinSubScore
	}
	if v > MaxSubScore {
		return MaxSubScore
	}
	return v
}
