package models

type MatchTier string

const (
	TierTop         MatchTier = "top"
	TierStrong      MatchTier = "strong"
	TierSpeculative MatchTier = "speculative"
)

const (
	TopTierThreshold    = 90.0
	StrongTierThreshold = 75.0
)

// TierFor buckets a confidence percentage.
func TierFor(confidence float64) MatchTier {
	switch {
	case confidence >= TopTierThreshold:
		return TierTop
	case confidence >= StrongTierThreshold:
		return TierStrong
	default:
		return TierSpeculative
	}
}

type Recommendation struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Platform    string   `json:"platform"`
	Year        string   `json:"year,omitempty"`
	ContentType ItemType `json:"content_type"`

	MatchTier            MatchTier `json:"match_tier"`
	ConfidencePercentage float64   `json:"confidence_percentage"`

	WhyMatches   string `json:"why_matches"`
	WhatToExpect string `json:"what_to_expect"`
	PerfectFor   string `json:"perfect_for"`
	AvoidIf      string `json:"avoid_if"`

	QualityIndicators []string `json:"quality_indicators"`
	SourceValidation  []string `json:"source_validation"`
	CraftElements     []string `json:"craft_elements"`

	Evaluation EvaluationScore `json:"evaluation"`
}
