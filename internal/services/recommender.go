package services

import (
	"sort"
	"strings"

	"alfredoptarigan/taste-recommender/internal/catalog"
	"alfredoptarigan/taste-recommender/internal/models"
)

const (
	// AdmissionThreshold is the minimum total (out of 60) a candidate needs.
	AdmissionThreshold = 30.0
	DefaultMaxResults  = 3

	maxWhyPhrases = 2
)

const (
	fallbackWhy        = "Aligns with your taste preferences"
	fallbackExpect     = "Engaging content that matches your taste profile"
	fallbackPerfectFor = "Viewers who appreciate thoughtful content"
	fallbackAvoidIf    = "You're looking for something completely different"
)

// ScoreObserver is told about every evaluated candidate.
type ScoreObserver func(item *models.ContentItem, score models.EvaluationScore, admitted bool)

type Recommender interface {
	Recommend(profile *models.TasteProfile, cat *catalog.ContentCatalog, live map[string]string, maxN int) []models.Recommendation
}

type recommender struct {
	evaluator Evaluator
	observe   ScoreObserver
}

type RecommenderOption func(*recommender)

func WithScoreObserver(fn ScoreObserver) RecommenderOption {
	return func(r *recommender) {
		r.observe = fn
	}
}

func NewRecommender(evaluator Evaluator, opts ...RecommenderOption) Recommender {
	r := &recommender{evaluator: evaluator}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type scored struct {
	item  *models.ContentItem
	score models.EvaluationScore
}

func (r *recommender) Recommend(profile *models.TasteProfile, cat *catalog.ContentCatalog, live map[string]string, maxN int) []models.Recommendation {
	if maxN <= 0 {
		maxN = DefaultMaxResults
	}

	candidates := eligible(profile.ContentType, cat.Items())

	admitted := make([]scored, 0, len(candidates))
	for _, item := range candidates {
		score := r.evaluator.Evaluate(item, profile, live)
		ok := score.Total() >= AdmissionThreshold
		if r.observe != nil {
			r.observe(item, score, ok)
		}
		if ok {
			admitted = append(admitted, scored{item: item, score: score})
		}
	}

	// Candidates are already in catalog order, so a stable sort keeps that
	// order among equal totals.
	sort.SliceStable(admitted, func(i, j int) bool {
		return admitted[i].score.Total() > admitted[j].score.Total()
	})
	if len(admitted) > maxN {
		admitted = admitted[:maxN]
	}

	recs := make([]models.Recommendation, 0, len(admitted))
	for _, s := range admitted {
		recs = append(recs, buildRecommendation(s.item, s.score, profile, live))
	}
	return recs
}

// eligible applies content type gating. When nothing survives the filter the
// whole catalog is used instead.
func eligible(ct models.ContentType, items []models.ContentItem) []*models.ContentItem {
	out := make([]*models.ContentItem, 0, len(items))
	for i := range items {
		if ct.Admits(items[i].ContentType) {
			out = append(out, &items[i])
		}
	}
	if len(out) > 0 {
		return out
	}
	for i := range items {
		out = append(out, &items[i])
	}
	return out
}

func buildRecommendation(item *models.ContentItem, score models.EvaluationScore, profile *models.TasteProfile, live map[string]string) models.Recommendation {
	confidence := score.ConfidencePercentage()
	return models.Recommendation{
		ID:                   item.ID,
		Title:                item.Title,
		Platform:             item.Platform,
		Year:                 item.Year,
		ContentType:          item.ContentType,
		MatchTier:            models.TierFor(confidence),
		ConfidencePercentage: confidence,
		WhyMatches:           whyMatches(item, profile),
		WhatToExpect:         orDefault(item.WhatToExpect, fallbackExpect),
		PerfectFor:           perfectFor(item, profile, live),
		AvoidIf:              orDefault(item.AvoidIf, fallbackAvoidIf),
		QualityIndicators:    nonNil(item.QualityIndicators),
		SourceValidation:     nonNil(item.SourceValidation),
		CraftElements:        nonNil(item.CraftElements),
		Evaluation:           score,
	}
}

func whyMatches(item *models.ContentItem, profile *models.TasteProfile) string {
	if item.WhyTemplate != "" {
		return item.WhyTemplate
	}

	var phrases []string
	if shared := intersectOrdered(profile.NarrativeDNA.StoryStructure, item.NarrativeDNA.StoryStructure); len(shared) > 0 {
		phrases = append(phrases, humanize(shared)+" storytelling")
	}
	if shared := intersectOrdered(profile.EmotionalTexture.PrimaryMood, item.EmotionalTexture.PrimaryMood); len(shared) > 0 {
		phrases = append(phrases, "provides "+humanize(shared))
	}
	if len(phrases) == 0 {
		return fallbackWhy
	}
	if len(phrases) > maxWhyPhrases {
		phrases = phrases[:maxWhyPhrases]
	}
	return "Features " + strings.Join(phrases, ", ")
}

func perfectFor(item *models.ContentItem, profile *models.TasteProfile, live map[string]string) string {
	if item.PerfectFor != "" {
		return item.PerfectFor
	}

	mood, ok := profile.Context[models.ContextMood]
	if !ok {
		mood = live[models.ContextMood]
	}
	switch {
	case mood == "stressed" && has(item.EmotionalTexture.PrimaryMood, "cozy_comfort"):
		return "When you need comfort and stress relief"
	case mood == "energetic" && has(item.EmotionalTexture.PrimaryMood, "intellectual_stimulation"):
		return "When you want mental engagement"
	}

	switch {
	case has(profile.EmotionalTexture.IntensityComfort, "background_viewing"):
		return "Casual viewing while multitasking"
	case has(profile.EmotionalTexture.IntensityComfort, "full_attention"):
		return "Focused viewing sessions"
	}
	return fallbackPerfectFor
}

// intersectOrdered keeps the order of want.
func intersectOrdered(want, have []string) []string {
	var out []string
	for _, t := range want {
		if has(have, t) {
			out = append(out, t)
		}
	}
	return out
}

func humanize(tags []string) string {
	return strings.ReplaceAll(strings.Join(tags, ", "), "_", " ")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
