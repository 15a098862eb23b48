package services

import (
	"alfredoptarigan/taste-recommender/internal/models"
)

// Taste match blend.
const (
	narrativeWeight = 0.4
	emotionalWeight = 0.4
	styleWeight     = 0.2

	primaryMoodWeight  = 2
	relationshipWeight = 1

	// Used when the profile requests no style tags at all.
	neutralStyleRatio = 0.5
)

const (
	neutralContextFit = 5.0
	neutralDiscovery  = 5.0

	discoverySweetSpotLow  = 0.3
	discoverySweetSpotHigh = 0.7
	discoverySweetSpotGain = 3.0
	discoveryNoveltyGain   = 1.0
	discoveryFamiliarLoss  = 1.0
	innovativeFormatGain   = 1.0

	attentionMatchGain  = 2.0
	attentionClashLoss  = 2.0
	unknownTagWeight    = 0.5
	craftElementBonus   = 0.3
	innovativeFormatTag = "innovative_format"
)

var sourceValidationWeights = map[string]float64{
	"critic_acclaim":       2.0,
	"industry_recognition": 2.0,
	"emmy_winner":          3.0,
	"peabody_award":        3.0,
	"audience_favorite":    1.5,
	"cultural_phenomenon":  2.0,
	"award_nominations":    1.5,
}

var qualityIndicatorWeights = map[string]float64{
	"film_director_involvement": 2.0,
	"book_adaptation":           2.0,
	"creator_driven":            1.0,
	"limited_series":            1.0,
	"authentic_representation":  1.5,
	"innovative_format":         1.5,
	"high_concept":              1.0,
}

// antiPatternRule deducts penalty when an item carries any violation marker.
// Otherwise an item carrying a relief marker earns bonus.
type antiPatternRule struct {
	violations []string
	penalty    float64
	relief     []string
	bonus      float64
}

var antiPatternRules = map[string]antiPatternRule{
	"traditional_sitcom_format":   {violations: []string{"sitcom"}, penalty: 3.0, relief: []string{"no_laugh_track"}, bonus: 1.0},
	"forced_laugh_tracks":         {violations: []string{"laugh_track"}, penalty: 3.0, relief: []string{"no_laugh_track"}, bonus: 1.0},
	"excessive_violence":          {violations: []string{"violence"}, penalty: 4.0},
	"horror_elements":             {violations: []string{"horror", "jump_scares"}, penalty: 4.0},
	"slow_pacing":                 {violations: []string{"slow_burn"}, penalty: 2.0},
	"cringe_humor":                {violations: []string{"cringe_comedy"}, penalty: 2.0},
	"melodrama":                   {violations: []string{"melodrama", "theatrical"}, penalty: 2.0},
	"predictable_arcs":            {violations: []string{"formulaic"}, penalty: 2.0},
	"requires_too_much_attention": {violations: []string{"full_attention"}, penalty: 2.0},
}

// contextBoost rewards an item whose emotional facet holds tag when the
// context category resolves to value.
type contextBoost struct {
	category string
	value    string
	facet    func(models.EmotionalTexture) []string
	tag      string
	delta    float64
}

func primaryMood(e models.EmotionalTexture) []string      { return e.PrimaryMood }
func intensityComfort(e models.EmotionalTexture) []string { return e.IntensityComfort }

var contextBoosts = []contextBoost{
	{models.ContextTime, "morning", primaryMood, "cozy_comfort", 2.0},
	{models.ContextTime, "evening", primaryMood, "cathartic_release", 1.5},
	{models.ContextMood, "stressed", primaryMood, "cozy_comfort", 2.0},
	{models.ContextMood, "energetic", intensityComfort, "full_attention", 1.5},
}

type Evaluator interface {
	Evaluate(item *models.ContentItem, profile *models.TasteProfile, live map[string]string) models.EvaluationScore
}

type evaluator struct{}

// NewEvaluator returns a stateless evaluator; one instance may be shared by
// any number of goroutines.
func NewEvaluator() Evaluator {
	return evaluator{}
}

func (evaluator) Evaluate(item *models.ContentItem, profile *models.TasteProfile, live map[string]string) models.EvaluationScore {
	return models.EvaluationScore{
		TasteMatchStrength:   tasteMatch(item, profile),
		AntiPatternAvoidance: antiPatternAvoidance(item, profile),
		ContextFit:           contextFit(item, profile, live),
		DiscoveryValue:       discoveryValue(item, profile),
		SourceValidation:     sourceValidation(item),
		CraftQuality:         craftQuality(item),
	}
}

func tasteMatch(item *models.ContentItem, profile *models.TasteProfile) float64 {
	blend := narrativeRatio(item, profile)*narrativeWeight +
		emotionalRatio(item, profile)*emotionalWeight +
		styleRatio(item, profile)*styleWeight
	return models.ClampScore(blend * 10)
}

func narrativeRatio(item *models.ContentItem, profile *models.TasteProfile) float64 {
	var matched, requested int
	pairs := [][2][]string{
		{profile.NarrativeDNA.StoryStructure, item.NarrativeDNA.StoryStructure},
		{profile.NarrativeDNA.PacingPreferences, item.NarrativeDNA.PacingPreferences},
		{profile.NarrativeDNA.ConflictStyle, item.NarrativeDNA.ConflictStyle},
	}
	for _, p := range pairs {
		matched += overlap(p[0], p[1])
		requested += len(p[0])
	}
	return ratio(matched, requested)
}

func emotionalRatio(item *models.ContentItem, profile *models.TasteProfile) float64 {
	want := profile.EmotionalTexture
	have := item.EmotionalTexture
	matched := overlap(want.PrimaryMood, have.PrimaryMood)*primaryMoodWeight +
		overlap(want.CharacterRelationship, have.CharacterRelationship)*relationshipWeight
	requested := len(want.PrimaryMood)*primaryMoodWeight +
		len(want.CharacterRelationship)*relationshipWeight
	return ratio(matched, requested)
}

func styleRatio(item *models.ContentItem, profile *models.TasteProfile) float64 {
	var matched, requested int
	if profile.VisualStyle != nil && item.VisualStyle != nil {
		matched += overlap(profile.VisualStyle.VisualPreferences, item.VisualStyle.VisualPreferences)
		requested += len(profile.VisualStyle.VisualPreferences)
	}
	if profile.AudioStyle != nil && item.AudioStyle != nil {
		matched += overlap(profile.AudioStyle.HostDynamics, item.AudioStyle.HostDynamics)
		requested += len(profile.AudioStyle.HostDynamics)
	}
	if requested == 0 {
		return neutralStyleRatio
	}
	return ratio(matched, requested)
}

func antiPatternAvoidance(item *models.ContentItem, profile *models.TasteProfile) float64 {
	score := models.MaxSubScore
	traits := item.Characteristics()
	for _, breaker := range profile.AntiPatterns.DealBreakers {
		rule, ok := antiPatternRules[breaker]
		if !ok {
			continue
		}
		switch {
		case hasAny(traits, rule.violations):
			score -= rule.penalty
		case hasAny(traits, rule.relief):
			score += rule.bonus
		}
	}
	return models.ClampScore(score)
}

// contextFit prefers what the user said in their description over the
// request's live context, category by category.
func contextFit(item *models.ContentItem, profile *models.TasteProfile, live map[string]string) float64 {
	score := neutralContextFit
	for _, b := range contextBoosts {
		value, ok := profile.Context[b.category]
		if !ok {
			value = live[b.category]
		}
		if value == b.value && has(b.facet(item.EmotionalTexture), b.tag) {
			score += b.delta
		}
	}

	if has(profile.EmotionalTexture.IntensityComfort, "background_viewing") {
		intensity := item.EmotionalTexture.IntensityComfort
		switch {
		case len(intensity) == 1 && intensity[0] == "background_viewing":
			score += attentionMatchGain
		case has(intensity, "full_attention"):
			score -= attentionClashLoss
		}
	}
	return models.ClampScore(score)
}

func discoveryValue(item *models.ContentItem, profile *models.TasteProfile) float64 {
	score := neutralDiscovery

	content := toSet(item.NarrativeDNA.All())
	wanted := toSet(profile.NarrativeDNA.StoryStructure, profile.NarrativeDNA.PacingPreferences, profile.NarrativeDNA.ConflictStyle)
	if len(content) > 0 {
		shared := 0
		for tag := range content {
			if _, ok := wanted[tag]; ok {
				shared++
			}
		}
		r := float64(shared) / float64(len(content))
		switch {
		case r >= discoverySweetSpotLow && r <= discoverySweetSpotHigh:
			score += discoverySweetSpotGain
		case r < discoverySweetSpotLow:
			score += discoveryNoveltyGain
		default:
			score -= discoveryFamiliarLoss
		}
	}

	if has(item.QualityIndicators, innovativeFormatTag) {
		score += innovativeFormatGain
	}
	return models.ClampScore(score)
}

func sourceValidation(item *models.ContentItem) float64 {
	score := models.MinSubScore + weightSum(item.SourceValidation, sourceValidationWeights)
	return min(score, models.MaxSubScore)
}

func craftQuality(item *models.ContentItem) float64 {
	score := models.MinSubScore + weightSum(item.QualityIndicators, qualityIndicatorWeights)
	score += float64(len(item.CraftElements)) * craftElementBonus
	return min(score, models.MaxSubScore)
}

func weightSum(tags []string, weights map[string]float64) float64 {
	var sum float64
	for _, t := range tags {
		if w, ok := weights[t]; ok {
			sum += w
		} else {
			sum += unknownTagWeight
		}
	}
	return sum
}

// overlap counts distinct tags of want that also appear in have.
func overlap(want, have []string) int {
	haveSet := toSet(have)
	n := 0
	for tag := range toSet(want) {
		if _, ok := haveSet[tag]; ok {
			n++
		}
	}
	return n
}

func ratio(matched, requested int) float64 {
	if requested == 0 {
		return 0
	}
	return float64(matched) / float64(requested)
}

func toSet(lists ...[]string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, l := range lists {
		for _, v := range l {
			set[v] = struct{}{}
		}
	}
	return set
}

func has(list []string, tag string) bool {
	for _, v := range list {
		if v == tag {
			return true
		}
	}
	return false
}

func hasAny(list []string, tags []string) bool {
	for _, t := range tags {
		if has(list, t) {
			return true
		}
	}
	return false
}
