package services

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"alfredoptarigan/taste-recommender/internal/catalog"
	"alfredoptarigan/taste-recommender/internal/models"
)

// NegationWindow is how many characters after a negation marker are searched
// for anti-pattern phrases. It is a heuristic, not a clause boundary. Markers
// only match whole words, so "nothing" needs its own entry next to "not".
const NegationWindow = 150

type ProfileExtractor interface {
	Extract(text string, contentType models.ContentType, hints map[string]string) *models.TasteProfile
}

type profileExtractor struct {
	patterns *catalog.PatternCatalog
	now      func() time.Time
}

func NewProfileExtractor(patterns *catalog.PatternCatalog) ProfileExtractor {
	return &profileExtractor{
		patterns: patterns,
		now:      time.Now,
	}
}

// Extract never fails: text that matches nothing yields an empty profile.
func (e *profileExtractor) Extract(text string, contentType models.ContentType, hints map[string]string) *models.TasteProfile {
	profile := models.NewTasteProfile(contentType, e.now().UTC())
	for k, v := range hints {
		if v != "" {
			profile.Context[k] = v
		}
	}

	norm := catalog.Normalize(text)

	e.matchGroup(norm, e.patterns.Narrative, profile)
	e.matchGroup(norm, e.patterns.Emotional, profile)
	if profile.VisualStyle != nil {
		e.matchGroup(norm, e.patterns.Visual, profile)
	}
	if profile.AudioStyle != nil {
		e.matchGroup(norm, e.patterns.Audio, profile)
	}

	profile.AntiPatterns.DealBreakers = e.dealBreakers(norm)
	e.matchContext(norm, profile)

	return profile
}

func (e *profileExtractor) matchGroup(text string, entries []catalog.PatternEntry, profile *models.TasteProfile) {
	for _, entry := range entries {
		if !containsAny(text, entry.Phrases) {
			continue
		}
		if slot := facetSlot(profile, entry.Facet); slot != nil {
			*slot = append(*slot, entry.Tag)
		}
	}
}

// dealBreakers scans the window after every negation marker occurrence.
// Each anti-pattern is reported once, in catalog order.
func (e *profileExtractor) dealBreakers(text string) []string {
	var windows []string
	for _, marker := range e.patterns.NegationMarkers {
		for _, end := range markerEnds(text, marker) {
			windows = append(windows, negationWindow(text, end))
		}
	}

	found := []string{}
	for _, ap := range e.patterns.AntiPatterns {
		for _, w := range windows {
			if containsAny(w, ap.Phrases) {
				found = append(found, ap.Tag)
				break
			}
		}
	}
	return found
}

func (e *profileExtractor) matchContext(text string, profile *models.TasteProfile) {
	for _, category := range e.patterns.Context {
		for _, v := range category.Values {
			if containsAny(text, v.Phrases) {
				profile.Context[category.Category] = v.Value
			}
		}
	}
}

// markerEnds returns the byte offset just past each whole-word occurrence of
// marker in text.
func markerEnds(text, marker string) []int {
	if marker == "" {
		return nil
	}
	var ends []int
	for from := 0; from < len(text); {
		i := strings.Index(text[from:], marker)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(marker)
		if wordBoundaryBefore(text, start) && wordBoundaryAfter(text, end) {
			ends = append(ends, end)
		}
		from = start + 1
	}
	return ends
}

func negationWindow(text string, start int) string {
	end := start
	for n := 0; n < NegationWindow && end < len(text); n++ {
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
	}
	return text[start:end]
}

func wordBoundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func wordBoundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if p != "" && strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func facetSlot(p *models.TasteProfile, facet string) *[]string {
	switch facet {
	case "story_structure":
		return &p.NarrativeDNA.StoryStructure
	case "pacing_preferences":
		return &p.NarrativeDNA.PacingPreferences
	case "conflict_style":
		return &p.NarrativeDNA.ConflictStyle
	case "resolution_patterns":
		return &p.NarrativeDNA.ResolutionPatterns
	case "primary_mood":
		return &p.EmotionalTexture.PrimaryMood
	case "emotional_journey":
		return &p.EmotionalTexture.EmotionalJourney
	case "intensity_comfort":
		return &p.EmotionalTexture.IntensityComfort
	case "character_relationship":
		return &p.EmotionalTexture.CharacterRelationship
	}
	if p.VisualStyle != nil {
		switch facet {
		case "visual_preferences":
			return &p.VisualStyle.VisualPreferences
		case "performance_energy":
			return &p.VisualStyle.PerformanceEnergy
		case "technical_craft":
			return &p.VisualStyle.TechnicalCraft
		}
	}
	if p.AudioStyle != nil {
		switch facet {
		case "host_dynamics":
			return &p.AudioStyle.HostDynamics
		case "delivery_style":
			return &p.AudioStyle.DeliveryStyle
		case "intimacy_level":
			return &p.AudioStyle.IntimacyLevel
		case "production_values":
			return &p.AudioStyle.ProductionValues
		}
	}
	return nil
}
