package models

import (
	"fmt"
	"strings"
	"time"
)

type ContentType string

const (
	ContentTypeTV      ContentType = "tv"
	ContentTypeMovie   ContentType = "movie"
	ContentTypePodcast ContentType = "podcast"
	ContentTypeMixed   ContentType = "mixed"
)

// ParseContentType accepts the request-side selector. Unknown values are rejected
// rather than defaulted.
func ParseContentType(s string) (ContentType, error) {
	switch ct := ContentType(strings.ToLower(strings.TrimSpace(s))); ct {
	case ContentTypeTV, ContentTypeMovie, ContentTypePodcast, ContentTypeMixed:
		return ct, nil
	case "":
		return ContentTypeMixed, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidContentType, s)
	}
}

// WantsVisual reports whether profiles of this type carry a visual style facet.
func (c ContentType) WantsVisual() bool {
	return c == ContentTypeTV || c == ContentTypeMovie || c == ContentTypeMixed
}

// WantsAudio reports whether profiles of this type carry an audio style facet.
func (c ContentType) WantsAudio() bool {
	return c == ContentTypePodcast || c == ContentTypeMixed
}

type NarrativeDNA struct {
	StoryStructure     []string `json:"story_structure" yaml:"story_structure,omitempty"`
	PacingPreferences  []string `json:"pacing_preferences" yaml:"pacing_preferences,omitempty"`
	ConflictStyle      []string `json:"conflict_style" yaml:"conflict_style,omitempty"`
	ResolutionPatterns []string `json:"resolution_patterns" yaml:"resolution_patterns,omitempty"`
}

// All returns every narrative tag in facet order.
func (n NarrativeDNA) All() []string {
	out := make([]string, 0, len(n.StoryStructure)+len(n.PacingPreferences)+len(n.ConflictStyle)+len(n.ResolutionPatterns))
	out = append(out, n.StoryStructure...)
	out = append(out, n.PacingPreferences...)
	out = append(out, n.ConflictStyle...)
	return append(out, n.ResolutionPatterns...)
}

func (n NarrativeDNA) Count() int {
	return len(n.StoryStructure) + len(n.PacingPreferences) + len(n.ConflictStyle) + len(n.ResolutionPatterns)
}

type EmotionalTexture struct {
	PrimaryMood           []string `json:"primary_mood" yaml:"primary_mood,omitempty"`
	EmotionalJourney      []string `json:"emotional_journey" yaml:"emotional_journey,omitempty"`
	IntensityComfort      []string `json:"intensity_comfort" yaml:"intensity_comfort,omitempty"`
	CharacterRelationship []string `json:"character_relationship" yaml:"character_relationship,omitempty"`
}

func (e EmotionalTexture) Count() int {
	return len(e.PrimaryMood) + len(e.EmotionalJourney) + len(e.IntensityComfort) + len(e.CharacterRelationship)
}

type VisualStyle struct {
	VisualPreferences []string `json:"visual_preferences" yaml:"visual_preferences,omitempty"`
	PerformanceEnergy []string `json:"performance_energy" yaml:"performance_energy,omitempty"`
	TechnicalCraft    []string `json:"technical_craft" yaml:"technical_craft,omitempty"`
}

func (v *VisualStyle) Count() int {
	if v == nil {
		return 0
	}
	return len(v.VisualPreferences) + len(v.PerformanceEnergy) + len(v.TechnicalCraft)
}

type AudioStyle struct {
	HostDynamics     []string `json:"host_dynamics" yaml:"host_dynamics,omitempty"`
	DeliveryStyle    []string `json:"delivery_style" yaml:"delivery_style,omitempty"`
	IntimacyLevel    []string `json:"intimacy_level" yaml:"intimacy_level,omitempty"`
	ProductionValues []string `json:"production_values" yaml:"production_values,omitempty"`
}

func (a *AudioStyle) Count() int {
	if a == nil {
		return 0
	}
	return len(a.HostDynamics) + len(a.DeliveryStyle) + len(a.IntimacyLevel) + len(a.ProductionValues)
}

type AntiPatterns struct {
	DealBreakers []string `json:"deal_breakers"`
}

// Context categories recognised by the extractor and the evaluator.
const (
	ContextTime   = "time"
	ContextMood   = "mood"
	ContextSocial = "social"
)

// TasteProfile is built once per request by the extractor and treated as
// read-only afterwards.
type TasteProfile struct {
	NarrativeDNA        NarrativeDNA      `json:"narrative_dna"`
	EmotionalTexture    EmotionalTexture  `json:"emotional_texture"`
	VisualStyle         *VisualStyle      `json:"visual_style"`
	AudioStyle          *AudioStyle       `json:"audio_style"`
	AntiPatterns        AntiPatterns      `json:"anti_patterns"`
	Context             map[string]string `json:"context"`
	ContentType         ContentType       `json:"content_type"`
	ExtractionTimestamp time.Time         `json:"extraction_timestamp"`
}

// NewTasteProfile returns an empty profile with the style facets gated on the
// requested content type.
func NewTasteProfile(contentType ContentType, now time.Time) *TasteProfile {
	p := &TasteProfile{
		NarrativeDNA: NarrativeDNA{
			StoryStructure:     []string{},
			PacingPreferences:  []string{},
			ConflictStyle:      []string{},
			ResolutionPatterns: []string{},
		},
		EmotionalTexture: EmotionalTexture{
			PrimaryMood:           []string{},
			EmotionalJourney:      []string{},
			IntensityComfort:      []string{},
			CharacterRelationship: []string{},
		},
		AntiPatterns:        AntiPatterns{DealBreakers: []string{}},
		Context:             map[string]string{},
		ContentType:         contentType,
		ExtractionTimestamp: now,
	}
	if contentType.WantsVisual() {
		p.VisualStyle = &VisualStyle{
			VisualPreferences: []string{},
			PerformanceEnergy: []string{},
			TechnicalCraft:    []string{},
		}
	}
	if contentType.WantsAudio() {
		p.AudioStyle = &AudioStyle{
			HostDynamics:     []string{},
			DeliveryStyle:    []string{},
			IntimacyLevel:    []string{},
			ProductionValues: []string{},
		}
	}
	return p
}

type ExtractionQuality string

const (
	QualityRich     ExtractionQuality = "rich"
	QualityModerate ExtractionQuality = "moderate"
	QualityMinimal  ExtractionQuality = "minimal"
)

type ProfileAnalysis struct {
	NarrativeElements int `json:"narrative_elements_found"`
	EmotionalElements int `json:"emotional_texture_found"`
	StyleElements     int `json:"style_preferences_found"`
	AntiPatterns      int `json:"anti_patterns_found"`
	ContextClues      int `json:"context_clues_found"`
}

func (a ProfileAnalysis) Total() int {
	return a.NarrativeElements + a.EmotionalElements + a.StyleElements + a.AntiPatterns + a.ContextClues
}

func (a ProfileAnalysis) Quality() ExtractionQuality {
	switch total := a.Total(); {
	case total > 5:
		return QualityRich
	case total > 2:
		return QualityModerate
	default:
		return QualityMinimal
	}
}

// Analyze counts what the extractor found in each facet group.
func (p *TasteProfile) Analyze() ProfileAnalysis {
	return ProfileAnalysis{
		NarrativeElements: p.NarrativeDNA.Count(),
		EmotionalElements: p.EmotionalTexture.Count(),
		StyleElements:     p.VisualStyle.Count() + p.AudioStyle.Count(),
		AntiPatterns:      len(p.AntiPatterns.DealBreakers),
		ContextClues:      len(p.Context),
	}
}

// HasCoreSignals reports whether any story structure or primary mood was found.
func (p *TasteProfile) HasCoreSignals() bool {
	return len(p.NarrativeDNA.StoryStructure) > 0 || len(p.EmotionalTexture.PrimaryMood) > 0
}
