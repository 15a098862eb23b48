package models

import (
	"time"
)

// ItemType is the content-type tag carried by catalog items.
type ItemType string

const (
	ItemTVShow        ItemType = "tv_show"
	ItemLimitedSeries ItemType = "limited_series"
	ItemMovie         ItemType = "movie"
	ItemDocumentary   ItemType = "documentary"
	ItemPodcast       ItemType = "podcast"
	ItemMixed         ItemType = "mixed"
)

// Admits reports whether an item of type t is eligible for a request of type c.
// Mixed requests take everything. TV takes shows and limited series, movie and
// podcast take only their own type, and all of them take mixed items.
// Documentaries are only reachable through mixed requests.
func (c ContentType) Admits(t ItemType) bool {
	if c == ContentTypeMixed || t == ItemMixed {
		return true
	}
	switch c {
	case ContentTypeTV:
		return t == ItemTVShow || t == ItemLimitedSeries
	case ContentTypeMovie:
		return t == ItemMovie
	case ContentTypePodcast:
		return t == ItemPodcast
	}
	return false
}

// ContentItem is one curated catalog entry. The same struct is decoded from the
// embedded YAML catalog and persisted by the catalog repository.
type ContentItem struct {
	ID          string   `gorm:"type:text;primary_key" json:"id" yaml:"id"`
	Position    int      `gorm:"not null;index" json:"-" yaml:"-"`
	Title       string   `gorm:"type:text;not null" json:"title" yaml:"title"`
	Platform    string   `gorm:"type:text" json:"platform" yaml:"platform"`
	Year        string   `gorm:"type:text" json:"year,omitempty" yaml:"year"`
	ContentType ItemType `gorm:"type:text;not null" json:"content_type" yaml:"content_type"`

	NarrativeDNA     NarrativeDNA     `gorm:"type:jsonb;serializer:json" json:"narrative_dna" yaml:"narrative_dna"`
	EmotionalTexture EmotionalTexture `gorm:"type:jsonb;serializer:json" json:"emotional_texture" yaml:"emotional_texture"`
	VisualStyle      *VisualStyle     `gorm:"type:jsonb;serializer:json" json:"visual_style,omitempty" yaml:"visual_style,omitempty"`
	AudioStyle       *AudioStyle      `gorm:"type:jsonb;serializer:json" json:"audio_style,omitempty" yaml:"audio_style,omitempty"`

	QualityIndicators []string `gorm:"type:jsonb;serializer:json" json:"quality_indicators" yaml:"quality_indicators"`
	SourceValidation  []string `gorm:"type:jsonb;serializer:json" json:"source_validation" yaml:"source_validation"`
	CraftElements     []string `gorm:"type:jsonb;serializer:json" json:"craft_elements" yaml:"craft_elements"`

	WhyTemplate  string `gorm:"type:text" json:"why_template,omitempty" yaml:"why_template"`
	WhatToExpect string `gorm:"type:text" json:"what_to_expect,omitempty" yaml:"what_to_expect"`
	PerfectFor   string `gorm:"type:text" json:"perfect_for,omitempty" yaml:"perfect_for"`
	AvoidIf      string `gorm:"type:text" json:"avoid_if,omitempty" yaml:"avoid_if"`

	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"-" yaml:"-"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"-" yaml:"-"`
}

func (ContentItem) TableName() string {
	return "catalog_items"
}

// Characteristics returns every tag the item declares, used to detect
// deal-breaker violations.
func (c *ContentItem) Characteristics() []string {
	tags := make([]string, 0, 16)
	tags = append(tags, c.NarrativeDNA.All()...)
	tags = append(tags, c.EmotionalTexture.PrimaryMood...)
	tags = append(tags, c.EmotionalTexture.EmotionalJourney...)
	tags = append(tags, c.EmotionalTexture.IntensityComfort...)
	tags = append(tags, c.EmotionalTexture.CharacterRelationship...)
	if c.VisualStyle != nil {
		tags = append(tags, c.VisualStyle.VisualPreferences...)
		tags = append(tags, c.VisualStyle.PerformanceEnergy...)
		tags = append(tags, c.VisualStyle.TechnicalCraft...)
	}
	if c.AudioStyle != nil {
		tags = append(tags, c.AudioStyle.HostDynamics...)
		tags = append(tags, c.AudioStyle.DeliveryStyle...)
		tags = append(tags, c.AudioStyle.IntimacyLevel...)
		tags = append(tags, c.AudioStyle.ProductionValues...)
	}
	tags = append(tags, c.QualityIndicators...)
	return append(tags, c.CraftElements...)
}
