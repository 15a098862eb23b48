package services

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"alfredoptarigan/taste-recommender/internal/models"
)

const (
	recommendationsHeader = "🎯 **Your Personalized Recommendations**\n\n"
	recommendationsLegend = "💡 *Confidence levels: 🔥 Perfect match (90%+), ✨ Strong match (75-89%), 🎲 Interesting gamble (below 75%)*"
	followUpPrompt        = "*Want more recommendations? Tell me what you think of these or describe another show, movie or podcast you enjoyed!*"

	noMatchesWithSignals = "🤔 I extracted some taste elements but couldn't find strong matches in my current catalog. " +
		"Could you tell me about a specific show, movie, or podcast you recently enjoyed and what you liked about it? " +
		"This will help me better understand your preferences."
	noMatchesNoSignals = "🤔 I need more information to understand your taste profile. " +
		"Could you describe something you recently watched or listened to that you really enjoyed? " +
		"What specifically did you like about it - the characters, the mood, the style?"
)

var tierIndicators = map[models.MatchTier]string{
	models.TierTop:         "🔥",
	models.TierStrong:      "✨",
	models.TierSpeculative: "🎲",
}

// Presenter renders recommendations as chat-friendly markdown.
type Presenter struct{}

func NewPresenter() *Presenter {
	return &Presenter{}
}

// Indicator returns the emoji shown for a tier.
func (p *Presenter) Indicator(tier models.MatchTier) string {
	return tierIndicators[tier]
}

// FormatRecommendations renders recs in order. An empty list renders a
// clarifying question whose wording depends on what the profile captured.
func (p *Presenter) FormatRecommendations(recs []models.Recommendation, profile *models.TasteProfile) string {
	if len(recs) == 0 {
		if profile != nil && profile.HasCoreSignals() {
			return noMatchesWithSignals
		}
		return noMatchesNoSignals
	}

	title := cases.Title(language.English)

	var b strings.Builder
	b.WriteString(recommendationsHeader)
	for i, rec := range recs {
		fmt.Fprintf(&b, "%s **%s** - %s", p.Indicator(rec.MatchTier), rec.Title, rec.Platform)
		if rec.Year != "" {
			fmt.Fprintf(&b, "/%s", rec.Year)
		}
		b.WriteString("\n\n")

		fmt.Fprintf(&b, "**Why it matches your taste:** %s\n\n", rec.WhyMatches)
		fmt.Fprintf(&b, "**What to expect:** %s\n\n", rec.WhatToExpect)
		fmt.Fprintf(&b, "**Perfect for:** %s\n\n", rec.PerfectFor)
		fmt.Fprintf(&b, "**Avoid if:** %s\n\n", rec.AvoidIf)

		if len(rec.QualityIndicators) > 0 {
			indicators := title.String(humanize(rec.QualityIndicators))
			fmt.Fprintf(&b, "*Quality indicators: %s*\n\n", indicators)
		}

		if i < len(recs)-1 {
			b.WriteString("---\n\n")
		}
	}

	b.WriteString("\n" + recommendationsLegend + "\n\n")
	b.WriteString(followUpPrompt)
	return b.String()
}

// SummarizeProfile gives a one-line digest of what was extracted.
func (p *Presenter) SummarizeProfile(profile *models.TasteProfile) string {
	var parts []string
	add := func(label string, tags []string) {
		if len(tags) > 0 {
			parts = append(parts, label+": "+humanize(tags))
		}
	}

	add("story", profile.NarrativeDNA.StoryStructure)
	add("pacing", profile.NarrativeDNA.PacingPreferences)
	add("mood", profile.EmotionalTexture.PrimaryMood)
	add("attention", profile.EmotionalTexture.IntensityComfort)
	if profile.VisualStyle != nil {
		add("visuals", profile.VisualStyle.VisualPreferences)
	}
	if profile.AudioStyle != nil {
		add("hosts", profile.AudioStyle.HostDynamics)
	}
	add("avoid", profile.AntiPatterns.DealBreakers)

	if len(parts) == 0 {
		return "No clear taste signals found"
	}
	return strings.Join(parts, "; ")
}
