package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/taste-recommender/internal/models"
)

func TestExtractEmptyInput(t *testing.T) {
	e := newTestExtractor(t)

	p := e.Extract("", models.ContentTypeMixed, nil)

	assert.Zero(t, p.Analyze().Total())
	assert.Empty(t, p.Context)
	assert.NotNil(t, p.VisualStyle)
	assert.NotNil(t, p.AudioStyle)
	assert.Equal(t, []string{}, p.AntiPatterns.DealBreakers)
	assert.Equal(t, fixedNow, p.ExtractionTimestamp)
}

func TestExtractMoodAndTime(t *testing.T) {
	e := newTestExtractor(t)

	p := e.Extract("I want something cozy and comforting for evening", models.ContentTypeMixed, nil)

	assert.Contains(t, p.EmotionalTexture.PrimaryMood, "cozy_comfort")
	assert.Equal(t, "evening", p.Context[models.ContextTime])
	assert.Empty(t, p.AntiPatterns.DealBreakers)
}

func TestExtractNegatedAntiPatterns(t *testing.T) {
	e := newTestExtractor(t)

	p := e.Extract("Something mysterious but not violent or scary", models.ContentTypeMixed, nil)

	assert.Equal(t, []string{"excessive_violence", "horror_elements"}, p.AntiPatterns.DealBreakers)
	assert.Contains(t, p.NarrativeDNA.ResolutionPatterns, "ongoing_mysteries")
}

func TestExtractPodcastHosts(t *testing.T) {
	e := newTestExtractor(t)

	p := e.Extract("two hosts having casual conversations", models.ContentTypePodcast, nil)

	require.NotNil(t, p.AudioStyle)
	assert.Contains(t, p.AudioStyle.HostDynamics, "conversational_duos")
	assert.Nil(t, p.VisualStyle)
}

func TestExtractStyleGating(t *testing.T) {
	e := newTestExtractor(t)
	text := "beautifully shot with two hosts"

	tv := e.Extract(text, models.ContentTypeTV, nil)
	require.NotNil(t, tv.VisualStyle)
	assert.Nil(t, tv.AudioStyle)
	assert.Equal(t, []string{"cinematography_conscious"}, tv.VisualStyle.TechnicalCraft)

	pod := e.Extract(text, models.ContentTypePodcast, nil)
	assert.Nil(t, pod.VisualStyle)
	require.NotNil(t, pod.AudioStyle)
	assert.Contains(t, pod.AudioStyle.HostDynamics, "conversational_duos")
}

func TestExtractNegationScoping(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"positive mention is not a deal breaker", "I love violent crime thrillers", []string{}},
		{"marker inside a word does not count", "I know it gets violent", []string{}},
		{"phrase beyond the window", "not " + strings.Repeat("x", NegationWindow) + " violent", []string{}},
		{"phrase inside the window", "not " + strings.Repeat("x", 100) + " violent", []string{"excessive_violence"}},
		{"typographic apostrophe", "I don’t want gore", []string{"excessive_violence"}},
		{"upper case", "NO LAUGH TRACK PLEASE", []string{"forced_laugh_tracks"}},
		{"reported once", "no gore, never anything violent, avoid brutal stuff", []string{"excessive_violence"}},
		{"second occurrence of a marker", "not bad. " + strings.Repeat("z", 2*NegationWindow) + " but not a sitcom", []string{"traditional_sitcom_format"}},
		{"multibyte filler inside the window", "not " + strings.Repeat("é", 100) + " violent", []string{"excessive_violence"}},
		{"multibyte filler beyond the window", "not " + strings.Repeat("é", NegationWindow) + " violent", []string{}},
		{"nothing as a marker", "I want nothing violent", []string{"excessive_violence"}},
		{"multiple patterns keep catalog order", "without a sitcom laugh track and nothing too slow", []string{"forced_laugh_tracks", "slow_pacing", "traditional_sitcom_format"}},
	}

	e := newTestExtractor(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := e.Extract(tt.text, models.ContentTypeMixed, nil)
			assert.Equal(t, tt.want, p.AntiPatterns.DealBreakers)
		})
	}
}

func TestExtractContextResolution(t *testing.T) {
	e := newTestExtractor(t)

	t.Run("later value in a category wins", func(t *testing.T) {
		p := e.Extract("morning or evening, whenever", models.ContentTypeMixed, nil)
		assert.Equal(t, "evening", p.Context[models.ContextTime])
	})

	t.Run("text overrides hints", func(t *testing.T) {
		hints := map[string]string{models.ContextTime: "morning", models.ContextSocial: "alone"}
		p := e.Extract("something for the weekend", models.ContentTypeMixed, hints)
		assert.Equal(t, "weekend", p.Context[models.ContextTime])
		assert.Equal(t, "alone", p.Context[models.ContextSocial])
	})

	t.Run("empty hints are ignored", func(t *testing.T) {
		p := e.Extract("", models.ContentTypeMixed, map[string]string{models.ContextMood: ""})
		assert.Empty(t, p.Context)
	})

	t.Run("hints are copied", func(t *testing.T) {
		hints := map[string]string{models.ContextMood: "stressed"}
		p := e.Extract("", models.ContentTypeMixed, hints)
		p.Context[models.ContextMood] = "relaxed"
		assert.Equal(t, "stressed", hints[models.ContextMood])
	})
}

func TestExtractFacetOrder(t *testing.T) {
	e := newTestExtractor(t)

	p := e.Extract("a serialized character study, standalone episodes too", models.ContentTypeTV, nil)

	assert.Equal(t, []string{"episodic", "serialized", "character_driven"}, p.NarrativeDNA.StoryStructure)
}

func TestExtractDeterministic(t *testing.T) {
	e := newTestExtractor(t)
	text := "Dark, smart, slow burn psychological drama. Not too violent. Watching alone at night."

	first := e.Extract(text, models.ContentTypeMixed, nil)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.Extract(text, models.ContentTypeMixed, nil))
	}
}

func TestMarkerEnds(t *testing.T) {
	assert.Equal(t, []int{3, 11}, markerEnds("not now not", "not"))
	assert.Empty(t, markerEnds("nothing knotted", "not"))
	assert.Equal(t, []int{10}, markerEnds("don't want", "don't want"))
	assert.Empty(t, markerEnds("anything", ""))
}

func TestNegationWindowCountsCharacters(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"ascii", strings.Repeat("a", NegationWindow) + " tail", strings.Repeat("a", NegationWindow)},
		{"two byte runes", strings.Repeat("é", NegationWindow) + " tail", strings.Repeat("é", NegationWindow)},
		{"mixed widths", "a" + strings.Repeat("日", NegationWindow), "a" + strings.Repeat("日", NegationWindow-1)},
		{"shorter than the window", "ébc", "ébc"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := negationWindow(tt.text, 0)
			assert.Equal(t, tt.want, w)
			assert.True(t, utf8.ValidString(w))
			assert.LessOrEqual(t, utf8.RuneCountInString(w), NegationWindow)
		})
	}

	t.Run("offset start", func(t *testing.T) {
		text := "no" + strings.Repeat("ü", NegationWindow+5)
		assert.Equal(t, strings.Repeat("ü", NegationWindow), negationWindow(text, 2))
	})
}
