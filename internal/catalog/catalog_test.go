package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/taste-recommender/internal/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cozy Comfort", "cozy comfort"},
		{"DON’T WANT", "don't want"},
		{"ÉPIQUE", "épique"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestDefaultPatterns(t *testing.T) {
	pc, err := DefaultPatterns()
	require.NoError(t, err)

	require.NotEmpty(t, pc.Narrative)
	assert.Equal(t, "episodic", pc.Narrative[0].Tag)
	assert.Equal(t, "story_structure", pc.Narrative[0].Facet)
	assert.NotEmpty(t, pc.Emotional)
	assert.NotEmpty(t, pc.Visual)
	assert.NotEmpty(t, pc.Audio)
	assert.Contains(t, pc.NegationMarkers, "don't want")
	assert.Contains(t, pc.NegationMarkers, "nothing")

	var categories []string
	for _, c := range pc.Context {
		categories = append(categories, c.Category)
	}
	assert.Equal(t, []string{models.ContextTime, models.ContextMood, models.ContextSocial}, categories)

	// Phrases are stored folded.
	for _, e := range pc.Audio {
		for _, p := range e.Phrases {
			assert.Equal(t, Normalize(p), p)
		}
	}
}

func TestParsePatternsRejectsUnknownFacet(t *testing.T) {
	data := []byte(`
narrative:
  - tag: episodic
    facet: not_a_facet
    phrases: ["episodic"]
negation_markers: ["not"]
`)
	_, err := ParsePatterns(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestParsePatternsRequiresNegationMarkers(t *testing.T) {
	_, err := ParsePatterns([]byte("narrative: []\n"))
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestDefaultContent(t *testing.T) {
	cc, err := DefaultContent()
	require.NoError(t, err)
	require.Greater(t, cc.Len(), 8)

	items := cc.Items()
	assert.Equal(t, "shrinking", items[0].ID)
	for i, it := range items {
		assert.Equal(t, i, it.Position, it.ID)
	}

	sev, ok := cc.Get("severance")
	require.True(t, ok)
	assert.Equal(t, models.ItemTVShow, sev.ContentType)
	assert.Equal(t, []string{"ongoing_mysteries"}, sev.NarrativeDNA.ResolutionPatterns)
	assert.NotNil(t, sev.VisualStyle)
	assert.Nil(t, sev.AudioStyle)

	radiolab, ok := cc.Get("radiolab")
	require.True(t, ok)
	assert.Equal(t, models.ItemPodcast, radiolab.ContentType)
	assert.NotNil(t, radiolab.AudioStyle)

	_, ok = cc.Get("missing")
	assert.False(t, ok)

	assert.Len(t, cc.Entries(), cc.Len())
}

func TestNewContentCatalogValidation(t *testing.T) {
	tests := []struct {
		name  string
		items []models.ContentItem
	}{
		{"missing id", []models.ContentItem{{Title: "x", ContentType: models.ItemMovie}}},
		{"duplicate id", []models.ContentItem{
			{ID: "a", ContentType: models.ItemMovie},
			{ID: "a", ContentType: models.ItemMovie},
		}},
		{"unknown type", []models.ContentItem{{ID: "a", ContentType: "vinyl"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewContentCatalog(tt.items)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestLoadContentFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
items:
  - id: one
    title: One
    content_type: movie
  - id: two
    title: Two
    content_type: podcast
`), 0o644))

	cc, err := LoadContent(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cc.Len())
	assert.Equal(t, 1, cc.Items()[1].Position)

	_, err = LoadContent(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
