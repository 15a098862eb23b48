package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"alfredoptarigan/taste-recommender/internal/catalog"
	"alfredoptarigan/taste-recommender/internal/models"
)

var fixedNow = time.Date(2025, 8, 1, 20, 0, 0, 0, time.UTC)

func newTestExtractor(t *testing.T) *profileExtractor {
	t.Helper()
	pc, err := catalog.DefaultPatterns()
	require.NoError(t, err)
	return &profileExtractor{patterns: pc, now: func() time.Time { return fixedNow }}
}

func defaultContent(t *testing.T) *catalog.ContentCatalog {
	t.Helper()
	cc, err := catalog.DefaultContent()
	require.NoError(t, err)
	return cc
}

func mustCatalog(t *testing.T, items ...models.ContentItem) *catalog.ContentCatalog {
	t.Helper()
	cc, err := catalog.NewContentCatalog(items)
	require.NoError(t, err)
	return cc
}

func mustItem(t *testing.T, cc *catalog.ContentCatalog, id string) *models.ContentItem {
	t.Helper()
	it, ok := cc.Get(id)
	require.True(t, ok, id)
	return it
}

// strongItem scores well above the admission threshold against an empty
// mixed profile.
func strongItem(id string, typ models.ItemType) models.ContentItem {
	return models.ContentItem{
		ID:                id,
		Title:             id,
		Platform:          "Test",
		ContentType:       typ,
		NarrativeDNA:      models.NarrativeDNA{StoryStructure: []string{"episodic"}},
		QualityIndicators: []string{"film_director_involvement", "book_adaptation", "innovative_format"},
		SourceValidation:  []string{"emmy_winner", "peabody_award", "critic_acclaim"},
		CraftElements:     []string{"a", "b", "c"},
	}
}

// bareItem carries no tags at all and can never be admitted.
func bareItem(id string, typ models.ItemType) models.ContentItem {
	return models.ContentItem{ID: id, Title: id, ContentType: typ}
}
