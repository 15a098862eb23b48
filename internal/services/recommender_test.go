package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/taste-recommender/internal/models"
)

func ids(recs []models.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestRecommendTypeGating(t *testing.T) {
	cc := mustCatalog(t,
		strongItem("show", models.ItemTVShow),
		strongItem("film", models.ItemMovie),
		strongItem("pod", models.ItemPodcast),
		strongItem("mini", models.ItemLimitedSeries),
		strongItem("doc", models.ItemDocumentary),
		strongItem("any", models.ItemMixed),
	)
	r := NewRecommender(NewEvaluator())

	tests := []struct {
		ct   models.ContentType
		want []string
	}{
		{models.ContentTypeTV, []string{"show", "mini", "any"}},
		{models.ContentTypeMovie, []string{"film", "any"}},
		{models.ContentTypePodcast, []string{"pod", "any"}},
		{models.ContentTypeMixed, []string{"show", "film", "pod", "mini", "doc", "any"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.ct), func(t *testing.T) {
			recs := r.Recommend(emptyProfile(tt.ct), cc, nil, 10)
			// Identical scores, so catalog order is preserved.
			assert.Equal(t, tt.want, ids(recs))
		})
	}
}

func TestRecommendFallsBackToWholeCatalog(t *testing.T) {
	cc := mustCatalog(t, strongItem("film", models.ItemMovie), strongItem("show", models.ItemTVShow))
	r := NewRecommender(NewEvaluator())

	recs := r.Recommend(emptyProfile(models.ContentTypePodcast), cc, nil, 3)

	assert.Equal(t, []string{"film", "show"}, ids(recs))
}

func TestRecommendAdmissionThreshold(t *testing.T) {
	cc := mustCatalog(t,
		bareItem("bare-1", models.ItemTVShow),
		strongItem("strong", models.ItemTVShow),
		bareItem("bare-2", models.ItemTVShow),
	)

	var seen, admitted int
	r := NewRecommender(NewEvaluator(), WithScoreObserver(func(_ *models.ContentItem, s models.EvaluationScore, ok bool) {
		seen++
		if ok {
			admitted++
			assert.GreaterOrEqual(t, s.Total(), AdmissionThreshold)
		} else {
			assert.Less(t, s.Total(), AdmissionThreshold)
		}
	}))

	recs := r.Recommend(emptyProfile(models.ContentTypeTV), cc, nil, 3)

	assert.Equal(t, []string{"strong"}, ids(recs))
	assert.Equal(t, 3, seen)
	assert.Equal(t, 1, admitted)
}

func TestRecommendNoCandidates(t *testing.T) {
	cc := mustCatalog(t, bareItem("a", models.ItemMovie), bareItem("b", models.ItemMovie))

	recs := NewRecommender(NewEvaluator()).Recommend(emptyProfile(models.ContentTypeMovie), cc, nil, 3)

	require.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRecommendRankingAndTruncation(t *testing.T) {
	weaker := strongItem("weaker", models.ItemTVShow)
	weaker.SourceValidation = []string{"critic_acclaim"}
	best := strongItem("best", models.ItemTVShow)
	best.CraftElements = append(best.CraftElements, "d", "e")

	cc := mustCatalog(t,
		weaker,
		strongItem("tie-1", models.ItemTVShow),
		best,
		strongItem("tie-2", models.ItemTVShow),
	)
	r := NewRecommender(NewEvaluator())
	profile := emptyProfile(models.ContentTypeTV)

	all := r.Recommend(profile, cc, nil, 10)
	assert.Equal(t, []string{"best", "tie-1", "tie-2", "weaker"}, ids(all))
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].Evaluation.Total(), all[i].Evaluation.Total())
	}

	assert.Equal(t, []string{"best", "tie-1"}, ids(r.Recommend(profile, cc, nil, 2)))
	assert.Len(t, r.Recommend(profile, cc, nil, 0), DefaultMaxResults)
	assert.Len(t, r.Recommend(profile, cc, nil, -4), DefaultMaxResults)
}

func TestRecommendConfidenceAndTier(t *testing.T) {
	cc := mustCatalog(t, strongItem("x", models.ItemMovie))

	recs := NewRecommender(NewEvaluator()).Recommend(emptyProfile(models.ContentTypeMovie), cc, nil, 1)

	require.Len(t, recs, 1)
	rec := recs[0]
	assert.InDelta(t, rec.Evaluation.Total()/60*100, rec.ConfidencePercentage, 1e-9)
	assert.Equal(t, models.TierFor(rec.ConfidencePercentage), rec.MatchTier)
	assert.Equal(t, models.TierSpeculative, rec.MatchTier)
}

func TestRecommendExplanationTemplates(t *testing.T) {
	cc := defaultContent(t)
	profile := emptyProfile(models.ContentTypeTV)

	shrinking := mustItem(t, cc, "shrinking")
	rec := buildRecommendation(shrinking, models.EvaluationScore{}, profile, nil)
	assert.Equal(t, shrinking.WhyTemplate, rec.WhyMatches)
	assert.Equal(t, shrinking.WhatToExpect, rec.WhatToExpect)
	assert.Equal(t, shrinking.PerfectFor, rec.PerfectFor)
	assert.Equal(t, shrinking.AvoidIf, rec.AvoidIf)
}

func TestRecommendSynthesizedText(t *testing.T) {
	item := &models.ContentItem{
		ID: "plain",
		NarrativeDNA: models.NarrativeDNA{
			StoryStructure: []string{"character_driven", "episodic"},
		},
		EmotionalTexture: models.EmotionalTexture{
			PrimaryMood: []string{"cozy_comfort", "intellectual_stimulation"},
		},
	}

	t.Run("overlap phrases", func(t *testing.T) {
		profile := emptyProfile(models.ContentTypeMixed)
		profile.NarrativeDNA.StoryStructure = []string{"episodic", "character_driven"}
		profile.EmotionalTexture.PrimaryMood = []string{"cozy_comfort"}

		rec := buildRecommendation(item, models.EvaluationScore{}, profile, nil)
		assert.Equal(t, "Features episodic, character driven storytelling, provides cozy comfort", rec.WhyMatches)
		assert.Equal(t, fallbackExpect, rec.WhatToExpect)
		assert.Equal(t, fallbackAvoidIf, rec.AvoidIf)
		assert.Equal(t, fallbackPerfectFor, rec.PerfectFor)
		assert.NotNil(t, rec.QualityIndicators)
	})

	t.Run("no overlap", func(t *testing.T) {
		rec := buildRecommendation(item, models.EvaluationScore{}, emptyProfile(models.ContentTypeMixed), nil)
		assert.Equal(t, fallbackWhy, rec.WhyMatches)
	})

	t.Run("perfect for", func(t *testing.T) {
		tests := []struct {
			name      string
			ctx       map[string]string
			live      map[string]string
			intensity []string
			want      string
		}{
			{"stressed", map[string]string{"mood": "stressed"}, nil, nil, "When you need comfort and stress relief"},
			{"energetic from live", nil, map[string]string{"mood": "energetic"}, nil, "When you want mental engagement"},
			{"background", nil, nil, []string{"background_viewing"}, "Casual viewing while multitasking"},
			{"focused", map[string]string{"mood": "relaxed"}, nil, []string{"full_attention"}, "Focused viewing sessions"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				profile := emptyProfile(models.ContentTypeMixed)
				for k, v := range tt.ctx {
					profile.Context[k] = v
				}
				profile.EmotionalTexture.IntensityComfort = append(profile.EmotionalTexture.IntensityComfort, tt.intensity...)
				assert.Equal(t, tt.want, perfectFor(item, profile, tt.live))
			})
		}
	})
}

func TestRecommendEmptyProfileOverDefaultCatalog(t *testing.T) {
	cc := defaultContent(t)
	e := newTestExtractor(t)

	recs := NewRecommender(NewEvaluator()).Recommend(e.Extract("", models.ContentTypeMixed, nil), cc, nil, 3)

	assert.LessOrEqual(t, len(recs), 3)
	for _, r := range recs {
		assert.GreaterOrEqual(t, r.Evaluation.Total(), AdmissionThreshold)
		assert.InDelta(t, 1.0, r.Evaluation.TasteMatchStrength, 1e-9)
	}
}

func TestRecommendEndToEnd(t *testing.T) {
	cc := defaultContent(t)
	e := newTestExtractor(t)
	r := NewRecommender(NewEvaluator())

	t.Run("violence deal breaker demotes violent items", func(t *testing.T) {
		profile := e.Extract("smart psychological character study, slow burn, but not violent", models.ContentTypeTV, nil)
		require.Contains(t, profile.AntiPatterns.DealBreakers, "excessive_violence")

		recs := r.Recommend(profile, cc, nil, 10)
		require.NotEmpty(t, recs)
		for _, rec := range recs {
			assert.Contains(t, []models.ItemType{models.ItemTVShow, models.ItemLimitedSeries, models.ItemMixed}, rec.ContentType)
			if rec.ID == "mindhunter" || rec.ID == "chernobyl" {
				assert.InDelta(t, 6.0, rec.Evaluation.AntiPatternAvoidance, 1e-9)
			}
		}
	})

	t.Run("podcast request only returns podcasts", func(t *testing.T) {
		profile := e.Extract("two hosts having casual conversations, like friends", models.ContentTypePodcast, nil)
		recs := r.Recommend(profile, cc, nil, 3)
		require.NotEmpty(t, recs)
		for _, rec := range recs {
			assert.Equal(t, models.ItemPodcast, rec.ContentType)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		profile := e.Extract("cozy feel good comfort for a stressed evening", models.ContentTypeMixed, nil)
		first := r.Recommend(profile, cc, nil, 3)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, r.Recommend(profile, cc, nil, 3))
		}
	})
}
