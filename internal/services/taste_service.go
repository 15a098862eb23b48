package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/taste-recommender/internal/catalog"
	"alfredoptarigan/taste-recommender/internal/logging"
	"alfredoptarigan/taste-recommender/internal/metrics"
	"alfredoptarigan/taste-recommender/internal/models"
)

type sourceKey struct{}

// WithSource labels ctx with the entry point (api, mcp, batch, cli) for metrics.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey{}, source)
}

func sourceFrom(ctx context.Context) string {
	if s, ok := ctx.Value(sourceKey{}).(string); ok {
		return s
	}
	return "api"
}

// TasteService validates boundary input and runs the extract, rank and
// present pipeline for one request.
type TasteService interface {
	Recommend(ctx context.Context, req models.RecommendRequest) (*models.RecommendResponse, error)
	ExtractProfile(ctx context.Context, req models.ProfileRequest) (*models.ProfileResponse, error)
	Contextual(ctx context.Context, req models.ContextualRequest) (*models.ContextualResponse, error)
	Catalog() []models.CatalogEntry
	CatalogItem(id string) (*models.ContentItem, bool)
	CatalogSize() int
}

type tasteService struct {
	extractor   ProfileExtractor
	recommender Recommender
	presenter   *Presenter
	catalog     *catalog.ContentCatalog
	maxResults  int
	now         func() time.Time
}

func NewTasteService(
	extractor ProfileExtractor,
	recommender Recommender,
	contentCatalog *catalog.ContentCatalog,
	maxResults int,
) TasteService {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &tasteService{
		extractor:   extractor,
		recommender: recommender,
		presenter:   NewPresenter(),
		catalog:     contentCatalog,
		maxResults:  maxResults,
		now:         time.Now,
	}
}

// NewDefaultTasteService wires the standard extractor and recommender, with
// candidate scores reported to metrics.
func NewDefaultTasteService(patterns *catalog.PatternCatalog, contentCatalog *catalog.ContentCatalog, maxResults int) TasteService {
	rec := NewRecommender(NewEvaluator(), WithScoreObserver(func(_ *models.ContentItem, score models.EvaluationScore, admitted bool) {
		metrics.RecordCandidate(score.Total(), admitted)
	}))
	return NewTasteService(NewProfileExtractor(patterns), rec, contentCatalog, maxResults)
}

func (s *tasteService) Recommend(ctx context.Context, req models.RecommendRequest) (*models.RecommendResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.UserInput) == "" {
		return nil, models.ErrMissingText
	}
	contentType, err := models.ParseContentType(req.ContentType)
	if err != nil {
		return nil, err
	}

	start := s.now()
	requestID := uuid.NewString()
	log := logging.WithRequestID(requestID)

	live := req.LiveContext()
	profile := s.extractor.Extract(req.UserInput, contentType, live)
	metrics.RecordProfile(string(contentType), string(profile.Analyze().Quality()))

	maxN := req.MaxResults
	if maxN <= 0 {
		maxN = s.maxResults
	}
	recs := s.recommender.Recommend(profile, s.catalog, live, maxN)

	log.Info().
		Str("content_type", string(contentType)).
		Int("deal_breakers", len(profile.AntiPatterns.DealBreakers)).
		Int("recommendations", len(recs)).
		Msg("Recommendations generated")
	metrics.RecordRecommend(sourceFrom(ctx), len(recs), s.now().Sub(start))

	return &models.RecommendResponse{
		RequestID:            requestID,
		Recommendations:      recs,
		TasteProfile:         profile,
		TotalRecommendations: len(recs),
		FormattedText:        s.presenter.FormatRecommendations(recs, profile),
		AnalysisTimestamp:    s.now().UTC(),
	}, nil
}

func (s *tasteService) ExtractProfile(ctx context.Context, req models.ProfileRequest) (*models.ProfileResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.UserInput) == "" {
		return nil, models.ErrMissingText
	}
	contentType, err := models.ParseContentType(req.ContentType)
	if err != nil {
		return nil, err
	}

	profile := s.extractor.Extract(req.UserInput, contentType, nil)
	analysis := profile.Analyze()
	quality := analysis.Quality()
	metrics.RecordProfile(string(contentType), string(quality))

	return &models.ProfileResponse{
		TasteProfile:      profile,
		Analysis:          analysis,
		ExtractionQuality: quality,
		Summary: fmt.Sprintf("Taste profile extracted successfully. Found %d taste elements. Quality: %s. %s",
			analysis.Total(), quality, s.presenter.SummarizeProfile(profile)),
		Timestamp: s.now().UTC(),
	}, nil
}

func (s *tasteService) Contextual(ctx context.Context, req models.ContextualRequest) (*models.ContextualResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.UserInput) == "" {
		return nil, models.ErrMissingText
	}
	rt, err := ParseRequestType(req.RequestType)
	if err != nil {
		return nil, err
	}

	profile := s.extractor.Extract(req.UserInput, models.ContentTypeMixed, nil)
	return &models.ContextualResponse{
		RequestType: string(rt),
		Response:    ContextualGuidance(rt, profile),
		Timestamp:   s.now().UTC(),
	}, nil
}

func (s *tasteService) Catalog() []models.CatalogEntry {
	return s.catalog.Entries()
}

func (s *tasteService) CatalogSize() int {
	return s.catalog.Len()
}

func (s *tasteService) CatalogItem(id string) (*models.ContentItem, bool) {
	return s.catalog.Get(id)
}
