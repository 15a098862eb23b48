package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"alfredoptarigan/taste-recommender/internal/logging"
	"alfredoptarigan/taste-recommender/internal/metrics"
	"alfredoptarigan/taste-recommender/internal/models"
)

// Worker fans independent recommend requests out over a bounded number of
// goroutines. Results come back in input order.
type Worker interface {
	RunBatch(ctx context.Context, reqs []models.RecommendRequest) []models.BatchItemResult
}

type worker struct {
	tasteService TasteService
	concurrency  int
}

func NewWorker(tasteService TasteService, concurrency int) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &worker{
		tasteService: tasteService,
		concurrency:  concurrency,
	}
}

// RunBatch never fails as a whole: each request's error is reported in its
// own slot and does not cancel its siblings.
func (w *worker) RunBatch(ctx context.Context, reqs []models.RecommendRequest) []models.BatchItemResult {
	results := make([]models.BatchItemResult, len(reqs))
	metrics.RecordBatch(len(reqs))

	ctx = WithSource(ctx, "batch")
	g := new(errgroup.Group)
	g.SetLimit(w.concurrency)

	for i, req := range reqs {
		g.Go(func() error {
			resp, err := w.tasteService.Recommend(ctx, req)
			if err != nil {
				logging.Warn().Err(err).Int("index", i).Msg("Batch item failed")
				results[i] = models.BatchItemResult{Error: err.Error()}
				return nil
			}
			results[i] = models.BatchItemResult{Result: resp}
			return nil
		})
	}
	_ = g.Wait()

	logging.Debug().Int("size", len(reqs)).Int("concurrency", w.concurrency).Msg("Batch completed")
	return results
}
