package query

import (
	"context"
	"fmt"

	"github.com/velmar/catalog-sync/internal/catalog/domain"
	"github.com/velmar/catalog-sync/internal/catalog/embedding"
	"github.com/velmar/catalog-sync/internal/catalog/metrics"
	"github.com/velmar/catalog-sync/pkg/logger"
)

// SearchSimilarQuery is a free-text similarity search over the catalog.
type SearchSimilarQuery struct {
	Text   string
	K      int
	Filter domain.SearchFilter
}

// SearchSimilarHandler handles similarity search queries
type SearchSimilarHandler struct {
	repo     domain.StockRepository
	embedder embedding.Embedder
}

// NewSearchSimilarHandler creates a new similarity search handler
func NewSearchSimilarHandler(repo domain.StockRepository, embedder embedding.Embedder) *SearchSimilarHandler {
	return &SearchSimilarHandler{repo: repo, embedder: embedder}
}

// Handle embeds the query text and runs the nearest-neighbor scan.
// Rows without an embedding never appear in the results.
func (h *SearchSimilarHandler) Handle(ctx context.Context, q SearchSimilarQuery) ([]domain.StockItem, error) {
	if q.Text == "" {
		return nil, fmt.Errorf("query text is required")
	}

	var (
		vector       []float32
		cacheOutcome = embedding.CacheOff
		err          error
	)
	if ce, ok := h.embedder.(*embedding.CachedEmbedder); ok {
		vector, cacheOutcome, err = ce.EmbedWithOutcome(ctx, q.Text)
	} else {
		vector, err = h.embedder.Embed(ctx, q.Text)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	metrics.SearchesTotal.WithLabelValues(cacheOutcome).Inc()

	items, err := h.repo.SearchBySimilarity(ctx, vector, q.K, q.Filter)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}

	logger.Debug(ctx).
		Int("results", len(items)).
		Int("k", q.K).
		Msg("Similarity search finished")
	return items, nil
}
