package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velmar/catalog-sync/internal/catalog/embedding"
)

// The query-side handlers have no transport inside this service; the
// injectors are the assembly surface a host embeds them through, so
// construction is the contract covered here.
func TestInjectorsAssembleHandlers(t *testing.T) {
	embedder := embedding.Func(func(ctx context.Context, text string) ([]float32, error) {
		return nil, nil
	})

	syncHandler, err := InitializeSyncBatchHandler(nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, syncHandler)

	setEmbeddingHandler, err := InitializeSetEmbeddingHandler(nil)
	require.NoError(t, err)
	assert.NotNil(t, setEmbeddingHandler)

	searchHandler, err := InitializeSearchSimilarHandler(nil, embedder)
	require.NoError(t, err)
	assert.NotNil(t, searchHandler)

	getHandler, err := InitializeGetStockHandler(nil)
	require.NoError(t, err)
	assert.NotNil(t, getHandler)

	listHandler, err := InitializeListStockHandler(nil)
	require.NoError(t, err)
	assert.NotNil(t, listHandler)

	brandsHandler, err := InitializeListBrandsHandler(nil)
	require.NoError(t, err)
	assert.NotNil(t, brandsHandler)
}
