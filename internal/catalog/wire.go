//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/velmar/catalog-sync/internal/catalog/embedding"
	"github.com/velmar/catalog-sync/internal/catalog/usecase/command"
	"github.com/velmar/catalog-sync/internal/catalog/usecase/query"
)

// InitializeSyncBatchHandler initializes the sync batch handler with all dependencies
func InitializeSyncBatchHandler(db *gorm.DB, notifier command.CompletionNotifier) (*command.SyncBatchHandler, error) {
	wire.Build(
		RepositorySet,
		ProvideNormalizer,
		command.NewSyncBatchHandler,
	)
	return nil, nil
}

// InitializeSetEmbeddingHandler initializes the set embedding handler
func InitializeSetEmbeddingHandler(db *gorm.DB) (*command.SetEmbeddingHandler, error) {
	wire.Build(
		RepositorySet,
		command.NewSetEmbeddingHandler,
	)
	return nil, nil
}

// InitializeSearchSimilarHandler initializes the similarity search handler
func InitializeSearchSimilarHandler(db *gorm.DB, embedder embedding.Embedder) (*query.SearchSimilarHandler, error) {
	wire.Build(
		RepositorySet,
		query.NewSearchSimilarHandler,
	)
	return nil, nil
}

// InitializeGetStockHandler initializes the stock lookup handler
func InitializeGetStockHandler(db *gorm.DB) (*query.GetStockHandler, error) {
	wire.Build(
		RepositorySet,
		query.NewGetStockHandler,
	)
	return nil, nil
}

// InitializeListStockHandler initializes the stock listing handler
func InitializeListStockHandler(db *gorm.DB) (*query.ListStockHandler, error) {
	wire.Build(
		RepositorySet,
		query.NewListStockHandler,
	)
	return nil, nil
}

// InitializeListBrandsHandler initializes the brand listing handler
func InitializeListBrandsHandler(db *gorm.DB) (*query.ListBrandsHandler, error) {
	wire.Build(
		RepositorySet,
		query.NewListBrandsHandler,
	)
	return nil, nil
}
