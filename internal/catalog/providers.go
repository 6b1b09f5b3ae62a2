package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/velmar/catalog-sync/internal/catalog/domain"
	"github.com/velmar/catalog-sync/internal/catalog/normalizer"
	"github.com/velmar/catalog-sync/internal/catalog/repository"
	"github.com/velmar/catalog-sync/pkg/logger"
)

// ProvideStockRepository provides the stock repository with tracing
func ProvideStockRepository(db *gorm.DB) domain.StockRepository {
	return repository.NewGormStockRepositoryWithTracing(db)
}

// ProvideNormalizer provides the record normalizer
func ProvideNormalizer() *normalizer.Normalizer {
	return normalizer.New(logger.Logger)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideStockRepository,
)
