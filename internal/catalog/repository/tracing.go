package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/velmar/catalog-sync/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// GormStockRepositoryWithTracing wraps GormStockRepository with tracing
type GormStockRepositoryWithTracing struct {
	*GormStockRepository
}

// NewGormStockRepositoryWithTracing creates a new repository with tracing
func NewGormStockRepositoryWithTracing(db *gorm.DB) *GormStockRepositoryWithTracing {
	return &GormStockRepositoryWithTracing{
		GormStockRepository: NewGormStockRepository(db),
	}
}

// Upsert with tracing
func (r *GormStockRepositoryWithTracing) Upsert(ctx context.Context, record *domain.CanonicalRecord) (*domain.StockItem, error) {
	ctx, span := tracer.Start(ctx, "repository.Upsert",
		trace.WithAttributes(
			attribute.String("stock.item_code", record.ItemCode),
			attribute.String("stock.warehouse", record.WarehouseName),
			attribute.Int("stock.quantity", record.Stock),
		),
	)
	defer span.End()

	item, err := r.GormStockRepository.Upsert(ctx, record)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("stock.id", item.ID))
	return item, nil
}

// SetEmbedding with tracing
func (r *GormStockRepositoryWithTracing) SetEmbedding(ctx context.Context, id string, embedding []float32) error {
	ctx, span := tracer.Start(ctx, "repository.SetEmbedding",
		trace.WithAttributes(
			attribute.String("stock.id", id),
			attribute.Int("embedding.dim", len(embedding)),
		),
	)
	defer span.End()

	if err := r.GormStockRepository.SetEmbedding(ctx, id, embedding); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// SearchBySimilarity with tracing
func (r *GormStockRepositoryWithTracing) SearchBySimilarity(ctx context.Context, query []float32, k int, filter domain.SearchFilter) ([]domain.StockItem, error) {
	ctx, span := tracer.Start(ctx, "repository.SearchBySimilarity",
		trace.WithAttributes(
			attribute.Int("search.k", k),
			attribute.Bool("search.in_stock_only", filter.InStockOnly),
			attribute.StringSlice("search.warehouses", filter.WarehouseNames),
		),
	)
	defer span.End()

	items, err := r.GormStockRepository.SearchBySimilarity(ctx, query, k, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("search.results", len(items)))
	return items, nil
}

// FindByItemCode with tracing
func (r *GormStockRepositoryWithTracing) FindByItemCode(ctx context.Context, itemCode string) ([]domain.StockItem, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByItemCode",
		trace.WithAttributes(attribute.String("stock.item_code", itemCode)),
	)
	defer span.End()

	items, err := r.GormStockRepository.FindByItemCode(ctx, itemCode)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("stock.rows", len(items)))
	return items, nil
}
