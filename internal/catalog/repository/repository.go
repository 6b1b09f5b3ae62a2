package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/velmar/catalog-sync/internal/catalog/domain"
	"github.com/velmar/catalog-sync/internal/catalog/metrics"
)

// upsertColumns are the columns refreshed when an insert hits an
// existing identity. The embedding is deliberately absent: it is
// attached by a separate, slower pipeline and an upsert must not wipe
// it. created_at and updated_at belong to the storage layer.
var upsertColumns = []string{
	"item_code", "item_name", "description", "specification",
	"category", "sub_category", "brand", "line", "item_group_name",
	"warehouse_name", "warehouse_name_canonical", "branch_name",
	"store_address", "price", "price_secondary", "stock",
	"searchable_text", "source_payload",
}

// upsertAssignments is the ON CONFLICT update set: every mutable
// column plus an explicit deleted_at reset, so re-syncing an identity
// that was soft-deleted resurrects the row instead of updating one no
// default-scoped read can see.
func upsertAssignments() clause.Set {
	set := clause.AssignmentColumns(upsertColumns)
	return append(set, clause.Assignment{Column: clause.Column{Name: "deleted_at"}, Value: nil})
}

type GormStockRepository struct {
	db *gorm.DB
}

func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// Upsert inserts or updates the row matching the record's derived
// composite identity and returns the persisted entity. Exactly one row
// per (lower(item_code), warehouse_name_canonical) exists afterwards;
// a concurrent insert racing for the same identity resolves through ON
// CONFLICT into an update instead of surfacing a constraint violation.
func (r *GormStockRepository) Upsert(ctx context.Context, record *domain.CanonicalRecord) (*domain.StockItem, error) {
	item := &domain.StockItem{
		ItemCode:       record.ItemCode,
		ItemName:       record.ItemName,
		Description:    record.Description,
		Specification:  record.Specification,
		Category:       record.Category,
		SubCategory:    record.SubCategory,
		Brand:          record.Brand,
		Line:           record.Line,
		ItemGroupName:  record.ItemGroupName,
		WarehouseName:  record.WarehouseName,
		BranchName:     record.BranchName,
		StoreAddress:   record.StoreAddress,
		Price:          record.Price,
		PriceSecondary: record.PriceSecondary,
		Stock:          record.Stock,
		SearchableText: record.SearchableText,
		SourcePayload:  record.SourceJSON(),
	}

	// The database trigger performs the same derivation; computing it
	// here as well keeps the returned struct honest and rejects records
	// with unusable identity before touching the database.
	if err := item.ApplyIdentity(); err != nil {
		return nil, err
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: upsertAssignments(),
		}).
		Create(item).Error
	if err != nil {
		metrics.UpsertsTotal.WithLabelValues("error").Inc()
		if isUniqueViolation(err) {
			// The identity conflicted on the composite uniqueness index
			// rather than the primary key: two distinct ids mapped to
			// the same (item_code, warehouse) pair, which means the
			// canonicalization drifted, not that writers raced.
			return nil, fmt.Errorf("%w: %s", domain.ErrIdentityConflict, item.ID)
		}
		return nil, fmt.Errorf("failed to upsert stock item: %w", err)
	}

	metrics.UpsertsTotal.WithLabelValues("ok").Inc()
	return item, nil
}

// SetEmbedding attaches or replaces the embedding for a row. Kept
// independent of Upsert because embedding generation is an external,
// higher-latency step.
func (r *GormStockRepository) SetEmbedding(ctx context.Context, id string, embedding []float32) error {
	if len(embedding) != domain.EmbeddingDim {
		return fmt.Errorf("%w: got %d, want %d", domain.ErrDimensionMismatch, len(embedding), domain.EmbeddingDim)
	}

	vec := pgvector.NewVector(embedding)
	res := r.db.WithContext(ctx).
		Model(&domain.StockItem{}).
		Where("id = ?", id).
		Update("embedding", vec)
	if res.Error != nil {
		return fmt.Errorf("failed to set embedding: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SearchBySimilarity runs a cosine nearest-neighbor scan over the
// embedding column. Rows without an embedding are excluded; results
// come back in non-increasing similarity order.
func (r *GormStockRepository) SearchBySimilarity(ctx context.Context, query []float32, k int, filter domain.SearchFilter) ([]domain.StockItem, error) {
	if len(query) != domain.EmbeddingDim {
		return nil, fmt.Errorf("%w: got %d, want %d", domain.ErrDimensionMismatch, len(query), domain.EmbeddingDim)
	}
	if k <= 0 {
		k = 10
	}

	vec := pgvector.NewVector(query)

	q := r.db.WithContext(ctx).
		Model(&domain.StockItem{}).
		Where("embedding IS NOT NULL")

	if len(filter.WarehouseNames) > 0 {
		q = q.Where("warehouse_name IN ?", filter.WarehouseNames)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.SubCategory != "" {
		q = q.Where("sub_category = ?", filter.SubCategory)
	}
	if filter.Brand != "" {
		q = q.Where("brand = ?", filter.Brand)
	}
	if filter.InStockOnly {
		q = q.Where("stock > 0")
	}
	if filter.MinSimilarity > 0 {
		q = q.Where("1 - (embedding <=> ?) >= ?", vec, filter.MinSimilarity)
	}

	var items []domain.StockItem
	err := q.Clauses(clause.OrderBy{
		Expression: clause.Expr{SQL: "embedding <=> ?", Vars: []interface{}{vec}},
	}).
		Limit(k).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search by similarity: %w", err)
	}
	return items, nil
}

func (r *GormStockRepository) FindByID(ctx context.Context, id string) (*domain.StockItem, error) {
	var item domain.StockItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByItemCode returns every warehouse row for an item code,
// case-insensitively.
func (r *GormStockRepository) FindByItemCode(ctx context.Context, itemCode string) ([]domain.StockItem, error) {
	var items []domain.StockItem
	err := r.db.WithContext(ctx).
		Where("lower(item_code) = lower(?)", strings.TrimSpace(itemCode)).
		Find(&items).Error
	return items, err
}

func (r *GormStockRepository) FindByCategory(ctx context.Context, category string, limit, offset int) ([]domain.StockItem, error) {
	var items []domain.StockItem
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Limit(limit).Offset(offset).
		Find(&items).Error
	return items, err
}

func (r *GormStockRepository) FindByWarehouse(ctx context.Context, warehouseName string, limit, offset int) ([]domain.StockItem, error) {
	var items []domain.StockItem
	err := r.db.WithContext(ctx).
		Where("warehouse_name = ?", warehouseName).
		Limit(limit).Offset(offset).
		Find(&items).Error
	return items, err
}

func (r *GormStockRepository) FindByBranch(ctx context.Context, branchName string, limit, offset int) ([]domain.StockItem, error) {
	var items []domain.StockItem
	err := r.db.WithContext(ctx).
		Where("branch_name = ?", branchName).
		Limit(limit).Offset(offset).
		Find(&items).Error
	return items, err
}

// FindBrandsByCategory lists the distinct in-stock brands within a
// sub-category, ordered alphabetically.
func (r *GormStockRepository) FindBrandsByCategory(ctx context.Context, subCategory string) ([]string, error) {
	var brands []string
	err := r.db.WithContext(ctx).
		Model(&domain.StockItem{}).
		Distinct().
		Where("sub_category = ? AND stock > 0 AND brand <> ''", strings.ToUpper(subCategory)).
		Order("brand").
		Pluck("brand", &brands).Error
	return brands, err
}

func (r *GormStockRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.StockItem, error) {
	var items []domain.StockItem
	err := r.db.WithContext(ctx).Limit(limit).Offset(offset).Find(&items).Error
	return items, err
}

func (r *GormStockRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.StockItem{}).Count(&count).Error
	return count, err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	// gorm wraps driver errors; fall back to the SQLSTATE in the text
	return strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key value")
}
