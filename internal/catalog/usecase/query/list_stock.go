package query

import (
	"context"
	"fmt"

	"github.com/velmar/catalog-sync/internal/catalog/domain"
)

// ListStockQuery lists stock rows with optional equality filters.
type ListStockQuery struct {
	Limit     int
	Offset    int
	Category  string
	Warehouse string
	Branch    string
}

// ListStockHandler handles stock listing queries
type ListStockHandler struct {
	repo domain.StockRepository
}

// NewListStockHandler creates a new stock listing handler
func NewListStockHandler(repo domain.StockRepository) *ListStockHandler {
	return &ListStockHandler{repo: repo}
}

// Handle executes the listing query
func (h *ListStockHandler) Handle(ctx context.Context, q ListStockQuery) ([]domain.StockItem, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}

	var (
		items []domain.StockItem
		err   error
	)
	switch {
	case q.Category != "":
		items, err = h.repo.FindByCategory(ctx, q.Category, q.Limit, q.Offset)
	case q.Warehouse != "":
		items, err = h.repo.FindByWarehouse(ctx, q.Warehouse, q.Limit, q.Offset)
	case q.Branch != "":
		items, err = h.repo.FindByBranch(ctx, q.Branch, q.Limit, q.Offset)
	default:
		items, err = h.repo.FindAll(ctx, q.Limit, q.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list stock: %w", err)
	}
	return items, nil
}

// ListBrandsQuery lists distinct in-stock brands for a sub-category.
type ListBrandsQuery struct {
	SubCategory string
}

// ListBrandsHandler handles brand listing queries
type ListBrandsHandler struct {
	repo domain.StockRepository
}

// NewListBrandsHandler creates a new brand listing handler
func NewListBrandsHandler(repo domain.StockRepository) *ListBrandsHandler {
	return &ListBrandsHandler{repo: repo}
}

// Handle executes the brand listing query
func (h *ListBrandsHandler) Handle(ctx context.Context, q ListBrandsQuery) ([]string, error) {
	if q.SubCategory == "" {
		return nil, fmt.Errorf("sub-category is required")
	}
	return h.repo.FindBrandsByCategory(ctx, q.SubCategory)
}
