package query

import (
	"context"
	"fmt"

	"github.com/velmar/catalog-sync/internal/catalog/domain"
)

// GetStockQuery fetches stock rows by composite id or item code.
type GetStockQuery struct {
	ID       string // exact composite id; wins when set
	ItemCode string // case-insensitive, returns one row per warehouse
}

// GetStockHandler handles stock lookup queries
type GetStockHandler struct {
	repo domain.StockRepository
}

// NewGetStockHandler creates a new stock lookup handler
func NewGetStockHandler(repo domain.StockRepository) *GetStockHandler {
	return &GetStockHandler{repo: repo}
}

// Handle executes the lookup
func (h *GetStockHandler) Handle(ctx context.Context, q GetStockQuery) ([]domain.StockItem, error) {
	if q.ID != "" {
		item, err := h.repo.FindByID(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		return []domain.StockItem{*item}, nil
	}

	if q.ItemCode == "" {
		return nil, fmt.Errorf("either id or item code is required")
	}
	return h.repo.FindByItemCode(ctx, q.ItemCode)
}
