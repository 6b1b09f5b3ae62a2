package domain

import (
	"context"
	"errors"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/velmar/catalog-sync/internal/catalog/identity"
)

// EmbeddingDim is the fixed length of the stored embedding vectors.
const EmbeddingDim = 1536

var (
	// ErrNotFound indicates the requested stock row does not exist
	ErrNotFound = errors.New("stock item not found")
	// ErrIdentityMissing indicates item code or warehouse name is empty
	ErrIdentityMissing = errors.New("item code and warehouse name are required")
	// ErrIdentityConflict indicates a uniqueness conflict that survived the
	// upsert retry, which points at a canonicalization bug rather than
	// ordinary write contention
	ErrIdentityConflict = errors.New("conflicting stock identity")
	// ErrDimensionMismatch indicates an embedding of the wrong length
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// StockItem is one persisted row per (item code, warehouse) pair.
type StockItem struct {
	ID                     string           `json:"id" gorm:"primaryKey;type:varchar(512)"`
	ItemCode               string           `json:"item_code" gorm:"type:varchar(64);not null;index"`
	ItemName               string           `json:"item_name" gorm:"type:text;not null"`
	Description            string           `json:"description" gorm:"type:text"`
	Specification          string           `json:"specification" gorm:"type:text"`
	Category               string           `json:"category" gorm:"type:varchar(128);index"`
	SubCategory            string           `json:"sub_category" gorm:"type:varchar(128);index"`
	Brand                  string           `json:"brand" gorm:"type:varchar(128);index"`
	Line                   string           `json:"line" gorm:"type:varchar(128)"`
	ItemGroupName          string           `json:"item_group_name" gorm:"type:varchar(128);index"`
	WarehouseName          string           `json:"warehouse_name" gorm:"type:varchar(255);not null;index"`
	WarehouseNameCanonical string           `json:"warehouse_name_canonical" gorm:"type:varchar(255);not null;index"`
	BranchName             string           `json:"branch_name" gorm:"type:varchar(255);index"`
	StoreAddress           string           `json:"store_address" gorm:"type:text"`
	Price                  *decimal.Decimal `json:"price" gorm:"type:numeric(12,2)"`
	PriceSecondary         *decimal.Decimal `json:"price_secondary" gorm:"type:numeric(12,2)"`
	Stock                  int              `json:"stock" gorm:"not null;default:0"`
	SearchableText         string           `json:"searchable_text" gorm:"type:text"`
	Embedding              *pgvector.Vector `json:"-" gorm:"type:vector(1536)"`
	SourcePayload          datatypes.JSON   `json:"source_payload" gorm:"type:jsonb"`
	CreatedAt              time.Time        `json:"created_at"`
	UpdatedAt              time.Time        `json:"updated_at"`
	DeletedAt              gorm.DeletedAt   `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (StockItem) TableName() string {
	return "stock_items"
}

// IsAvailable checks if the row has sellable stock
func (s *StockItem) IsAvailable() bool {
	return s.Stock > 0
}

// ApplyIdentity recomputes the canonical warehouse name and composite id
// from the current item code and warehouse name. The database trigger
// performs the same derivation on every write; the hook keeps the Go
// struct in agreement without a re-read.
func (s *StockItem) ApplyIdentity() error {
	canonical := identity.CanonicalizeWarehouse(s.WarehouseName)
	if s.ItemCode == "" || canonical == "" {
		return ErrIdentityMissing
	}
	s.WarehouseNameCanonical = canonical
	s.ID = identity.ComputeID(s.ItemCode, canonical)
	return nil
}

// BeforeSave recomputes derived identity fields before any write.
func (s *StockItem) BeforeSave(tx *gorm.DB) error {
	return s.ApplyIdentity()
}

// SearchFilter narrows a similarity search with equality filters.
type SearchFilter struct {
	WarehouseNames []string
	Category       string
	SubCategory    string
	Brand          string
	InStockOnly    bool
	// MinSimilarity drops results whose cosine similarity to the query
	// falls below the threshold. Zero disables the cut-off.
	MinSimilarity float64
}

// StockRepository defines the contract for stock data access
type StockRepository interface {
	Upsert(ctx context.Context, record *CanonicalRecord) (*StockItem, error)
	SetEmbedding(ctx context.Context, id string, embedding []float32) error
	SearchBySimilarity(ctx context.Context, query []float32, k int, filter SearchFilter) ([]StockItem, error)

	FindByID(ctx context.Context, id string) (*StockItem, error)
	FindByItemCode(ctx context.Context, itemCode string) ([]StockItem, error)
	FindByCategory(ctx context.Context, category string, limit, offset int) ([]StockItem, error)
	FindByWarehouse(ctx context.Context, warehouseName string, limit, offset int) ([]StockItem, error)
	FindByBranch(ctx context.Context, branchName string, limit, offset int) ([]StockItem, error)
	FindBrandsByCategory(ctx context.Context, subCategory string) ([]string, error)
	FindAll(ctx context.Context, limit, offset int) ([]StockItem, error)
	Count(ctx context.Context) (int64, error)
}
