package command

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velmar/catalog-sync/internal/catalog/domain"
	"github.com/velmar/catalog-sync/internal/catalog/normalizer"
)

// fakeStockRepository keeps rows in a map keyed by composite id, which
// reproduces the store's uniqueness semantics without a database.
type fakeStockRepository struct {
	rows    map[string]*domain.StockItem
	order   []string
	failFor map[string]error
}

func newFakeStockRepository() *fakeStockRepository {
	return &fakeStockRepository{
		rows:    make(map[string]*domain.StockItem),
		failFor: make(map[string]error),
	}
}

func (f *fakeStockRepository) Upsert(ctx context.Context, record *domain.CanonicalRecord) (*domain.StockItem, error) {
	item := &domain.StockItem{
		ItemCode:       record.ItemCode,
		ItemName:       record.ItemName,
		WarehouseName:  record.WarehouseName,
		Stock:          record.Stock,
		Price:          record.Price,
		SearchableText: record.SearchableText,
	}
	if err := item.ApplyIdentity(); err != nil {
		return nil, err
	}
	if err, ok := f.failFor[record.ItemCode]; ok {
		return nil, err
	}
	if _, exists := f.rows[item.ID]; !exists {
		f.order = append(f.order, item.ID)
	}
	f.rows[item.ID] = item
	return item, nil
}

func (f *fakeStockRepository) SetEmbedding(ctx context.Context, id string, embedding []float32) error {
	item, ok := f.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	_ = item
	return nil
}

func (f *fakeStockRepository) SearchBySimilarity(ctx context.Context, query []float32, k int, filter domain.SearchFilter) ([]domain.StockItem, error) {
	return nil, nil
}

func (f *fakeStockRepository) FindByID(ctx context.Context, id string) (*domain.StockItem, error) {
	item, ok := f.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (f *fakeStockRepository) FindByItemCode(ctx context.Context, itemCode string) ([]domain.StockItem, error) {
	return nil, nil
}

func (f *fakeStockRepository) FindByCategory(ctx context.Context, category string, limit, offset int) ([]domain.StockItem, error) {
	return nil, nil
}

func (f *fakeStockRepository) FindByWarehouse(ctx context.Context, warehouseName string, limit, offset int) ([]domain.StockItem, error) {
	return nil, nil
}

func (f *fakeStockRepository) FindByBranch(ctx context.Context, branchName string, limit, offset int) ([]domain.StockItem, error) {
	return nil, nil
}

func (f *fakeStockRepository) FindBrandsByCategory(ctx context.Context, subCategory string) ([]string, error) {
	return nil, nil
}

func (f *fakeStockRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.StockItem, error) {
	return nil, nil
}

func (f *fakeStockRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(f.rows)), nil
}

type recordingNotifier struct {
	results []SyncBatchResult
}

func (n *recordingNotifier) NotifySyncCompleted(ctx context.Context, result SyncBatchResult) error {
	n.results = append(n.results, result)
	return nil
}

func newTestHandler(repo domain.StockRepository, notifier CompletionNotifier) *SyncBatchHandler {
	return NewSyncBatchHandler(normalizer.New(zerolog.Nop()), repo, notifier)
}

func TestSyncBatchRejectsMalformedBatchShape(t *testing.T) {
	repo := newFakeStockRepository()
	h := newTestHandler(repo, nil)

	_, err := h.Handle(context.Background(), SyncBatchCommand{Batch: "not a batch"})
	assert.ErrorIs(t, err, normalizer.ErrInputShape)
	assert.Empty(t, repo.rows)
}

func TestSyncBatchCollapsesCanonicallyEqualIdentities(t *testing.T) {
	repo := newFakeStockRepository()
	notifier := &recordingNotifier{}
	h := newTestHandler(repo, notifier)

	// Records one and three collide on the canonical identity, record
	// two lacks an item code.
	result, err := h.Handle(context.Background(), SyncBatchCommand{Batch: []any{
		map[string]any{"itemCode": "X1", "whsName": "Depósito Nº1", "stock": "10", "price": "5.00"},
		map[string]any{"itemCode": "", "whsName": "W2"},
		map[string]any{"itemCode": "X1", "whsName": "DEPOSITO_N1", "stock": "-3"},
	}})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Received)
	assert.Equal(t, 2, result.Accepted)
	assert.Equal(t, 2, result.Upserted)
	assert.Equal(t, 0, result.Failed)

	require.Len(t, repo.rows, 1)
	row := repo.rows["X1_DEPOSITO_N1"]
	require.NotNil(t, row)
	// Last write wins: the second upsert carried the clamped stock.
	assert.Equal(t, 0, row.Stock)

	require.Len(t, notifier.results, 1)
	assert.Equal(t, result.RunID, notifier.results[0].RunID)
}

func TestSyncBatchUpsertsDistinctWarehousesSeparately(t *testing.T) {
	repo := newFakeStockRepository()
	h := newTestHandler(repo, nil)

	result, err := h.Handle(context.Background(), SyncBatchCommand{Batch: []any{
		map[string]any{"itemCode": "X1", "whsName": "Almacén Norte", "stock": float64(5)},
		map[string]any{"itemCode": "X1", "whsName": "Almacén Sur", "stock": float64(2)},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Upserted)
	assert.Len(t, repo.rows, 2)
}

func TestSyncBatchCountsReceivedForTypedBatches(t *testing.T) {
	repo := newFakeStockRepository()
	h := newTestHandler(repo, nil)

	// A batch decoded to the concrete record type must still report the
	// full received count, not just the accepted one.
	result, err := h.Handle(context.Background(), SyncBatchCommand{Batch: []domain.RawRecord{
		{"itemCode": "X1", "whsName": "W1"},
		{"itemCode": "", "whsName": "W1"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Received)
	assert.Equal(t, 1, result.Accepted)
	assert.Equal(t, 1, result.Upserted)
}

func TestSyncBatchContinuesPastFailedUpsert(t *testing.T) {
	repo := newFakeStockRepository()
	repo.failFor["BAD"] = errors.New("storage unavailable")
	h := newTestHandler(repo, nil)

	result, err := h.Handle(context.Background(), SyncBatchCommand{Batch: []any{
		map[string]any{"itemCode": "BAD", "whsName": "W1"},
		map[string]any{"itemCode": "OK", "whsName": "W1"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Upserted)
	assert.Len(t, repo.rows, 1)
}

func TestSyncBatchBuildsSearchableText(t *testing.T) {
	repo := newFakeStockRepository()
	h := newTestHandler(repo, nil)

	_, err := h.Handle(context.Background(), SyncBatchCommand{Batch: []any{
		map[string]any{
			"itemCode":    "X1",
			"itemName":    "Galaxy A15",
			"brand":       "SAMSUNG",
			"description": "<p>Pantalla  AMOLED</p>",
			"whsName":     "Almacén Norte",
		},
	}})
	require.NoError(t, err)

	row := repo.rows["X1_ALMACEN_NORTE"]
	require.NotNil(t, row)
	assert.Contains(t, row.SearchableText, "samsung")
	assert.Contains(t, row.SearchableText, "galaxy a15")
	assert.Contains(t, row.SearchableText, "pantalla amoled")
	assert.Contains(t, row.SearchableText, "warehouse: almacén norte")
	assert.NotContains(t, row.SearchableText, "<p>")
}

func TestSyncBatchStopsOnCancelledContext(t *testing.T) {
	repo := newFakeStockRepository()
	h := newTestHandler(repo, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := h.Handle(ctx, SyncBatchCommand{Batch: []any{
		map[string]any{"itemCode": "X1", "whsName": "W1"},
	}})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Equal(t, 0, result.Upserted)
	assert.Empty(t, repo.rows)
}
