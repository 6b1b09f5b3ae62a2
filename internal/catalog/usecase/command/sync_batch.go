package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/velmar/catalog-sync/internal/catalog/domain"
	"github.com/velmar/catalog-sync/internal/catalog/metrics"
	"github.com/velmar/catalog-sync/internal/catalog/normalizer"
	"github.com/velmar/catalog-sync/pkg/htmltext"
	"github.com/velmar/catalog-sync/pkg/logger"
)

// SyncBatchCommand carries one raw batch from the external backend.
type SyncBatchCommand struct {
	// Batch is the payload exactly as decoded from the wire; shape
	// validation belongs to the normalizer, not the caller.
	Batch any
}

// SyncBatchResult summarizes one sync run.
type SyncBatchResult struct {
	RunID    string
	Received int
	Accepted int
	Upserted int
	Failed   int
}

// CompletionNotifier is told when a sync run finishes. Implementations
// publish the summary downstream; a nil notifier disables publication.
type CompletionNotifier interface {
	NotifySyncCompleted(ctx context.Context, result SyncBatchResult) error
}

// SyncBatchHandler handles the batch sync command: normalize the raw
// batch, upsert every accepted record, notify completion.
type SyncBatchHandler struct {
	normalizer *normalizer.Normalizer
	repo       domain.StockRepository
	notifier   CompletionNotifier
}

// NewSyncBatchHandler creates a new sync batch handler
func NewSyncBatchHandler(n *normalizer.Normalizer, repo domain.StockRepository, notifier CompletionNotifier) *SyncBatchHandler {
	return &SyncBatchHandler{normalizer: n, repo: repo, notifier: notifier}
}

// Handle executes the sync. Only a malformed batch shape fails the
// whole call; a record that fails its own upsert is logged, counted
// and skipped. Cancellation stops processing between records. Rows
// already upserted stay valid.
func (h *SyncBatchHandler) Handle(ctx context.Context, cmd SyncBatchCommand) (*SyncBatchResult, error) {
	timer := prometheus.NewTimer(metrics.SyncDuration)
	defer timer.ObserveDuration()

	result := &SyncBatchResult{RunID: uuid.NewString()}

	records, err := h.normalizer.Normalize(cmd.Batch)
	if err != nil {
		return nil, fmt.Errorf("batch rejected: %w", err)
	}
	result.Received = normalizer.BatchSize(cmd.Batch)
	result.Accepted = len(records)

	for i := range records {
		if err := ctx.Err(); err != nil {
			logger.Warn(ctx).
				Str("run_id", result.RunID).
				Int("upserted", result.Upserted).
				Msg("Sync cancelled mid-batch; already-upserted rows remain valid")
			return result, err
		}

		record := &records[i]
		record.SearchableText = record.BuildSearchableText(htmltext.Strip(record.Description))

		if _, err := h.repo.Upsert(ctx, record); err != nil {
			result.Failed++
			logger.Error(ctx).
				Err(err).
				Str("run_id", result.RunID).
				Str("item_code", record.ItemCode).
				Str("warehouse", record.WarehouseName).
				Msg("Failed to upsert record, continuing with batch")
			continue
		}
		result.Upserted++
	}

	logger.Info(ctx).
		Str("run_id", result.RunID).
		Int("received", result.Received).
		Int("accepted", result.Accepted).
		Int("upserted", result.Upserted).
		Int("failed", result.Failed).
		Msg("Batch sync finished")

	if h.notifier != nil {
		if err := h.notifier.NotifySyncCompleted(ctx, *result); err != nil {
			logger.Warn(ctx).Err(err).Str("run_id", result.RunID).Msg("Failed to publish sync completion")
		}
	}

	return result, nil
}
