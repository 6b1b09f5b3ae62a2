package kafka

import (
	"time"

	"github.com/velmar/catalog-sync/internal/catalog/domain"
)

// StockSyncRequestedEvent carries one raw product-inventory batch from
// the external backend, asking the catalog to normalize and upsert it.
type StockSyncRequestedEvent struct {
	EventID   string             `json:"event_id"`
	EventType string             `json:"event_type"`
	Source    string             `json:"source"`
	Records   []domain.RawRecord `json:"records"`
	Timestamp time.Time          `json:"timestamp"`
}

// StockSyncCompletedEvent summarizes one finished sync run.
type StockSyncCompletedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	RunID     string    `json:"run_id"`
	Received  int       `json:"received"`
	Accepted  int       `json:"accepted"`
	Upserted  int       `json:"upserted"`
	Failed    int       `json:"failed"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeStockSyncRequested = "stock.sync.requested"
	EventTypeStockSyncCompleted = "stock.sync.completed"
)

// Kafka topics
const (
	TopicStockSyncRequests = "stock-sync-requests"
	TopicStockSyncResults  = "stock-sync-results"
)
