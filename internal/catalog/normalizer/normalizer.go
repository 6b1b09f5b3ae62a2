// Package normalizer validates and coerces raw product-inventory
// batches into canonical records. One malformed record never aborts a
// batch: errors are recovered at the smallest granularity (field or
// record) and surfaced through logging and metrics only.
package normalizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/velmar/catalog-sync/internal/catalog/domain"
	"github.com/velmar/catalog-sync/internal/catalog/metrics"
)

// ErrInputShape indicates the batch itself is not a sequence of
// records. It is the only batch-fatal condition: nothing is processed.
var ErrInputShape = errors.New("input batch is not a sequence of records")

// Normalizer coerces raw batches into canonical records.
type Normalizer struct {
	log zerolog.Logger
}

// New creates a normalizer writing through the given logger.
func New(log zerolog.Logger) *Normalizer {
	return &Normalizer{log: log}
}

// Normalize validates a raw batch element by element. Records missing
// an item code or warehouse name are rejected; unparseable prices are
// nulled and unparseable or negative stock is coerced to zero, all
// without dropping the record. Accepted records keep their relative
// input order.
//
// The input is typed loosely on purpose: it is whatever the external
// fetcher decoded from JSON. Anything other than a slice fails the
// whole call with ErrInputShape and an empty result.
func (n *Normalizer) Normalize(input any) ([]domain.CanonicalRecord, error) {
	batch, ok := asSlice(input)
	if !ok {
		n.log.Error().Msg("Invalid batch shape: expected a sequence of product records")
		return nil, ErrInputShape
	}

	accepted := make([]domain.CanonicalRecord, 0, len(batch))

	for i, element := range batch {
		raw, ok := asRecord(element)
		if !ok {
			n.log.Warn().Int("index", i).Msg("Skipping non-record batch element")
			metrics.RecordsProcessed.WithLabelValues("skipped").Inc()
			continue
		}

		record := n.coerce(raw)

		if record.ItemCode == "" {
			n.log.Warn().Int("index", i).Msg("Skipping record with missing itemCode")
			metrics.RecordsProcessed.WithLabelValues("rejected").Inc()
			continue
		}
		if record.WarehouseName == "" {
			n.log.Warn().
				Int("index", i).
				Str("item_code", record.ItemCode).
				Msg("Skipping record with missing whsName")
			metrics.RecordsProcessed.WithLabelValues("rejected").Inc()
			continue
		}

		accepted = append(accepted, record)
		metrics.RecordsProcessed.WithLabelValues("accepted").Inc()
	}

	n.log.Info().
		Int("accepted", len(accepted)).
		Int("received", len(batch)).
		Msg("Batch normalization finished")

	return accepted, nil
}

// coerce applies the per-field coercion rules to one raw record.
func (n *Normalizer) coerce(raw domain.RawRecord) domain.CanonicalRecord {
	itemCode := getString(raw, "itemCode")

	record := domain.CanonicalRecord{
		ItemCode:      itemCode,
		ItemName:      getString(raw, "itemName"),
		Description:   getString(raw, "description"),
		Specification: getString(raw, "specification"),
		Category:      getString(raw, "category"),
		SubCategory:   getString(raw, "subCategory"),
		Brand:         getString(raw, "brand"),
		Line:          getString(raw, "line"),
		ItemGroupName: getString(raw, "itemGroupName"),
		WarehouseName: getString(raw, "whsName"),
		BranchName:    getString(raw, "branchName"),
		StoreAddress:  getString(raw, "storeAddress"),
		Source:        raw,
	}

	record.Price = n.parsePrice(raw["price"], "price", itemCode)
	record.PriceSecondary = n.parsePrice(raw["priceSecondary"], "priceSecondary", itemCode)
	record.Stock = n.parseStock(raw["stock"], itemCode)

	return record
}

// parsePrice converts a loosely-typed price into a decimal. Parse
// failure nulls the field, never the record.
func (n *Normalizer) parsePrice(v any, field, itemCode string) *decimal.Decimal {
	if v == nil {
		return nil
	}

	var (
		d   decimal.Decimal
		err error
	)
	switch val := v.(type) {
	case float64:
		d = decimal.NewFromFloat(val)
	case int:
		d = decimal.NewFromInt(int64(val))
	case int64:
		d = decimal.NewFromInt(val)
	case json.Number:
		d, err = decimal.NewFromString(val.String())
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return nil
		}
		d, err = decimal.NewFromString(trimmed)
	case decimal.Decimal:
		d = val
	default:
		err = errors.New("unsupported price type")
	}

	if err != nil {
		n.log.Warn().
			Str("item_code", itemCode).
			Str("field", field).
			Interface("value", v).
			Msg("Unparseable price value, setting to null")
		metrics.CoercionFailures.WithLabelValues(field).Inc()
		return nil
	}
	return &d
}

// parseStock converts a loosely-typed stock count into a non-negative
// int. Failures and negative values coerce to zero with a warning.
func (n *Normalizer) parseStock(v any, itemCode string) int {
	if v == nil {
		return 0
	}

	var (
		stock int
		err   error
	)
	switch val := v.(type) {
	case float64:
		stock = int(val)
	case int:
		stock = val
	case int64:
		stock = int(val)
	case json.Number:
		var i int64
		i, err = val.Int64()
		stock = int(i)
	case string:
		stock, err = strconv.Atoi(strings.TrimSpace(val))
	default:
		err = errors.New("unsupported stock type")
	}

	if err != nil {
		n.log.Warn().
			Str("item_code", itemCode).
			Interface("value", v).
			Msg("Unparseable stock value, treating as 0")
		metrics.CoercionFailures.WithLabelValues("stock").Inc()
		return 0
	}

	if stock < 0 {
		n.log.Warn().
			Str("item_code", itemCode).
			Int("stock", stock).
			Msg("Negative stock value, clamping to 0")
		return 0
	}
	return stock
}

// BatchSize reports how many elements a raw batch carries, before any
// per-record validation. Unrecognized shapes count as zero.
func BatchSize(input any) int {
	batch, ok := asSlice(input)
	if !ok {
		return 0
	}
	return len(batch)
}

func asSlice(input any) ([]any, bool) {
	switch batch := input.(type) {
	case []any:
		return batch, true
	case []domain.RawRecord:
		out := make([]any, len(batch))
		for i, r := range batch {
			out[i] = r
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(batch))
		for i, r := range batch {
			out[i] = r
		}
		return out, true
	case nil:
		return nil, false
	default:
		return nil, false
	}
}

func asRecord(element any) (domain.RawRecord, bool) {
	switch rec := element.(type) {
	case domain.RawRecord:
		return rec, true
	case map[string]any:
		return rec, true
	default:
		return nil, false
	}
}

func getString(raw domain.RawRecord, key string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case json.Number:
		return s.String()
	case float64, int, int64, bool:
		// Scalars stringify; the backend is not strict about types.
		return strings.TrimSpace(fmt.Sprint(s))
	default:
		return ""
	}
}
