package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// RawRecord is one loosely-typed product record as delivered by the
// external retail backend. Any field may be missing or malformed.
type RawRecord map[string]any

// CanonicalRecord is the validated, type-coerced form of a raw record.
// A canonical record always carries a non-empty item code and warehouse
// name; everything else defaults rather than fails.
type CanonicalRecord struct {
	ItemCode       string
	ItemName       string
	Description    string
	Specification  string
	Category       string
	SubCategory    string
	Brand          string
	Line           string
	ItemGroupName  string
	WarehouseName  string
	BranchName     string
	StoreAddress   string
	Price          *decimal.Decimal
	PriceSecondary *decimal.Decimal
	Stock          int

	// SearchableText is the sanitized embedding source, assembled by
	// the sync pipeline once the description has been stripped of
	// markup. Empty until then.
	SearchableText string

	// Source keeps the originating raw record verbatim for audit.
	Source RawRecord
}

// SourceJSON renders the originating raw record as a JSONB payload.
// Marshal failures yield a null payload; the record itself is still
// persisted.
func (r *CanonicalRecord) SourceJSON() datatypes.JSON {
	if r.Source == nil {
		return nil
	}
	raw, err := json.Marshal(r.Source)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
