package repository

import (
	"context"
	"fmt"

	"github.com/velmar/catalog-sync/internal/catalog/domain"
	"github.com/velmar/catalog-sync/pkg/logger"
)

// canonicalizeWhsSQL is the database-side twin of
// identity.CanonicalizeWarehouse; the Go chain is authoritative and
// this function must stay in lockstep with it: NFD-decompose, delete
// every non-ASCII character (combining marks and characters without an
// ASCII base alike), collapse the rest. unaccent must not be used here:
// it transliterates characters such as the ordinal indicator into
// ASCII letters, which the Go chain deletes instead. Declared
// IMMUTABLE so it is usable in index expressions.
const canonicalizeWhsSQL = `
CREATE OR REPLACE FUNCTION canonicalize_whs(text) RETURNS text
LANGUAGE sql IMMUTABLE STRICT AS $$
  SELECT upper(
           regexp_replace(
             regexp_replace(normalize(btrim($1), NFD), '[^[:ascii:]]', '', 'g'),
             '[^A-Za-z0-9]+',
             '_',
             'g'
           )
         )
$$;`

// setStockIdentitySQL recomputes the derived identity columns before
// any write that touches item_code or warehouse_name, so the id can
// never drift from the fields it is built from regardless of which
// client performed the write.
const setStockIdentitySQL = `
CREATE OR REPLACE FUNCTION set_stock_identity() RETURNS trigger
LANGUAGE plpgsql AS $$
BEGIN
  NEW.warehouse_name_canonical := left(canonicalize_whs(NEW.warehouse_name), 255);
  NEW.id := left(upper(btrim(NEW.item_code)) || '_' || NEW.warehouse_name_canonical, 512);
  RETURN NEW;
END
$$;`

const touchUpdatedAtSQL = `
CREATE OR REPLACE FUNCTION touch_updated_at() RETURNS trigger
LANGUAGE plpgsql AS $$
BEGIN
  NEW.updated_at := now();
  RETURN NEW;
END
$$;`

// migrationDDL runs after AutoMigrate. Ordering matters: extensions
// first, then functions, then triggers and indexes over the table.
var migrationDDL = []string{
	canonicalizeWhsSQL,
	setStockIdentitySQL,
	touchUpdatedAtSQL,

	`DROP TRIGGER IF EXISTS trg_set_stock_identity ON stock_items;`,
	`CREATE TRIGGER trg_set_stock_identity
	   BEFORE INSERT OR UPDATE OF item_code, warehouse_name ON stock_items
	   FOR EACH ROW EXECUTE FUNCTION set_stock_identity();`,

	`DROP TRIGGER IF EXISTS trg_touch_updated_at ON stock_items;`,
	`CREATE TRIGGER trg_touch_updated_at
	   BEFORE UPDATE ON stock_items
	   FOR EACH ROW EXECUTE FUNCTION touch_updated_at();`,

	// Unique among live rows only, so a soft-deleted row does not block
	// re-creation of the same identity.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_item_code_per_whs_canonical
	   ON stock_items (lower(item_code), warehouse_name_canonical)
	   WHERE deleted_at IS NULL;`,

	// Approximate nearest-neighbor index for cosine search.
	`CREATE INDEX IF NOT EXISTS idx_stock_items_embedding_hnsw
	   ON stock_items USING hnsw (embedding vector_cosine_ops);`,
}

// Migrate creates the schema, the identity triggers and the search
// indexes. Safe to run repeatedly.
func (r *GormStockRepository) Migrate(ctx context.Context) error {
	db := r.db.WithContext(ctx)

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS vector;`).Error; err != nil {
		return fmt.Errorf("failed to create extension: %w", err)
	}

	if err := db.AutoMigrate(&domain.StockItem{}); err != nil {
		return fmt.Errorf("failed to migrate stock_items: %w", err)
	}

	for _, ddl := range migrationDDL {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("failed to apply catalog DDL: %w", err)
		}
	}

	logger.Logger.Info().Msg("Catalog schema migrated")
	return nil
}
