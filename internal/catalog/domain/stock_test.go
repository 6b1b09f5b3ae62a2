package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyIdentity(t *testing.T) {
	item := &StockItem{ItemCode: "x1", WarehouseName: "Depósito Central"}
	require.NoError(t, item.ApplyIdentity())
	assert.Equal(t, "DEPOSITO_CENTRAL", item.WarehouseNameCanonical)
	assert.Equal(t, "X1_DEPOSITO_CENTRAL", item.ID)
}

func TestApplyIdentityRecomputesAfterRename(t *testing.T) {
	item := &StockItem{ItemCode: "X1", WarehouseName: "Almacén Norte"}
	require.NoError(t, item.ApplyIdentity())
	first := item.ID

	item.WarehouseName = "Almacén Sur"
	require.NoError(t, item.ApplyIdentity())
	assert.NotEqual(t, first, item.ID)
	assert.Equal(t, "X1_ALMACEN_SUR", item.ID)
}

func TestApplyIdentityRequiresIdentityFields(t *testing.T) {
	assert.ErrorIs(t, (&StockItem{WarehouseName: "W1"}).ApplyIdentity(), ErrIdentityMissing)
	assert.ErrorIs(t, (&StockItem{ItemCode: "X1"}).ApplyIdentity(), ErrIdentityMissing)
}

func TestIsAvailable(t *testing.T) {
	assert.True(t, (&StockItem{Stock: 3}).IsAvailable())
	assert.False(t, (&StockItem{Stock: 0}).IsAvailable())
}

func TestBuildSearchableText(t *testing.T) {
	price := decimal.RequireFromString("159.99")
	rec := &CanonicalRecord{
		ItemCode:      "SM-A155M",
		ItemName:      "Samsung Galaxy A15",
		Brand:         "SAMSUNG",
		Category:      "TECNO",
		SubCategory:   "CELULAR",
		WarehouseName: "Almacén Norte",
		BranchName:    "Sucursal Centro",
		Price:         &price,
	}

	text := rec.BuildSearchableText("pantalla amoled de 6.5")
	assert.Equal(t,
		"samsung samsung galaxy a15 pantalla amoled de 6.5 tecno celular warehouse: almacén norte branch: sucursal centro",
		text,
	)
}

func TestBuildSearchableTextSkipsRedundantBranch(t *testing.T) {
	rec := &CanonicalRecord{
		ItemName:      "Nevera",
		WarehouseName: "Sucursal Centro",
		BranchName:    "Sucursal Centro",
	}
	text := rec.BuildSearchableText("")
	assert.Equal(t, "nevera warehouse: sucursal centro", text)
}

func TestSourceJSON(t *testing.T) {
	rec := &CanonicalRecord{Source: RawRecord{"itemCode": "X1", "stock": float64(3)}}
	payload := rec.SourceJSON()
	require.NotNil(t, payload)
	assert.JSONEq(t, `{"itemCode":"X1","stock":3}`, string(payload))

	assert.Nil(t, (&CanonicalRecord{}).SourceJSON())
}
