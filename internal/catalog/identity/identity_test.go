package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeWarehouse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"plain name", "Almacen Principal", "ALMACEN_PRINCIPAL"},
		{"accents removed", "Depósito Central", "DEPOSITO_CENTRAL"},
		{"enye", "Almacén Cañaveral", "ALMACEN_CANAVERAL"},
		{"ordinal indicator dropped", "Depósito Nº1", "DEPOSITO_N1"},
		{"punctuation collapsed", "Deposito (Nro. 1)", "DEPOSITO_NRO_1"},
		{"mixed separators", "sucursal - los.teques", "SUCURSAL_LOS_TEQUES"},
		{"already canonical", "DEPOSITO_CENTRAL", "DEPOSITO_CENTRAL"},
		{"symbols only", "!@#$", "_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalizeWarehouse(tt.raw))
		})
	}
}

func TestCanonicalizeWarehouseIdempotent(t *testing.T) {
	inputs := []string{
		"Depósito Central",
		"sucursal ñandú #2",
		"ALMACEN_PRINCIPAL",
		"  valència  ",
		"!@#$",
	}
	for _, in := range inputs {
		once := CanonicalizeWarehouse(in)
		assert.Equal(t, once, CanonicalizeWarehouse(once), "canon(canon(%q))", in)
	}
}

func TestCanonicalizeWarehouseAccentCaseInsensitive(t *testing.T) {
	assert.Equal(t,
		CanonicalizeWarehouse("Depósito Central"),
		CanonicalizeWarehouse("DEPOSITO CENTRAL"),
	)
	assert.Equal(t,
		CanonicalizeWarehouse("Depósito Nº1"),
		CanonicalizeWarehouse("DEPOSITO_N1"),
	)
}

func TestComputeID(t *testing.T) {
	assert.Equal(t, "X1_DEPOSITO_CENTRAL", ComputeID("X1", "DEPOSITO_CENTRAL"))
	assert.Equal(t, "X1_DEPOSITO_CENTRAL", ComputeID("x1", "DEPOSITO_CENTRAL"))
	assert.Equal(t, "SM-A155M_ALMACEN_1", ComputeID(" sm-a155m ", "ALMACEN_1"))
}

func TestComputeIDTruncation(t *testing.T) {
	longCode := strings.Repeat("A", 600)
	id := ComputeID(longCode, "WHS")
	assert.Len(t, id, MaxIDLen)

	// Distinct long pairs can collide once truncated; the schema accepts
	// this, so the derivation must at least stay deterministic.
	other := ComputeID(longCode, "OTHER")
	assert.Equal(t, id, other)
}
