package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The SQL canonicalizer must apply the same steps in the same order as
// identity.CanonicalizeWarehouse: NFD decomposition first, then the
// ASCII strip, then the alphanumeric collapse. A transliterating
// function like unaccent would turn characters such as the ordinal
// indicator into ASCII letters before the strip could delete them, and
// trigger-written ids would drift from the ones Go computes.
func TestCanonicalizeWhsSQLMatchesGoDerivationOrder(t *testing.T) {
	decompose := strings.Index(canonicalizeWhsSQL, "normalize(")
	asciiStrip := strings.Index(canonicalizeWhsSQL, "[^[:ascii:]]")
	collapse := strings.Index(canonicalizeWhsSQL, "[^A-Za-z0-9]+")

	require.NotEqual(t, -1, decompose, "canonicalize_whs must NFD-decompose its input")
	require.NotEqual(t, -1, asciiStrip, "canonicalize_whs must delete non-ASCII characters")
	require.NotEqual(t, -1, collapse, "canonicalize_whs must collapse non-alphanumeric runs")

	assert.Less(t, decompose, asciiStrip)
	assert.Less(t, asciiStrip, collapse)
	assert.NotContains(t, canonicalizeWhsSQL, "unaccent")
}

func TestUpsertAssignmentsResurrectSoftDeletedRows(t *testing.T) {
	set := upsertAssignments()

	values := make(map[string]any, len(set))
	for _, a := range set {
		values[a.Column.Name] = a.Value
	}

	value, ok := values["deleted_at"]
	require.True(t, ok, "conflict update must reset deleted_at")
	assert.Nil(t, value)
}

func TestUpsertAssignmentsLeaveEmbeddingAndTimestampsAlone(t *testing.T) {
	for _, a := range upsertAssignments() {
		assert.NotContains(t, []string{"id", "embedding", "created_at", "updated_at"}, a.Column.Name)
	}
}
