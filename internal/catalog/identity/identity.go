// Package identity derives the stable composite key that deduplicates
// stock rows across locale variants of the same warehouse name.
package identity

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxIDLen is the width of the id column; longer composites are cut.
const MaxIDLen = 512

// maxCanonicalLen matches the warehouse_name_canonical column width.
const maxCanonicalLen = 255

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// unaccent decomposes to NFD, drops combining marks and deletes any
// rune left without an ASCII base letter (ordinal indicators, CJK and
// the like reduce to nothing). The canonicalize_whs SQL function runs
// the same two steps with normalize(..., NFD) and an ASCII strip; this
// chain is the authoritative definition.
var unaccent = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
)

// CanonicalizeWarehouse reduces a warehouse name to its canonical
// comparison form: accents removed, uppercased, every run of characters
// outside [A-Z0-9] collapsed to a single underscore. The function is
// pure, total and idempotent; names differing only by accent, case or
// punctuation collapse to the same token.
func CanonicalizeWarehouse(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	unaccented, _, err := transform.String(unaccent, text)
	if err != nil {
		unaccented = text
	}

	canonical := strings.ToUpper(nonAlnum.ReplaceAllString(unaccented, "_"))
	if len(canonical) > maxCanonicalLen {
		canonical = canonical[:maxCanonicalLen]
	}
	return canonical
}

// ComputeID concatenates the uppercased item code, an underscore and the
// canonical warehouse name, truncated to MaxIDLen characters. The same
// derivation runs inside the set_stock_identity database trigger, so the
// id can never drift from the fields it is built from.
//
// Truncation at a fixed width means two distinct, very long
// (item code, warehouse) pairs can collide on id. Known limitation of
// the source schema, kept for id compatibility.
func ComputeID(itemCode, warehouseNameCanonical string) string {
	id := strings.ToUpper(strings.TrimSpace(itemCode)) + "_" + warehouseNameCanonical
	if len(id) > MaxIDLen {
		id = id[:MaxIDLen]
	}
	return id
}
