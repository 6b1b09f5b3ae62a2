package domain

import "strings"

// BuildSearchableText assembles the lowercased plain-text content the
// embedding is computed from: descriptive fields first, then location
// context so proximity queries have something to latch onto.
// plainDescription is the sanitized, markup-free form of the record's
// description; the caller owns the sanitization.
func (r *CanonicalRecord) BuildSearchableText(plainDescription string) string {
	var parts []string
	add := func(text string) {
		if c := strings.ToLower(strings.TrimSpace(text)); c != "" {
			parts = append(parts, c)
		}
	}

	add(r.Brand)
	add(r.ItemName)
	add(plainDescription)
	add(r.Category)
	add(r.SubCategory)
	add(r.ItemGroupName)
	add(r.Line)
	add(r.Specification)

	var location []string
	if whs := strings.ToLower(strings.TrimSpace(r.WarehouseName)); whs != "" {
		location = append(location, "warehouse: "+whs)
		if branch := strings.ToLower(strings.TrimSpace(r.BranchName)); branch != "" && branch != whs {
			location = append(location, "branch: "+branch)
		}
	}
	if addr := strings.ToLower(strings.TrimSpace(r.StoreAddress)); addr != "" {
		location = append(location, "address: "+addr)
	}
	if len(location) > 0 {
		add(strings.Join(location, " "))
	}

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
