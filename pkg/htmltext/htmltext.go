// Package htmltext converts HTML fragments into normalized plain text.
package htmltext

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// Strip removes all markup from the input and collapses internal
// whitespace to single spaces. Empty input yields an empty string;
// the function never fails.
func Strip(markup string) string {
	if markup == "" {
		return ""
	}

	// Insert separators so text from adjacent block elements does not
	// run together once the tags are removed.
	replacer := strings.NewReplacer(
		"<br>", " ", "<br/>", " ", "<br />", " ",
		"</p>", " ", "</div>", " ", "</li>", " ",
		"</h1>", " ", "</h2>", " ", "</h3>", " ",
		"</tr>", " ", "</td>", " ",
	)
	separated := replacer.Replace(markup)

	text := stripPolicy.Sanitize(separated)
	text = html.UnescapeString(text)

	return strings.Join(strings.Fields(text), " ")
}
