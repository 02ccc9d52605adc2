package index

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FallbackCategory holds skills that sit directly in the canonical root.
const FallbackCategory = "misc"

// DefaultIcon is used for categories without an entry in categoryIcons.
const DefaultIcon = "📦"

var categoryIcons = map[string]string{
	"ai":           "🤖",
	"cloud":        "☁️",
	"dev-tools":    "🧪",
	"personal":     "🏠",
	"productivity": "📋",
}

// Icon returns the display icon of a category slug.
func Icon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return DefaultIcon
}

// Title turns a slug into a display name by upper-casing the first letter of
// each hyphen-separated word: "dev-tools" becomes "Dev Tools". The rest of
// each word is left as is.
func Title(slug string) string {
	upper := cases.Upper(language.Und)
	words := strings.Split(slug, "-")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = upper.String(string(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// nameOrder compares display names the way a locale-aware string compare
// does, so "beta" sorts between "Alpha" and "Gamma".
type nameOrder struct {
	c *collate.Collator
}

func newNameOrder() *nameOrder {
	return &nameOrder{c: collate.New(language.Und)}
}

// less orders by collation, then bytewise so equal-collating names stay
// deterministic.
func (o *nameOrder) less(a, b string) bool {
	if cmp := o.c.CompareString(a, b); cmp != 0 {
		return cmp < 0
	}
	return a < b
}
