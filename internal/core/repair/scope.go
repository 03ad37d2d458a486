package repair

import (
	"regexp"

	"github.com/utilfix/go_class_repair/internal/core/rules"
)

// attrRegion matches class-like attribute values: double- or single-quoted
// HTML/JSX attributes and JSX template-literal expressions. The generic
// fallback rules only ever run inside these regions when scoped mode is on.
var attrRegion = regexp.MustCompile("(?:className|class)\\s*=\\s*(?:\"[^\"]*\"|'[^']*'|\\{`[^`]*`\\})")

// applyScopedFallback runs the catalog's generic rules inside each
// recognized attribute-value region, leaving all surrounding text untouched.
func applyScopedFallback(catalog rules.Catalog, text string) (string, int) {
	total := 0
	out := attrRegion.ReplaceAllStringFunc(text, func(region string) string {
		repaired, n := catalog.ApplyGeneric(region)
		total += n
		return repaired
	})
	if total == 0 {
		return text, 0
	}
	return out, total
}
