package rules

import "strings"

// multiSegmentFamilies are utility-class family prefixes that themselves
// contain a hyphen. They must be repaired before the single-segment families
// below, otherwise a shorter family rule collapses them into an incorrect
// two-segment form (e.g. "bg - gradient - to - br" must not stop at
// "bg-gradient").
var multiSegmentFamilies = []string{
	"bg-gradient-to",
	"backdrop-blur",
	"drop-shadow",
	"pointer-events",
	"min-w",
	"min-h",
	"max-w",
	"max-h",
	"translate-x",
	"translate-y",
	"col-span",
}

// singleSegmentFamilies are the short alphabetic family prefixes observed
// corrupted in the wild, ordered roughly by how often they appear.
var singleSegmentFamilies = []string{
	"px", "py", "pt", "pb", "pl", "pr",
	"mt", "mb", "ml", "mr", "mx", "my",
	"gap", "inset", "z", "opacity",
	"duration", "delay", "ease", "animate", "transition",
	"text", "font", "bg", "border", "rounded",
	"tracking", "leading", "whitespace",
	"flex", "items", "justify", "self", "col", "grid", "object",
	"overflow", "shadow", "blur", "scale", "rotate", "translate",
	"snap", "shrink",
	"w", "h",
}

// familyRule builds the repair rule for one family prefix. The pattern
// tolerates partial corruption inside multi-segment prefixes ("min-w - 0" and
// "min - w - 0" both resolve to "min-w-0") and is boundary-guarded so that a
// short family like "w" never matches inside a longer word.
func familyRule(family string) Rule {
	return Rule{
		Pattern:     `\b` + strings.ReplaceAll(family, "-", `(?: - |-)`) + ` - `,
		Replacement: family + "-",
	}
}

// DefaultCatalog returns the ordered rule catalog for utility-class repair.
// It is the single source of truth for the corruption patterns: literal
// multi-segment rules first, then family-prefix rules, then the generic
// fallbacks that catch residue the earlier rules leave behind. The catalog is
// idempotent: repaired tokens contain no spaced hyphen and match no rule on a
// second pass.
func DefaultCatalog() Catalog {
	catalog := make(Catalog, 0, len(multiSegmentFamilies)+len(singleSegmentFamilies)+4)

	// Three-segment color-scale tokens (e.g. "text - slate - 400") are fixed
	// verbatim before the family rules leave them half-joined.
	catalog = append(catalog, Rule{
		Pattern:     `\b(text|bg|border)(?: - |-)([a-z]+) - ([0-9]{2,3})\b`,
		Replacement: `${1}-${2}-${3}`,
	})

	for _, family := range multiSegmentFamilies {
		catalog = append(catalog, familyRule(family))
	}
	for _, family := range singleSegmentFamilies {
		catalog = append(catalog, familyRule(family))
	}

	// Generic fallbacks. Declared last so that every specific rule has run
	// first; they catch families not enumerated above and residue such as
	// "text-slate - 400". The word-number rule accepts decimal and fraction
	// qualifiers ("py - 1.5", "translate - 1/2").
	catalog = append(catalog,
		Rule{
			Pattern:     `\b([a-z]+) - ([0-9]+(?:\.[0-9]+)?(?:/[0-9]+)?)\b`,
			Replacement: `${1}-${2}`,
			Generic:     true,
		},
		Rule{
			Pattern:     `\b([a-z]+) - ([a-z]+)\b`,
			Replacement: `${1}-${2}`,
			Generic:     true,
		},
		// Fraction/opacity separator: "border-white / 10" -> "border-white/10".
		Rule{
			Pattern:     `([a-z0-9\]]) / ([0-9])`,
			Replacement: `${1}/${2}`,
			Generic:     true,
		},
	)

	return catalog
}
