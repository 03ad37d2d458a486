package domain

// Result holds the outcome of a repair pass.
type Result struct {
	Name string
	// Output is the fully transformed text.
	Output string
	// Changed reports whether Output differs from the input by content
	// equality. Length comparison is not sufficient: a rule may substitute
	// equal-length text.
	Changed bool
	// Replacements is the total number of substitutions performed across
	// all rules.
	Replacements int
	// OriginalSize and RepairedSize are byte lengths, for reporting.
	OriginalSize int
	RepairedSize int
	// Details holds additional diagnostic information.
	Details map[string]interface{}
}
