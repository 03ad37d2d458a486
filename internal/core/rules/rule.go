// Package rules defines the ordered catalog of corruption patterns repaired
// by the engine. A rule pairs a regular expression with its corrected form.
// Declaration order matters: later rules run against the cumulative output of
// earlier ones, so broad fallback rules must be declared after the literal
// rules they would otherwise pre-empt.
package rules

import (
	"errors"
	"fmt"
	"regexp"
)

// Rule is an ordered pair of a corruption pattern and its corrected form.
type Rule struct {
	// Pattern is the regular expression source matching the corrupted text.
	Pattern string
	// Replacement is the corrected form. Capture groups are referenced as
	// ${1}, ${2}, ...
	Replacement string
	// Generic marks broad fallback rules (word-hyphen-word joining, slash
	// separators) that may be confined to attribute-value regions when the
	// engine runs in scoped mode.
	Generic bool

	re *regexp.Regexp
}

// compile validates and caches the rule's pattern.
func (r *Rule) compile() error {
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return fmt.Errorf("rule %q: %w", r.Pattern, err)
	}
	r.re = re
	return nil
}

// apply replaces every non-overlapping occurrence of the rule's pattern in
// text and returns the result with the number of substitutions made.
func (r *Rule) apply(text string) (string, int) {
	n := 0
	out := r.re.ReplaceAllStringFunc(text, func(m string) string {
		n++
		return r.re.ReplaceAllString(m, r.Replacement)
	})
	if n == 0 {
		return text, 0
	}
	return out, n
}

// Catalog is an ordered list of rules applied sequentially.
type Catalog []Rule

// Compile validates every rule in the catalog. Malformed patterns are a
// static error: they surface here, once, never during a repair pass.
func (c Catalog) Compile() error {
	if len(c) == 0 {
		return errors.New("catalog must contain at least one rule")
	}
	for i := range c {
		if err := c[i].compile(); err != nil {
			return err
		}
	}
	return nil
}

// Apply runs the specific rules in declaration order, then the generic
// fallbacks to a fixpoint. Each rule operates on the cumulative output of
// all prior rules.
func (c Catalog) Apply(text string) (string, int) {
	out, specific := c.ApplySpecific(text)
	out, generic := c.ApplyGeneric(out)
	return out, specific + generic
}

// ApplySpecific runs only the non-generic rules, in declaration order.
func (c Catalog) ApplySpecific(text string) (string, int) {
	return c.applyFiltered(text, false)
}

// ApplyGeneric runs the generic fallback rules repeatedly until a pass makes
// no further replacement. A single pass is not enough: matching is
// non-overlapping, so a chained token like "foo - bar - baz" leaves its tail
// for the next pass. The loop is bounded by the input length, which every
// productive pass of a shrinking rule strictly reduces.
func (c Catalog) ApplyGeneric(text string) (string, int) {
	total := 0
	for i := 0; i <= len(text); i++ {
		out, n := c.applyFiltered(text, true)
		total += n
		if n == 0 || out == text {
			return out, total
		}
		text = out
	}
	return text, total
}

func (c Catalog) applyFiltered(text string, generic bool) (string, int) {
	total := 0
	for i := range c {
		if c[i].Generic != generic {
			continue
		}
		var n int
		text, n = c[i].apply(text)
		total += n
	}
	return text, total
}
