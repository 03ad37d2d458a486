package rules

import (
	"strings"
	"testing"
)

func TestCatalogCompileRejectsMalformedPattern(t *testing.T) {
	catalog := Catalog{
		{Pattern: `px - 2`, Replacement: `px-2`},
		{Pattern: `[unclosed`, Replacement: `x`},
	}
	err := catalog.Compile()
	if err == nil {
		t.Fatal("expected compile error for malformed pattern")
	}
	if !strings.Contains(err.Error(), "[unclosed") {
		t.Errorf("error should name the offending pattern, got: %v", err)
	}
}

func TestCatalogCompileRejectsEmptyCatalog(t *testing.T) {
	if err := (Catalog{}).Compile(); err == nil {
		t.Fatal("expected error for empty catalog")
	}
}

func TestRuleApplyCountsReplacements(t *testing.T) {
	catalog := Catalog{
		{Pattern: `px - `, Replacement: `px-`},
	}
	if err := catalog.Compile(); err != nil {
		t.Fatal(err)
	}

	out, n := catalog.Apply("px - 2 px - 4 px - 6")
	if out != "px-2 px-4 px-6" {
		t.Errorf("unexpected output: %q", out)
	}
	if n != 3 {
		t.Errorf("expected 3 replacements, got %d", n)
	}
}

func TestApplyNoMatchIsNoOp(t *testing.T) {
	catalog := Catalog{
		{Pattern: `px - `, Replacement: `px-`},
	}
	if err := catalog.Compile(); err != nil {
		t.Fatal(err)
	}

	in := "nothing to fix here"
	out, n := catalog.Apply(in)
	if out != in {
		t.Errorf("no-op input was altered: %q", out)
	}
	if n != 0 {
		t.Errorf("expected 0 replacements, got %d", n)
	}
}

func TestApplyFilteredSeparatesRuleClasses(t *testing.T) {
	catalog := Catalog{
		{Pattern: `px - `, Replacement: `px-`},
		{Pattern: `([a-z]+) - ([a-z]+)`, Replacement: `${1}-${2}`, Generic: true},
	}
	if err := catalog.Compile(); err != nil {
		t.Fatal(err)
	}

	in := "px - 2 foo - bar"

	out, _ := catalog.ApplySpecific(in)
	if out != "px-2 foo - bar" {
		t.Errorf("specific pass: got %q", out)
	}

	out, _ = catalog.ApplyGeneric(in)
	if out != "px - 2 foo-bar" {
		t.Errorf("generic pass: got %q", out)
	}
}

func TestApplyGenericRunsToFixpoint(t *testing.T) {
	// Non-overlapping matching consumes "foo - bar" and leaves " - baz"
	// behind, so a single pass is not enough for chained tokens.
	catalog := Catalog{
		{Pattern: `\b([a-z]+) - ([a-z]+)\b`, Replacement: `${1}-${2}`, Generic: true},
	}
	if err := catalog.Compile(); err != nil {
		t.Fatal(err)
	}

	out, n := catalog.ApplyGeneric("foo - bar - baz")
	if out != "foo-bar-baz" {
		t.Errorf("chained token not fully joined: %q", out)
	}
	if n != 2 {
		t.Errorf("expected 2 replacements across passes, got %d", n)
	}

	out, n = catalog.ApplyGeneric("a - b - c - d")
	if out != "a-b-c-d" {
		t.Errorf("four-segment chain not fully joined: %q", out)
	}
	if n != 3 {
		t.Errorf("expected 3 replacements across passes, got %d", n)
	}
}

func TestRulesRunInDeclarationOrder(t *testing.T) {
	// The second rule matches residue produced by the first.
	catalog := Catalog{
		{Pattern: `a - b`, Replacement: `a-b`},
		{Pattern: `a-b - c`, Replacement: `a-b-c`},
	}
	if err := catalog.Compile(); err != nil {
		t.Fatal(err)
	}

	out, _ := catalog.Apply("a - b - c")
	if out != "a-b-c" {
		t.Errorf("rules must see cumulative output of prior rules, got %q", out)
	}
}
