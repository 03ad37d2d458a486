// class_repair_test.go
package classrepair

import (
	"testing"

	"github.com/utilfix/go_class_repair/internal/core/rules"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		changed bool
	}{
		{
			name:    "corrupted utility classes",
			in:      `className="px - 2 py - 1.5 rounded - lg"`,
			want:    `className="px-2 py-1.5 rounded-lg"`,
			changed: true,
		},
		{
			name:    "multi-segment token",
			in:      "bg - gradient - to - br",
			want:    "bg-gradient-to-br",
			changed: true,
		},
		{
			name:    "fraction separator",
			in:      "border-white / 10",
			want:    "border-white/10",
			changed: true,
		},
		{
			name:    "chained generic tokens",
			in:      "foo - bar - baz",
			want:    "foo-bar-baz",
			changed: true,
		},
		{
			name:    "clean input",
			in:      `className="px-2 py-1.5 rounded-lg"`,
			want:    `className="px-2 py-1.5 rounded-lg"`,
			changed: false,
		},
		{
			name:    "empty input",
			in:      "",
			want:    "",
			changed: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, changed, err := Normalize(tc.in, rules.DefaultCatalog())
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if changed != tc.changed {
				t.Errorf("expected changed=%v, got %v", tc.changed, changed)
			}
		})
	}
}

func TestNormalizeRejectsMalformedCatalog(t *testing.T) {
	catalog := rules.Catalog{
		{Pattern: `(bad`, Replacement: `x`},
	}
	out, changed, err := Normalize("text", catalog)
	if err == nil {
		t.Fatal("expected error for malformed catalog")
	}
	if out != "text" || changed {
		t.Error("failed normalize must return the input unchanged")
	}
}

func TestRepairWithDefaults(t *testing.T) {
	result := RepairWithDefaults(`snap - start shrink - 0 w - full`)
	if result.Output != "snap-start shrink-0 w-full" {
		t.Errorf("unexpected output: %q", result.Output)
	}
	if !result.Changed {
		t.Error("expected changed = true")
	}
}
