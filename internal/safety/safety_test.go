package safety_test

import (
	"testing"

	"github.com/typecraft/emend/internal/safety"
)

func TestIsSafe(t *testing.T) {
	t.Parallel()
	g := safety.NewGate()

	tests := []struct {
		name       string
		original   string
		suggestion string
		want       bool
	}{
		{"plain typo", "teh", "the", true},
		{"hyphenated suggestion", "wellknown", "well-known", false},
		{"space in suggestion", "alot", "a lot", false},
		{"space in original", "a lot", "alot", false},
		{"denied original", "hell", "held", false},
		{"denied suggestion", "helk", "hell", false},
		{"denied uppercase", "HELL", "held", false},
		{"all caps acronym", "TEH", "THE", false},
		{"all caps tap slip", "TGE", "THE", true},
		{"proper noun", "Acme", "acne", false},
		{"title case in fast table", "Teh", "The", true},
		{"lowercase unknown pair", "recieve", "receive", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := g.IsSafe(tt.original, tt.suggestion); got != tt.want {
				t.Errorf("IsSafe(%q, %q) = %v, want %v", tt.original, tt.suggestion, got, tt.want)
			}
		})
	}
}

func TestDenylistBlocksBothDirections(t *testing.T) {
	t.Parallel()
	g := safety.NewGate()
	for _, risky := range []string{"hell", "duck", "shit"} {
		if g.IsSafe(risky, "anything") {
			t.Errorf("IsSafe(%q, anything) = true, want false", risky)
		}
		if g.IsSafe("anything", risky) {
			t.Errorf("IsSafe(anything, %q) = true, want false", risky)
		}
	}
}

func TestCanAutoApply(t *testing.T) {
	t.Parallel()
	g := safety.NewGate()

	tests := []struct {
		name       string
		original   string
		suggestion string
		trusted    bool
		want       bool
	}{
		{"single edit", "thw", "the", false, true},
		{"transposition counts as one edit", "teh", "the", false, true},
		{"two edits untrusted", "tehh", "the", false, false},
		{"two edits trusted", "tehh", "the", true, true},
		{"tap slip", "tge", "the", false, true},
		{"trusted but unsafe", "hell", "held", true, false},
		{"all caps never auto", "TEH", "THE", true, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := g.CanAutoApply(tt.original, tt.suggestion, tt.trusted)
			if got != tt.want {
				t.Errorf("CanAutoApply(%q, %q, trusted=%v) = %v, want %v",
					tt.original, tt.suggestion, tt.trusted, got, tt.want)
			}
		})
	}
}

func TestWithDenylist(t *testing.T) {
	t.Parallel()
	g := safety.NewGate(safety.WithDenylist([]string{"Voldemort"}))
	if !g.Denied("voldemort") {
		t.Error("Denied(voldemort) = false after WithDenylist, want true")
	}
	if g.IsSafe("voldemort", "anything") {
		t.Error("IsSafe with added denylist word = true, want false")
	}
}
