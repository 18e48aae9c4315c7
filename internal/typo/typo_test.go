package typo_test

import (
	"testing"

	"github.com/typecraft/emend/internal/strdist"
	"github.com/typecraft/emend/internal/typo"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word   string
		want   string
		wantOK bool
	}{
		{"teh", "the", true},
		{"TEH", "the", true}, // lookup is case-insensitive
		{"recieve", "receive", true},
		{"the", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := typo.Lookup(tt.word)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)", tt.word, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestContainsPair(t *testing.T) {
	t.Parallel()

	if !typo.ContainsPair("teh", "the") {
		t.Error("ContainsPair(teh, the) = false, want true")
	}
	if !typo.ContainsPair("Teh", "The") {
		t.Error("ContainsPair(Teh, The) = false, want true")
	}
	if typo.ContainsPair("teh", "then") {
		t.Error("ContainsPair(teh, then) = true, want false")
	}
}

// Every table entry should be a near miss of its correction: a curated typo
// further than two edits away is almost certainly a data-entry mistake.
func TestTableEntriesAreNearMisses(t *testing.T) {
	t.Parallel()

	for _, w := range []string{"teh", "adn", "recieve", "becuase", "thnaks"} {
		corr, ok := typo.Lookup(w)
		if !ok {
			t.Fatalf("Lookup(%q): missing expected table entry", w)
		}
		if d := strdist.EditDistance(w, corr); d > 2 {
			t.Errorf("table entry %q -> %q has edit distance %d, want <= 2", w, corr, d)
		}
	}
}
