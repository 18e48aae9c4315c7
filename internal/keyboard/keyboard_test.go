package keyboard_test

import (
	"testing"

	"github.com/typecraft/emend/internal/keyboard"
)

func TestAdjacent(t *testing.T) {
	t.Parallel()

	l := keyboard.QWERTY()

	tests := []struct {
		a, b rune
		want bool
	}{
		{'q', 'w', true},
		{'g', 'h', true},
		{'g', 'f', true},
		{'g', 't', true}, // diagonal up
		{'g', 'b', true}, // diagonal down
		{'y', 'g', true},  // diagonal down-left
		{'q', 'a', true},  // leftmost column
		{'q', 's', false}, // the stagger leans left, not right
		{'s', 'o', false},
		{'h', 't', false}, // two columns apart
		{'a', 'a', false}, // a key is not its own neighbour
		{'G', 'h', true},  // case-insensitive
	}
	for _, tt := range tests {
		if got := l.Adjacent(tt.a, tt.b); got != tt.want {
			t.Errorf("Adjacent(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestAdjacent_Symmetric(t *testing.T) {
	t.Parallel()

	l := keyboard.QWERTY()
	letters := "qwertyuiopasdfghjklzxcvbnm"
	for _, a := range letters {
		for _, b := range letters {
			if l.Adjacent(a, b) != l.Adjacent(b, a) {
				t.Errorf("Adjacent(%q, %q) is not symmetric", a, b)
			}
		}
	}
}

func TestIsTapSlip(t *testing.T) {
	t.Parallel()

	l := keyboard.QWERTY()

	tests := []struct {
		a, b string
		want bool
	}{
		{"tge", "the", true}, // g/h are adjacent
		{"si", "so", true},   // i/o are horizontal neighbours
		{"sa", "so", false},  // a/o are nowhere near each other
		{"hte", "the", false}, // two positions differ
		{"cat", "cat", false}, // identical words are not a slip
		{"cat", "cats", false},
		{"cay", "cat", true}, // y/t are adjacent
		{"", "", false},
	}
	for _, tt := range tests {
		if got := l.IsTapSlip(tt.a, tt.b); got != tt.want {
			t.Errorf("IsTapSlip(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
