package tokenize_test

import (
	"testing"

	"github.com/typecraft/emend/internal/tokenize"
	"github.com/typecraft/emend/pkg/types"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "hello world", []string{"hello", "world"}},
		{"punctuation", "well, hello there!", []string{"well", "hello", "there"}},
		{"apostrophe", "don't stop", []string{"don't", "stop"}},
		{"hyphenated", "well-known fact", []string{"well-known", "fact"}},
		{"url skipped", "see https://example.com/page now", []string{"see", "now"}},
		{"mention skipped", "ping @user about it", []string{"ping", "about", "it"}},
		{"hashtag skipped", "#launch day", []string{"day"}},
		{"emoji skipped", "nice \U0001F600 work", []string{"nice", "work"}},
		{"empty", "", nil},
		{"only symbols", "--> !!!", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize.Tokenize(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v tokens, want %v", tt.in, texts(got), tt.want)
			}
			for i, tok := range got {
				if tok.Text != tt.want[i] {
					t.Errorf("Tokenize(%q)[%d] = %q, want %q", tt.in, i, tok.Text, tt.want[i])
				}
			}
		})
	}
}

func TestTokenize_Ranges(t *testing.T) {
	t.Parallel()

	toks := tokenize.Tokenize("ab cdef")
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2", len(toks))
	}
	if toks[0].Start != 0 || toks[0].Length != 2 {
		t.Errorf("token 0 range = (%d,%d), want (0,2)", toks[0].Start, toks[0].Length)
	}
	if toks[1].Start != 3 || toks[1].Length != 4 {
		t.Errorf("token 1 range = (%d,%d), want (3,4)", toks[1].Start, toks[1].Length)
	}
}

func TestLastToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"hello world", "world"},
		{"stop here.", "here"},
		{`quoted "word"`, "word"},
		{"trailing   ", "trailing"},
		{"(parens)", "parens"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := tokenize.LastToken(tt.in); got != tt.want {
			t.Errorf("LastToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func texts(toks []types.Token) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Text
	}
	return out
}
