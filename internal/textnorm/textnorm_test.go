package textnorm_test

import (
	"testing"

	"github.com/typecraft/emend/internal/textnorm"
	"github.com/typecraft/emend/pkg/types"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"soft hyphen", "co\u00ADoperate", "cooperate"},
		{"zero-width space", "he\u200Bllo", "hello"},
		{"zero-width joiner", "a\u200Db", "ab"},
		{"zero-width non-joiner", "a\u200Cb", "ab"},
		{"leading byte order mark", "\uFEFFword", "word"},
		{"curly single quote", "don’t", "don't"},
		{"curly double quotes", "“hi”", `"hi"`},
		{"untouched", "plain text", "plain text"},
		{"case preserved", "HeLLo", "HeLLo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textnorm.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Café", "cafe"},
		{"naïve", "naive"},
		{"HELLO", "hello"},
		{"don’t", "don't"},
	}
	for _, tt := range tests {
		if got := textnorm.Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		token string
		want  types.TokenClass
	}{
		{"hello", types.ClassWord},
		{"don't", types.ClassWord},
		{"https://example.com/x", types.ClassURL},
		{"www.example.com", types.ClassURL},
		{"example.com", types.ClassURL},
		{"see:http://x", types.ClassWord}, // partial match is not a URL
		{"@someone", types.ClassMentionOrHashtag},
		{"#topic", types.ClassMentionOrHashtag},
		{"\U0001F600", types.ClassEmojiOrSymbol},
		{"-->", types.ClassEmojiOrSymbol},
		{"!!!", types.ClassEmojiOrSymbol},
	}
	for _, tt := range tests {
		if got := textnorm.Classify(tt.token); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestMatchCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		original    string
		replacement string
		want        string
	}{
		{"TEH", "the", "THE"},
		{"Teh", "the", "The"},
		{"teh", "the", "the"},
		{"tEh", "the", "the"}, // mixed case falls through unchanged
		{"", "the", "the"},
	}
	for _, tt := range tests {
		if got := textnorm.MatchCase(tt.original, tt.replacement); got != tt.want {
			t.Errorf("MatchCase(%q, %q) = %q, want %q", tt.original, tt.replacement, got, tt.want)
		}
	}
}

func TestIsUpperIsTitle(t *testing.T) {
	t.Parallel()

	if !textnorm.IsUpper("NASA") || textnorm.IsUpper("Nasa") || textnorm.IsUpper("123") {
		t.Error("IsUpper misclassified one of NASA/Nasa/123")
	}
	if !textnorm.IsTitle("Acme") || textnorm.IsTitle("ACME") || textnorm.IsTitle("acme") || textnorm.IsTitle("A") {
		t.Error("IsTitle misclassified one of Acme/ACME/acme/A")
	}
}
