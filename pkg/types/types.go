// Package types defines the shared types used across all emend packages.
//
// These types form the lingua franca between the tokenizer, the candidate
// generator, the safety gate, and the decision engine. They are intentionally
// minimal — each package defines its own domain types, but cross-cutting data
// structures live here to avoid circular imports.
package types

// Token is a word extracted from an input buffer together with its original
// character range. Tokens are ephemeral: they are produced per analysis call
// and never persisted.
type Token struct {
	// Text is the token text exactly as it appears in the buffer.
	Text string

	// Start is the rune offset of the token within the original buffer.
	Start int

	// Length is the token length in runes.
	Length int
}

// Candidate is a single correction proposal for a misspelled word.
type Candidate struct {
	// Word is the proposed replacement, case-matched to the original token.
	Word string

	// Confidence is the generator's confidence in this replacement (0.0–1.0).
	Confidence float64

	// FromUserDict marks candidates drawn from the user's learned words.
	FromUserDict bool

	// EditDistance is the Levenshtein distance to the original word (0–255).
	EditDistance int

	// ContextScore is the bigram frequency score against the surrounding
	// tokens. Zero when no bigram matches.
	ContextScore int
}

// TotalScore is the ranking score used to order candidates. It is derived on
// demand and never persisted.
func (c Candidate) TotalScore() float64 {
	score := c.Confidence*100 - float64(c.EditDistance)*10 + float64(c.ContextScore)*5
	if c.FromUserDict {
		score += 50
	}
	return score
}

// Decision is the outcome of a single engine invocation. It is an immutable
// value returned synchronously to the caller; absence of a correction is a
// valid, common result and never an error.
type Decision struct {
	// Replacement is the word to substitute when ApplyAuto is true.
	// Empty when no silent correction applies.
	Replacement string

	// Suggestions holds up to three ranked replacement words for display.
	Suggestions []string

	// ApplyAuto reports whether Replacement should be applied without
	// explicit user confirmation.
	ApplyAuto bool
}

// NoAction is the zero Decision: no replacement, no suggestions.
func NoAction() Decision {
	return Decision{}
}

// TokenClass categorises a token for the tokenizer's skip logic.
type TokenClass int

const (
	// ClassWord is ordinary linguistic text, eligible for correction.
	ClassWord TokenClass = iota

	// ClassURL is a token that is entirely a URL.
	ClassURL

	// ClassMentionOrHashtag is a token starting with '@' or '#'.
	ClassMentionOrHashtag

	// ClassEmojiOrSymbol is a token of emoji, symbols, or punctuation with
	// no letters.
	ClassEmojiOrSymbol
)

// String returns a short label for the class, for logging.
func (c TokenClass) String() string {
	switch c {
	case ClassWord:
		return "word"
	case ClassURL:
		return "url"
	case ClassMentionOrHashtag:
		return "mention"
	case ClassEmojiOrSymbol:
		return "symbol"
	default:
		return "unknown"
	}
}
