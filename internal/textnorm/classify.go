package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/typecraft/emend/pkg/types"
)

// urlRe must match the ENTIRE token for it to classify as a URL. Partial
// matches (e.g. "see:http://x") stay in the word pipeline.
var urlRe = regexp.MustCompile(`^(?:https?://|www\.)[^\s]+$|^[a-zA-Z0-9][a-zA-Z0-9-]*(?:\.[a-zA-Z0-9-]+)*\.[a-zA-Z]{2,}(?:/[^\s]*)?$`)

// Classify determines how the tokenizer should treat token. URL, mention,
// hashtag, and emoji/symbol tokens are skipped by the correction pipeline.
func Classify(token string) types.TokenClass {
	if token == "" {
		return types.ClassEmojiOrSymbol
	}
	if strings.HasPrefix(token, "@") || strings.HasPrefix(token, "#") {
		return types.ClassMentionOrHashtag
	}
	if urlRe.MatchString(token) {
		return types.ClassURL
	}
	if isEmojiOrSymbol(token) {
		return types.ClassEmojiOrSymbol
	}
	return types.ClassWord
}

// isEmojiOrSymbol reports whether token consists of emoji or of
// symbol/punctuation characters with no letters. Per-scalar emoji
// properties are checked first; the letter-free fallback catches symbol
// runs like "-->" or ":::".
func isEmojiOrSymbol(token string) bool {
	hasLetter := false
	allEmojiOrSymbol := true
	for _, r := range token {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if !isEmoji(r) && !unicode.IsSymbol(r) && !unicode.IsPunct(r) && !unicode.IsSpace(r) {
			allEmojiOrSymbol = false
		}
	}
	if !hasLetter && allEmojiOrSymbol {
		return true
	}
	// Pure emoji sequences (may include ZWJ already stripped by Normalize).
	for _, r := range token {
		if !isEmoji(r) {
			return false
		}
	}
	return true
}

// Emoji presentation blocks. This is the per-scalar check; it intentionally
// covers the common blocks rather than the full Unicode emoji data tables.
func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF: // pictographs, emoticons, symbols
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r == 0xFE0F || r == 0x20E3: // variation selector, combining keycap
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators
		return true
	}
	return false
}
