package dictionary

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// alphabet drives the single-edit candidate expansion. ASCII letters only:
// the embedded corpus is English, and host dictionaries handle the rest.
const alphabet = "abcdefghijklmnopqrstuvwxyz"

//go:embed words.txt
var embeddedWords []byte

// Compile-time assertions: WordList serves both capability contracts.
var (
	_ Checker          = (*WordList)(nil)
	_ LanguageResolver = (*WordList)(nil)
)

// WordList is a frequency-ranked dictionary adapter. Lookup is a set test;
// guesses are generated by single-edit expansion of the query, keeping the
// expansions that are real words, ranked by corpus frequency.
//
// WordList is read-only after construction and safe for concurrent use.
type WordList struct {
	freq     map[string]int
	language string
	maxLen   int
}

// NewWordList builds a WordList from the embedded English corpus.
func NewWordList() (*WordList, error) {
	return newWordList(bytes.NewReader(embeddedWords), "en")
}

// NewWordListFromFile loads "word count" lines from path for the given
// language tag.
func NewWordListFromFile(path, language string) (*WordList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: open word list %q: %w", path, err)
	}
	defer f.Close()
	return newWordList(f, language)
}

func newWordList(r io.Reader, language string) (*WordList, error) {
	wl := &WordList{
		freq:     make(map[string]int),
		language: baseTag(language),
	}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		word := strings.ToLower(fields[0])
		count := 1
		if len(fields) > 1 {
			if n, err := strconv.Atoi(fields[1]); err == nil {
				count = n
			}
		}
		wl.freq[word] = count
		if l := len(word); l > wl.maxLen {
			wl.maxLen = l
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: read word list: %w", err)
	}
	return wl, nil
}

// IsMisspelled implements [Checker.IsMisspelled]. Unavailable languages are
// never misspelled, per the capability contract.
func (wl *WordList) IsMisspelled(word, language string) bool {
	if !wl.IsAvailable(language) {
		return false
	}
	w := strings.ToLower(word)
	if w == "" || len(w) > wl.maxLen+2 {
		return false
	}
	_, known := wl.freq[w]
	return !known
}

// Guesses implements [Checker.Guesses]: single-edit expansions of word that
// are corpus words, ranked by descending frequency (ties alphabetical for
// determinism).
func (wl *WordList) Guesses(word, language string, max int) []string {
	if max <= 0 || !wl.IsAvailable(language) {
		return nil
	}
	w := strings.ToLower(word)

	seen := make(map[string]bool)
	var hits []string
	for _, cand := range edits1(w) {
		if cand == w || seen[cand] {
			continue
		}
		if _, ok := wl.freq[cand]; ok {
			seen[cand] = true
			hits = append(hits, cand)
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		fi, fj := wl.freq[hits[i]], wl.freq[hits[j]]
		if fi != fj {
			return fi > fj
		}
		return hits[i] < hits[j]
	})
	if len(hits) > max {
		hits = hits[:max]
	}
	return hits
}

// IsAvailable implements [LanguageResolver.IsAvailable].
func (wl *WordList) IsAvailable(tag string) bool {
	return baseTag(tag) == wl.language
}

// Resolve implements [LanguageResolver.Resolve]: the word list serves
// exactly one language, so everything resolves to it.
func (wl *WordList) Resolve(preferred string) string {
	return wl.language
}

// Contains reports whether word is in the corpus, ignoring case.
func (wl *WordList) Contains(word string) bool {
	_, ok := wl.freq[strings.ToLower(word)]
	return ok
}

// edits1 returns every string one edit away from w: deletions, adjacent
// transpositions, substitutions, and insertions over the ASCII alphabet.
func edits1(w string) []string {
	type split struct{ l, r string }
	splits := make([]split, 0, len(w)+1)
	for i := 0; i <= len(w); i++ {
		splits = append(splits, split{w[:i], w[i:]})
	}

	var out []string
	for _, s := range splits {
		if len(s.r) > 0 {
			out = append(out, s.l+s.r[1:]) // deletion
		}
		if len(s.r) > 1 {
			out = append(out, s.l+string(s.r[1])+string(s.r[0])+s.r[2:]) // transposition
		}
		for _, c := range alphabet {
			if len(s.r) > 0 {
				out = append(out, s.l+string(c)+s.r[1:]) // substitution
			}
			out = append(out, s.l+string(c)+s.r) // insertion
		}
	}
	return out
}
