// Package dictionary defines the spell-lookup capability consumed by the
// correction engine, plus the language-resolution contract that selects
// which dictionary to consult.
//
// The engine never imports a concrete platform dictionary: hosts inject an
// implementation of [Checker] (typically a bridge to the OS spell service).
// The package ships one real adapter, [WordList], backed by a frequency-
// ranked word corpus, which doubles as the default and the test double.
package dictionary

// Checker is the system-dictionary capability. Implementations must be safe
// for concurrent use.
type Checker interface {
	// IsMisspelled reports whether word is unknown to the dictionary for
	// the given language tag. Implementations should treat an unavailable
	// language as "nothing is misspelled" — a missing dictionary must
	// degrade to offering no corrections, never to flagging everything.
	IsMisspelled(word, language string) bool

	// Guesses returns up to max replacement guesses for a misspelled word,
	// best first. The returned words are lower-case; the caller re-cases.
	Guesses(word, language string, max int) []string
}

// LanguageResolver resolves a preferred language tag to one the dictionary
// can actually serve.
type LanguageResolver interface {
	// IsAvailable reports whether the tag can be served directly.
	IsAvailable(tag string) bool

	// Resolve maps preferred to a concrete usable tag, falling back to a
	// default when the preference cannot be served.
	Resolve(preferred string) string
}

// StaticResolver is a [LanguageResolver] over a fixed set of available tags
// with a single fallback. Matching ignores region subtags: "en-GB" resolves
// to "en" when only "en" is available.
type StaticResolver struct {
	available map[string]bool
	fallback  string
}

// NewStaticResolver builds a resolver for the given tags. fallback must be
// one of them.
func NewStaticResolver(tags []string, fallback string) *StaticResolver {
	av := make(map[string]bool, len(tags))
	for _, t := range tags {
		av[baseTag(t)] = true
	}
	return &StaticResolver{available: av, fallback: baseTag(fallback)}
}

// IsAvailable implements [LanguageResolver.IsAvailable].
func (r *StaticResolver) IsAvailable(tag string) bool {
	return r.available[baseTag(tag)]
}

// Resolve implements [LanguageResolver.Resolve].
func (r *StaticResolver) Resolve(preferred string) string {
	if b := baseTag(preferred); r.available[b] {
		return b
	}
	return r.fallback
}

// baseTag lower-cases tag and strips everything after the first subtag
// separator: "en-GB" and "en_US" both become "en".
func baseTag(tag string) string {
	out := make([]byte, 0, len(tag))
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		if c == '-' || c == '_' {
			break
		}
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}
