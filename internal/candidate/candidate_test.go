package candidate_test

import (
	"strings"
	"testing"

	"github.com/typecraft/emend/internal/bigram"
	"github.com/typecraft/emend/internal/candidate"
	"github.com/typecraft/emend/internal/dictionary"
	"github.com/typecraft/emend/internal/lexicon"
	"github.com/typecraft/emend/internal/safety"
	"github.com/typecraft/emend/internal/store"
)

func newGenerator(t *testing.T) (*candidate.Generator, *lexicon.Lexicon) {
	t.Helper()
	lex, err := lexicon.Load(store.NewMemKV())
	if err != nil {
		t.Fatalf("lexicon.Load() error: %v", err)
	}
	wl, err := dictionary.NewWordList()
	if err != nil {
		t.Fatalf("dictionary.NewWordList() error: %v", err)
	}
	gen := candidate.New(candidate.Config{
		Lexicon:  lex,
		Dict:     wl,
		Resolver: wl,
		Bigrams:  bigram.NewTable(nil),
		Gate:     safety.NewGate(),
		Language: "en-US",
	})
	return gen, lex
}

func TestGenerateFastTypo(t *testing.T) {
	t.Parallel()
	gen, _ := newGenerator(t)

	got := gen.Generate("teh", "", "")
	if len(got) == 0 {
		t.Fatal("Generate(teh) returned no candidates")
	}
	best := got[0]
	if best.Word != "the" {
		t.Errorf("best candidate = %q, want %q", best.Word, "the")
	}
	if best.EditDistance != 1 {
		t.Errorf("best candidate edit distance = %d, want 1", best.EditDistance)
	}
	if best.FromUserDict {
		t.Error("fast-typo candidate marked FromUserDict")
	}
}

func TestGenerateCaseMatching(t *testing.T) {
	t.Parallel()
	gen, _ := newGenerator(t)

	got := gen.Generate("Teh", "", "")
	if len(got) == 0 || got[0].Word != "The" {
		t.Fatalf("Generate(Teh) = %v, want \"The\" first", got)
	}
}

func TestGenerateKnownWordReturnsNothing(t *testing.T) {
	t.Parallel()
	gen, lex := newGenerator(t)

	if _, err := lex.Learn("teh"); err != nil {
		t.Fatalf("Learn() error: %v", err)
	}
	if got := gen.Generate("teh", "", ""); got != nil {
		t.Errorf("Generate on learned word = %v, want nil", got)
	}

	if err := lex.Ignore("xqzt"); err != nil {
		t.Fatalf("Ignore() error: %v", err)
	}
	if got := gen.Generate("xqzt", "", ""); got != nil {
		t.Errorf("Generate on ignored word = %v, want nil", got)
	}
}

func TestGenerateDictionaryGuesses(t *testing.T) {
	t.Parallel()
	gen, _ := newGenerator(t)

	got := gen.Generate("thw", "", "")
	if len(got) == 0 {
		t.Fatal("Generate(thw) returned no candidates")
	}
	if got[0].Word != "the" {
		t.Errorf("best candidate = %q, want %q", got[0].Word, "the")
	}
	if len(got) > 3 {
		t.Errorf("got %d candidates, want at most 3", len(got))
	}
}

func TestGenerateLearnedNear(t *testing.T) {
	t.Parallel()
	gen, lex := newGenerator(t)

	if _, err := lex.Learn("emend"); err != nil {
		t.Fatalf("Learn() error: %v", err)
	}
	got := gen.Generate("emind", "", "")
	var hit bool
	for _, c := range got {
		if c.Word == "emend" {
			hit = true
			if !c.FromUserDict {
				t.Error("learned-word candidate not marked FromUserDict")
			}
		}
	}
	if !hit {
		t.Errorf("Generate(emind) = %v, want to include learned \"emend\"", got)
	}
}

func TestGenerateProperNounGuard(t *testing.T) {
	t.Parallel()
	gen, _ := newGenerator(t)

	// Capitalized, not in the fast-typo table: every dictionary guess is
	// vetoed by the proper-noun heuristic.
	if got := gen.Generate("Acme", "", ""); len(got) != 0 {
		t.Errorf("Generate(Acme) = %v, want none", got)
	}
}

func TestGenerateNeverSuggestsDeniedWord(t *testing.T) {
	t.Parallel()
	gen, _ := newGenerator(t)

	for _, w := range []string{"helk", "hel", "hepl"} {
		for _, c := range gen.Generate(w, "", "") {
			if strings.EqualFold(c.Word, "hell") {
				t.Errorf("Generate(%q) suggested denylisted %q", w, c.Word)
			}
		}
	}
}

func TestGenerateContextRanking(t *testing.T) {
	t.Parallel()
	gen, _ := newGenerator(t)

	// With "of" before and "best" after, "the" should dominate on the
	// bigram score on top of its frequency lead.
	got := gen.Generate("thw", "of", "best")
	if len(got) == 0 || got[0].Word != "the" {
		t.Fatalf("Generate(thw, of, best) = %v, want \"the\" first", got)
	}
	if got[0].ContextScore <= 0 {
		t.Errorf("ContextScore = %d, want > 0", got[0].ContextScore)
	}
}

func TestFastTypoHit(t *testing.T) {
	t.Parallel()
	gen, _ := newGenerator(t)

	if fix, ok := gen.FastTypoHit("Teh"); !ok || fix != "The" {
		t.Errorf("FastTypoHit(Teh) = %q, %v, want \"The\", true", fix, ok)
	}
	if _, ok := gen.FastTypoHit("word"); ok {
		t.Error("FastTypoHit(word) = true, want false")
	}
}

func TestLanguageResolution(t *testing.T) {
	t.Parallel()
	gen, _ := newGenerator(t)

	if got := gen.Language(); got != "en" {
		t.Errorf("Language() = %q, want %q", got, "en")
	}
}
