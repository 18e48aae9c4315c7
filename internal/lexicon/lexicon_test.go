package lexicon_test

import (
	"testing"

	"github.com/typecraft/emend/internal/lexicon"
	"github.com/typecraft/emend/internal/store"
)

func TestLearnIgnoreForget(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	lx, err := lexicon.Load(kv)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if lx.IsKnown("gonna") {
		t.Error("fresh lexicon knows a word")
	}

	if _, err := lx.Learn("Gonna"); err != nil {
		t.Fatalf("Learn: %v", err)
	}
	if !lx.IsKnown("gonna") || !lx.IsKnown("GONNA") {
		t.Error("learned word not known case-insensitively")
	}

	// Ignoring a learned word moves it between the disjoint sets.
	if err := lx.Ignore("gonna"); err != nil {
		t.Fatalf("Ignore: %v", err)
	}
	learned, ignored := lx.Counts()
	if learned != 0 || ignored != 1 {
		t.Errorf("Counts = (%d, %d), want (0, 1)", learned, ignored)
	}
	if !lx.IsKnown("gonna") {
		t.Error("ignored word should still be known")
	}

	if err := lx.Forget("gonna"); err != nil {
		t.Fatalf("Forget: %v", err)
	}
	if lx.IsKnown("gonna") {
		t.Error("forgotten word still known")
	}
}

func TestLearnReportsChange(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	lx, err := lexicon.Load(kv)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	added, err := lx.Learn("dup")
	if err != nil {
		t.Fatalf("Learn: %v", err)
	}
	if !added {
		t.Error("first Learn(dup) = false, want true")
	}

	added, err = lx.Learn("dup")
	if err != nil {
		t.Fatalf("Learn: %v", err)
	}
	if added {
		t.Error("repeat Learn(dup) = true, want false")
	}

	// Moving the word out via Ignore makes the next Learn a real change.
	if err := lx.Ignore("dup"); err != nil {
		t.Fatalf("Ignore: %v", err)
	}
	added, err = lx.Learn("dup")
	if err != nil {
		t.Fatalf("Learn: %v", err)
	}
	if !added {
		t.Error("Learn(dup) after Ignore = false, want true")
	}
}

func TestPersistenceAcrossLoads(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	lx, err := lexicon.Load(kv)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := lx.Learn("frobnicate"); err != nil {
		t.Fatalf("Learn: %v", err)
	}
	if err := lx.Ignore("zorp"); err != nil {
		t.Fatalf("Ignore: %v", err)
	}

	// A second load from the same store sees the same state.
	lx2, err := lexicon.Load(kv)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if !lx2.IsKnown("frobnicate") || !lx2.IsKnown("zorp") {
		t.Error("reloaded lexicon lost persisted words")
	}
}

func TestLearnedNear(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	lx, err := lexicon.Load(kv)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, w := range []string{"frobnicate", "blorsht", "cat"} {
		if _, err := lx.Learn(w); err != nil {
			t.Fatalf("Learn(%q): %v", w, err)
		}
	}

	near := lx.LearnedNear("blorsh", 2)
	if len(near) != 1 || near[0] != "blorsht" {
		t.Errorf("LearnedNear(blorsh, 2) = %v, want [blorsht]", near)
	}

	// The word itself is excluded from its own neighbourhood.
	if got := lx.LearnedNear("cat", 2); len(got) != 0 {
		t.Errorf("LearnedNear(cat, 2) = %v, want empty", got)
	}
}

func TestAllowListInvalidation(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	lx, err := lexicon.Load(kv)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if lx.IsColloquial("gonna") {
		t.Error("empty allow-list matched a word")
	}
	if err := lx.SetAllowList([]string{"gonna", "wanna"}); err != nil {
		t.Fatalf("SetAllowList: %v", err)
	}
	if !lx.IsColloquial("gonna") || !lx.IsColloquial("WANNA") {
		t.Error("allow-list update not visible")
	}

	// Simulate the host process rewriting the list out-of-band: write the
	// keys directly and bump the mtime marker.
	data, _ := store.EncodeStringSet(map[string]bool{"yeet": true})
	if err := kv.Set(store.KeyAllowList, data); err != nil {
		t.Fatalf("Set allowlist: %v", err)
	}
	if err := kv.Set(store.KeyAllowListMtime, []byte("2026-08-30T00:00:00Z")); err != nil {
		t.Fatalf("Set mtime: %v", err)
	}

	if !lx.IsColloquial("yeet") {
		t.Error("out-of-band allow-list update not picked up after mtime change")
	}
	if lx.IsColloquial("gonna") {
		t.Error("stale allow-list entry survived reload")
	}
}
