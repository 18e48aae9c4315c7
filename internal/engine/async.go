package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/typecraft/emend/pkg/types"
)

// AsyncDecider offloads Decide calls to a background goroutine so hosts can
// keep their UI thread free. Delivery is latest-wins: when several requests
// are in flight for the same buffer, only the most recent one's result is
// delivered, so a slow early result can never overwrite a newer one and
// flicker stale suggestions.
type AsyncDecider struct {
	eng *Engine

	// generation stamps each request; a result is delivered only if its
	// stamp is still the newest when the computation finishes.
	generation atomic.Uint64

	wg sync.WaitGroup
}

// NewAsyncDecider wraps eng for asynchronous use.
func NewAsyncDecider(eng *Engine) *AsyncDecider {
	return &AsyncDecider{eng: eng}
}

// Decide schedules a decision for word and invokes deliver with the result
// on a background goroutine, unless a newer request superseded this one
// first, in which case deliver is never called. deliver must be safe to
// invoke from a goroutine other than the caller's.
func (a *AsyncDecider) Decide(ctx context.Context, word, prev, next string, isCommitBoundary bool, deliver func(types.Decision)) {
	id := a.generation.Add(1)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		d := a.eng.Decide(ctx, word, prev, next, isCommitBoundary)
		if a.generation.Load() != id {
			return
		}
		if ctx.Err() != nil {
			return
		}
		deliver(d)
	}()
}

// Wait blocks until all in-flight decisions have finished. Intended for
// shutdown and tests.
func (a *AsyncDecider) Wait() {
	a.wg.Wait()
}
