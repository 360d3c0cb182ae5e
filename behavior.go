package frp

// Result is the outcome of reading a [Behavior] or receiving an event
// delivery: either a value or a failure cause, never both.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok constructs a successful Result.
func Ok[T any](v T) Result[T] { return Result[T]{Value: v} }

// Failed constructs a failed Result.
func Failed[T any](err error) Result[T] { return Result[T]{Err: err} }

// IsFail reports whether r holds a failure.
func (r Result[T]) IsFail() bool { return r.Err != nil }

// depEntry is one dependency edge recorded by subscribeBehavior: a reader
// that must be enqueued when the owning Behavior next writes. live is
// cleared by the cleanup closure registered alongside the entry, rather
// than removing it from the slice, so that iteration during write never
// has to deal with concurrent shrinkage. live is a pointer, not a field
// accessed by slice index, so that [compactReaders] can reorder or drop
// entries without invalidating a cleanup closure that has not fired yet.
type depEntry struct {
	r    *reader
	live *bool
}

// Behavior is a time-varying cell: a current [Result], the timestamp it
// last changed at, an optional equality used to suppress no-op writes,
// the readers depending on it, and any externally-registered notifiers.
type Behavior[T any] struct {
	rt        *Runtime
	id        uint64
	res       Result[T]
	changedAt *Timestamp
	eq        func(T, T) bool
	readers   []depEntry
	notifiers subscriberSet[Result[T]]
}

// memoIdentity gives Behavior a stable, content-independent hash for use
// as a memo key, satisfying the unexported identity-hash interface
// consulted by [Runtime.HashKey]: structural hashes are unsuitable for a
// mutable behavior, since its contents change under the key.
func (b *Behavior[T]) memoIdentity() uint64 { return b.id }

func newBehavior[T any](rt *Runtime, eq func(T, T) bool) *Behavior[T] {
	return &Behavior[T]{
		rt:        rt,
		id:        rt.nextAllocID(),
		changedAt: rt.tl.Now(),
		eq:        eq,
	}
}

// Constant allocates a behavior whose result is fixed at v for its entire
// life. Binders that read it still record it as a dependency, like any
// other behavior; since it is never written, they are never re-run on its
// account.
func Constant[T any](rt *Runtime, v T) *Behavior[T] {
	b := newBehavior[T](rt, nil)
	b.res = Ok(v)
	return b
}

// Return is an alias of [Constant].
func Return[T any](rt *Runtime, v T) *Behavior[T] { return Constant(rt, v) }

// FailBehavior allocates a behavior whose result is fixed at the given
// failure. Named FailBehavior rather than Fail to avoid colliding with the
// built-in notion of a failing test/assert in callers that dot-import
// this package's sibling test helpers.
func FailBehavior[T any](rt *Runtime, err error) *Behavior[T] {
	b := newBehavior[T](rt, nil)
	b.res = Failed[T](err)
	return b
}

// Read returns b's current value, or panics with a [*PropagatedFailure] if
// it holds a failure. It does not register a dependency, and so may return
// a stale value if called outside the propagator.
func Read[T any](b *Behavior[T]) T {
	if b.res.Err != nil {
		panic(&PropagatedFailure{Cause: b.res.Err})
	}
	return b.res.Value
}

// ReadResult returns b's current Result without raising.
func ReadResult[T any](b *Behavior[T]) Result[T] { return b.res }

// subscribeBehavior records rt's current reader as a dependent of b (if
// there is one) and returns b's current result — the read-and-register
// step every binder combinator performs first, before running its body.
func subscribeBehavior[T any](rt *Runtime, b *Behavior[T]) Result[T] {
	if r := rt.currentReader; r != nil {
		b.readers = compactReaders(b.readers)
		live := true
		b.readers = append(b.readers, depEntry{r: r, live: &live})
		ts := rt.tl.Now()
		_ = rt.tl.AddCleanup(ts, func() {
			live = false
		})
	}
	return b.res
}

// compactReaders drops entries whose cleanup has already fired, once the
// slice has grown past a size where the scan is worth it and at least half
// its entries are dead. Each entry's liveness lives behind the pointer its own
// cleanup closure closes over rather than a slice index, so dropping or
// reordering entries here never invalidates a closure that has not fired
// yet.
func compactReaders(readers []depEntry) []depEntry {
	const compactThreshold = 32
	if len(readers) < compactThreshold {
		return readers
	}
	live := 0
	for _, e := range readers {
		if *e.live {
			live++
		}
	}
	if live*2 > len(readers) {
		return readers
	}
	kept := readers[:0]
	for _, e := range readers {
		if *e.live {
			kept = append(kept, e)
		}
	}
	return kept
}

// writeBehavior applies eq-based elision, then (on an actual change)
// records changedAt, enqueues every live dependent reader into the
// propagator's reader queue, and synchronously delivers to every
// notifier.
func writeBehavior[T any](rt *Runtime, b *Behavior[T], r Result[T]) {
	if b.eq != nil && b.res.Err == nil && r.Err == nil && b.eq(b.res.Value, r.Value) {
		return
	}
	b.res = r
	b.changedAt = rt.tl.Now()

	for _, e := range b.readers {
		if *e.live {
			rt.enqueueReader(e.r)
		}
	}

	for _, fn := range b.notifiers.Snapshot() {
		fn := fn
		rt.safeCall("listener", func() { fn(r) })
	}
}

// NotifyResultB registers fn to be called with every Result b takes on,
// including failures. If called while rt is running a reader, the
// registration is released automatically when that reader's timespan is
// next spliced; otherwise it is permanent.
func NotifyResultB[T any](rt *Runtime, b *Behavior[T], fn func(Result[T])) {
	registerAutoScoped(rt, &b.notifiers, fn)
}

// NotifyResultBCancel is the explicit-cancel variant of [NotifyResultB];
// it never auto-attaches to a reader's timestamp.
func NotifyResultBCancel[T any](b *Behavior[T], fn func(Result[T])) CancelFunc {
	return registerCancelable(&b.notifiers, fn)
}

// NotifyB registers fn to be called with b's value on every successful
// write; failures are swallowed silently (fn is simply not called).
func NotifyB[T any](rt *Runtime, b *Behavior[T], fn func(T)) {
	NotifyResultB(rt, b, func(r Result[T]) {
		if r.Err == nil {
			fn(r.Value)
		}
	})
}

// NotifyBCancel is the explicit-cancel variant of [NotifyB].
func NotifyBCancel[T any](b *Behavior[T], fn func(T)) CancelFunc {
	return NotifyResultBCancel(b, func(r Result[T]) {
		if r.Err == nil {
			fn(r.Value)
		}
	})
}
