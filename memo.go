package frp

import (
	"fmt"
	"hash/maphash"
)

// identityHashable is satisfied by [Behavior] and [Channel]: both carry a
// stable allocation id that must be used as their memo hash, since their
// contents are mutable and a structural hash would change out from under
// the key.
type identityHashable interface {
	memoIdentity() uint64
}

var hashSeed = maphash.MakeSeed()

// HashKey returns a stable hash for key, for use as a [Memo] hash
// function. Behaviors and channels hash by allocation id regardless of
// content; every other comparable key falls through to any hasher
// registered via [WithMemoHashers], then to a structural fallback (string
// formatting through maphash) — adequate for plain comparable keys, not
// for anything holding mutable state.
func (rt *Runtime) HashKey(key any) uint64 {
	if h, ok := key.(identityHashable); ok {
		return h.memoIdentity()
	}
	if rt.hashOverride != nil {
		if h, ok := rt.hashOverride(key); ok {
			return h
		}
	}
	var h maphash.Hash
	h.SetSeed(hashSeed)
	_, _ = h.WriteString(fmt.Sprintf("%#v", key))
	return h.Sum64()
}

// memoEntry is one recorded (key, result) pair from a prior incarnation
// of a memoized call site.
type memoEntry struct {
	hash uint64
	key  any
	val  any
}

// MemoContext is a per-call-site ordered replay table. A context is
// typically created once alongside the reader that owns it and reused
// across every re-run of that reader's body; call [MemoContext.Begin] as
// the first statement of the reader's run to start a fresh incarnation.
//
// Reuse is strictly positional: the i-th [Memo] call in an incarnation is
// compared against the i-th entry recorded in the previous incarnation. A
// mismatch discards everything from that position onward — this is not a
// general-purpose memoization cache, it only replays a stable call
// sequence.
type MemoContext struct {
	entries []memoEntry
	pos     int
}

// NewMemoContext constructs an empty memo context.
func NewMemoContext() *MemoContext {
	return &MemoContext{}
}

// Begin starts a fresh incarnation: subsequent [Memo] calls are compared
// against entries recorded during the previous incarnation, from the
// start.
func (c *MemoContext) Begin() {
	c.pos = 0
}

// Memo checks the i-th entry recorded in ctx's previous incarnation (where
// i is the number of Memo calls already made in this incarnation). If key
// compares equal (via hash and eq) to that entry's key, the stored result
// is reused without calling compute. Otherwise every entry from this
// position onward is discarded and compute runs to produce a fresh result.
func Memo[K any, V any](ctx *MemoContext, key K, hash func(K) uint64, eq func(K, K) bool, compute func() V) V {
	if ctx.pos < len(ctx.entries) {
		e := ctx.entries[ctx.pos]
		if ek, ok := e.key.(K); ok && e.hash == hash(key) && eq(ek, key) {
			ctx.pos++
			return e.val.(V)
		}
		ctx.entries = ctx.entries[:ctx.pos]
	}
	v := compute()
	ctx.entries = append(ctx.entries, memoEntry{hash: hash(key), key: key, val: v})
	ctx.pos++
	return v
}

// HashBehavior is the stable identity hash for behaviors used as memo
// keys.
func HashBehavior[T any](b *Behavior[T]) uint64 { return b.id }

// HashEvent is the stable identity hash for channels used as memo keys.
func HashEvent[T any](e *Channel[T]) uint64 { return e.id }

// EqBehavior compares behaviors by identity, never by content.
func EqBehavior[T any](a, b *Behavior[T]) bool { return a == b }

// EqEvent compares channels by identity, never by content.
func EqEvent[T any](a, b *Channel[T]) bool { return a == b }
