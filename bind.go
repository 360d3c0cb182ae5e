package frp

import "fmt"

// Bind allocates an output behavior that tracks f applied to b's value.
// Each time b changes, f is re-evaluated against the new value, producing
// a fresh inner behavior that b_out forwards from until b changes again.
// The forwarding subscription to the current inner behavior is cancelled
// explicitly at the start of each re-run, before a new one is attached to
// the new inner behavior, rather than relying on [Runtime]'s
// timestamp-scoped cleanup for it — the explicit cancel makes the
// one-forwarding-subscription-at-a-time invariant visible at the call site
// instead of implicit in timeline bookkeeping. A panic raised by f becomes
// the output's Fail(e) rather than escaping the reader.
func Bind[T, U any](rt *Runtime, b *Behavior[T], f func(T) *Behavior[U], eq func(U, U) bool) *Behavior[U] {
	out := newBehavior[U](rt, eq)
	var cancelInner CancelFunc
	rt.newReader(func() {
		if cancelInner != nil {
			cancelInner()
			cancelInner = nil
		}
		res := subscribeBehavior(rt, b)
		if res.Err != nil {
			writeBehavior(rt, out, Failed[U](res.Err))
			return
		}
		inner, err := runCatching(func() *Behavior[U] { return f(res.Value) })
		if err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		cancelInner = NotifyBCancel(inner, func(v U) { writeBehavior(rt, out, Ok(v)) })
		writeBehavior(rt, out, ReadResult(inner))
	})
	return out
}

// Lift applies f to b's value and writes the result directly, with no
// intermediate inner behavior — same as bind with the inner step inlined,
// avoiding one reader allocation. A panic raised by f becomes the output's
// Fail(e), recovered the same way [Catch] recovers a thunk's panic.
func Lift[T, U any](rt *Runtime, f func(T) U, b *Behavior[T], eq func(U, U) bool) *Behavior[U] {
	out := newBehavior[U](rt, eq)
	rt.newReader(func() {
		res := subscribeBehavior(rt, b)
		if res.Err != nil {
			writeBehavior(rt, out, Failed[U](res.Err))
			return
		}
		v, err := runCatching(func() U { return f(res.Value) })
		if err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		writeBehavior(rt, out, Ok(v))
	})
	return out
}

// BLift is [Lift] with its behavior and function arguments swapped.
func BLift[T, U any](rt *Runtime, b *Behavior[T], f func(T) U, eq func(U, U) bool) *Behavior[U] {
	return Lift(rt, f, b, eq)
}

// panicToError converts a recovered panic value into an error, wrapping
// non-error values with fmt.Errorf.
func panicToError(recovered any) error {
	if err, ok := recovered.(error); ok {
		return err
	}
	return fmt.Errorf("%v", recovered)
}

// runCatching invokes thunk, converting a panic (including one raised by
// [Read] on a failed behavior) into an error instead of letting it
// propagate.
func runCatching[T any](thunk func() T) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError(r)
		}
	}()
	v = thunk()
	return
}

// TryBind runs thunk inside a reader; on success ok is applied to produce
// the output's value, on failure errFn is applied to the recovered error
// instead.
func TryBind[T, U any](rt *Runtime, thunk func() T, ok func(T) U, errFn func(error) U, eq func(U, U) bool) *Behavior[U] {
	out := newBehavior[U](rt, eq)
	rt.newReader(func() {
		v, err := runCatching(thunk)
		var u U
		if err != nil {
			u = errFn(err)
		} else {
			u = ok(v)
		}
		writeBehavior(rt, out, Ok(u))
	})
	return out
}

// Catch runs thunk inside a reader; on failure, handler(e) substitutes
// its value for the output. It is [TryBind] with an identity success
// branch.
func Catch[T any](rt *Runtime, thunk func() T, handler func(error) T, eq func(T, T) bool) *Behavior[T] {
	return TryBind(rt, thunk, func(v T) T { return v }, handler, eq)
}
