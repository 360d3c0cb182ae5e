package frp

// firstErr returns the first non-nil error among errs, or nil.
func firstErr(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// The Lift2..7/Bind2..7 family generalizes Bind/Lift to 2..7 inputs. Each
// subscribes every input first (so every dependency is recorded even if an
// earlier input has failed), then short-circuits on the first failure
// encountered, in argument order. A panic raised by f becomes the output's
// Fail(e), recovered the same way [Lift] and [Bind] recover theirs.

func Lift2[T1, T2, U any](rt *Runtime, f func(T1, T2) U, b1 *Behavior[T1], b2 *Behavior[T2], eq func(U, U) bool) *Behavior[U] {
	out := newBehavior[U](rt, eq)
	rt.newReader(func() {
		r1 := subscribeBehavior(rt, b1)
		r2 := subscribeBehavior(rt, b2)
		if err := firstErr(r1.Err, r2.Err); err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		v, err := runCatching(func() U { return f(r1.Value, r2.Value) })
		if err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		writeBehavior(rt, out, Ok(v))
	})
	return out
}

func Bind2[T1, T2, U any](rt *Runtime, b1 *Behavior[T1], b2 *Behavior[T2], f func(T1, T2) *Behavior[U], eq func(U, U) bool) *Behavior[U] {
	out := newBehavior[U](rt, eq)
	var cancelInner CancelFunc
	rt.newReader(func() {
		if cancelInner != nil {
			cancelInner()
			cancelInner = nil
		}
		r1 := subscribeBehavior(rt, b1)
		r2 := subscribeBehavior(rt, b2)
		if err := firstErr(r1.Err, r2.Err); err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		inner, err := runCatching(func() *Behavior[U] { return f(r1.Value, r2.Value) })
		if err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		cancelInner = NotifyBCancel(inner, func(v U) { writeBehavior(rt, out, Ok(v)) })
		writeBehavior(rt, out, ReadResult(inner))
	})
	return out
}

func Lift3[T1, T2, T3, U any](rt *Runtime, f func(T1, T2, T3) U, b1 *Behavior[T1], b2 *Behavior[T2], b3 *Behavior[T3], eq func(U, U) bool) *Behavior[U] {
	out := newBehavior[U](rt, eq)
	rt.newReader(func() {
		r1 := subscribeBehavior(rt, b1)
		r2 := subscribeBehavior(rt, b2)
		r3 := subscribeBehavior(rt, b3)
		if err := firstErr(r1.Err, r2.Err, r3.Err); err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		v, err := runCatching(func() U { return f(r1.Value, r2.Value, r3.Value) })
		if err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		writeBehavior(rt, out, Ok(v))
	})
	return out
}

func Bind3[T1, T2, T3, U any](rt *Runtime, b1 *Behavior[T1], b2 *Behavior[T2], b3 *Behavior[T3], f func(T1, T2, T3) *Behavior[U], eq func(U, U) bool) *Behavior[U] {
	out := newBehavior[U](rt, eq)
	var cancelInner CancelFunc
	rt.newReader(func() {
		if cancelInner != nil {
			cancelInner()
			cancelInner = nil
		}
		r1 := subscribeBehavior(rt, b1)
		r2 := subscribeBehavior(rt, b2)
		r3 := subscribeBehavior(rt, b3)
		if err := firstErr(r1.Err, r2.Err, r3.Err); err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		inner, err := runCatching(func() *Behavior[U] { return f(r1.Value, r2.Value, r3.Value) })
		if err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		cancelInner = NotifyBCancel(inner, func(v U) { writeBehavior(rt, out, Ok(v)) })
		writeBehavior(rt, out, ReadResult(inner))
	})
	return out
}

func Lift4[T1, T2, T3, T4, U any](rt *Runtime, f func(T1, T2, T3, T4) U, b1 *Behavior[T1], b2 *Behavior[T2], b3 *Behavior[T3], b4 *Behavior[T4], eq func(U, U) bool) *Behavior[U] {
	out := newBehavior[U](rt, eq)
	rt.newReader(func() {
		r1 := subscribeBehavior(rt, b1)
		r2 := subscribeBehavior(rt, b2)
		r3 := subscribeBehavior(rt, b3)
		r4 := subscribeBehavior(rt, b4)
		if err := firstErr(r1.Err, r2.Err, r3.Err, r4.Err); err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		v, err := runCatching(func() U { return f(r1.Value, r2.Value, r3.Value, r4.Value) })
		if err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		writeBehavior(rt, out, Ok(v))
	})
	return out
}

func Bind4[T1, T2, T3, T4, U any](rt *Runtime, b1 *Behavior[T1], b2 *Behavior[T2], b3 *Behavior[T3], b4 *Behavior[T4], f func(T1, T2, T3, T4) *Behavior[U], eq func(U, U) bool) *Behavior[U] {
	out := newBehavior[U](rt, eq)
	var cancelInner CancelFunc
	rt.newReader(func() {
		if cancelInner != nil {
			cancelInner()
			cancelInner = nil
		}
		r1 := subscribeBehavior(rt, b1)
		r2 := subscribeBehavior(rt, b2)
		r3 := subscribeBehavior(rt, b3)
		r4 := subscribeBehavior(rt, b4)
		if err := firstErr(r1.Err, r2.Err, r3.Err, r4.Err); err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		inner, err := runCatching(func() *Behavior[U] { return f(r1.Value, r2.Value, r3.Value, r4.Value) })
		if err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		cancelInner = NotifyBCancel(inner, func(v U) { writeBehavior(rt, out, Ok(v)) })
		writeBehavior(rt, out, ReadResult(inner))
	})
	return out
}

func Lift5[T1, T2, T3, T4, T5, U any](rt *Runtime, f func(T1, T2, T3, T4, T5) U, b1 *Behavior[T1], b2 *Behavior[T2], b3 *Behavior[T3], b4 *Behavior[T4], b5 *Behavior[T5], eq func(U, U) bool) *Behavior[U] {
	out := newBehavior[U](rt, eq)
	rt.newReader(func() {
		r1 := subscribeBehavior(rt, b1)
		r2 := subscribeBehavior(rt, b2)
		r3 := subscribeBehavior(rt, b3)
		r4 := subscribeBehavior(rt, b4)
		r5 := subscribeBehavior(rt, b5)
		if err := firstErr(r1.Err, r2.Err, r3.Err, r4.Err, r5.Err); err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		v, err := runCatching(func() U { return f(r1.Value, r2.Value, r3.Value, r4.Value, r5.Value) })
		if err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		writeBehavior(rt, out, Ok(v))
	})
	return out
}

func Bind5[T1, T2, T3, T4, T5, U any](rt *Runtime, b1 *Behavior[T1], b2 *Behavior[T2], b3 *Behavior[T3], b4 *Behavior[T4], b5 *Behavior[T5], f func(T1, T2, T3, T4, T5) *Behavior[U], eq func(U, U) bool) *Behavior[U] {
	out := newBehavior[U](rt, eq)
	var cancelInner CancelFunc
	rt.newReader(func() {
		if cancelInner != nil {
			cancelInner()
			cancelInner = nil
		}
		r1 := subscribeBehavior(rt, b1)
		r2 := subscribeBehavior(rt, b2)
		r3 := subscribeBehavior(rt, b3)
		r4 := subscribeBehavior(rt, b4)
		r5 := subscribeBehavior(rt, b5)
		if err := firstErr(r1.Err, r2.Err, r3.Err, r4.Err, r5.Err); err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		inner, err := runCatching(func() *Behavior[U] { return f(r1.Value, r2.Value, r3.Value, r4.Value, r5.Value) })
		if err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		cancelInner = NotifyBCancel(inner, func(v U) { writeBehavior(rt, out, Ok(v)) })
		writeBehavior(rt, out, ReadResult(inner))
	})
	return out
}

func Lift6[T1, T2, T3, T4, T5, T6, U any](rt *Runtime, f func(T1, T2, T3, T4, T5, T6) U, b1 *Behavior[T1], b2 *Behavior[T2], b3 *Behavior[T3], b4 *Behavior[T4], b5 *Behavior[T5], b6 *Behavior[T6], eq func(U, U) bool) *Behavior[U] {
	out := newBehavior[U](rt, eq)
	rt.newReader(func() {
		r1 := subscribeBehavior(rt, b1)
		r2 := subscribeBehavior(rt, b2)
		r3 := subscribeBehavior(rt, b3)
		r4 := subscribeBehavior(rt, b4)
		r5 := subscribeBehavior(rt, b5)
		r6 := subscribeBehavior(rt, b6)
		if err := firstErr(r1.Err, r2.Err, r3.Err, r4.Err, r5.Err, r6.Err); err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		v, err := runCatching(func() U { return f(r1.Value, r2.Value, r3.Value, r4.Value, r5.Value, r6.Value) })
		if err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		writeBehavior(rt, out, Ok(v))
	})
	return out
}

func Bind6[T1, T2, T3, T4, T5, T6, U any](rt *Runtime, b1 *Behavior[T1], b2 *Behavior[T2], b3 *Behavior[T3], b4 *Behavior[T4], b5 *Behavior[T5], b6 *Behavior[T6], f func(T1, T2, T3, T4, T5, T6) *Behavior[U], eq func(U, U) bool) *Behavior[U] {
	out := newBehavior[U](rt, eq)
	var cancelInner CancelFunc
	rt.newReader(func() {
		if cancelInner != nil {
			cancelInner()
			cancelInner = nil
		}
		r1 := subscribeBehavior(rt, b1)
		r2 := subscribeBehavior(rt, b2)
		r3 := subscribeBehavior(rt, b3)
		r4 := subscribeBehavior(rt, b4)
		r5 := subscribeBehavior(rt, b5)
		r6 := subscribeBehavior(rt, b6)
		if err := firstErr(r1.Err, r2.Err, r3.Err, r4.Err, r5.Err, r6.Err); err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		inner, err := runCatching(func() *Behavior[U] { return f(r1.Value, r2.Value, r3.Value, r4.Value, r5.Value, r6.Value) })
		if err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		cancelInner = NotifyBCancel(inner, func(v U) { writeBehavior(rt, out, Ok(v)) })
		writeBehavior(rt, out, ReadResult(inner))
	})
	return out
}

func Lift7[T1, T2, T3, T4, T5, T6, T7, U any](rt *Runtime, f func(T1, T2, T3, T4, T5, T6, T7) U, b1 *Behavior[T1], b2 *Behavior[T2], b3 *Behavior[T3], b4 *Behavior[T4], b5 *Behavior[T5], b6 *Behavior[T6], b7 *Behavior[T7], eq func(U, U) bool) *Behavior[U] {
	out := newBehavior[U](rt, eq)
	rt.newReader(func() {
		r1 := subscribeBehavior(rt, b1)
		r2 := subscribeBehavior(rt, b2)
		r3 := subscribeBehavior(rt, b3)
		r4 := subscribeBehavior(rt, b4)
		r5 := subscribeBehavior(rt, b5)
		r6 := subscribeBehavior(rt, b6)
		r7 := subscribeBehavior(rt, b7)
		if err := firstErr(r1.Err, r2.Err, r3.Err, r4.Err, r5.Err, r6.Err, r7.Err); err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		v, err := runCatching(func() U { return f(r1.Value, r2.Value, r3.Value, r4.Value, r5.Value, r6.Value, r7.Value) })
		if err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		writeBehavior(rt, out, Ok(v))
	})
	return out
}

func Bind7[T1, T2, T3, T4, T5, T6, T7, U any](rt *Runtime, b1 *Behavior[T1], b2 *Behavior[T2], b3 *Behavior[T3], b4 *Behavior[T4], b5 *Behavior[T5], b6 *Behavior[T6], b7 *Behavior[T7], f func(T1, T2, T3, T4, T5, T6, T7) *Behavior[U], eq func(U, U) bool) *Behavior[U] {
	out := newBehavior[U](rt, eq)
	var cancelInner CancelFunc
	rt.newReader(func() {
		if cancelInner != nil {
			cancelInner()
			cancelInner = nil
		}
		r1 := subscribeBehavior(rt, b1)
		r2 := subscribeBehavior(rt, b2)
		r3 := subscribeBehavior(rt, b3)
		r4 := subscribeBehavior(rt, b4)
		r5 := subscribeBehavior(rt, b5)
		r6 := subscribeBehavior(rt, b6)
		r7 := subscribeBehavior(rt, b7)
		if err := firstErr(r1.Err, r2.Err, r3.Err, r4.Err, r5.Err, r6.Err, r7.Err); err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		inner, err := runCatching(func() *Behavior[U] { return f(r1.Value, r2.Value, r3.Value, r4.Value, r5.Value, r6.Value, r7.Value) })
		if err != nil {
			writeBehavior(rt, out, Failed[U](err))
			return
		}
		cancelInner = NotifyBCancel(inner, func(v U) { writeBehavior(rt, out, Ok(v)) })
		writeBehavior(rt, out, ReadResult(inner))
	})
	return out
}
