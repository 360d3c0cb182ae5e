package frp

// SwitchBB behaves as whichever inner behavior bb currently holds,
// switching whenever bb changes — literally a bind whose body returns the
// inner behavior unchanged.
func SwitchBB[T any](rt *Runtime, bb *Behavior[*Behavior[T]], eq func(T, T) bool) *Behavior[T] {
	return Bind(rt, bb, func(inner *Behavior[T]) *Behavior[T] { return inner }, eq)
}

// SwitchBE behaves as b until be fires, then as the most recent firing's
// behavior, and continues tracking every subsequent firing — implemented
// as hold(b, be) followed by switch_bb.
func SwitchBE[T any](rt *Runtime, b *Behavior[T], be *Channel[*Behavior[T]], eq func(T, T) bool) *Behavior[T] {
	bb := Hold(rt, b, be, nil)
	return SwitchBB(rt, bb, eq)
}

// Until behaves as b until be fires exactly once, switching permanently to
// that single replacement, unlike [SwitchBE]'s continual re-switching.
// Implemented as switch_be over the first firing of be.
func Until[T any](rt *Runtime, b *Behavior[T], be *Channel[*Behavior[T]], eq func(T, T) bool) *Behavior[T] {
	return SwitchBE(rt, b, Next(rt, be), eq)
}
