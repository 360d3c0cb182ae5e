package frp

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// runtimeLogger is the structured-logging backend wired via [WithLogger] and
// [WithStumpyLogger]. Logging is opt-in and silent by default.
type runtimeLogger struct {
	logger *logiface.Logger[*stumpy.Event]
}

// enabled reports whether a logger was configured at all.
func (l runtimeLogger) enabled() bool {
	return l.logger != nil
}

// logLoggerDebug emits a debug-level structured record for propagation
// decision points (see [Runtime.Debugf]). msg is free text; no structured
// fields are attached to the record.
func (rt *Runtime) logLoggerDebug(msg string) {
	if !rt.logger.enabled() {
		return
	}
	rt.logger.logger.Debug().Log(msg)
}

// logUncaught emits an error-level structured record for a recovered panic
// or propagated failure that reached the uncaught-exception sink.
func (rt *Runtime) logUncaught(err error) {
	if !rt.logger.enabled() {
		return
	}
	rt.logger.logger.Err().Err(err).Log("uncaught exception")
}

// NewStumpyLogger builds a *logiface.Logger[*stumpy.Event] backed by the
// stumpy JSON writer, for use with [WithLogger]. Supplied purely as a
// convenience so callers don't need to import logiface/stumpy themselves
// just to get structured logging working. [WithLogger] accepts only
// loggers with the *stumpy.Event event type, so other logiface backends
// cannot be passed to it.
func NewStumpyLogger(options ...stumpy.Option) *logiface.Logger[*stumpy.Event] {
	return stumpy.L.New(stumpy.L.WithStumpy(options...))
}
