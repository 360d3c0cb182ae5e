package frp

import "github.com/joeycumines/logiface"
import "github.com/joeycumines/stumpy"

// runtimeOptions holds configuration accumulated from [RuntimeOption]
// values: the uncaught-exception sink, debug sink, logger, memo hashers,
// and capacity hint.
type runtimeOptions struct {
	uncaught     func(error)
	debug        func(string)
	logger       runtimeLogger
	capacityHint int
	hashOverride func(any) (uint64, bool)
}

// RuntimeOption configures a [Runtime] at construction time via [New].
type RuntimeOption interface {
	applyRuntime(*runtimeOptions)
}

type runtimeOptionFunc func(*runtimeOptions)

func (f runtimeOptionFunc) applyRuntime(opts *runtimeOptions) { f(opts) }

// WithUncaughtExceptionHandler installs the sink consulted whenever a
// listener, reader body, or cleanup panics; the recovered value arrives
// wrapped in a [*ListenerPanic]. The default sink discards the error;
// propagation always continues regardless of what this handler does.
func WithUncaughtExceptionHandler(handler func(error)) RuntimeOption {
	return runtimeOptionFunc(func(opts *runtimeOptions) {
		opts.uncaught = handler
	})
}

// WithDebugSink installs a callback invoked with short, free-text
// diagnostic messages at each propagation-phase transition. Intended for
// tests and interactive debugging, not production telemetry — see
// [WithLogger] for structured logging.
func WithDebugSink(sink func(string)) RuntimeOption {
	return runtimeOptionFunc(func(opts *runtimeOptions) {
		opts.debug = sink
	})
}

// WithLogger installs a structured logiface logger. The logger's event type
// is fixed to *stumpy.Event, so it must be backed by the stumpy writer. Use
// [NewStumpyLogger] to build one.
func WithLogger(logger *logiface.Logger[*stumpy.Event]) RuntimeOption {
	return runtimeOptionFunc(func(opts *runtimeOptions) {
		opts.logger = runtimeLogger{logger: logger}
	})
}

// WithStumpyLogger is a convenience combining [NewStumpyLogger] and
// [WithLogger].
func WithStumpyLogger(options ...stumpy.Option) RuntimeOption {
	return WithLogger(NewStumpyLogger(options...))
}

// WithMemoHashers registers a fallback hash function consulted by
// [Runtime.HashKey] for memo keys that are not themselves a Behavior or
// Channel (those always hash by allocation id). hash should return
// ok=false for any key it does not know how to handle, falling through to
// the built-in structural hash.
func WithMemoHashers(hash func(any) (uint64, bool)) RuntimeOption {
	return runtimeOptionFunc(func(opts *runtimeOptions) {
		opts.hashOverride = hash
	})
}

// WithCapacityHint pre-sizes the event queue and reader heap, for callers
// who know roughly how many concurrent subscriptions/readers their graph
// will have. Purely an allocation optimization; has no effect on
// semantics.
func WithCapacityHint(n int) RuntimeOption {
	return runtimeOptionFunc(func(opts *runtimeOptions) {
		if n > 0 {
			opts.capacityHint = n
		}
	})
}

// resolveRuntimeOptions applies every RuntimeOption over a zero-valued
// runtimeOptions.
func resolveRuntimeOptions(opts []RuntimeOption) *runtimeOptions {
	cfg := &runtimeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyRuntime(cfg)
	}
	return cfg
}
