package ports

import (
	"context"
	"errors"

	"github.com/aretw0/bramble/pkg/domain"
)

// ErrAwaitInput is returned by a host function that needs a line of user
// input before it can produce its results. The navigator parks the session
// and re-invokes the same call once the next line is submitted.
var ErrAwaitInput = errors.New("function awaits user input")

// StateView is the read/write window a host function receives over the
// current session. Writes through SetGlobal are subject to the entry-file
// scope rule and may be dropped with a ScopeError.
type StateView interface {
	// Get resolves a variable (local scope first, then global); unresolved
	// names yield the Empty value.
	Get(name string) domain.Value

	// SetLocal writes to the per-file scope.
	SetLocal(name string, v domain.Value)

	// SetGlobal writes to the session-wide scope. Returns a ScopeError when
	// invoked outside the entry file's execution context.
	SetGlobal(name string, v domain.Value) error

	// TakeInput consumes the pending user line, if one was submitted for
	// this call. Functions with no input requirement never call this.
	TakeInput() (string, bool)
}

// Function is one host-supplied capability. It returns its results as an
// ordered list of values; the navigator binds them, in order, to the call's
// binding names. Returning ErrAwaitInput parks the session until input
// arrives; any other error triggers the engine's fallback policy.
type Function func(ctx context.Context, view StateView) ([]domain.Value, error)

// FunctionDispatcher resolves and invokes host capabilities by name.
type FunctionDispatcher interface {
	// Dispatch invokes the named capability. An unregistered name yields a
	// ReferenceError with code RefUnknownFunction.
	Dispatch(ctx context.Context, name string, view StateView) ([]domain.Value, error)
}
