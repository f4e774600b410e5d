// Package native is the runtime the generated Go bindings call into.
//
// Design: generated code never knows how a native is reached. Every call goes through
// the process-wide Invoker, which a host installs once (a game bridge, an RPC client,
// or a recorder in tests).
package native

import (
	"fmt"
	"sync"

	"github.com/GriffinCanCode/nativedb/pkg/logger"
)

// Invoker performs one native call. Output and in-out arguments arrive as pointers the
// invoker writes through; the returned value is converted to the caller's result type.
type Invoker interface {
	Invoke(hash uint64, args []any) (any, error)
}

// InvokerFunc adapts a function to Invoker
type InvokerFunc func(hash uint64, args []any) (any, error)

func (f InvokerFunc) Invoke(hash uint64, args []any) (any, error) {
	return f(hash, args)
}

// CallError is raised when a native call fails or yields a value of the wrong type
type CallError struct {
	Hash uint64
	Err  error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("native 0x%016X: %v", e.Hash, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

var (
	mu      sync.RWMutex
	current Invoker
)

// SetInvoker installs the process-wide invoker and returns the previous one
func SetInvoker(inv Invoker) Invoker {
	mu.Lock()
	defer mu.Unlock()
	prev := current
	current = inv
	if inv != nil {
		logger.Debug("Native invoker installed", "type", fmt.Sprintf("%T", inv))
	}
	return prev
}

func invoker() Invoker {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Invoke calls a native and converts its result to T.
// It panics with *CallError when no invoker is installed or the call fails.
func Invoke[T any](hash uint64, args ...any) T {
	var zero T
	inv := invoker()
	if inv == nil {
		panic(&CallError{Hash: hash, Err: fmt.Errorf("no invoker installed")})
	}

	res, err := inv.Invoke(hash, args)
	if err != nil {
		panic(&CallError{Hash: hash, Err: err})
	}
	if res == nil {
		return zero
	}
	v, ok := res.(T)
	if !ok {
		panic(&CallError{Hash: hash, Err: fmt.Errorf("result has type %T, want %T", res, zero)})
	}
	return v
}

// Call invokes a native whose result is discarded
func Call(hash uint64, args ...any) {
	Invoke[any](hash, args...)
}

// TryInvoke is Invoke without the panic
func TryInvoke[T any](hash uint64, args ...any) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			ce, ok := r.(*CallError)
			if !ok {
				panic(r)
			}
			err = ce
		}
	}()
	return Invoke[T](hash, args...), nil
}
