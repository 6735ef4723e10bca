package factory

import (
	"context"
	"fmt"
)

// Outcome is the settled result of a step or a chain. Err is set on failure,
// Value is meaningful only when Err is nil.
type Outcome struct {
	Value any
	Err   error
}

// Promise delivers exactly one Outcome. Steps may return one to complete asynchronously.
type Promise <-chan Outcome

// Async runs fn in its own goroutine and returns a Promise for its outcome
func Async(fn func() (any, error)) Promise {
	ch := make(chan Outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- Outcome{Err: &PanicError{Value: r}}
			}
		}()
		value, err := fn()
		ch <- Outcome{Value: value, Err: err}
	}()
	return ch
}

// Resolved returns a Promise already settled with value
func Resolved(value any) Promise {
	ch := make(chan Outcome, 1)
	ch <- Outcome{Value: value}
	return ch
}

// Rejected returns a Promise already settled with err
func Rejected(err error) Promise {
	ch := make(chan Outcome, 1)
	ch <- Outcome{Err: err}
	return ch
}

// Await blocks until the promise settles or ctx is done. A nil promise
// settles immediately with a nil value.
func (p Promise) Await(ctx context.Context) (any, error) {
	if p == nil {
		return nil, nil
	}
	select {
	case out, ok := <-p:
		if !ok {
			return nil, fmt.Errorf("promise closed without an outcome")
		}
		return out.Value, out.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Execute runs every step of chain in order, threading results. The first
// failing step stops the chain and is reported as an *ExecutionError.
func (f *Factory) Execute(ctx context.Context, chain Chain, event Event) Outcome {
	var previous any

	for i, s := range chain.steps {
		if err := ctx.Err(); err != nil {
			return Outcome{Err: &ExecutionError{Handler: chain.Name, Step: i, Err: err}}
		}

		if s == nil {
			return Outcome{Err: &ExecutionError{
				Handler: chain.Name,
				Step:    i,
				Err:     fmt.Errorf("%w: %s", ErrUnknownHandler, chain.Name),
			}}
		}

		value, err := runStep(ctx, s, event, previous)
		if err != nil {
			return Outcome{Err: &ExecutionError{Handler: chain.Name, Step: i, Err: err}}
		}
		previous = value
	}

	return Outcome{Value: previous}
}

// ExecuteAsync runs the chain in a new goroutine
func (f *Factory) ExecuteAsync(ctx context.Context, chain Chain, event Event) Promise {
	ch := make(chan Outcome, 1)
	go func() {
		ch <- f.Execute(ctx, chain, event)
	}()
	return ch
}

// runStep invokes one step, converting panics to errors and awaiting promises
func runStep(ctx context.Context, s *step, event Event, previous any) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			value, err = nil, &PanicError{Value: r}
		}
	}()

	value, err = s.run(ctx, event, previous)
	if err != nil {
		return nil, err
	}

	// a promise may settle with another promise
	for {
		p, ok := asPromise(value)
		if !ok {
			return value, nil
		}
		if value, err = p.Await(ctx); err != nil {
			return nil, err
		}
	}
}

func asPromise(v any) (Promise, bool) {
	switch p := v.(type) {
	case Promise:
		return p, true
	case <-chan Outcome:
		return p, true
	case chan Outcome:
		return p, true
	}
	return nil, false
}
