// Package handler provides the base types for stateful handlers that are
// constructed per invocation and run inside a factory chain.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
)

// Event is the raw payload delivered by the invoking runtime
type Event = json.RawMessage

// Handler is implemented by values built per invocation from (ctx, event).
// Handle receives the result of the previous step in the chain.
type Handler interface {
	Handle(previous any) (any, error)
}

// UnimplementedOperationError signals that a handler type did not provide an operation
type UnimplementedOperationError struct {
	Type      string
	Operation string
}

func (e *UnimplementedOperationError) Error() string {
	return fmt.Sprintf("%s does not implement %s", e.Type, e.Operation)
}

// Base holds the invocation inputs. Embed it and override Handle.
type Base struct {
	Event   Event
	Context context.Context

	// Name is used in error messages, defaults to "Handler"
	Name string
}

// NewBase creates a Base for one invocation
func NewBase(ctx context.Context, event Event) Base {
	return Base{Event: event, Context: ctx}
}

// Handle always fails; types embedding Base are expected to provide their own
func (b *Base) Handle(previous any) (any, error) {
	return nil, b.Unimplemented("handle")
}

// Unimplemented builds the error returned for a missing operation
func (b *Base) Unimplemented(operation string) error {
	name := b.Name
	if name == "" {
		name = "Handler"
	}
	return &UnimplementedOperationError{Type: name, Operation: operation}
}

// Decode unmarshals the event into v
func (b *Base) Decode(v any) error {
	if len(b.Event) == 0 {
		return fmt.Errorf("failed to decode event: empty payload")
	}
	if err := json.Unmarshal(b.Event, v); err != nil {
		return fmt.Errorf("failed to decode event: %w", err)
	}
	return nil
}
