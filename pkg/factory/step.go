package factory

import (
	"context"
	"reflect"
	"regexp"
	"runtime"
	"strings"

	"lambda-handler-factory/pkg/handler"
)

// Event is the raw payload passed to every step of a chain
type Event = handler.Event

// Func is a plain handler or hook. previous is the result of the preceding step.
type Func func(ctx context.Context, event Event, previous any) (any, error)

// Constructor builds a stateful handler for one invocation
type Constructor func(ctx context.Context, event Event) handler.Handler

// Namer is implemented by values that declare their own handler name
type Namer interface {
	HandlerName() string
}

// Named attaches an explicit name to a handler or hook value
func Named(name string, h any) any {
	return named{name: name, value: h}
}

type named struct {
	name  string
	value any
}

func (n named) HandlerName() string { return n.name }

type stepKind int

const (
	funcStep stepKind = iota
	constructorStep
)

// step is one link of a resolved chain, either a function or a constructor
type step struct {
	kind stepKind
	name string
	fn   Func
	ctor Constructor
}

func (s *step) run(ctx context.Context, event Event, previous any) (any, error) {
	if s.kind == constructorStep {
		h := s.ctor(ctx, event)
		if h == nil {
			return nil, ErrInvalidHandler
		}
		return h.Handle(previous)
	}
	return s.fn(ctx, event, previous)
}

// newStep classifies v once, so invocations never inspect types again
func newStep(v any) (*step, bool) {
	name := ""
	if n, ok := v.(named); ok {
		name, v = n.name, n.value
	} else if n, ok := v.(Namer); ok {
		name = n.HandlerName()
	}

	s := &step{name: name}
	switch h := v.(type) {
	case Func:
		s.fn = h
	case func(context.Context, Event, any) (any, error):
		s.fn = h
	case func(context.Context, Event) (any, error):
		s.fn = func(ctx context.Context, event Event, _ any) (any, error) { return h(ctx, event) }
	case Constructor:
		s.kind, s.ctor = constructorStep, h
	case func(context.Context, Event) handler.Handler:
		s.kind, s.ctor = constructorStep, h
	default:
		return nil, false
	}

	if (s.kind == funcStep && s.fn == nil) || (s.kind == constructorStep && s.ctor == nil) {
		return nil, false
	}

	if s.name == "" {
		s.name = funcName(v)
	}
	return s, true
}

// closures get synthetic symbol names such as "outer.func1.2" or "glob..func1"
var anonymousName = regexp.MustCompile(`(^|\.)func\d+(\.\d+)*$`)

// funcName derives the declared name of a top-level function
func funcName(v any) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return ""
	}

	fn := runtime.FuncForPC(rv.Pointer())
	if fn == nil {
		return ""
	}

	full := fn.Name()
	if slash := strings.LastIndex(full, "/"); slash >= 0 {
		full = full[slash+1:]
	}
	// drop the package qualifier
	if dot := strings.Index(full, "."); dot >= 0 {
		full = full[dot+1:]
	}
	full = strings.TrimSuffix(full, "-fm")

	if full == "" || anonymousName.MatchString(full) {
		return ""
	}
	// method expressions look like "(*T).Method" or "T.Method"
	if dot := strings.LastIndex(full, "."); dot >= 0 {
		full = full[dot+1:]
	}
	return full
}

// declaredName returns the name a value would be registered under
func declaredName(v any) string {
	switch h := v.(type) {
	case nil:
		return ""
	case string:
		return h
	case named:
		return h.name
	case Namer:
		return h.HandlerName()
	}
	return funcName(v)
}
