package factory

import (
	"reflect"

	"github.com/sirupsen/logrus"
)

// Order says whether hooks run before or after the handler
type Order string

const (
	OrderBefore Order = "before"
	OrderAfter  Order = "after"
)

// Wildcard is the hook target applying to every handler
const Wildcard = "*"

// Scope narrows hooks to one handler. Name wins over the declared name of Handler.
type Scope struct {
	Handler any
	Name    string
}

// For scopes hooks to a handler name or a handler value
func For(target any) Scope {
	if name, ok := target.(string); ok {
		return Scope{Name: name}
	}
	return Scope{Handler: target}
}

func (s Scope) target() string {
	if s.Name != "" {
		return s.Name
	}
	return declaredName(s.Handler)
}

// Before adds hooks that run ahead of the handler. Without a scope the hooks are global.
func (f *Factory) Before(hooks any, scope ...Scope) error {
	return f.scopedHooks("Before", OrderBefore, hooks, scope)
}

// After adds hooks that run once the handler returned. Without a scope the hooks are global.
func (f *Factory) After(hooks any, scope ...Scope) error {
	return f.scopedHooks("After", OrderAfter, hooks, scope)
}

func (f *Factory) scopedHooks(op string, order Order, hooks any, scope []Scope) error {
	switch len(scope) {
	case 0:
		return f.addHooks(op, order, Wildcard, hooks)
	case 1:
		return f.addHooks(op, order, scope[0].target(), hooks)
	default:
		return newRegistrationError(op, "", ErrTooManyArguments)
	}
}

// AddHooks appends hooks for target. Use Wildcard to target every handler.
// A single hook or a slice of hooks is accepted.
func (f *Factory) AddHooks(order Order, target string, hooks any) error {
	return f.addHooks("AddHooks", order, target, hooks)
}

func (f *Factory) addHooks(op string, order Order, target string, hooks any) error {
	if target == "" {
		return newRegistrationError(op, "", ErrMissingTarget)
	}
	if order != OrderBefore && order != OrderAfter {
		return newRegistrationError(op, target, ErrInvalidHandler)
	}

	steps, err := hookSteps(hooks)
	if err != nil {
		return newRegistrationError(op, target, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.hooks[order][target] = append(f.hooks[order][target], steps...)

	f.logger.WithFields(logrus.Fields{
		"order":  order,
		"target": target,
		"count":  len(steps),
	}).Debug("Hooks added")
	return nil
}

// hookSteps normalizes a single hook or a slice of hooks
func hookSteps(hooks any) ([]*step, error) {
	if s, ok := newStep(hooks); ok {
		return []*step{s}, nil
	}

	rv := reflect.ValueOf(hooks)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return nil, ErrInvalidHandler
	}

	steps := make([]*step, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		s, ok := newStep(rv.Index(i).Interface())
		if !ok {
			return nil, ErrInvalidHandler
		}
		steps = append(steps, s)
	}
	return steps, nil
}
