package factory

import (
	"reflect"
	"sort"
)

// Hooks configures hooks supplied together with a registration
type Hooks struct {
	Before any
	After  any
}

func (h Hooks) empty() bool {
	return h.Before == nil && h.After == nil
}

// RegisterByName registers h under name. If name is already taken the call is a no-op.
func (f *Factory) RegisterByName(name string, h any) error {
	s, ok := newStep(h)
	if !ok {
		return newRegistrationError("RegisterByName", name, ErrInvalidHandler)
	}
	if name == "" {
		return newRegistrationError("RegisterByName", name, ErrMissingName)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.handlers[name]; exists {
		f.logger.WithField("handler", name).Debug("Handler already registered, keeping the first registration")
		return nil
	}

	f.handlers[name] = s
	f.logger.WithField("handler", name).Debug("Handler registered")
	return nil
}

// Register registers one handler, a slice of handlers or a map of handlers keyed by name.
// Slices use each value's declared name. Hooks given with a single handler are scoped
// to it, hooks given with a slice or map apply to every handler.
func (f *Factory) Register(handlers any, hooks ...Hooks) error {
	if len(hooks) > 1 {
		return newRegistrationError("Register", "", ErrTooManyArguments)
	}

	var cfg Hooks
	if len(hooks) == 1 {
		cfg = hooks[0]
	}

	rv := reflect.ValueOf(handlers)
	switch {
	case handlers == nil:
		return newRegistrationError("Register", "", ErrInvalidHandler)

	case rv.Kind() == reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return newRegistrationError("Register", "", ErrInvalidHandler)
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		for _, key := range keys {
			if err := f.RegisterByName(key.String(), rv.MapIndex(key).Interface()); err != nil {
				return err
			}
		}
		return f.addConfiguredHooks("Register", Wildcard, cfg)

	case rv.Kind() == reflect.Slice:
		for i := 0; i < rv.Len(); i++ {
			h := rv.Index(i).Interface()
			if err := f.RegisterByName(declaredName(h), h); err != nil {
				return err
			}
		}
		return f.addConfiguredHooks("Register", Wildcard, cfg)
	}

	name := declaredName(handlers)
	if err := f.RegisterByName(name, handlers); err != nil {
		return err
	}
	return f.addConfiguredHooks("Register", name, cfg)
}

func (f *Factory) addConfiguredHooks(op, target string, cfg Hooks) error {
	if cfg.empty() {
		return nil
	}
	if cfg.Before != nil {
		if err := f.addHooks(op, OrderBefore, target, cfg.Before); err != nil {
			return err
		}
	}
	if cfg.After != nil {
		if err := f.addHooks(op, OrderAfter, target, cfg.After); err != nil {
			return err
		}
	}
	return nil
}

// IsRegistered reports whether a name, or the declared name of a handler, is registered
func (f *Factory) IsRegistered(nameOrHandler any) bool {
	name := declaredName(nameOrHandler)
	if name == "" {
		return false
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	_, ok := f.handlers[name]
	return ok
}

// Names returns the registered handler names in sorted order
func (f *Factory) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.handlers))
	for name := range f.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
