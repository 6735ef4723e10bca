package factory

// Chain is the resolved, ordered sequence of steps for one handler name
type Chain struct {
	Name  string
	steps []*step
}

// Len returns the number of steps, the handler slot included
func (c Chain) Len() int {
	return len(c.steps)
}

// Names lists the declared name of every step, "" for anonymous steps
func (c Chain) Names() []string {
	names := make([]string, len(c.steps))
	for i, s := range c.steps {
		if s != nil {
			names[i] = s.name
		}
	}
	return names
}

// Resolve builds the chain for name from the current registry and hook store.
// Global hooks wrap named hooks as blocks; they are never interleaved by
// registration time. The handler slot is nil if name is not registered.
func (f *Factory) Resolve(name string) Chain {
	f.mu.RLock()
	defer f.mu.RUnlock()

	globalBefore := f.hooks[OrderBefore][Wildcard]
	namedBefore := f.hooks[OrderBefore][name]
	namedAfter := f.hooks[OrderAfter][name]
	globalAfter := f.hooks[OrderAfter][Wildcard]
	if name == Wildcard {
		namedBefore, namedAfter = nil, nil
	}

	steps := make([]*step, 0, len(globalBefore)+len(namedBefore)+1+len(namedAfter)+len(globalAfter))
	steps = append(steps, globalBefore...)
	steps = append(steps, namedBefore...)
	steps = append(steps, f.handlers[name])
	steps = append(steps, namedAfter...)
	steps = append(steps, globalAfter...)

	return Chain{Name: name, steps: steps}
}
