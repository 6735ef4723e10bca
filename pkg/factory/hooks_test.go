package factory_test

import (
	"testing"

	"lambda-handler-factory/pkg/factory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddHooks(t *testing.T) {
	t.Run("MissingTarget", func(t *testing.T) {
		f := factory.New()
		err := f.AddHooks(factory.OrderBefore, "", firstMockFn)
		assert.ErrorIs(t, err, factory.ErrMissingTarget)
	})

	t.Run("InvalidHook", func(t *testing.T) {
		f := factory.New()
		err := f.AddHooks(factory.OrderAfter, factory.Wildcard, []any{firstMockFn, "nope"})
		assert.ErrorIs(t, err, factory.ErrInvalidHandler)

		require.NoError(t, f.RegisterByName("fn", secondMockFn))
		assert.Equal(t, 1, f.Resolve("fn").Len())
	})

	tests := []struct {
		name   string
		order  factory.Order
		target string
		want   []string
	}{
		{"GlobalBefore", factory.OrderBefore, factory.Wildcard, []string{"hook", "secondMockFn"}},
		{"GlobalAfter", factory.OrderAfter, factory.Wildcard, []string{"secondMockFn", "hook"}},
		{"NamedBefore", factory.OrderBefore, "secondMockFn", []string{"hook", "secondMockFn"}},
		{"NamedAfter", factory.OrderAfter, "secondMockFn", []string{"secondMockFn", "hook"}},
		{"OtherHandler", factory.OrderBefore, "firstMockFn", []string{"secondMockFn"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := factory.New()
			require.NoError(t, f.Register(secondMockFn))
			require.NoError(t, f.AddHooks(tt.order, tt.target, factory.Named("hook", firstMockFn)))
			assert.Equal(t, tt.want, f.Resolve("secondMockFn").Names())
		})
	}

	t.Run("AppendsInCallOrder", func(t *testing.T) {
		f := factory.New()
		require.NoError(t, f.Register(secondMockFn))
		require.NoError(t, f.AddHooks(factory.OrderAfter, "secondMockFn", factory.Named("h1", firstMockFn)))
		require.NoError(t, f.AddHooks(factory.OrderAfter, "secondMockFn", []any{
			factory.Named("h2", firstMockFn),
			factory.Named("h3", firstMockFn),
		}))

		assert.Equal(t, []string{"secondMockFn", "h1", "h2", "h3"}, f.Resolve("secondMockFn").Names())
	})
}

func TestBeforeAfter(t *testing.T) {
	t.Run("GlobalWhenUnscoped", func(t *testing.T) {
		f := factory.New()
		require.NoError(t, f.Register([]factory.Func{firstMockFn, secondMockFn}))
		require.NoError(t, f.Before(factory.Named("before", firstMockFn)))
		require.NoError(t, f.After(factory.Named("after", firstMockFn)))

		assert.Equal(t, []string{"before", "firstMockFn", "after"}, f.Resolve("firstMockFn").Names())
		assert.Equal(t, []string{"before", "secondMockFn", "after"}, f.Resolve("secondMockFn").Names())
	})

	t.Run("ScopedToHandlerValue", func(t *testing.T) {
		f := factory.New()
		require.NoError(t, f.Register([]factory.Func{firstMockFn, secondMockFn}))
		require.NoError(t, f.Before(factory.Named("before", firstMockFn), factory.For(secondMockFn)))

		assert.Equal(t, []string{"before", "secondMockFn"}, f.Resolve("secondMockFn").Names())
		assert.Equal(t, []string{"firstMockFn"}, f.Resolve("firstMockFn").Names())
	})

	t.Run("ScopedToName", func(t *testing.T) {
		f := factory.New()
		require.NoError(t, f.RegisterByName("custom", secondMockFn))
		require.NoError(t, f.After(factory.Named("after", firstMockFn), factory.For("custom")))

		assert.Equal(t, []string{"secondMockFn", "after"}, f.Resolve("custom").Names())
	})

	t.Run("NameOverridesHandler", func(t *testing.T) {
		f := factory.New()
		require.NoError(t, f.RegisterByName("custom", secondMockFn))
		require.NoError(t, f.Before(factory.Named("before", firstMockFn), factory.Scope{Handler: secondMockFn, Name: "custom"}))

		assert.Equal(t, []string{"before", "secondMockFn"}, f.Resolve("custom").Names())
		assert.Equal(t, 1, f.Resolve("secondMockFn").Len())
	})

	t.Run("AnonymousScopeHasNoTarget", func(t *testing.T) {
		f := factory.New()
		anon := func() {}
		err := f.Before(firstMockFn, factory.For(anon))
		assert.ErrorIs(t, err, factory.ErrMissingTarget)
	})

	t.Run("TooManyScopes", func(t *testing.T) {
		f := factory.New()
		err := f.After(firstMockFn, factory.For("a"), factory.For("b"))
		assert.ErrorIs(t, err, factory.ErrTooManyArguments)
	})
}
