package functions

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lambda-handler-factory/internal/config"
	"lambda-handler-factory/internal/middleware"
	"lambda-handler-factory/pkg/server"
)

func newContainer(t *testing.T, secret string) *server.Container {
	t.Helper()
	cfg := &config.Config{
		Environment: "test",
		Port:        "8080",
		Log:         config.LogConfig{Level: "error", Format: "text"},
		Auth:        config.AuthConfig{JWTSecret: secret, Issuer: "test"},
	}
	c, err := server.NewContainer(cfg, Register)
	require.NoError(t, err)
	require.NoError(t, c.Runtime.Initialize())
	t.Cleanup(func() { c.Close() })
	return c
}

func invoke(t *testing.T, c *server.Container, name string, event string) (any, error) {
	t.Helper()
	h, err := c.Runtime.Handler(name)
	require.NoError(t, err)
	return h(context.Background(), json.RawMessage(event))
}

func TestRegister(t *testing.T) {
	c := newContainer(t, "")
	assert.Equal(t, []string{"Ping", "Prices", "Quote"}, c.Runtime.Names())
}

func TestPing(t *testing.T) {
	c := newContainer(t, "")
	result, err := invoke(t, c, "Ping", `{}`)
	require.NoError(t, err)
	assert.Equal(t, "pong", result.(map[string]any)["message"])
}

func TestPrices(t *testing.T) {
	c := newContainer(t, "")

	result, err := invoke(t, c, "Prices", `{"httpMethod":"GET","path":"/prices"}`)
	require.NoError(t, err)
	lines := result.([]QuoteLine)
	require.Len(t, lines, len(PriceList))
	assert.Equal(t, "baguette", lines[0].Product)

	_, err = invoke(t, c, "Prices", `{"httpMethod":"DELETE"}`)
	assert.EqualError(t, err, "handler 'Prices' failed at step 1: HTTPEventHandler does not implement delete")
}

func TestQuote(t *testing.T) {
	t.Run("Priced", func(t *testing.T) {
		c := newContainer(t, "")
		result, err := invoke(t, c, "Quote", `{"items":[{"product":"sourdough","quantity":2},{"product":"croissant","quantity":3}]}`)
		require.NoError(t, err)

		quote := result.(*QuoteResult)
		require.Len(t, quote.Lines, 2)
		assert.Equal(t, 15.0, quote.Lines[0].Amount)
		assert.InDelta(t, 24.6, quote.Total, 0.001)
	})

	t.Run("ValidationFails", func(t *testing.T) {
		c := newContainer(t, "")
		_, err := invoke(t, c, "Quote", `{"items":[]}`)
		assert.Equal(t, http.StatusBadRequest, middleware.StatusCode(err))
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		c := newContainer(t, "")
		_, err := invoke(t, c, "Quote", `{"items":[{"product":"pie","quantity":1}]}`)
		assert.Equal(t, http.StatusNotFound, middleware.StatusCode(err))
	})

	t.Run("RequiresToken", func(t *testing.T) {
		c := newContainer(t, "secret")
		_, err := invoke(t, c, "Quote", `{"items":[{"product":"muffin","quantity":1}]}`)
		assert.Equal(t, http.StatusUnauthorized, middleware.StatusCode(err))

		token, err := c.Auth.GenerateToken("user-1", nil)
		require.NoError(t, err)

		body, _ := json.Marshal(`{"items":[{"product":"muffin","quantity":1}]}`)
		event := `{"httpMethod":"POST","headers":{"Authorization":"Bearer ` + token + `"},"body":` + string(body) + `}`
		result, err := invoke(t, c, "Quote", event)
		require.NoError(t, err)
		assert.Equal(t, 3.8, result.(*QuoteResult).Total)
	})
}
