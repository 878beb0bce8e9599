package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthApp(checks ...DependencyCheck) *fiber.App {
	handler := NewHealthHandler("helpdesk-service", "test", checks...)
	app := fiber.New()
	app.Get("/health/live", handler.Live)
	app.Get("/health/ready", handler.Ready)
	return app
}

func okCheck(name string) DependencyCheck {
	return DependencyCheck{Name: name, Ping: func(context.Context) error { return nil }}
}

func failingCheck(name string) DependencyCheck {
	return DependencyCheck{Name: name, Ping: func(context.Context) error { return errors.New("connection refused") }}
}

func TestHealthLive(t *testing.T) {
	app := healthApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "alive", body["status"])
	assert.Equal(t, "helpdesk-service", body["service"])
}

func TestHealthReady(t *testing.T) {
	t.Run("all dependencies up", func(t *testing.T) {
		app := healthApp(okCheck("postgres"), okCheck("redis"))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Status       string            `json:"status"`
			Dependencies map[string]string `json:"dependencies"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "ready", body.Status)
		assert.Equal(t, "ok", body.Dependencies["postgres"])
		assert.Equal(t, "ok", body.Dependencies["redis"])
	})

	t.Run("one dependency down", func(t *testing.T) {
		app := healthApp(okCheck("postgres"), failingCheck("redis"))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body struct {
			Error struct {
				Code    string            `json:"code"`
				Details map[string]string `json:"details"`
			} `json:"error"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "DEPENDENCY_UNAVAILABLE", body.Error.Code)
		assert.Equal(t, "ok", body.Error.Details["postgres"])
		assert.Equal(t, "connection refused", body.Error.Details["redis"])
	})
}
