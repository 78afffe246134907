package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthHandlerReady(t *testing.T) {
	h := NewHealthHandler(map[string]Pinger{
		"database": PingFunc(func(context.Context) error { return nil }),
	})

	c, w := newTestContext(http.MethodGet, "/ready", nil)
	h.Ready(c)

	body := decodeBody(t, w)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", body["status"])
}

func TestHealthHandlerReadyDegraded(t *testing.T) {
	h := NewHealthHandler(map[string]Pinger{
		"database": PingFunc(func(context.Context) error { return nil }),
		"cache":    PingFunc(func(context.Context) error { return errors.New("dial tcp: refused") }),
	})

	c, w := newTestContext(http.MethodGet, "/ready", nil)
	h.Ready(c)

	body := decodeBody(t, w)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, "ok", checks["database"])
	assert.Equal(t, "unavailable", checks["cache"])
}

func TestHealthHandlerHealth(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/health", nil)
	NewHealthHandler(nil).Health(c)
	assert.Equal(t, http.StatusOK, w.Code)
}
