package httpcheck

import (
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/specialistvlad/baton/internal/model"
	"github.com/specialistvlad/baton/internal/registry"
	"github.com/specialistvlad/baton/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsAndParsing(t *testing.T) {
	c, err := New(map[string]any{"path": "/health"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, c.Method)
	assert.Equal(t, http.StatusOK, c.Status)
	assert.Equal(t, DefaultTimeout, c.Timeout)

	c, err = New(map[string]any{"url": "http://x", "method": "head", "status": int64(204), "timeout": "2s"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodHead, c.Method)
	assert.Equal(t, 204, c.Status)
	assert.Equal(t, 2*time.Second, c.Timeout)

	_, err = New(map[string]any{})
	require.Error(t, err)
	_, err = New(map[string]any{"path": "/", "status": "abc"})
	require.Error(t, err)
	_, err = New(map[string]any{"path": "/", "timeout": "soon"})
	require.Error(t, err)
}

func TestTarget(t *testing.T) {
	c := &Check{Path: "health"}
	assert.Equal(t, "http://web1/health", c.target(model.NewSystem("web1", nil)))
	assert.Equal(t, "http://10.0.0.5:8080/health",
		c.target(model.NewSystem("web1", map[string]any{"address": "10.0.0.5", "http_port": "8080"})))

	c = &Check{URL: "https://example.test/ping", Path: "ignored"}
	assert.Equal(t, "https://example.test/ping", c.target(model.NewSystem("web1", nil)))
}

func TestExecuteAgainstServer(t *testing.T) {
	ctx, _ := testutil.LoggerContext(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	host, port, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)
	sys := model.NewSystem("web1", map[string]any{"address": host, "http_port": port})

	r := registry.New().Use(&Module{Client: srv.Client()})

	ok, err := r.Resolve(Type, map[string]any{"path": "/health"})
	require.NoError(t, err)
	require.NoError(t, ok.Execute(ctx, sys, nil))

	bad, err := r.Resolve(Type, map[string]any{"path": "/ready"})
	require.NoError(t, err)
	require.ErrorIs(t, bad.Execute(ctx, sys, nil), ErrUnexpectedStatus)
}
