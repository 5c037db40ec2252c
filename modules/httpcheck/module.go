// Package httpcheck provides the "http_check" procedure, which verifies that
// an HTTP endpoint on the managed system answers with the expected status.
package httpcheck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/specialistvlad/baton/internal/ctxlog"
	"github.com/specialistvlad/baton/internal/model"
	"github.com/specialistvlad/baton/internal/registry"
)

// Type is the resource type registered by this module.
const Type = "http_check"

// DefaultTimeout applies when the resource sets no timeout.
const DefaultTimeout = 10 * time.Second

// ErrUnexpectedStatus is returned when the endpoint answers with another status.
var ErrUnexpectedStatus = errors.New("unexpected http status")

// Module implements the registry.Module interface for this package.
type Module struct {
	// Client overrides the HTTP client; nil means a client per check.
	Client *http.Client
}

// Register registers the procedure with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterProcedure(Type, func(attrs map[string]any) (model.Procedure, error) {
		p, err := New(attrs)
		if err != nil {
			return nil, err
		}
		p.client = m.Client
		return p, nil
	})
}

// Check requests URL (or Path on the system's address) and expects Status.
type Check struct {
	URL     string
	Path    string
	Method  string
	Status  int
	Timeout time.Duration
	client  *http.Client
}

// New builds a Check from resource attributes: url or path, method, status,
// timeout.
func New(attrs map[string]any) (*Check, error) {
	c := &Check{Method: http.MethodGet, Status: http.StatusOK, Timeout: DefaultTimeout}
	c.URL, _ = attrs["url"].(string)
	c.Path, _ = attrs["path"].(string)
	if c.URL == "" && c.Path == "" {
		return nil, fmt.Errorf("http_check: url or path is required")
	}
	if m, ok := attrs["method"].(string); ok && m != "" {
		c.Method = strings.ToUpper(m)
	}

	switch v := attrs["status"].(type) {
	case nil:
	case int:
		c.Status = v
	case int64:
		c.Status = int(v)
	case float64:
		c.Status = int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("http_check: status: %w", err)
		}
		c.Status = n
	default:
		return nil, fmt.Errorf("http_check: status is %T", v)
	}

	if raw, ok := attrs["timeout"].(string); ok && raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("http_check: timeout: %w", err)
		}
		c.Timeout = d
	}
	return c, nil
}

// target resolves the URL to request for sys.
func (c *Check) target(sys *model.System) string {
	if c.URL != "" {
		return c.URL
	}
	host := sys.Attribute("address")
	if host == "" {
		host = sys.Name
	}
	if port := sys.Attribute("http_port"); port != "" {
		host = net.JoinHostPort(host, port)
	}
	return "http://" + host + "/" + strings.TrimPrefix(c.Path, "/")
}

// Execute performs the request.
func (c *Check) Execute(ctx context.Context, sys *model.System, _ model.Connection) error {
	url := c.target(sys)
	logger := ctxlog.FromContext(ctx)
	logger.Info("Making HTTP request", "method", c.Method, "url", url)

	client := c.client
	if client == nil {
		client = &http.Client{Timeout: c.Timeout}
		defer client.CloseIdleConnections()
	}

	req, err := http.NewRequestWithContext(ctx, c.Method, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	logger.Info("Received HTTP response", "status", resp.Status)
	if resp.StatusCode != c.Status {
		return fmt.Errorf("%w: %s %s returned %d, want %d", ErrUnexpectedStatus, c.Method, url, resp.StatusCode, c.Status)
	}
	return nil
}
