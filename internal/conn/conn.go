// Package conn provides the Connections procedures use to reach a managed
// system: a local process runner and an SSH session.
package conn

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/specialistvlad/baton/internal/model"
)

// Transports selectable through the "transport" system attribute.
const (
	TransportLocal = "local"
	TransportSSH   = "ssh"
)

// ErrUnknownTransport is returned by Dial for an unsupported transport.
var ErrUnknownTransport = errors.New("unknown transport")

// Dial opens the connection described by the system's attributes. An empty
// transport means local.
//
// SSH attributes: address (host or host:port), port, user, key, known_hosts,
// insecure_skip_host_key_check, timeout (a Go duration).
func Dial(ctx context.Context, sys *model.System) (model.Connection, error) {
	switch transport := strings.ToLower(sys.Attribute("transport")); transport {
	case "", TransportLocal:
		return Local{}, nil
	case TransportSSH:
		cfg, err := sshConfigFromSystem(sys)
		if err != nil {
			return nil, fmt.Errorf("system %q: %w", sys.Name, err)
		}
		c, err := DialSSH(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("system %q: %w", sys.Name, err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q for system %q", ErrUnknownTransport, transport, sys.Name)
	}
}

func sshConfigFromSystem(sys *model.System) (SSHConfig, error) {
	cfg := SSHConfig{
		Host:           sys.Attribute("address"),
		Port:           sys.Attribute("port"),
		User:           sys.Attribute("user"),
		KeyPath:        sys.Attribute("key"),
		KnownHostsPath: sys.Attribute("known_hosts"),
	}
	if cfg.Host == "" {
		cfg.Host = sys.Name
	}

	switch v := sys.Attributes["insecure_skip_host_key_check"].(type) {
	case nil:
	case bool:
		cfg.InsecureSkipHostKeyChecking = v
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return SSHConfig{}, fmt.Errorf("insecure_skip_host_key_check: %w", err)
		}
		cfg.InsecureSkipHostKeyChecking = b
	default:
		return SSHConfig{}, fmt.Errorf("insecure_skip_host_key_check: unsupported value %v", v)
	}

	if raw := sys.Attribute("timeout"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return SSHConfig{}, fmt.Errorf("timeout: %w", err)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}
