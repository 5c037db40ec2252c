package conn

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// DefaultSSHTimeout bounds the TCP dial and handshake when no timeout is set.
const DefaultSSHTimeout = 30 * time.Second

// SSHConfig describes how to reach a host over SSH.
type SSHConfig struct {
	Host                        string
	Port                        string
	User                        string
	KeyPath                     string
	Passphrase                  []byte
	KnownHostsPath              string
	InsecureSkipHostKeyChecking bool
	Timeout                     time.Duration
}

// SSH is a Connection over one SSH client. Each Run opens its own session.
type SSH struct {
	client *ssh.Client
}

// DialSSH connects and authenticates. ctx bounds the dial only.
func DialSSH(ctx context.Context, cfg SSHConfig) (*SSH, error) {
	address, err := cfg.address()
	if err != nil {
		return nil, err
	}
	config, err := cfg.clientConfig()
	if err != nil {
		return nil, err
	}

	dialer := net.Dialer{Timeout: config.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("ssh dial %s: %w", address, err)
	}

	clientConn, chans, reqs, err := ssh.NewClientConn(conn, address, config)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ssh handshake %s: %w", address, err)
	}
	return &SSH{client: ssh.NewClient(clientConn, chans, reqs)}, nil
}

// Run executes the command in a new session and returns combined output. The
// session is closed if ctx is cancelled first.
func (c *SSH) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	session, err := c.client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("ssh session: %w", err)
	}
	defer session.Close()

	stop := context.AfterFunc(ctx, func() { session.Close() })
	defer stop()

	out, err := session.CombinedOutput(joinCommand(name, args))
	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, errors.Join(ctxErr, err)
	}
	return out, err
}

// Close closes the underlying client.
func (c *SSH) Close() error {
	return c.client.Close()
}

func (cfg SSHConfig) address() (string, error) {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		return "", fmt.Errorf("ssh host is required")
	}
	if cfg.Port != "" {
		return net.JoinHostPort(host, cfg.Port), nil
	}
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host, nil
	}
	return net.JoinHostPort(host, "22"), nil
}

func (cfg SSHConfig) clientConfig() (*ssh.ClientConfig, error) {
	if cfg.User == "" {
		return nil, fmt.Errorf("ssh user is required")
	}

	signer, err := cfg.signer()
	if err != nil {
		return nil, err
	}

	var hostKeyCallback ssh.HostKeyCallback
	if cfg.InsecureSkipHostKeyChecking {
		hostKeyCallback = ssh.InsecureIgnoreHostKey()
	} else {
		callback, err := cfg.knownHostsCallback()
		if err != nil {
			return nil, err
		}
		hostKeyCallback = callback
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultSSHTimeout
	}
	return &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         timeout,
	}, nil
}

func (cfg SSHConfig) signer() (ssh.Signer, error) {
	path := cfg.KeyPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("ssh key path not set and home dir unavailable")
		}
		path = filepath.Join(home, ".ssh", "id_ed25519")
	}

	privateKey, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ssh key: %w", err)
	}
	if len(cfg.Passphrase) > 0 {
		return ssh.ParsePrivateKeyWithPassphrase(privateKey, cfg.Passphrase)
	}
	return ssh.ParsePrivateKey(privateKey)
}

func (cfg SSHConfig) knownHostsCallback() (ssh.HostKeyCallback, error) {
	path := strings.TrimSpace(cfg.KnownHostsPath)
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("known hosts path not set and home dir unavailable")
		}
		path = filepath.Join(home, ".ssh", "known_hosts")
	}
	return knownhosts.New(path)
}

func joinCommand(cmd string, args []string) string {
	var b strings.Builder
	b.WriteString(shellEscape(cmd))
	for _, arg := range args {
		b.WriteByte(' ')
		b.WriteString(shellEscape(arg))
	}
	return b.String()
}

func shellEscape(value string) string {
	if value == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(value, "'", `'"'"'`) + "'"
}
