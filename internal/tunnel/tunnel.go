// Package tunnel reaches the telemetry endpoint through an SSH connection.
//
// A Tunnel owns one SSH client, opened on first use and reopened when it dies.
// Its DialContext plugs into an http.Transport so requests to the endpoint URL
// are dialed from the SSH host's side.
package tunnel

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/logger"
	"golang.org/x/crypto/ssh"
)

// DefaultTimeout bounds the TCP connect and SSH handshake.
const DefaultTimeout = 10 * time.Second

// Options configures a Tunnel.
type Options struct {
	Timeout time.Duration
	// InsecureHostKey skips known_hosts verification.
	InsecureHostKey bool
	Logger          logger.Logger
}

// connectFunc opens a fresh SSH client.
type connectFunc func(ctx context.Context) (*ssh.Client, error)

// Tunnel is a reconnecting SSH client used as a dialer. Safe for concurrent use.
type Tunnel struct {
	host    string
	connect connectFunc
	log     logger.Logger

	mu     sync.Mutex
	client *ssh.Client
	closed bool
}

// New creates a tunnel through host. No connection is made until first use.
func New(host string, opts Options) *Tunnel {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewEnvLogger("[tunnel]")
	}
	t := &Tunnel{host: host, log: log}
	t.connect = func(ctx context.Context) (*ssh.Client, error) {
		return dial(ctx, host, opts, log)
	}
	return t
}

// Host returns the host string the tunnel was created with.
func (t *Tunnel) Host() string {
	return t.host
}

// Connect opens the SSH connection now, so configuration problems show up
// before the dashboard starts.
func (t *Tunnel) Connect(ctx context.Context) error {
	_, err := t.ensure(ctx)
	return err
}

// DialContext opens a connection to addr from the SSH host. A dead SSH
// connection is replaced once before giving up.
func (t *Tunnel) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	client, err := t.ensure(ctx)
	if err != nil {
		return nil, err
	}

	conn, err := client.DialContext(ctx, network, addr)
	if err == nil {
		return conn, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	t.log.Debug("dial %s via %s failed, reconnecting: %v", addr, t.host, err)
	t.drop(client)
	client, rerr := t.ensure(ctx)
	if rerr != nil {
		return nil, rerr
	}
	return client.DialContext(ctx, network, addr)
}

// Close closes the SSH connection. Later dials fail.
func (t *Tunnel) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	if t.client == nil {
		return nil
	}
	err := t.client.Close()
	t.client = nil
	return err
}

// ensure returns a live client, connecting if needed.
func (t *Tunnel) ensure(ctx context.Context) (*ssh.Client, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil, errors.New(errors.ErrSSH, fmt.Sprintf("Tunnel to '%s' is closed", t.host), "")
	}
	if t.client != nil {
		if isAlive(t.client) {
			return t.client, nil
		}
		_ = t.client.Close()
		t.client = nil
	}

	client, err := t.connect(ctx)
	if err != nil {
		return nil, err
	}
	t.client = client
	return client, nil
}

// drop forgets client if it is still the current one.
func (t *Tunnel) drop(client *ssh.Client) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.client == client {
		_ = t.client.Close()
		t.client = nil
	}
}

// isAlive sends a global request as a cheap liveness check. Servers answer
// unknown requests with a failure reply, which still proves the link works.
func isAlive(client *ssh.Client) bool {
	_, _, err := client.SendRequest("keepalive@openssh.com", true, nil)
	return err == nil
}

// dial establishes an SSH connection to host, resolving settings from
// ~/.ssh/config.
func dial(ctx context.Context, host string, opts Options, log logger.Logger) (*ssh.Client, error) {
	s := resolveSettings(host, log)

	config, err := clientConfig(s, opts.InsecureHostKey, opts.Timeout)
	if err != nil {
		var sdErr *errors.Error
		if stderrors.As(err, &sdErr) {
			return nil, err
		}
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("Couldn't set up SSH for '%s'", host),
			"Check your keys are loaded: ssh-add -l")
	}

	client, err := handshake(ctx, s.address(), config, opts.Timeout)
	if err != nil {
		var hostKeyErr *HostKeyMismatchError
		var dialErr *net.OpError
		switch {
		case stderrors.As(err, &hostKeyErr):
			return nil, errors.New(errors.ErrSSH, hostKeyErr.Error(), hostKeyErr.Suggestion())
		case stderrors.As(err, &dialErr) && dialErr.Op == "dial":
			return nil, errors.WrapWithCode(err, errors.ErrSSH,
				fmt.Sprintf("Can't reach '%s' at %s", host, s.address()),
				suggestionForDialError(err))
		}
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("SSH handshake with '%s' (%s) didn't go through", host, s.describe()),
			suggestionForHandshakeError(err, s.encryptedKeys))
	}

	log.Debug("connected to %s", s.describe())
	return client, nil
}

// handshake dials address and runs the SSH handshake within timeout.
func handshake(ctx context.Context, address string, config *ssh.ClientConfig, timeout time.Duration) (*ssh.Client, error) {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, err
	}

	if timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(timeout))
	}
	sshConn, chans, reqs, err := ssh.NewClientConn(conn, address, config)
	if err != nil {
		conn.Close()
		return nil, err
	}
	_ = conn.SetDeadline(time.Time{})

	return ssh.NewClient(sshConn, chans, reqs), nil
}
