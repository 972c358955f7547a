// Package ssh runs hypervisor commands and path checks on a remote host.
package ssh

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kballard/go-shellquote"
	"github.com/nikiskaarup/qlaunch/internal/runner"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

// Client represents an SSH connection target for the hypervisor host
type Client struct {
	host       string
	port       int
	username   string
	privateKey string
}

// NewClient creates a new SSH client
func NewClient(host string, port int, username, privateKey string) *Client {
	return &Client{
		host:       host,
		port:       port,
		username:   username,
		privateKey: privateKey,
	}
}

// Connect establishes an SSH connection
func (c *Client) Connect() (*ssh.Client, error) {
	key, err := os.ReadFile(c.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	config := &ssh.ClientConfig{
		User: c.username,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	addr := fmt.Sprintf("%s:%d", c.host, c.port)
	client, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	return client, nil
}

// Run executes argv on the remote host and waits for it to finish. The
// remote standard output is discarded.
func (c *Client) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}

	err := c.exec(ctx, shellquote.Join(argv...))
	var exitErr *ssh.ExitError
	if errors.As(err, &exitErr) {
		return &runner.ExitError{Argv: argv, Code: exitErr.ExitStatus()}
	}
	return err
}

// Exists reports whether path is present on the remote host
func (c *Client) Exists(ctx context.Context, path string) (bool, error) {
	if path == "" {
		return false, nil
	}

	err := c.exec(ctx, shellquote.Join("test", "-e", path))
	if err == nil {
		return true, nil
	}

	var exitErr *ssh.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitStatus() == 1 {
		return false, nil
	}
	return false, fmt.Errorf("failed to check %s on %s: %w", path, c.host, err)
}

func (c *Client) exec(ctx context.Context, cmd string) error {
	client, err := c.Connect()
	if err != nil {
		return err
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	session.Stderr = os.Stderr

	logrus.Debugf("Executing on %s: %s", c.host, cmd)

	done := make(chan error, 1)
	go func() {
		done <- session.Run(cmd)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGKILL)
		return fmt.Errorf("command interrupted: %w", ctx.Err())
	}
}
