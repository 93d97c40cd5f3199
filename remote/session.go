package remote

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// Config holds everything needed to establish an authenticated channel.
type Config struct {
	Host     string
	Port     int    // 0 = 22
	User     string // empty = current local user
	Password string // empty = key auth only
	KeyPath  string // empty = discover a default key
	Timeout  time.Duration
}

const defaultDialTimeout = 30 * time.Second

// Session owns one authenticated channel to a remote host. All probe, mkdir,
// upload and command-execution calls of a transfer ride on it sequentially.
// Callers must Close it on every exit path; nothing here relies on finalizers.
type Session struct {
	client     *ssh.Client
	sftpClient *sftp.Client
	addr       string
}

// Dial authenticates to the host in cfg and returns a connected Session.
func Dial(cfg Config) (*Session, error) {
	username := cfg.User
	if username == "" {
		current, err := user.Current()
		if err != nil {
			return nil, fmt.Errorf("couldn't determine local user: %w", err)
		}
		username = current.Username
	}

	authMethods, err := buildAuthMethods(cfg, username)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultDialTimeout
	}
	clientConfig := &ssh.ClientConfig{
		User:            username,
		Auth:            authMethods,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}

	port := cfg.Port
	if port == 0 {
		port = 22
	}
	addr := fmt.Sprintf("%s:%d", cfg.Host, port)
	client, dialErr := ssh.Dial("tcp", addr, clientConfig)
	if dialErr != nil {
		if strings.Contains(dialErr.Error(), "unable to authenticate") {
			return nil, &AuthenticationError{Host: cfg.Host, User: username, Err: dialErr}
		}
		return nil, &ConnectionError{Addr: addr, Err: dialErr}
	}
	return &Session{client: client, addr: addr}, nil
}

func buildAuthMethods(cfg Config, username string) ([]ssh.AuthMethod, error) {
	methods := make([]ssh.AuthMethod, 0, 2)
	if cfg.Password != "" {
		methods = append(methods, ssh.Password(cfg.Password))
	}

	keyPath := cfg.KeyPath
	if keyPath == "" {
		keyPath = discoverDefaultKey()
	}
	if keyPath != "" {
		signer, err := loadPrivateKey(keyPath)
		if err != nil {
			// Explicitly requested keys must load; discovered ones are best-effort
			// when a password is available
			if cfg.KeyPath != "" || cfg.Password == "" {
				return nil, err
			}
		} else {
			methods = append(methods, ssh.PublicKeys(signer))
		}
	}

	if len(methods) == 0 {
		return nil, errors.New("no password given and no usable private key found")
	}
	return methods, nil
}

// discoverDefaultKey looks for the usual private keys under ~/.ssh.
func discoverDefaultKey() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	for _, name := range []string{"id_rsa", "id_ed25519", "id_dsa"} {
		candidate := filepath.Join(home, ".ssh", name)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate
		}
	}
	return ""
}

func loadPrivateKey(keyPath string) (ssh.Signer, error) {
	raw, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, &KeyLoadError{Path: keyPath, Err: err}
	}
	signer, err := ssh.ParsePrivateKey(raw)
	if err != nil {
		return nil, &KeyLoadError{Path: keyPath, Err: err}
	}
	return signer, nil
}

// SFTP returns the session's SFTP channel, opening it on first use.
func (s *Session) SFTP() (*sftp.Client, error) {
	if s.sftpClient == nil {
		client, err := sftp.NewClient(s.client)
		if err != nil {
			return nil, &ConnectionError{Addr: s.addr, Err: err}
		}
		s.sftpClient = client
	}
	return s.sftpClient, nil
}

// Execute runs a command on the remote host and returns its exit status along
// with the combined standard-output and standard-error streams. Combining the
// streams avoids the deadlock of one buffer filling up while the other is read.
// A non-zero exit status is not an error.
func (s *Session) Execute(command string) (int, []byte, error) {
	cmdSession, err := s.client.NewSession()
	if err != nil {
		return 0, nil, &ConnectionError{Addr: s.addr, Err: err}
	}
	defer cmdSession.Close()

	output, runErr := cmdSession.CombinedOutput(command)
	if runErr != nil {
		var exitErr *ssh.ExitError
		if errors.As(runErr, &exitErr) {
			return exitErr.ExitStatus(), output, nil
		}
		return 0, output, fmt.Errorf("remote command %q failed: %w", command, runErr)
	}
	return 0, output, nil
}

// Close releases the SFTP channel (if opened) and the underlying connection.
func (s *Session) Close() error {
	var firstErr error
	if s.sftpClient != nil {
		if err := s.sftpClient.Close(); err != nil {
			firstErr = err
		}
		s.sftpClient = nil
	}
	if s.client != nil {
		if err := s.client.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.client = nil
	}
	return firstErr
}
