package tunnel

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/kevinburke/ssh_config"
	"github.com/rileyhilliard/sysdash/internal/logger"
)

// settings holds resolved SSH connection parameters.
type settings struct {
	hostname      string
	port          string
	user          string
	identityFile  string
	encryptedKeys []string // keys that exist but are encrypted
}

// address returns the host:port string for dialing.
func (s *settings) address() string {
	return net.JoinHostPort(s.hostname, s.port)
}

// resolveSettings parses a host string and fills in the rest from ~/.ssh/config.
// The host can be:
//   - An SSH config alias (e.g., "bastion")
//   - A hostname (e.g., "192.168.1.100")
//   - A user@hostname (e.g., "user@192.168.1.100")
//   - A hostname:port (e.g., "192.168.1.100:2222")
func resolveSettings(host string, log logger.Logger) *settings {
	s := &settings{
		port: "22",
		user: currentUser(),
	}

	if at := strings.Index(host, "@"); at != -1 {
		s.user = host[:at]
		host = host[at+1:]
	}

	if colon := strings.LastIndex(host, ":"); colon != -1 {
		if port := host[colon+1:]; isDigits(port) {
			s.port = port
			host = host[:colon]
		}
	}
	s.hostname = host

	// kevinburke/ssh_config doesn't support Match, so only the part of the
	// file before the first Match block is parsed.
	content, matchLine, err := preprocessSSHConfig(filepath.Join(homeDir(), ".ssh", "config"))
	if err != nil {
		return s
	}
	cfg, err := ssh_config.Decode(bytes.NewReader(content))
	if err != nil {
		return s
	}

	found := false
	if hostname, _ := cfg.Get(host, "HostName"); hostname != "" {
		s.hostname = hostname
		found = true
	}
	if port, _ := cfg.Get(host, "Port"); port != "" {
		s.port = port
		found = true
	}
	if user, _ := cfg.Get(host, "User"); user != "" {
		s.user = user
		found = true
	}
	if identity, _ := cfg.Get(host, "IdentityFile"); identity != "" {
		s.identityFile = expandPath(identity)
		found = true
	}

	if matchLine > 0 && !found && log != nil {
		log.Warn("Host '%s' not found in SSH config (config has a Match block at line %d that may hide later entries). "+
			"If this host is defined after line %d, move it earlier in ~/.ssh/config.",
			host, matchLine, matchLine)
	}

	return s
}

// preprocessSSHConfig reads the SSH config and returns content up to the first
// Match directive, plus that directive's 1-indexed line (0 if none).
func preprocessSSHConfig(configPath string) ([]byte, int, error) {
	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, 0, err
	}

	lines := strings.Split(string(content), "\n")
	var result []string
	for i, line := range lines {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "match ") {
			return []byte(strings.Join(result, "\n")), i + 1, nil
		}
		result = append(result, line)
	}
	return content, 0, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}

func currentUser() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "root"
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

// describe is used in error messages.
func (s *settings) describe() string {
	return fmt.Sprintf("%s@%s", s.user, s.address())
}
