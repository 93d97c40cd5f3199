package remote

import (
	"fmt"
	"strings"
)

// Location is one side of a copy: either a local path or a remote
// [user@]host:path in scp notation.
type Location struct {
	IsRemote bool
	User     string // empty = current user
	Host     string
	Path     string
}

// ParseLocation parses a CLI argument into a Location.
//
// An argument is remote when it contains a colon before the first path
// separator (scp's rule), so "host:/data" is remote while "./a:b" and
// "dir/with:colon" are local.
func ParseLocation(arg string) (Location, error) {
	if arg == "" {
		return Location{}, fmt.Errorf("empty path argument")
	}

	colonIdx := strings.Index(arg, ":")
	slashIdx := strings.Index(arg, "/")
	if colonIdx < 0 || (slashIdx >= 0 && slashIdx < colonIdx) {
		return Location{Path: arg}, nil
	}

	hostPart := arg[:colonIdx]
	remotePath := arg[colonIdx+1:]

	loc := Location{IsRemote: true, Host: hostPart}
	if atIdx := strings.Index(hostPart, "@"); atIdx >= 0 {
		loc.User = hostPart[:atIdx]
		loc.Host = hostPart[atIdx+1:]
	}
	if loc.Host == "" {
		return Location{}, fmt.Errorf("empty host in remote path %q", arg)
	}
	if remotePath == "" {
		return Location{}, fmt.Errorf("empty path in remote spec %q", arg)
	}
	loc.Path = remotePath
	return loc, nil
}

// SSHAddr returns the host:port dial address, defaulting the port to 22.
func (l Location) SSHAddr(port int) string {
	if port == 0 {
		port = 22
	}
	return fmt.Sprintf("%s:%d", l.Host, port)
}

// SSHSpec returns "user@host" or "host" for display.
func (l Location) SSHSpec() string {
	if l.User != "" {
		return l.User + "@" + l.Host
	}
	return l.Host
}
