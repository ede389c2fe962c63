package filesystem

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

const (
	sftpScheme      = "sftp"
	defaultSFTPPort = 22
)

// Endpoint identifies the SSH account an SFTP argument is listed through.
type Endpoint struct {
	User string
	Host string
	Port int
}

// String returns user@host:port.
func (e Endpoint) String() string {
	return e.User + "@" + net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// Target is a listing argument split into the path handed to a FileSystem
// and the name printed for it.
type Target struct {
	// Path opens the argument on its FileSystem
	Path string
	// Display is the argument as the user typed it
	Display string
}

// ParsedPath is one listing argument. Remote is nil for local paths.
type ParsedPath struct {
	// Raw is the argument exactly as given
	Raw string
	// Path is Raw for local arguments and the server-side path for SFTP URLs
	Path   string
	Remote *Endpoint
}

// IsRemote reports whether the argument names an SFTP server.
func (p *ParsedPath) IsRemote() bool {
	return p.Remote != nil
}

// Target returns the path to open and the name to print.
func (p *ParsedPath) Target() Target {
	return Target{Path: p.Path, Display: p.Raw}
}

// ParsePath classifies a listing argument. Arguments of the form
// sftp://user@host[:port]/path are remote, everything else is a local path.
//
// Remote paths follow the scp convention: a single leading slash is relative
// to the login directory and a double slash is absolute, so
// sftp://joe@box/logs lists ~/logs and sftp://joe@box//var/log lists /var/log.
func ParsePath(arg string) (*ParsedPath, error) {
	if !strings.HasPrefix(arg, sftpScheme+"://") {
		return &ParsedPath{Raw: arg, Path: arg}, nil
	}

	endpoint, rest, err := parseEndpoint(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid SFTP URL %q: %w", arg, err)
	}

	return &ParsedPath{Raw: arg, Path: remotePath(rest), Remote: endpoint}, nil
}

// parseEndpoint splits an sftp:// URL into its account and raw path.
func parseEndpoint(arg string) (*Endpoint, string, error) {
	u, err := url.Parse(arg) //nolint:varnamelen // u is idiomatic for URL
	if err != nil {
		return nil, "", err
	}

	if u.User == nil || u.User.Username() == "" {
		return nil, "", errors.New("missing username (sftp://user@host/path)") //nolint:err113 // URL validation with format guidance
	}

	if u.Hostname() == "" {
		return nil, "", errors.New("missing host") //nolint:err113 // URL validation error
	}

	port := defaultSFTPPort
	if s := u.Port(); s != "" {
		port, err = strconv.Atoi(s)
		if err != nil || port <= 0 || port > 65535 {
			return nil, "", fmt.Errorf("invalid port %q", s) //nolint:err113 // URL validation with actual port
		}
	}

	return &Endpoint{User: u.User.Username(), Host: u.Hostname(), Port: port}, u.Path, nil
}

// remotePath drops the slash separating host from path. What is left is
// relative to the login directory unless it still starts with a slash.
func remotePath(p string) string {
	if p == "" || p == "/" {
		return "."
	}

	return p[1:]
}
