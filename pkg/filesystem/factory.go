package filesystem

import (
	"errors"
	"fmt"
)

// ErrMixedTargets is returned when local paths and SFTP URLs, or URLs for
// different servers, are listed in one run.
var ErrMixedTargets = errors.New("cannot mix local paths and SFTP URLs for different servers in one listing")

// ErrConnect wraps failures to reach the SFTP server named by the arguments.
var ErrConnect = errors.New("cannot connect")

// CreateFileSystem creates a FileSystem for the given arguments.
// Returns (filesystem, targets, closer, error).
//   - filesystem: the FileSystem to list with
//   - targets: one per argument, the path to open and the argument as typed
//   - closer: a function to call when done (closes SFTP connections), or nil for local
//
// All SFTP URLs must name the same user, host and port.
func CreateFileSystem(args []string) (FileSystem, []Target, func(), error) {
	parsed := make([]*ParsedPath, 0, len(args))
	targets := make([]Target, 0, len(args))

	for _, arg := range args {
		pp, err := ParsePath(arg)
		if err != nil {
			return nil, nil, nil, err
		}

		parsed = append(parsed, pp)
		targets = append(targets, pp.Target())
	}

	endpoint, err := commonEndpoint(parsed)
	if err != nil {
		return nil, nil, nil, err
	}

	if endpoint == nil {
		return NewRealFileSystem(), targets, nil, nil
	}

	conn, err := Connect(*endpoint)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w to %s: %w", ErrConnect, endpoint, err)
	}

	closer := func() {
		_ = conn.Close()
	}

	return NewSFTPFileSystem(conn), targets, closer, nil
}

// commonEndpoint returns the SFTP account shared by every argument, nil if
// all are local, or ErrMixedTargets.
func commonEndpoint(parsed []*ParsedPath) (*Endpoint, error) {
	if len(parsed) == 0 || !parsed[0].IsRemote() {
		for _, pp := range parsed {
			if pp.IsRemote() {
				return nil, ErrMixedTargets
			}
		}

		return nil, nil //nolint:nilnil // nil endpoint means local
	}

	first := parsed[0].Remote
	for _, pp := range parsed[1:] {
		if !pp.IsRemote() || *pp.Remote != *first {
			return nil, ErrMixedTargets
		}
	}

	return first, nil
}
