//go:build unix

package wol

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// setBroadcast enables SO_BROADCAST before the socket is bound, so that
// sends to limited and subnet-directed broadcast addresses are permitted.
// It is set unconditionally; unicast sends are unaffected.
func setBroadcast(network, address string, c syscall.RawConn) error {
	var optErr error
	if err := c.Control(func(fd uintptr) {
		optErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
	}); err != nil {
		return err
	}
	if optErr != nil {
		return fmt.Errorf("enabling broadcast: %w", optErr)
	}
	return nil
}
