package wol

import (
	"context"
	"errors"
	"fmt"
	"net"
)

const (
	// DefaultPort is the conventional Wake-on-LAN UDP port.
	DefaultPort = 9
)

// DefaultDestination and DefaultSource are the endpoints used by Send:
// the limited broadcast address on the Wake-on-LAN port, sent from a
// wildcard address with an OS-assigned ephemeral port.
var (
	DefaultDestination = &net.UDPAddr{IP: net.IPv4bcast, Port: DefaultPort}
	DefaultSource      = &net.UDPAddr{IP: net.IPv4zero, Port: 0}
)

// Send transmits the packet via UDP to 255.255.255.255:9, letting the
// operating system pick the source port and network interface.
func (p *MagicPacket) Send() error {
	return p.SendTo(DefaultDestination, DefaultSource)
}

// SendTo transmits the packet to dst from src over a transient UDP
// socket. A nil src binds to the wildcard address with an ephemeral
// port. The socket has SO_BROADCAST enabled, carries exactly one
// datagram and is closed before SendTo returns, on all paths. There is
// no retry; a failure surfaces the step that failed (bind, broadcast
// option or send) wrapped around the OS error.
func (p *MagicPacket) SendTo(dst, src *net.UDPAddr) error {
	if dst == nil || dst.IP == nil {
		return errors.New("wol: no destination address")
	}
	if src == nil {
		src = &net.UDPAddr{}
	}
	network, err := udpNetwork(dst, src)
	if err != nil {
		return err
	}

	lc := net.ListenConfig{Control: setBroadcast}
	conn, err := lc.ListenPacket(context.Background(), network, src.String())
	if err != nil {
		return fmt.Errorf("binding source %s: %w", src, err)
	}
	defer conn.Close()

	if _, err := conn.WriteTo(p.payload, dst); err != nil {
		return fmt.Errorf("sending to %s: %w", dst, err)
	}
	return nil
}

// udpNetwork picks the UDP network for the destination's address family
// and rejects mixed families before any socket is opened. A wildcard or
// nil source follows the destination's family.
func udpNetwork(dst, src *net.UDPAddr) (string, error) {
	dst4 := dst.IP.To4() != nil
	if src.IP != nil && !src.IP.IsUnspecified() {
		if src4 := src.IP.To4() != nil; src4 != dst4 {
			return "", fmt.Errorf("%w: source %s, destination %s", ErrAddrFamilyMismatch, src, dst)
		}
	}
	if dst4 {
		return "udp4", nil
	}
	return "udp6", nil
}
