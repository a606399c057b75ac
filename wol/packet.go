// Package wol builds and sends Wake-on-LAN magic packets.
//
// A magic packet is a fixed-format UDP payload: a synchronization stream
// of six 0xFF bytes followed by the target's 6-byte hardware address
// repeated 16 times, 102 bytes in total. An optional SecureOn password
// (4 or 6 bytes) may follow the repetitions.
//
//	mac, _ := net.ParseMAC("0f:1e:2d:3c:4b:5a")
//	packet, err := wol.New(mac)
//	if err != nil {
//		...
//	}
//	err = packet.Send() // broadcast to 255.255.255.255:9
package wol

import (
	"fmt"
	"net"
)

const (
	// HardwareAddrLen is the length of a link-layer hardware address.
	HardwareAddrLen = 6
	// syncStreamLen is the length of the leading 0xFF synchronization stream.
	syncStreamLen = 6
	// addrRepetitions is how many times the hardware address is repeated.
	addrRepetitions = 16
	// PacketSize is the size of a magic packet without a SecureOn password.
	PacketSize = syncStreamLen + addrRepetitions*HardwareAddrLen
)

// MagicPacket is a Wake-on-LAN magic packet for a single target.
// The payload is built once at construction and never mutated afterwards,
// so a packet is safe for concurrent use from multiple goroutines.
type MagicPacket struct {
	addr    [HardwareAddrLen]byte
	payload []byte
}

// New builds a magic packet for the given hardware address. The address
// must be exactly 6 bytes; beyond that any byte pattern is accepted, the
// packet does not judge address plausibility.
func New(addr net.HardwareAddr) (*MagicPacket, error) {
	return NewWithPassword(addr, nil)
}

// NewWithPassword builds a magic packet with a SecureOn password appended
// after the address repetitions. The password must be empty, 4 or 6 bytes.
func NewWithPassword(addr net.HardwareAddr, password []byte) (*MagicPacket, error) {
	if len(addr) != HardwareAddrLen {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidHardwareAddr, len(addr))
	}
	switch len(password) {
	case 0, 4, 6:
	default:
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidPassword, len(password))
	}

	p := &MagicPacket{payload: make([]byte, 0, PacketSize+len(password))}
	copy(p.addr[:], addr)

	for i := 0; i < syncStreamLen; i++ {
		p.payload = append(p.payload, 0xFF)
	}
	for i := 0; i < addrRepetitions; i++ {
		p.payload = append(p.payload, p.addr[:]...)
	}
	p.payload = append(p.payload, password...)

	return p, nil
}

// NewFromString builds a magic packet from a textual hardware address in
// any format accepted by net.ParseMAC, e.g. "00:11:22:33:44:aa" or
// "00-11-22-33-44-aa". EUI-64 and InfiniBand addresses are rejected.
func NewFromString(s string) (*MagicPacket, error) {
	addr, err := net.ParseMAC(s)
	if err != nil {
		return nil, fmt.Errorf("parsing hardware address %q: %w", s, err)
	}
	return New(addr)
}

// MagicBytes returns a copy of the packet payload, for callers that want
// to inspect the bytes or transmit them over a socket of their own
// (for example to reuse one socket for many packets).
func (p *MagicPacket) MagicBytes() []byte {
	out := make([]byte, len(p.payload))
	copy(out, p.payload)
	return out
}

// HardwareAddr returns the address the packet wakes.
func (p *MagicPacket) HardwareAddr() net.HardwareAddr {
	return net.HardwareAddr(append([]byte(nil), p.addr[:]...))
}
