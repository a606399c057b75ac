package wol

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendTo_UnicastLoopback(t *testing.T) {
	listener, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	defer listener.Close()

	addr := net.HardwareAddr{0x0F, 0x1E, 0x2D, 0x3C, 0x4B, 0x5A}
	packet, err := New(addr)
	require.NoError(t, err)

	dst := listener.LocalAddr().(*net.UDPAddr)
	require.NoError(t, packet.SendTo(dst, nil))

	require.NoError(t, listener.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 256)
	n, _, err := listener.ReadFromUDP(buf)
	require.NoError(t, err)

	assert.Equal(t, PacketSize, n)
	assert.Equal(t, packet.MagicBytes(), buf[:n])
}

func TestSendTo_ExplicitSource(t *testing.T) {
	listener, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	defer listener.Close()

	packet, err := NewFromString("aa:bb:cc:dd:ee:ff")
	require.NoError(t, err)

	dst := listener.LocalAddr().(*net.UDPAddr)
	src := &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0}
	require.NoError(t, packet.SendTo(dst, src))

	require.NoError(t, listener.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 256)
	n, from, err := listener.ReadFromUDP(buf)
	require.NoError(t, err)

	assert.Equal(t, PacketSize, n)
	assert.True(t, from.IP.Equal(net.IPv4(127, 0, 0, 1)), "datagram came from %s", from.IP)
}

func TestSendTo_AddressFamilyMismatch(t *testing.T) {
	packet, err := NewFromString("aa:bb:cc:dd:ee:ff")
	require.NoError(t, err)

	dst := &net.UDPAddr{IP: net.ParseIP("::1"), Port: DefaultPort}
	src := &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0}

	err = packet.SendTo(dst, src)
	assert.ErrorIs(t, err, ErrAddrFamilyMismatch)
}

func TestSendTo_NoDestination(t *testing.T) {
	packet, err := NewFromString("aa:bb:cc:dd:ee:ff")
	require.NoError(t, err)

	assert.Error(t, packet.SendTo(nil, nil))
	assert.Error(t, packet.SendTo(&net.UDPAddr{}, nil))
}

func TestSendTo_BindFailure(t *testing.T) {
	// Occupy a port, then try to bind the sender's source to it.
	occupied, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	defer occupied.Close()

	packet, err := NewFromString("aa:bb:cc:dd:ee:ff")
	require.NoError(t, err)

	dst := &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: DefaultPort}
	err = packet.SendTo(dst, occupied.LocalAddr().(*net.UDPAddr))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "binding source")
}

func TestUDPNetwork(t *testing.T) {
	v4 := &net.UDPAddr{IP: net.IPv4(192, 168, 1, 255), Port: DefaultPort}
	v6 := &net.UDPAddr{IP: net.ParseIP("fe80::1"), Port: DefaultPort}
	wildcard := &net.UDPAddr{}

	network, err := udpNetwork(v4, wildcard)
	require.NoError(t, err)
	assert.Equal(t, "udp4", network)

	network, err = udpNetwork(v6, wildcard)
	require.NoError(t, err)
	assert.Equal(t, "udp6", network)

	network, err = udpNetwork(v6, v6)
	require.NoError(t, err)
	assert.Equal(t, "udp6", network)

	_, err = udpNetwork(v4, v6)
	assert.ErrorIs(t, err, ErrAddrFamilyMismatch)
}
