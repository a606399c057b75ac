package wol

import (
	"bytes"
	"net"
	"testing"

	mdwol "github.com/mdlayher/wol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_PayloadLayout(t *testing.T) {
	addr := net.HardwareAddr{0x0F, 0x1E, 0x2D, 0x3C, 0x4B, 0x5A}

	packet, err := New(addr)
	require.NoError(t, err)

	payload := packet.MagicBytes()
	require.Len(t, payload, PacketSize)
	require.Len(t, payload, 102)

	// Synchronization stream: six 0xFF bytes.
	assert.Equal(t, bytes.Repeat([]byte{0xFF}, 6), payload[:6])

	// The address repeated 16 times, back to back.
	for i := 0; i < 16; i++ {
		offset := 6 + i*6
		assert.Equal(t, []byte(addr), payload[offset:offset+6], "repetition %d", i)
	}

	// The payload ends with the final repetition.
	assert.Equal(t, []byte(addr), payload[len(payload)-6:])
}

func TestNew_Deterministic(t *testing.T) {
	addr := net.HardwareAddr{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}

	first, err := New(addr)
	require.NoError(t, err)
	second, err := New(addr)
	require.NoError(t, err)

	assert.Equal(t, first.MagicBytes(), second.MagicBytes())
}

func TestNew_RoundTrip(t *testing.T) {
	addr := net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}

	packet, err := New(addr)
	require.NoError(t, err)

	// The first repetition reproduces the address.
	assert.Equal(t, []byte(addr), packet.MagicBytes()[6:12])
	assert.Equal(t, addr, packet.HardwareAddr())
}

func TestNew_RejectsWrongLength(t *testing.T) {
	tests := []struct {
		name string
		addr net.HardwareAddr
	}{
		{name: "nil", addr: nil},
		{name: "five bytes", addr: net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44}},
		{name: "seven bytes", addr: net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66}},
		{name: "eui-64", addr: net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.addr)
			assert.ErrorIs(t, err, ErrInvalidHardwareAddr)
		})
	}
}

func TestNew_AcceptsAnyBytePattern(t *testing.T) {
	// Address plausibility is not this package's business.
	for _, addr := range []net.HardwareAddr{
		{0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
	} {
		_, err := New(addr)
		assert.NoError(t, err)
	}
}

func TestNewFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "uppercase colons", input: "00:11:22:33:44:AA"},
		{name: "lowercase colons", input: "00:11:22:33:44:aa"},
		{name: "dashes", input: "00-11-22-33-44-aa"},
		{name: "too short", input: "00:11:22:33:44", wantErr: true},
		{name: "invalid hex", input: "00:11:22:33:44:XX", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packet, err := NewFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "00:11:22:33:44:aa", packet.HardwareAddr().String())
		})
	}
}

func TestNewFromString_RejectsEUI64(t *testing.T) {
	// net.ParseMAC accepts 8-byte addresses; a magic packet does not.
	_, err := NewFromString("00:11:22:33:44:55:66:77")
	assert.ErrorIs(t, err, ErrInvalidHardwareAddr)
}

func TestNewWithPassword(t *testing.T) {
	addr := net.HardwareAddr{0x0F, 0x1E, 0x2D, 0x3C, 0x4B, 0x5A}

	tests := []struct {
		name     string
		password []byte
		wantErr  bool
	}{
		{name: "empty", password: nil},
		{name: "four bytes", password: []byte{0x01, 0x02, 0x03, 0x04}},
		{name: "six bytes", password: []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}},
		{name: "five bytes", password: []byte{0x01, 0x02, 0x03, 0x04, 0x05}, wantErr: true},
		{name: "too long", password: bytes.Repeat([]byte{0x01}, 7), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packet, err := NewWithPassword(addr, tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPassword)
				return
			}
			require.NoError(t, err)

			payload := packet.MagicBytes()
			assert.Len(t, payload, PacketSize+len(tt.password))
			assert.Equal(t, tt.password, payload[PacketSize:PacketSize+len(tt.password)])
		})
	}
}

func TestMagicBytes_CopyIsIndependent(t *testing.T) {
	addr := net.HardwareAddr{0x0F, 0x1E, 0x2D, 0x3C, 0x4B, 0x5A}

	packet, err := New(addr)
	require.NoError(t, err)

	payload := packet.MagicBytes()
	for i := range payload {
		payload[i] = 0x00
	}

	assert.Equal(t, bytes.Repeat([]byte{0xFF}, 6), packet.MagicBytes()[:6])
}

// The payload must be byte-identical to what mdlayher/wol marshals for
// the same address and password.
func TestMagicBytes_MatchesReferenceMarshaler(t *testing.T) {
	addr := net.HardwareAddr{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01}

	for _, password := range [][]byte{
		nil,
		{0x01, 0x02, 0x03, 0x04},
		{0x01, 0x02, 0x03, 0x04, 0x05, 0x06},
	} {
		packet, err := NewWithPassword(addr, password)
		require.NoError(t, err)

		reference := &mdwol.MagicPacket{Target: addr, Password: password}
		want, err := reference.MarshalBinary()
		require.NoError(t, err)

		assert.Equal(t, want, packet.MagicBytes())
	}
}
