package wol

import "errors"

var (
	// ErrInvalidHardwareAddr is returned when a hardware address is not
	// exactly 6 bytes long.
	ErrInvalidHardwareAddr = errors.New("wol: hardware address must be 6 bytes")

	// ErrInvalidPassword is returned when a SecureOn password is not
	// empty, 4 or 6 bytes long.
	ErrInvalidPassword = errors.New("wol: SecureOn password must be empty, 4 or 6 bytes")

	// ErrAddrFamilyMismatch is returned by SendTo when the source and
	// destination endpoints use different address families.
	ErrAddrFamilyMismatch = errors.New("wol: source and destination address families differ")
)
