package cube3d

import "errors"

// Sentinel errors for the cube3d package.
var (
	// Connection errors
	ErrNotConnected   = errors.New("cube3d: not connected to device")
	ErrDeviceNotFound = errors.New("cube3d: device not found")

	// Parsing errors
	ErrInvalidNotation = errors.New("cube3d: invalid move notation")
	ErrUnknownKey      = errors.New("cube3d: unknown key")
)
