package core

import "errors"

// Sentinel errors shared by all NoteStore implementations and the service.
// Use errors.Is to check; stores wrap these with identity/path context.
var (
	// ErrNotFound reports an identity absent on read or delete.
	ErrNotFound = errors.New("astronote: note not found")

	// ErrOutsideRoot reports a path that does not resolve under the root.
	ErrOutsideRoot = errors.New("astronote: path outside root")

	// ErrInvalidIdentity reports an identity the engine refuses to work with.
	ErrInvalidIdentity = errors.New("astronote: invalid identity")

	// ErrSerialization reports malformed or oversize stored state.
	ErrSerialization = errors.New("astronote: cannot serialize note")

	// ErrInvalidQuality reports a review response outside [0,6].
	// Only the service and CLI enforce this; the algorithm itself clamps.
	ErrInvalidQuality = errors.New("astronote: quality out of range")

	// ErrStorage wraps I/O and connection failures from the backends.
	ErrStorage = errors.New("astronote: storage failure")
)
