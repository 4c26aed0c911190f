package engine

import "errors"

// BlockSize is the compression block size, in bytes, shared by every
// engine in this module.
const BlockSize = 64

var (
	// ErrNotInitialized is returned when a session that was never
	// initialized with New or Reset is used.
	ErrNotInitialized = errors.New("session not initialized")

	// ErrFinalized is returned when a session is used after Final
	// without an intervening Reset.
	ErrFinalized = errors.New("session already finalized")

	// ErrMessageTooLarge is returned when a message length cannot be
	// represented by the engine's padding or length counter. It is the
	// engines' resource exhaustion signal.
	ErrMessageTooLarge = errors.New("message too large")
)

// Session is the streaming contract implemented by the SHA-256 and
// Whirlpool engines. A session must be initialized before use and
// re-initialized with Reset after Final.
type Session interface {
	// Reset puts the session back into its initial state.
	Reset()

	// Update absorbs p into the running digest.
	Update(p []byte) error

	// Final pads the message, returns the digest and marks the
	// session finalized.
	Final() ([]byte, error)

	// Size returns the digest length in bytes.
	Size() int
}

// State tracks the lifecycle of a streaming session. The zero value is
// StateUninitialized so that zero-value sessions reject use.
type State uint8

// Session lifecycle states.
const (
	StateUninitialized State = iota
	StateActive
	StateFinalized
)

// Check returns the misuse error for s, or nil when the session
// accepts input.
func (s State) Check() error {
	switch s {
	case StateActive:
		return nil
	case StateFinalized:
		return ErrFinalized
	default:
		return ErrNotInitialized
	}
}
