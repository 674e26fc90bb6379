package vo

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline error by how far its effects reach.
type Kind uint8

const (
	// KindSessionFatal errors prevent an output session from opening.
	// Everything created so far has been rolled back.
	KindSessionFatal Kind = iota + 1

	// KindFrameTransient errors affect one frame only: the frame is
	// skipped or drawn in the error color, playback continues.
	KindFrameTransient

	// KindAssetSoft errors disable an optional asset (LUT or shader)
	// until a different path is configured.
	KindAssetSoft
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSessionFatal:
		return "session-fatal"
	case KindFrameTransient:
		return "frame-transient"
	case KindAssetSoft:
		return "asset-soft"
	default:
		return "unknown"
	}
}

// Error is an error annotated with the operation that failed and its Kind.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("vo: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("vo: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Fatal wraps err as a session-fatal error for operation op.
// Returns nil if err is nil.
func Fatal(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: KindSessionFatal, Err: err}
}

// Transient wraps err as a frame-transient error for operation op.
// Returns nil if err is nil.
func Transient(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: KindFrameTransient, Err: err}
}

// Soft wraps err as an asset-soft error for operation op.
// Returns nil if err is nil.
func Soft(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: KindAssetSoft, Err: err}
}

// KindOf reports the Kind of the first *Error in err's chain,
// or 0 if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsFatal reports whether err is a session-fatal error.
func IsFatal(err error) bool {
	return KindOf(err) == KindSessionFatal
}
