package sensor

import "errors"

// Domain errors for the sensor package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, sensor.ErrKindMismatch) {
//	    // identifier reused with a different kind
//	}
var (
	// ErrNotFound is returned when a device identifier does not exist.
	ErrNotFound = errors.New("sensor: device not found")

	// ErrInvalidID is returned when a device identifier is empty.
	ErrInvalidID = errors.New("sensor: device id is required")

	// ErrInvalidKind is returned when a kind value is not recognised.
	ErrInvalidKind = errors.New("sensor: invalid kind")

	// ErrKindMismatch is returned when an identifier is reused with a
	// kind different from the one it was registered with, or when a
	// sample's representation does not match the device kind. The
	// existing record is never mutated in either case.
	ErrKindMismatch = errors.New("sensor: kind mismatch")

	// ErrEmptyHistory is returned when aggregation is requested over a
	// history with no samples. Callers are expected to check IsEmpty()
	// before summarizing; hitting this error indicates a contract
	// violation, not a runtime condition to retry.
	ErrEmptyHistory = errors.New("sensor: no samples to summarize")
)
