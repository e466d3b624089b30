package sim

import "errors"

var (
	// ErrInvalidFrameCount is returned when a frame count is not positive.
	// It is reported before any simulation step runs.
	ErrInvalidFrameCount = errors.New("frame count must be positive")

	// ErrCapacityExceeded signals an insert into a full frame set without a
	// prior eviction. It indicates a broken eviction policy.
	ErrCapacityExceeded = errors.New("frame set capacity exceeded")

	// ErrDuplicatePage signals an insert of a page that is already resident.
	ErrDuplicatePage = errors.New("page already resident")

	// ErrPageNotResident signals an eviction or reorder of a page that is not resident.
	ErrPageNotResident = errors.New("page not resident")

	// ErrUnknownPolicy is returned by LookupEvictionPolicy for unrecognized names.
	ErrUnknownPolicy = errors.New("unknown eviction policy")
)
