package lattice

import "errors"

var (
	// ErrInvalidArgument is returned when a required argument is nil.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIndexOutOfRange is returned for a cell index outside [0, capacity).
	ErrIndexOutOfRange = errors.New("cell index out of range")

	// ErrCoordOutOfRange is returned for a coordinate outside the lattice.
	ErrCoordOutOfRange = errors.New("cell coordinate out of range")
)
