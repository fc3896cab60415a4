package sim

import "errors"

// Failure kinds. None of them stops the frame loop.
var (
	// ErrLoadFailure: the map or an asset could not be fetched or parsed
	ErrLoadFailure = errors.New("load failure")
	// ErrUnmappedEntity: an object-layer entry names no known kind
	ErrUnmappedEntity = errors.New("unmapped entity")
	// ErrEntityUpdateFault: an entity's update or touch handler panicked
	ErrEntityUpdateFault = errors.New("entity update fault")
	// ErrInvalidTransition: exit touched while locked, or no next level
	ErrInvalidTransition = errors.New("invalid transition")
)
