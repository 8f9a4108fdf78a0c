package tilemap

import "errors"

// Sentinel errors returned by bounds-checked map operations. Wrap sites
// add coordinate context; match with errors.Is.
var (
	// ErrOutOfBounds is returned when a coordinate or index maps outside
	// the map's current dimensions.
	ErrOutOfBounds = errors.New("tilemap: out of bounds")

	// ErrChunkNotFound is returned when an operation needs a chunk that
	// has not been created. Writing a tile before adding its chunk is a
	// caller mistake, and it is reported instead of aborting.
	ErrChunkNotFound = errors.New("tilemap: chunk not found")
)
