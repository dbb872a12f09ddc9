package carframe

import "errors"

var (
	// ErrTruncated is returned when the bit stream runs out mid-decode.
	// The cursor position is unrecoverable once this happens.
	ErrTruncated = errors.New("bit stream truncated")

	// ErrConflict is returned when a spawn names an actor id that is already
	// live under a different object type. The event stream is expected to
	// delete an id before reusing it, so this is fatal for the whole replay.
	ErrConflict = errors.New("actor id conflict")

	// ErrNotFound is returned when an update or delete references an actor id
	// with no live state.
	ErrNotFound = errors.New("actor not found")

	// ErrMissingAttribute is returned when an expected attribute has never
	// been observed on an actor.
	ErrMissingAttribute = errors.New("missing attribute")

	// ErrWrongAttributeType is returned when an attribute holds a different
	// variant than the caller expected.
	ErrWrongAttributeType = errors.New("wrong attribute type")
)
