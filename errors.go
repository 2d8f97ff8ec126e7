package stepcurve

import "errors"

var (
	// ErrOutOfRange indicates an index outside the sequence bounds
	ErrOutOfRange = errors.New("stepcurve: index out of range")

	// ErrNoSelection indicates an edit was requested with no point selected
	ErrNoSelection = errors.New("stepcurve: no point selected")

	// ErrEmptySequence indicates an edit or generation on a zero-length sequence
	ErrEmptySequence = errors.New("stepcurve: empty sequence")

	// ErrMalformedInput indicates the text codec could not find a brace-delimited numeric block
	ErrMalformedInput = errors.New("stepcurve: malformed array input")

	// ErrInvalidSpec indicates curve parameters outside their documented ranges
	ErrInvalidSpec = errors.New("stepcurve: invalid curve spec")
)
