package tilecoord

import "errors"

var (
	// ErrInvalidCoordinate reports a tile address outside the pyramid at its zoom.
	ErrInvalidCoordinate = errors.New("invalid tile coordinate")
	// ErrMalformedMetadata reports an unusable bounds string.
	ErrMalformedMetadata = errors.New("malformed archive metadata")
)
