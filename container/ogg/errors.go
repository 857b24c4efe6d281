package ogg

import "errors"

// Package-level errors for Ogg parsing and encoding.
var (
	// ErrInvalidPage indicates the page structure is malformed.
	// This includes missing "OggS" magic or truncated data. The version
	// byte is not checked.
	ErrInvalidPage = errors.New("ogg: invalid page structure")

	// ErrInvalidHeader indicates an Opus header (OpusHead or OpusTags) is malformed.
	// This includes wrong magic signature, unsupported version, or truncated data.
	ErrInvalidHeader = errors.New("ogg: invalid Opus header")
)
