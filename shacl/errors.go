package shacl

import "errors"

// Sentinel errors
var (
	ErrUnknownFormat           = errors.New("unknown output format")
	ErrInvalidComponent        = errors.New("invalid unique-values component template")
	ErrUnserializablePredicate = errors.New("predicate cannot be written as an XML qualified name")
)
