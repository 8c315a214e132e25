package iri

import "errors"

// Sentinel errors
var (
	ErrUnsupportedSQLDatatype = errors.New("unsupported SQL datatype")
	ErrUnknownIRIBuilderMode  = errors.New("unknown IRI builder mode")
	ErrInvalidDatatypeTable   = errors.New("invalid datatype table")
)
