package ddl

import "errors"

// Sentinel errors
var (
	ErrMissingSQLDatatype   = errors.New("missing SQL datatype")
	ErrUnmatchedParenthesis = errors.New("unmatched parenthesis")
	ErrInvalidScript        = errors.New("invalid SQL script")
)
