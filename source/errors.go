package source

import "errors"

// Sentinel errors
var (
	ErrNoSQLBlock        = errors.New("markdown document has no sql code block")
	ErrInvalidTblsSchema = errors.New("invalid tbls schema")
)
