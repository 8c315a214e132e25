package sql2shacl

import (
	"errors"

	"github.com/sql2shacl/sql2shacl/ddl"
	"github.com/sql2shacl/sql2shacl/iri"
	"github.com/sql2shacl/sql2shacl/schema"
	"github.com/sql2shacl/sql2shacl/shacl"
	"github.com/sql2shacl/sql2shacl/source"
	tok "github.com/sql2shacl/sql2shacl/tokenizer"
)

// Fatal rewrite errors, distinguishable with errors.Is.
var (
	// Schema model errors
	ErrMissingSQLDatatype   = ddl.ErrMissingSQLDatatype
	ErrUnmatchedParenthesis = ddl.ErrUnmatchedParenthesis
	ErrInvalidScript        = ddl.ErrInvalidScript
	ErrColumnNotFound       = schema.ErrColumnNotFound
	ErrDuplicateColumn      = schema.ErrDuplicateColumn

	// Tokenizer errors
	ErrUnterminatedString  = tok.ErrUnterminatedString
	ErrUnterminatedQuote   = tok.ErrUnterminatedQuote
	ErrUnterminatedComment = tok.ErrUnterminatedComment

	// Naming errors
	ErrUnsupportedSQLDatatype = iri.ErrUnsupportedSQLDatatype
	ErrUnknownIRIBuilderMode  = iri.ErrUnknownIRIBuilderMode

	// Input and output errors
	ErrUnknownFormat     = shacl.ErrUnknownFormat
	ErrNoSQLBlock        = source.ErrNoSQLBlock
	ErrInvalidTblsSchema = source.ErrInvalidTblsSchema

	// ErrConfigValidation is returned when configuration validation fails
	ErrConfigValidation = errors.New("configuration validation failed")
	// ErrUnknownLogLevel is returned for a log level outside debug, info, warn and error.
	ErrUnknownLogLevel = errors.New("unknown log level")
)
