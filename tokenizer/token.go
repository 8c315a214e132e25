package tokenizer

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors
var (
	ErrUnterminatedString  = errors.New("unterminated string literal")
	ErrUnterminatedQuote   = errors.New("unterminated quoted identifier")
	ErrUnterminatedComment = errors.New("unterminated block comment")
	ErrInvalidNumber       = errors.New("invalid number format")
)

// TokenType represents the type of a token
type TokenType int

const (
	// Basic tokens
	EOF TokenType = iota
	WHITESPACE
	IDENTIFIER          // bare names: users, E_id
	QUOTED_IDENTIFIER   // "Emp", `Emp`
	RESERVED_IDENTIFIER // DDL keywords: CREATE, TABLE, PRIMARY, KEY, ...
	BUILTIN_TYPE        // predefined SQL type names: integer, varchar, ...
	STRING              // 'text'
	NUMBER              // numeric literals
	OPENED_PARENS       // (
	CLOSED_PARENS       // )
	COMMA               // ,
	SEMICOLON           // ;
	DOT                 // .

	// Operators (only relevant inside DEFAULT / CHECK expressions)
	EQUAL         // =
	NOT_EQUAL     // <>, !=
	LESS_THAN     // <
	GREATER_THAN  // >
	LESS_EQUAL    // <=
	GREATER_EQUAL // >=
	PLUS          // +
	MINUS         // -
	MULTIPLY      // *
	DIVIDE        // /

	// Comments
	LINE_COMMENT  // -- line comment
	BLOCK_COMMENT // /* block comment */

	// Others
	OTHER // database-specific syntax
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case WHITESPACE:
		return "WHITESPACE"
	case IDENTIFIER:
		return "IDENTIFIER"
	case QUOTED_IDENTIFIER:
		return "QUOTED_IDENTIFIER"
	case RESERVED_IDENTIFIER:
		return "RESERVED_IDENTIFIER"
	case BUILTIN_TYPE:
		return "BUILTIN_TYPE"
	case STRING:
		return "STRING"
	case NUMBER:
		return "NUMBER"
	case OPENED_PARENS:
		return "OPENED_PARENS"
	case CLOSED_PARENS:
		return "CLOSED_PARENS"
	case COMMA:
		return "COMMA"
	case SEMICOLON:
		return "SEMICOLON"
	case DOT:
		return "DOT"
	case EQUAL:
		return "EQUAL"
	case NOT_EQUAL:
		return "NOT_EQUAL"
	case LESS_THAN:
		return "LESS_THAN"
	case GREATER_THAN:
		return "GREATER_THAN"
	case LESS_EQUAL:
		return "LESS_EQUAL"
	case GREATER_EQUAL:
		return "GREATER_EQUAL"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case MULTIPLY:
		return "MULTIPLY"
	case DIVIDE:
		return "DIVIDE"
	case LINE_COMMENT:
		return "LINE_COMMENT"
	case BLOCK_COMMENT:
		return "BLOCK_COMMENT"
	case OTHER:
		return "OTHER"
	default:
		return "UNKNOWN"
	}
}

// Position represents a position in the source code
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a token
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

// String returns the string representation of Token
func (t Token) String() string {
	return t.Type.String() + ": " + t.Value
}

// IsName reports whether the token can name a relation or column.
func (t Token) IsName() bool {
	return t.Type == IDENTIFIER || t.Type == QUOTED_IDENTIFIER
}

// IsKeyword reports whether the token is the reserved word w (case-insensitive).
func (t Token) IsKeyword(w string) bool {
	return t.Type == RESERVED_IDENTIFIER && strings.EqualFold(t.Value, w)
}

// Unquoted returns the token value with surrounding identifier or string quotes removed.
// Doubled delimiters inside the quotes collapse to a single one.
func (t Token) Unquoted() string {
	v := t.Value
	if len(v) < 2 {
		return v
	}

	first, last := v[0], v[len(v)-1]
	switch {
	case first == '"' && last == '"':
		return strings.ReplaceAll(v[1:len(v)-1], `""`, `"`)
	case first == '`' && last == '`':
		return strings.ReplaceAll(v[1:len(v)-1], "``", "`")
	case first == '\'' && last == '\'':
		return strings.ReplaceAll(v[1:len(v)-1], "''", "'")
	}

	return v
}
