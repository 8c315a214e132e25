package tokenizer

import (
	"fmt"
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenIterator uses Go 1.24 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// SqlTokenizer is a tokenizer that returns an iterator
type SqlTokenizer struct {
	input   string
	options TokenizerOptions
}

// TokenizerOptions are options for the tokenizer
type TokenizerOptions struct {
	SkipWhitespace bool
	SkipComments   bool
	PreserveCase   bool
}

// NewSqlTokenizer creates a new SqlTokenizer
func NewSqlTokenizer(input string, options ...TokenizerOptions) *SqlTokenizer {
	opts := TokenizerOptions{
		SkipWhitespace: false,
		SkipComments:   false,
		PreserveCase:   false,
	}
	if len(options) > 0 {
		opts = options[0]
	}

	return &SqlTokenizer{
		input:   input,
		options: opts,
	}
}

// Tokens returns an iterator of tokens
func (t *SqlTokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		tokenizer := &tokenizer{
			input:   t.input,
			line:    1,
			column:  1,
			options: t.options,
		}

		tokenizer.readChar()

		for {
			token, err := tokenizer.nextToken()
			if err != nil {
				if !yield(Token{}, err) {
					return
				}
				continue
			}

			if token.Type == EOF {
				yield(token, nil)
				return
			}

			if t.options.SkipWhitespace && token.Type == WHITESPACE {
				continue
			}
			if t.options.SkipComments && (token.Type == LINE_COMMENT || token.Type == BLOCK_COMMENT) {
				continue
			}

			if !yield(token, nil) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice. The first error is returned along with
// every token produced before it.
func (t *SqlTokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 64)

	for token, err := range t.Tokens() {
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, token)
		if token.Type == EOF {
			break
		}
	}

	return tokens, nil
}

// Internal tokenizer implementation
type tokenizer struct {
	input    string
	position int // byte offset of the next rune
	offset   int // byte offset of current
	line     int
	column   int
	started  bool
	current  rune
	options  TokenizerOptions
}

// nextToken gets the next token
func (t *tokenizer) nextToken() (Token, error) {
	switch t.current {
	case 0:
		return t.single(EOF, ""), nil
	case '(':
		return t.single(OPENED_PARENS, "("), nil
	case ')':
		return t.single(CLOSED_PARENS, ")"), nil
	case ',':
		return t.single(COMMA, ","), nil
	case ';':
		return t.single(SEMICOLON, ";"), nil
	case '.':
		return t.single(DOT, "."), nil
	case '\'':
		return t.readString()
	case '"', '`':
		return t.readQuotedIdentifier(t.current)
	case '-':
		if t.peekChar() == '-' {
			return t.readLineComment(), nil
		}
		return t.single(MINUS, "-"), nil
	case '/':
		if t.peekChar() == '*' {
			return t.readBlockComment()
		}
		return t.single(DIVIDE, "/"), nil
	case '=':
		return t.single(EQUAL, "="), nil
	case '<':
		switch t.peekChar() {
		case '=':
			return t.double(LESS_EQUAL), nil
		case '>':
			return t.double(NOT_EQUAL), nil
		}
		return t.single(LESS_THAN, "<"), nil
	case '>':
		if t.peekChar() == '=' {
			return t.double(GREATER_EQUAL), nil
		}
		return t.single(GREATER_THAN, ">"), nil
	case '!':
		if t.peekChar() == '=' {
			return t.double(NOT_EQUAL), nil
		}
		// '!' alone is treated as OTHER
		return t.single(OTHER, "!"), nil
	case '$':
		if tag, ok := t.dollarTag(); ok {
			return t.readDollarString(tag)
		}
		return t.single(OTHER, "$"), nil
	case '+':
		return t.single(PLUS, "+"), nil
	case '*':
		return t.single(MULTIPLY, "*"), nil
	}

	switch {
	case unicode.IsSpace(t.current):
		return t.readWhitespace(), nil
	case isIdentifierStart(t.current):
		return t.readWord(), nil
	case unicode.IsDigit(t.current):
		return t.readNumber()
	default:
		return t.single(OTHER, string(t.current)), nil
	}
}

// readChar advances to the next rune, decoding UTF-8.
func (t *tokenizer) readChar() {
	if t.started {
		if t.current == '\n' {
			t.line++
			t.column = 1
		} else {
			t.column++
		}
	}
	t.started = true
	t.offset = t.position

	if t.position >= len(t.input) {
		t.current = 0
		return
	}

	r, width := utf8.DecodeRuneInString(t.input[t.position:])
	t.current = r
	t.position += width
}

// peekChar looks ahead at the next character
func (t *tokenizer) peekChar() rune {
	if t.position >= len(t.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(t.input[t.position:])
	return r
}

func (t *tokenizer) pos() Position {
	return Position{Line: t.line, Column: t.column, Offset: t.offset}
}

// single emits a one-rune token and advances past it.
func (t *tokenizer) single(tokenType TokenType, value string) Token {
	token := Token{Type: tokenType, Value: value, Position: t.pos()}
	t.readChar()
	return token
}

// double emits a two-rune operator token.
func (t *tokenizer) double(tokenType TokenType) Token {
	start := t.pos()
	value := string(t.current) + string(t.peekChar())
	t.readChar()
	t.readChar()
	return Token{Type: tokenType, Value: value, Position: start}
}

// readWhitespace reads whitespace characters
func (t *tokenizer) readWhitespace() Token {
	start := t.pos()
	for t.current != 0 && unicode.IsSpace(t.current) {
		t.readChar()
	}

	return Token{Type: WHITESPACE, Value: t.input[start.Offset:t.offset], Position: start}
}

// readWord reads words (identifiers, keywords and type names)
func (t *tokenizer) readWord() Token {
	start := t.pos()
	for isIdentifierPart(t.current) {
		t.readChar()
	}

	word := t.input[start.Offset:t.offset]
	if !t.options.PreserveCase {
		word = strings.ToUpper(word)
	}

	return Token{Type: classifyWord(word), Value: word, Position: start}
}

// readString reads a single-quoted string literal. Both '' and backslash escapes are accepted.
func (t *tokenizer) readString() (Token, error) {
	start := t.pos()
	t.readChar()

	for {
		switch {
		case t.current == 0:
			return Token{}, fmt.Errorf("%w at line %d, column %d", ErrUnterminatedString, start.Line, start.Column)
		case t.current == '\\':
			t.readChar()
			if t.current != 0 {
				t.readChar()
			}
		case t.current == '\'':
			t.readChar()
			if t.current != '\'' {
				return Token{Type: STRING, Value: t.input[start.Offset:t.offset], Position: start}, nil
			}
			t.readChar()
		default:
			t.readChar()
		}
	}
}

// readQuotedIdentifier reads "name" or `name`. A doubled delimiter stands for itself.
func (t *tokenizer) readQuotedIdentifier(closing rune) (Token, error) {
	start := t.pos()
	t.readChar()

	for {
		switch t.current {
		case 0:
			return Token{}, fmt.Errorf("%w at line %d, column %d", ErrUnterminatedQuote, start.Line, start.Column)
		case closing:
			t.readChar()
			if t.current != closing {
				return Token{Type: QUOTED_IDENTIFIER, Value: t.input[start.Offset:t.offset], Position: start}, nil
			}
			t.readChar()
		default:
			t.readChar()
		}
	}
}

// dollarTag returns the opening delimiter of a dollar-quoted string ($$ or
// $tag$) starting at the current rune.
func (t *tokenizer) dollarTag() (string, bool) {
	rest := t.input[t.offset:]
	for i, r := range rest[1:] {
		switch {
		case r == '$':
			return rest[:i+2], true
		case i == 0 && !isIdentifierStart(r):
			return "", false
		case !isIdentifierStart(r) && !unicode.IsDigit(r):
			return "", false
		}
	}
	return "", false
}

// readDollarString reads a dollar-quoted string such as a function body.
// Nothing inside it is interpreted, semicolons included.
func (t *tokenizer) readDollarString(tag string) (Token, error) {
	start := t.pos()
	body := start.Offset + len(tag)

	end := strings.Index(t.input[body:], tag)
	if end < 0 {
		return Token{}, fmt.Errorf("%w at line %d, column %d", ErrUnterminatedString, start.Line, start.Column)
	}

	for stop := body + end + len(tag); t.offset < stop; {
		t.readChar()
	}

	return Token{Type: STRING, Value: t.input[start.Offset:t.offset], Position: start}, nil
}

// readNumber reads numeric literals
func (t *tokenizer) readNumber() (Token, error) {
	start := t.pos()

	for unicode.IsDigit(t.current) {
		t.readChar()
	}

	if t.current == '.' && unicode.IsDigit(t.peekChar()) {
		t.readChar()
		for unicode.IsDigit(t.current) {
			t.readChar()
		}
	}

	if t.current == 'e' || t.current == 'E' {
		t.readChar()
		if t.current == '+' || t.current == '-' {
			t.readChar()
		}
		if !unicode.IsDigit(t.current) {
			return Token{}, fmt.Errorf("%w: invalid exponent at line %d, column %d", ErrInvalidNumber, start.Line, start.Column)
		}
		for unicode.IsDigit(t.current) {
			t.readChar()
		}
	}

	return Token{Type: NUMBER, Value: t.input[start.Offset:t.offset], Position: start}, nil
}

// readLineComment reads line comments
func (t *tokenizer) readLineComment() Token {
	start := t.pos()
	for t.current != 0 && t.current != '\n' {
		t.readChar()
	}

	return Token{Type: LINE_COMMENT, Value: t.input[start.Offset:t.offset], Position: start}
}

// readBlockComment reads block comments
func (t *tokenizer) readBlockComment() (Token, error) {
	start := t.pos()
	t.readChar() // '/'
	t.readChar() // '*'

	for t.current != 0 {
		if t.current == '*' && t.peekChar() == '/' {
			t.readChar()
			t.readChar()
			return Token{Type: BLOCK_COMMENT, Value: t.input[start.Offset:t.offset], Position: start}, nil
		}
		t.readChar()
	}

	return Token{}, fmt.Errorf("%w at line %d, column %d", ErrUnterminatedComment, start.Line, start.Column)
}

// isIdentifierStart follows the SQL <identifier start> classes Lu, Ll, Lt, Lm, Lo, Nl plus '_'.
func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r) || r == '_'
}

// isIdentifierPart adds the <identifier extend> classes Mn, Mc, Nd, Pc and U+00B7.
func isIdentifierPart(r rune) bool {
	if r == 0 {
		return false
	}
	return isIdentifierStart(r) ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc) ||
		r == '·' || r == '$'
}
