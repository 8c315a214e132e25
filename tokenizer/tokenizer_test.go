package tokenizer

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func collectTypes(t *testing.T, tokenizer *SqlTokenizer) []TokenType {
	t.Helper()

	var actualTypes []TokenType
	for token, err := range tokenizer.Tokens() {
		assert.NoError(t, err)
		actualTypes = append(actualTypes, token.Type)
		if token.Type == EOF {
			break
		}
	}
	return actualTypes
}

func TestTokenIterator(t *testing.T) {
	sql := "CREATE TABLE Emp (E_id integer PRIMARY KEY);"
	tokenizer := NewSqlTokenizer(sql)

	expectedTypes := []TokenType{
		RESERVED_IDENTIFIER, WHITESPACE, RESERVED_IDENTIFIER, WHITESPACE, IDENTIFIER, WHITESPACE,
		OPENED_PARENS, IDENTIFIER, WHITESPACE, BUILTIN_TYPE, WHITESPACE, RESERVED_IDENTIFIER, WHITESPACE,
		RESERVED_IDENTIFIER, CLOSED_PARENS, SEMICOLON, EOF,
	}

	assert.Equal(t, expectedTypes, collectTypes(t, tokenizer))
}

func TestTokenIteratorWithOptions(t *testing.T) {
	sql := "CREATE TABLE t -- comment\n(a int /* note */, b text);"
	tokenizer := NewSqlTokenizer(sql, TokenizerOptions{
		SkipWhitespace: true,
		SkipComments:   true,
	})

	expectedTypes := []TokenType{
		RESERVED_IDENTIFIER, RESERVED_IDENTIFIER, IDENTIFIER, OPENED_PARENS, IDENTIFIER, BUILTIN_TYPE,
		COMMA, IDENTIFIER, BUILTIN_TYPE, CLOSED_PARENS, SEMICOLON, EOF,
	}

	assert.Equal(t, expectedTypes, collectTypes(t, tokenizer))
}

func TestIteratorEarlyTermination(t *testing.T) {
	sql := "CREATE TABLE users (id integer, name text);"
	tokenizer := NewSqlTokenizer(sql)

	count := 0
	for _, err := range tokenizer.Tokens() {
		assert.NoError(t, err)

		count++
		if count >= 5 {
			break
		}
	}

	assert.Equal(t, 5, count)
}

func TestBasicTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:     "single keyword",
			input:    "CREATE",
			expected: []TokenType{RESERVED_IDENTIFIER, EOF},
		},
		{
			name:     "builtin type",
			input:    "varchar(255)",
			expected: []TokenType{BUILTIN_TYPE, OPENED_PARENS, NUMBER, CLOSED_PARENS, EOF},
		},
		{
			name:     "multi word type",
			input:    "double precision",
			expected: []TokenType{BUILTIN_TYPE, WHITESPACE, BUILTIN_TYPE, EOF},
		},
		{
			name:     "single quoted string",
			input:    "'abc'",
			expected: []TokenType{STRING, EOF},
		},
		{
			name:     "double quoted identifier",
			input:    `"col"`,
			expected: []TokenType{QUOTED_IDENTIFIER, EOF},
		},
		{
			name:     "double quote with single inside",
			input:    `"a'b"`,
			expected: []TokenType{QUOTED_IDENTIFIER, EOF},
		},
		{
			name:     "escaped single quote (doubled)",
			input:    "'a''b'",
			expected: []TokenType{STRING, EOF},
		},
		{
			name:     "escaped double quote (doubled)",
			input:    `"a""b"`,
			expected: []TokenType{QUOTED_IDENTIFIER, EOF},
		},
		{
			name:     "backslash escape in single quote",
			input:    `'a\'b'`,
			expected: []TokenType{STRING, EOF},
		},
		{
			name:     "backtick identifier (MySQL)",
			input:    "`col`",
			expected: []TokenType{QUOTED_IDENTIFIER, EOF},
		},
		{
			name:     "qualified name",
			input:    "public.users",
			expected: []TokenType{IDENTIFIER, DOT, IDENTIFIER, EOF},
		},
		{
			name:     "unicode identifier",
			input:    "Größe_2",
			expected: []TokenType{IDENTIFIER, EOF},
		},
		{
			name:  "constraint keywords",
			input: "NOT NULL UNIQUE REFERENCES",
			expected: []TokenType{
				RESERVED_IDENTIFIER, WHITESPACE, RESERVED_IDENTIFIER, WHITESPACE,
				RESERVED_IDENTIFIER, WHITESPACE, RESERVED_IDENTIFIER, EOF,
			},
		},
		{
			name:     "check expression",
			input:    "(a >= 1 AND b <> 2)",
			expected: []TokenType{OPENED_PARENS, IDENTIFIER, WHITESPACE, GREATER_EQUAL, WHITESPACE, NUMBER, WHITESPACE, RESERVED_IDENTIFIER, WHITESPACE, IDENTIFIER, WHITESPACE, NOT_EQUAL, WHITESPACE, NUMBER, CLOSED_PARENS, EOF},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokenizer := NewSqlTokenizer(test.input)
			assert.Equal(t, test.expected, collectTypes(t, tokenizer))
		})
	}
}

func TestCaseHandling(t *testing.T) {
	tokens, err := NewSqlTokenizer("create Table Emp", TokenizerOptions{SkipWhitespace: true}).AllTokens()
	assert.NoError(t, err)
	assert.Equal(t, "CREATE", tokens[0].Value)
	assert.Equal(t, "EMP", tokens[2].Value)

	tokens, err = NewSqlTokenizer("create Table Emp", TokenizerOptions{SkipWhitespace: true, PreserveCase: true}).AllTokens()
	assert.NoError(t, err)
	assert.Equal(t, "create", tokens[0].Value)
	assert.True(t, tokens[0].IsKeyword("CREATE"))
	assert.True(t, tokens[1].IsKeyword("table"))
	assert.Equal(t, "Emp", tokens[2].Value)
	assert.True(t, tokens[2].IsName())
}

func TestUnquoted(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"Emp"`, "Emp"},
		{`"a""b"`, `a"b`},
		{"`Emp`", "Emp"},
		{"'it''s'", "it's"},
		{"plain", "plain"},
		{`"`, `"`},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			assert.Equal(t, test.expected, Token{Value: test.input}.Unquoted())
		})
	}
}

func TestErrorHandling(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectedErr error
	}{
		{
			name:        "unclosed string",
			input:       "CREATE TABLE t (a text DEFAULT 'unclosed string",
			expectedErr: ErrUnterminatedString,
		},
		{
			name:        "unclosed quoted identifier",
			input:       `CREATE TABLE "t (a int)`,
			expectedErr: ErrUnterminatedQuote,
		},
		{
			name:        "unclosed dollar-quoted string",
			input:       "CREATE FUNCTION f() RETURNS int AS $body$ SELECT 1;",
			expectedErr: ErrUnterminatedString,
		},
		{
			name:        "unclosed block comment",
			input:       "CREATE TABLE t /* unclosed comment",
			expectedErr: ErrUnterminatedComment,
		},
		{
			name:        "invalid numeric format",
			input:       "CREATE TABLE t (a int DEFAULT 123e)",
			expectedErr: ErrInvalidNumber,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokenizer := NewSqlTokenizer(test.input)

			var foundError error
			for _, err := range tokenizer.Tokens() {
				if err != nil {
					foundError = err
					break
				}
			}

			assert.Error(t, foundError)
			assert.True(t, errors.Is(foundError, test.expectedErr))
		})
	}
}

func TestAllTokens(t *testing.T) {
	sql := "DROP TABLE users;"
	tokenizer := NewSqlTokenizer(sql)

	tokens, err := tokenizer.AllTokens()
	assert.NoError(t, err)

	expectedTypes := []TokenType{RESERVED_IDENTIFIER, WHITESPACE, RESERVED_IDENTIFIER, WHITESPACE, IDENTIFIER, SEMICOLON, EOF}
	var actualTypes []TokenType
	for _, token := range tokens {
		actualTypes = append(actualTypes, token.Type)
	}

	assert.Equal(t, expectedTypes, actualTypes)
}

func TestAllTokensStopsAtFirstError(t *testing.T) {
	tokens, err := NewSqlTokenizer("CREATE 'oops").AllTokens()
	assert.IsError(t, err, ErrUnterminatedString)
	assert.Equal(t, 2, len(tokens))
}

func TestTokenPosition(t *testing.T) {
	sql := "CREATE\nx,\ny"
	tokenizer := NewSqlTokenizer(sql)

	expectedPositions := []Position{
		{Line: 1, Column: 1, Offset: 0},  // CREATE
		{Line: 1, Column: 7, Offset: 6},  // \n
		{Line: 2, Column: 1, Offset: 7},  // x
		{Line: 2, Column: 2, Offset: 8},  // ,
		{Line: 2, Column: 3, Offset: 9},  // \n
		{Line: 3, Column: 1, Offset: 10}, // y
		{Line: 3, Column: 2, Offset: 11}, // EOF
	}

	var actualPositions []Position
	for token, err := range tokenizer.Tokens() {
		assert.NoError(t, err)
		actualPositions = append(actualPositions, token.Position)
		if token.Type == EOF {
			break
		}
	}

	assert.Equal(t, expectedPositions, actualPositions)
}

func TestMultiByteOffsets(t *testing.T) {
	tokens, err := NewSqlTokenizer("é, ß", TokenizerOptions{PreserveCase: true}).AllTokens()
	assert.NoError(t, err)

	assert.Equal(t, "é", tokens[0].Value)
	assert.Equal(t, Position{Line: 1, Column: 2, Offset: 2}, tokens[1].Position)
	assert.Equal(t, "ß", tokens[3].Value)
	assert.Equal(t, Position{Line: 1, Column: 4, Offset: 4}, tokens[3].Position)
}

func TestSplitStatements(t *testing.T) {
	sql := `-- header
CREATE TABLE a (x int);
  ;
CREATE TABLE b (y int)`

	tokens, err := NewSqlTokenizer(sql).AllTokens()
	assert.NoError(t, err)

	statements := SplitStatements(tokens)
	assert.Equal(t, 2, len(statements))

	first := statements[0].Significant()
	assert.Equal(t, "CREATE", first[0].Value)
	assert.Equal(t, "A", first[2].Value)
	assert.Equal(t, 2, statements[0].Position().Line)

	second := statements[1].Significant()
	assert.Equal(t, "B", second[2].Value)
	assert.Equal(t, CLOSED_PARENS, second[len(second)-1].Type)
}

func TestDollarQuotedStrings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		value string
	}{
		{"anonymous tag", "$$ BEGIN RETURN 1; END; $$", "$$ BEGIN RETURN 1; END; $$"},
		{"named tag", "$fn$ SELECT '$$'; $fn$", "$fn$ SELECT '$$'; $fn$"},
		{"multi-line body", "$$\nBEGIN\n  NULL;\nEND;\n$$", "$$\nBEGIN\n  NULL;\nEND;\n$$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := NewSqlTokenizer(tt.input).AllTokens()
			assert.NoError(t, err)
			assert.Equal(t, 2, len(tokens))
			assert.Equal(t, STRING, tokens[0].Type)
			assert.Equal(t, tt.value, tokens[0].Value)
			assert.Equal(t, EOF, tokens[1].Type)
		})
	}

	t.Run("parameter marker", func(t *testing.T) {
		tokens, err := NewSqlTokenizer("$1").AllTokens()
		assert.NoError(t, err)
		assert.Equal(t, OTHER, tokens[0].Type)
		assert.Equal(t, NUMBER, tokens[1].Type)
	})
}

func TestSplitStatementsKeepsFunctionBodies(t *testing.T) {
	sql := `CREATE FUNCTION touch() RETURNS trigger AS $$
BEGIN
  NEW.updated := now();
  RETURN NEW;
END;
$$ LANGUAGE plpgsql;
CREATE TABLE t (a int);`

	tokens, err := NewSqlTokenizer(sql).AllTokens()
	assert.NoError(t, err)

	statements := SplitStatements(tokens)
	assert.Equal(t, 2, len(statements))
	assert.Equal(t, "FUNCTION", statements[0].Significant()[1].Value)
	assert.Equal(t, 7, statements[1].Position().Line)
}

func TestClassifyWord(t *testing.T) {
	for word := range KeywordSet {
		_, isType := BuiltinTypes[word]
		assert.False(t, isType, "%s is both a keyword and a type", word)
		assert.Equal(t, RESERVED_IDENTIFIER, classifyWord(word), word)
	}
	assert.Equal(t, BUILTIN_TYPE, classifyWord("varchar"))
	assert.Equal(t, IDENTIFIER, classifyWord("name"))
}
