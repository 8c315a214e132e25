package tokenizer

// Statement is the token run of one SQL statement, without its terminating semicolon.
type Statement struct {
	Tokens []Token
}

// Significant returns the statement's tokens with whitespace, comments and EOF removed.
func (s Statement) Significant() []Token {
	result := make([]Token, 0, len(s.Tokens))
	for _, token := range s.Tokens {
		switch token.Type {
		case WHITESPACE, LINE_COMMENT, BLOCK_COMMENT, EOF:
			continue
		}
		result = append(result, token)
	}
	return result
}

// Position returns the position of the first significant token.
func (s Statement) Position() Position {
	if significant := s.Significant(); len(significant) > 0 {
		return significant[0].Position
	}
	if len(s.Tokens) > 0 {
		return s.Tokens[0].Position
	}
	return Position{Line: 1, Column: 1}
}

// SplitStatements groups tokens into statements at semicolons.
// Statements that hold nothing but whitespace and comments are dropped.
func SplitStatements(tokens []Token) []Statement {
	var (
		statements []Statement
		current    []Token
	)

	flush := func() {
		stmt := Statement{Tokens: current}
		if len(stmt.Significant()) > 0 {
			statements = append(statements, stmt)
		}
		current = nil
	}

	for _, token := range tokens {
		switch token.Type {
		case SEMICOLON:
			flush()
		case EOF:
			// end of input
		default:
			current = append(current, token)
		}
	}
	flush()

	return statements
}
