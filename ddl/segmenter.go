package ddl

import (
	"fmt"
	"strings"

	"github.com/sql2shacl/sql2shacl/diag"
	tok "github.com/sql2shacl/sql2shacl/tokenizer"
)

// Segment is one CREATE TABLE statement cut into its element expressions:
// the column definitions and table constraints of the parenthesized body.
type Segment struct {
	Relation string
	// Quoted is true when the relation name was written as a quoted identifier.
	Quoted   bool
	Position tok.Position
	Elements [][]tok.Token
}

// String renders the segment for debugging, one element per line.
func (s Segment) String() string {
	var b strings.Builder
	b.WriteString(s.Relation)
	b.WriteString(":\n")
	for _, element := range s.Elements {
		b.WriteString("  ")
		for i, t := range element {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(t.Value)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Segments extracts one Segment per CREATE TABLE statement. Other statements,
// and CREATE TABLE statements whose relation name cannot be read, are skipped
// with a diagnostic. Unbalanced parentheses are fatal inside CREATE TABLE
// statements only.
func Segments(statements []tok.Statement, collector *diag.Collector) ([]Segment, error) {
	var segments []Segment

	for _, stmt := range statements {
		seg, ok, err := segmentStatement(stmt, collector)
		if err != nil {
			return nil, err
		}
		if ok {
			segments = append(segments, seg)
		}
	}

	return segments, nil
}

func segmentStatement(stmt tok.Statement, collector *diag.Collector) (Segment, bool, error) {
	tokens := stmt.Significant()
	if len(tokens) == 0 {
		return Segment{}, false, nil
	}
	pos := tokens[0].Position

	if !isCreateTable(tokens) {
		collector.Warn("", &pos, "skipping statement starting with %s: not a CREATE TABLE statement", tokens[0].Value)
		return Segment{}, false, nil
	}

	if err := checkParentheses(tokens); err != nil {
		return Segment{}, false, err
	}

	consume, matched, ok := run(createTable, tokens)
	if !ok {
		collector.Warn("", &pos, "skipping CREATE TABLE statement: relation name or column list not found")
		return Segment{}, false, nil
	}

	// matched ends with the opening parenthesis of the body
	start := findTag(matched, "relation-name")
	if start < 0 {
		collector.Warn("", &pos, "skipping CREATE TABLE statement: relation name not found")
		return Segment{}, false, nil
	}
	nameToken, _ := lastName(matched[start : len(matched)-1])

	seg := Segment{
		Relation: nameToken.Unquoted(),
		Quoted:   nameToken.Type == tok.QUOTED_IDENTIFIER,
		Position: nameToken.Position,
	}
	if !seg.Quoted && !IsValidIdentifier(seg.Relation) {
		collector.Warn(seg.Relation, &nameToken.Position, "skipping relation: %q is not a valid identifier", seg.Relation)
		return Segment{}, false, nil
	}

	closing := matchingParen(tokens, consume-1)
	if rest := tokens[closing+1:]; len(rest) > 0 {
		collector.Logger().Debug("ignoring table options", "relation", seg.Relation, "tokens", len(rest))
	}

	for _, element := range splitElements(tokens[consume:closing]) {
		if len(element) == 0 {
			collector.Warn(seg.Relation, &tokens[closing].Position, "skipping empty element")
			continue
		}
		seg.Elements = append(seg.Elements, element)
	}

	return seg, true, nil
}

// isCreateTable reports whether tokens start with CREATE and hold a TABLE
// keyword before the first opening parenthesis.
func isCreateTable(tokens []tok.Token) bool {
	if !tokens[0].IsKeyword("CREATE") {
		return false
	}
	for _, t := range tokens[1:] {
		if t.Type == tok.OPENED_PARENS {
			return false
		}
		if t.IsKeyword("TABLE") {
			return true
		}
	}
	return false
}

// splitElements splits a table body at commas outside any nested parentheses.
// Commas inside key lists or type arguments such as numeric(10, 2) never split.
func splitElements(body []tok.Token) [][]tok.Token {
	var (
		elements [][]tok.Token
		current  []tok.Token
		depth    int
	)

	for _, t := range body {
		switch t.Type {
		case tok.OPENED_PARENS:
			depth++
		case tok.CLOSED_PARENS:
			depth--
		case tok.COMMA:
			if depth == 0 {
				elements = append(elements, current)
				current = nil
				continue
			}
		}
		current = append(current, t)
	}

	return append(elements, current)
}

// matchingParen returns the index of the parenthesis closing the one at open,
// or len(tokens)-1 when the group runs to the end.
func matchingParen(tokens []tok.Token, open int) int {
	depth := 0
	for i := open; i < len(tokens); i++ {
		switch tokens[i].Type {
		case tok.OPENED_PARENS:
			depth++
		case tok.CLOSED_PARENS:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(tokens) - 1
}

func checkParentheses(tokens []tok.Token) error {
	var opened []tok.Position

	for _, t := range tokens {
		switch t.Type {
		case tok.OPENED_PARENS:
			opened = append(opened, t.Position)
		case tok.CLOSED_PARENS:
			if len(opened) == 0 {
				return fmt.Errorf("%w at %s: unexpected ')'", ErrUnmatchedParenthesis, t.Position.String())
			}
			opened = opened[:len(opened)-1]
		}
	}
	if len(opened) > 0 {
		return fmt.Errorf("%w at %s: '(' is never closed", ErrUnmatchedParenthesis, opened[len(opened)-1].String())
	}

	return nil
}
