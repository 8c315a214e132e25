package ddl

import (
	"fmt"
	"slices"
	"strings"

	pc "github.com/shibukawa/parsercombinator"

	"github.com/sql2shacl/sql2shacl/diag"
	"github.com/sql2shacl/sql2shacl/iri"
	"github.com/sql2shacl/sql2shacl/schema"
	tok "github.com/sql2shacl/sql2shacl/tokenizer"
)

// clauseEnd lists the keywords that start a new column constraint. An
// unsupported clause such as DEFAULT or CHECK is skipped up to one of them.
var clauseEnd = []string{"NOT", "NULL", "UNIQUE", "PRIMARY", "REFERENCES", "CONSTRAINT"}

// BuildRelation classifies the element expressions of seg into columns and
// table constraints, then propagates table-level keys onto the columns.
func BuildRelation(seg Segment, collector *diag.Collector) (*schema.Relation, error) {
	logger := collector.Logger()
	rel := schema.NewRelation(seg.Relation)
	logger.Info("identified relation", "relation", rel.Name)

	for _, element := range seg.Elements {
		head := element[0]

		if head.Type == tok.RESERVED_IDENTIFIER {
			if consume, matched, ok := run(tableConstraintHead, element); ok {
				if c, ok := buildConstraint(rel.Name, element, consume, matched, collector); ok {
					rel.AddConstraint(c)
					logger.Info("with constraint", "relation", rel.Name, "kind", c.Kind().String(), "columns", c.ColumnNames())
				}
				continue
			}
		}

		if !isColumnDefinition(element) {
			collector.Warn(rel.Name, &head.Position, "skipping unsupported element starting with %s", head.Value)
			continue
		}

		col, err := buildColumn(rel.Name, element, collector)
		if err != nil {
			return nil, err
		}
		if err := rel.AddColumn(col); err != nil {
			return nil, fmt.Errorf("%w at %s", err, head.Position.String())
		}
		logger.Info("with column", "relation", rel.Name, "column", col.Name, "type", col.DataType)
	}

	if err := rel.Propagate(); err != nil {
		return nil, fmt.Errorf("%w at %s", err, seg.Position.String())
	}

	return rel, nil
}

// isColumnDefinition reports whether element starts with a column name. A
// type word or keyword also names a column when a type word follows it, as
// in "date date" or "comment text".
func isColumnDefinition(element []tok.Token) bool {
	if element[0].IsName() {
		return true
	}
	switch element[0].Type {
	case tok.BUILTIN_TYPE, tok.RESERVED_IDENTIFIER:
		return len(element) > 1 && element[1].Type == tok.BUILTIN_TYPE
	}
	return false
}

func buildColumn(relation string, element []tok.Token, collector *diag.Collector) (*schema.Column, error) {
	col := &schema.Column{Name: element[0].Unquoted()}

	dataType, end, ok := findDatatype(element[1:])
	if !ok {
		return nil, fmt.Errorf("%w at %s: column <%s> of relation <%s>", ErrMissingSQLDatatype, element[0].Position.String(), col.Name, relation)
	}
	col.DataType = dataType

	rest := element[1+end:]
	for i := 0; i < len(rest); {
		t := rest[i]

		if t.Type == tok.OPENED_PARENS {
			i = matchingParen(rest, i) + 1
			continue
		}

		consume, matched, ok := run(columnConstraint, rest[i:])
		if !ok {
			if t.Type == tok.RESERVED_IDENTIFIER {
				collector.Warn(relation, &t.Position, "skipping unsupported keyword %s in column %s", strings.ToUpper(t.Value), col.Name)
				i = skipClause(rest, i+1)
				continue
			}
			i++
			continue
		}
		i += consume

		switch matched[0].Type {
		case "not-null":
			col.MarkNotNull()
		case "primary-key":
			col.MarkPrimaryKey()
		case "unique":
			col.MarkUnique()
		case "references":
			target, _ := lastName(matched[1:])
			ref := &schema.ColumnReference{RelationName: target.Unquoted(), ColumnName: col.Name}
			if i < len(rest) && rest[i].Type == tok.OPENED_PARENS {
				closing := matchingParen(rest, i)
				if columns := keyList(rest[i : closing+1]); len(columns) > 0 {
					ref.ColumnName = columns[0]
				}
				i = closing + 1
			}
			col.Reference = ref
		}
	}

	return col, nil
}

// findDatatype returns the first SQL type name found in tokens, as written
// with single spaces, and the index just past its last word. The longest
// known phrase wins, so "double precision" is preferred over "double".
func findDatatype(tokens []tok.Token) (string, int, bool) {
	maxWords := iri.MaxDatatypeWords()

	for i, t := range tokens {
		if t.Type != tok.BUILTIN_TYPE {
			continue
		}
		words, ends := typePhrase(tokens[i:], maxWords)
		for n := len(words); n > 0; n-- {
			phrase := strings.Join(words[:n], " ")
			if iri.IsKnownDatatype(phrase) {
				return phrase, i + ends[n-1], true
			}
		}
	}

	return "", 0, false
}

// typePhrase collects up to maxWords type words from the start of tokens.
// Type arguments between the words, as in TIMESTAMP(3) WITH TIME ZONE, are
// stepped over. ends[k] is the index just past the k-th word.
func typePhrase(tokens []tok.Token, maxWords int) (words []string, ends []int) {
	for i := 0; i < len(tokens) && len(words) < maxWords; {
		t := tokens[i]
		switch {
		case t.Type == tok.BUILTIN_TYPE:
		case len(words) > 0 && (t.IsKeyword("WITH") || t.IsKeyword("WITHOUT")):
		case len(words) > 0 && t.Type == tok.OPENED_PARENS:
			i = matchingParen(tokens, i) + 1
			continue
		default:
			return words, ends
		}
		words = append(words, t.Value)
		ends = append(ends, i+1)
		i++
	}
	return words, ends
}

// skipClause returns the index of the next column constraint keyword at or
// after i, stepping over parenthesized groups.
func skipClause(tokens []tok.Token, i int) int {
	for i < len(tokens) {
		t := tokens[i]
		if t.Type == tok.OPENED_PARENS {
			i = matchingParen(tokens, i) + 1
			continue
		}
		if t.Type == tok.RESERVED_IDENTIFIER && slices.ContainsFunc(clauseEnd, t.IsKeyword) {
			return i
		}
		i++
	}
	return i
}

// keyList returns the leading name of each item in a parenthesized list such
// as (a, b DESC). group must start with '(' and end with its matching ')'.
func keyList(group []tok.Token) []string {
	var names []string

	depth := 0
	itemStart := true
	for _, t := range group {
		switch t.Type {
		case tok.OPENED_PARENS:
			depth++
			continue
		case tok.CLOSED_PARENS:
			depth--
			continue
		case tok.COMMA:
			if depth == 1 {
				itemStart = true
				continue
			}
		}
		if depth == 1 && itemStart {
			itemStart = false
			switch t.Type {
			case tok.IDENTIFIER, tok.QUOTED_IDENTIFIER, tok.RESERVED_IDENTIFIER, tok.BUILTIN_TYPE:
				names = append(names, t.Unquoted())
			}
		}
	}

	return names
}

func buildConstraint(relation string, element []tok.Token, consume int, matched []pc.Token[tok.Token], collector *diag.Collector) (schema.TableConstraint, bool) {
	name := ""
	if i := findTag(matched, "constraint-name"); i >= 0 && i+1 < len(matched) {
		name = matched[i+1].Val.Unquoted()
	}

	head := element[0]
	rest := element[consume:]

	open := slices.IndexFunc(rest, func(t tok.Token) bool { return t.Type == tok.OPENED_PARENS })
	if open < 0 {
		collector.Warn(relation, &head.Position, "skipping table constraint without column list")
		return nil, false
	}
	closing := matchingParen(rest, open)
	columns := keyList(rest[open : closing+1])
	if len(columns) == 0 {
		collector.Warn(relation, &head.Position, "skipping table constraint with empty column list")
		return nil, false
	}

	switch {
	case findTag(matched, "primary-key") >= 0:
		return &schema.TablePrimaryKey{Name: name, Columns: columns}, true
	case findTag(matched, "unique") >= 0:
		return &schema.TableUnique{Name: name, Columns: columns}, true
	}

	fk := &schema.TableForeignKey{Name: name, Columns: columns}
	rest = rest[closing+1:]

	n, refs, ok := run(referencesClause, rest)
	if !ok {
		collector.Warn(relation, &head.Position, "skipping FOREIGN KEY without REFERENCES clause")
		return nil, false
	}
	target, _ := lastName(refs[1:])
	fk.ReferencedRelation = target.Unquoted()
	rest = rest[n:]

	if len(rest) > 0 && rest[0].Type == tok.OPENED_PARENS {
		closing := matchingParen(rest, 0)
		fk.ReferencedColumns = keyList(rest[:closing+1])
		rest = rest[closing+1:]
	}
	if len(fk.ReferencedColumns) == 0 {
		fk.ReferencedColumns = slices.Clone(columns)
	}
	if len(fk.ReferencedColumns) != len(fk.Columns) {
		collector.Warn(relation, &head.Position, "skipping FOREIGN KEY: %d columns reference %d columns of %s",
			len(fk.Columns), len(fk.ReferencedColumns), fk.ReferencedRelation)
		return nil, false
	}

	for i := 0; i < len(rest); {
		consume, q, ok := run(foreignKeyQualifier, rest[i:])
		if !ok {
			i++
			continue
		}
		switch q[0].Type {
		case "not-null":
			fk.IsNotNull = true
		case "unique":
			fk.IsUnique = true
		}
		i += consume
	}

	return fk, true
}
