package ddl

import (
	"slices"
	"strings"

	pc "github.com/shibukawa/parsercombinator"

	tok "github.com/sql2shacl/sql2shacl/tokenizer"
)

// The grammar runs over significant tokens only: whitespace and comments are
// removed before parsing, so no space parsers are needed between terms.

var (
	parenOpen = primitiveType("parenOpen", tok.OPENED_PARENS)
	dot       = primitiveType("dot", tok.DOT)

	// anyName accepts keywords and type words as well as plain names, for
	// positions where nothing else can appear (after CONSTRAINT, REFERENCES, TABLE).
	anyName = primitiveType("anyName", tok.IDENTIFIER, tok.QUOTED_IDENTIFIER, tok.RESERVED_IDENTIFIER, tok.BUILTIN_TYPE)

	create     = keyword("create", "CREATE")
	table      = keyword("table", "TABLE")
	ifKw       = keyword("if", "IF")
	not        = keyword("not", "NOT")
	exists     = keyword("exists", "EXISTS")
	null       = keyword("null", "NULL")
	constraint = keyword("constraint", "CONSTRAINT")
	primary    = keyword("primary", "PRIMARY")
	foreign    = keyword("foreign", "FOREIGN")
	key        = keyword("key", "KEY")
	index      = keyword("index", "INDEX")
	unique     = keyword("unique", "UNIQUE")
	references = keyword("references", "REFERENCES")

	on         = keyword("on", "ON")
	deleteKw   = keyword("delete", "DELETE")
	updateKw   = keyword("update", "UPDATE")
	cascade    = keyword("cascade", "CASCADE")
	restrict   = keyword("restrict", "RESTRICT")
	set        = keyword("set", "SET")
	defaultKw  = keyword("default", "DEFAULT")
	no         = keyword("no", "NO")
	action     = keyword("action", "ACTION")
	match      = keyword("match", "MATCH")
	full       = keyword("full", "FULL")
	partial    = keyword("partial", "PARTIAL")
	simple     = keyword("simple", "SIMPLE")
	deferrable = keyword("deferrable", "DEFERRABLE")
	initially  = keyword("initially", "INITIALLY")
	deferred   = keyword("deferred", "DEFERRED")
	immediate  = keyword("immediate", "IMMEDIATE")
)

var (
	qualifiedName = pc.Seq(anyName, pc.ZeroOrMore("qualifier", pc.Seq(dot, anyName)))

	createTable = pc.Seq(
		tag("create", create),
		pc.ZeroOrMore("table modifier", keywordExcept("TABLE")),
		tag("table", table),
		pc.Optional(tag("if-not-exists", ifKw, not, exists)),
		tag("relation-name", qualifiedName),
		parenOpen,
	)

	constraintName = tag("constraint-name", constraint, anyName)

	tableConstraintHead = pc.Seq(
		pc.Optional(constraintName),
		pc.Or(
			tag("primary-key", primary, key),
			tag("foreign-key", foreign, key),
			tag("unique", unique, pc.Optional(pc.Or(key, index))),
		),
	)

	referentialAction = tag("referential-action", pc.Or(
		pc.Seq(on, pc.Or(deleteKw, updateKw), pc.Or(
			cascade,
			restrict,
			pc.Seq(set, pc.Or(null, defaultKw)),
			pc.Seq(no, action),
		)),
		pc.Seq(match, pc.Or(full, partial, simple)),
		pc.Seq(pc.Optional(not), deferrable),
		pc.Seq(initially, pc.Or(deferred, immediate)),
	))

	referencesClause = tag("references", references, qualifiedName)

	columnConstraint = pc.Or(
		tag("not-null", not, null),
		tag("null", null),
		tag("primary-key", primary, key),
		tag("unique", unique, pc.Optional(key)),
		referencesClause,
		constraintName,
		referentialAction,
	)

	foreignKeyQualifier = pc.Or(
		tag("not-null", not, null),
		tag("unique", unique, pc.Optional(key)),
		referentialAction,
	)
)

func tag(typeStr string, p ...pc.Parser[tok.Token]) pc.Parser[tok.Token] {
	return pc.Trans(pc.Seq(p...), func(pctx *pc.ParseContext[tok.Token], src []pc.Token[tok.Token]) (converted []pc.Token[tok.Token], err error) {
		if len(src) > 0 {
			src[0].Type = typeStr
		}

		return src, nil
	})
}

func primitiveType(typeName string, types ...tok.TokenType) pc.Parser[tok.Token] {
	return func(pctx *pc.ParseContext[tok.Token], tokens []pc.Token[tok.Token]) (int, []pc.Token[tok.Token], error) {
		if len(tokens) > 0 && slices.Contains(types, tokens[0].Val.Type) {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

func keyword(typeName string, word ...string) pc.Parser[tok.Token] {
	return func(pctx *pc.ParseContext[tok.Token], tokens []pc.Token[tok.Token]) (int, []pc.Token[tok.Token], error) {
		if len(tokens) > 0 && tokens[0].Val.Type == tok.RESERVED_IDENTIFIER {
			v := tokens[0].Val.Value
			for _, w := range word {
				if strings.EqualFold(v, w) {
					return 1, tokens[:1], nil
				}
			}
		}

		return 0, nil, pc.ErrNotMatch
	}
}

// keywordExcept matches any single word token other than the listed keywords,
// used for modifiers such as TEMPORARY or UNLOGGED between CREATE and TABLE.
func keywordExcept(word ...string) pc.Parser[tok.Token] {
	return func(pctx *pc.ParseContext[tok.Token], tokens []pc.Token[tok.Token]) (int, []pc.Token[tok.Token], error) {
		if len(tokens) == 0 {
			return 0, nil, pc.ErrNotMatch
		}
		switch tokens[0].Val.Type {
		case tok.RESERVED_IDENTIFIER, tok.IDENTIFIER:
		default:
			return 0, nil, pc.ErrNotMatch
		}
		for _, w := range word {
			if strings.EqualFold(tokens[0].Val.Value, w) {
				return 0, nil, pc.ErrNotMatch
			}
		}

		return 1, tokens[:1], nil
	}
}

func toParserToken(tokens []tok.Token) []pc.Token[tok.Token] {
	results := make([]pc.Token[tok.Token], len(tokens))

	for i, token := range tokens {
		results[i] = pc.Token[tok.Token]{
			Type: "raw",
			Pos: &pc.Pos{
				Line:  token.Position.Line,
				Col:   token.Position.Column,
				Index: token.Position.Offset,
			},
			Val: token,
			Raw: token.Value,
		}
	}

	return results
}

// run applies p at the start of tokens. It returns how many tokens were
// consumed and the matched tokens, or ok=false when p does not match.
func run(p pc.Parser[tok.Token], tokens []tok.Token) (consume int, matched []pc.Token[tok.Token], ok bool) {
	if len(tokens) == 0 {
		return 0, nil, false
	}
	consume, matched, err := p(pc.NewParseContext[tok.Token](), toParserToken(tokens))
	if err != nil || consume == 0 {
		return 0, nil, false
	}
	return consume, matched, true
}

// findTag returns the index of the first matched token tagged typeStr, or -1.
func findTag(matched []pc.Token[tok.Token], typeStr string) int {
	return slices.IndexFunc(matched, func(t pc.Token[tok.Token]) bool { return t.Type == typeStr })
}

// lastName returns the final part of a qualified name: for schema.table it is table.
func lastName(matched []pc.Token[tok.Token]) (tok.Token, bool) {
	for i := len(matched) - 1; i >= 0; i-- {
		if matched[i].Val.Type != tok.DOT {
			return matched[i].Val, true
		}
	}
	return tok.Token{}, false
}
