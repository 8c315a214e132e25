// Package shacl holds the shape graph produced by the rewriter: RDF terms, an
// insertion-ordered triple set, a registry that deduplicates property shapes,
// and serializers for Turtle, N-Triples, RDF/XML and JSON-LD.
package shacl

import (
	"strconv"
	"strings"
)

// TermKind distinguishes IRIs, blank nodes and literals.
type TermKind int

const (
	IRIKind TermKind = iota + 1
	BlankKind
	LiteralKind
)

// Term is an RDF term. Datatype is set for literals only.
type Term struct {
	Kind     TermKind
	Value    string
	Datatype string
}

// IRI creates an IRI term.
func IRI(v string) Term { return Term{Kind: IRIKind, Value: v} }

// Blank creates a blank node with the given label.
func Blank(label string) Term { return Term{Kind: BlankKind, Value: label} }

// Literal creates a typed literal. An empty datatype means xsd:string.
func Literal(v, datatype string) Term {
	if datatype == "" {
		datatype = XSD + "string"
	}
	return Term{Kind: LiteralKind, Value: v, Datatype: datatype}
}

// Integer creates an xsd:integer literal.
func Integer(n int) Term { return Literal(strconv.Itoa(n), XSD+"integer") }

func (t Term) IsIRI() bool     { return t.Kind == IRIKind }
func (t Term) IsBlank() bool   { return t.Kind == BlankKind }
func (t Term) IsLiteral() bool { return t.Kind == LiteralKind }

// String returns the N-Triples form of the term.
func (t Term) String() string {
	switch t.Kind {
	case IRIKind:
		return "<" + escapeIRI(t.Value) + ">"
	case BlankKind:
		return "_:" + t.Value
	case LiteralKind:
		s := `"` + escapeString(t.Value) + `"`
		if t.Datatype != XSD+"string" {
			s += "^^<" + escapeIRI(t.Datatype) + ">"
		}
		return s
	default:
		return ""
	}
}

// Triple is one statement of the graph.
type Triple struct {
	S, P, O Term
}

func (t Triple) String() string {
	return t.S.String() + " " + t.P.String() + " " + t.O.String() + " ."
}

// Graph is a set of triples that remembers insertion order, so serializations
// of the same rewrite are byte-identical.
type Graph struct {
	triples []Triple
	index   map[Triple]struct{}
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{index: map[Triple]struct{}{}}
}

// Add inserts a triple. It reports false when the triple was already present.
func (g *Graph) Add(s, p, o Term) bool {
	t := Triple{S: s, P: p, O: o}
	if _, ok := g.index[t]; ok {
		return false
	}
	g.index[t] = struct{}{}
	g.triples = append(g.triples, t)
	return true
}

// Merge adds every triple of other.
func (g *Graph) Merge(other *Graph) {
	for _, t := range other.triples {
		g.Add(t.S, t.P, t.O)
	}
}

// Clone returns an independent copy of g.
func (g *Graph) Clone() *Graph {
	c := NewGraph()
	c.Merge(g)
	return c
}

// Triples returns the triples in insertion order.
func (g *Graph) Triples() []Triple {
	return g.triples
}

// Len returns the number of triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Has reports whether the triple is present.
func (g *Graph) Has(s, p, o Term) bool {
	_, ok := g.index[Triple{S: s, P: p, O: o}]
	return ok
}

// Objects returns the objects of every triple with subject s and predicate p.
func (g *Graph) Objects(s, p Term) []Term {
	var result []Term
	for _, t := range g.triples {
		if t.S == s && t.P == p {
			result = append(result, t.O)
		}
	}
	return result
}

// Subjects returns the subjects of every triple with predicate p and object o.
func (g *Graph) Subjects(p, o Term) []Term {
	var result []Term
	for _, t := range g.triples {
		if t.P == p && t.O == o {
			result = append(result, t.S)
		}
	}
	return result
}

// subjectGroup holds the triples of one subject in insertion order.
type subjectGroup struct {
	subject Term
	triples []Triple
}

// bySubject groups the triples by subject in one pass. Groups come in order of
// the subject's first appearance.
func (g *Graph) bySubject() []subjectGroup {
	index := map[Term]int{}
	var groups []subjectGroup
	for _, t := range g.triples {
		i, ok := index[t.S]
		if !ok {
			i = len(groups)
			index[t.S] = i
			groups = append(groups, subjectGroup{subject: t.S})
		}
		groups[i].triples = append(groups[i].triples, t)
	}
	return groups
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}

// escapeIRI escapes the characters that may not appear between angle brackets.
func escapeIRI(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r <= 0x20, strings.ContainsRune("<>\"{}|^`\\", r):
			b.WriteString(`\u`)
			b.WriteString(strings.ToUpper(strconv.FormatInt(int64(r)|0x10000, 16)[1:]))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
