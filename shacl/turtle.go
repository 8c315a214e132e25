package shacl

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

var localName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// WriteTurtle writes g with the standard prefixes, one block per subject in
// order of first appearance.
func WriteTurtle(w io.Writer, g *Graph) error {
	var sb strings.Builder

	for _, p := range Prefixes {
		sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", p.Name, p.Namespace))
	}

	for _, group := range g.bySubject() {
		sb.WriteString("\n")
		sb.WriteString(turtleTerm(group.subject))

		var predicates []Term
		objects := map[Term][]string{}
		for _, t := range group.triples {
			if _, ok := objects[t.P]; !ok {
				predicates = append(predicates, t.P)
			}
			objects[t.P] = append(objects[t.P], turtleTerm(t.O))
		}

		for i, p := range predicates {
			if i == 0 {
				sb.WriteString(" ")
			} else {
				sb.WriteString(" ;\n    ")
			}
			if p == RDFType {
				sb.WriteString("a")
			} else {
				sb.WriteString(turtleTerm(p))
			}
			sb.WriteString(" ")
			sb.WriteString(strings.Join(objects[p], ", "))
		}
		sb.WriteString(" .\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func turtleTerm(t Term) string {
	switch t.Kind {
	case IRIKind:
		return turtleIRI(t.Value)
	case BlankKind:
		return "_:" + t.Value
	case LiteralKind:
		switch t.Datatype {
		case XSD + "integer":
			return t.Value
		case XSD + "string":
			if strings.ContainsAny(t.Value, "\n\r") {
				s := strings.ReplaceAll(t.Value, `\`, `\\`)
				s = strings.ReplaceAll(s, `"`, `\"`)
				return `"""` + s + `"""`
			}
			return `"` + escapeString(t.Value) + `"`
		default:
			return `"` + escapeString(t.Value) + `"^^` + turtleIRI(t.Datatype)
		}
	default:
		return ""
	}
}

// turtleIRI abbreviates iri with a declared prefix when the remainder is a
// plain local name.
func turtleIRI(iri string) string {
	for _, p := range Prefixes {
		if local, ok := strings.CutPrefix(iri, p.Namespace); ok && localName.MatchString(local) {
			return p.Name + ":" + local
		}
	}
	return "<" + escapeIRI(iri) + ">"
}
