package shacl

import (
	"fmt"
	"io"
	"strconv"
	"unicode"

	"github.com/beevik/etree"
)

// xmlNamespaces assigns prefixes to predicate namespaces while an RDF/XML
// document is written. Namespaces outside Prefixes get ns1, ns2, ...
type xmlNamespaces struct {
	root     *etree.Element
	prefixes map[string]string
}

func newXMLNamespaces(root *etree.Element) *xmlNamespaces {
	ns := &xmlNamespaces{root: root, prefixes: map[string]string{}}
	for _, p := range Prefixes {
		ns.prefixes[p.Namespace] = p.Name
		root.CreateAttr("xmlns:"+p.Name, p.Namespace)
	}
	return ns
}

func (n *xmlNamespaces) qname(iri string) (string, error) {
	namespace, local := splitIRI(iri)
	if local == "" {
		return "", fmt.Errorf("%w: <%s>", ErrUnserializablePredicate, iri)
	}

	prefix, ok := n.prefixes[namespace]
	if !ok {
		prefix = "ns" + strconv.Itoa(len(n.prefixes)-len(Prefixes)+1)
		n.prefixes[namespace] = prefix
		n.root.CreateAttr("xmlns:"+prefix, namespace)
	}
	return prefix + ":" + local, nil
}

// splitIRI cuts iri before its longest suffix that is an XML NCName.
func splitIRI(iri string) (namespace, local string) {
	runes := []rune(iri)

	i := len(runes)
	for i > 0 && isNCNameChar(runes[i-1]) {
		i--
	}
	for i < len(runes) && !isNCNameStart(runes[i]) {
		i++
	}
	return string(runes[:i]), string(runes[i:])
}

func isNCNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNCNameChar(r rune) bool {
	return isNCNameStart(r) || r == '-' || r == '.' || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// WriteRDFXML writes g as RDF/XML, one rdf:Description per subject.
func WriteRDFXML(w io.Writer, g *Graph) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("rdf:RDF")
	namespaces := newXMLNamespaces(root)

	for _, group := range g.bySubject() {
		desc := root.CreateElement("rdf:Description")
		if s := group.subject; s.IsBlank() {
			desc.CreateAttr("rdf:nodeID", s.Value)
		} else {
			desc.CreateAttr("rdf:about", s.Value)
		}

		for _, t := range group.triples {
			qname, err := namespaces.qname(t.P.Value)
			if err != nil {
				return err
			}
			el := desc.CreateElement(qname)
			switch t.O.Kind {
			case IRIKind:
				el.CreateAttr("rdf:resource", t.O.Value)
			case BlankKind:
				el.CreateAttr("rdf:nodeID", t.O.Value)
			case LiteralKind:
				if t.O.Datatype != XSD+"string" {
					el.CreateAttr("rdf:datatype", t.O.Datatype)
				}
				el.SetText(t.O.Value)
			}
		}
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}
