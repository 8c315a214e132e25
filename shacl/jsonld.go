package shacl

import (
	"encoding/json"
	"io"
)

// JSONLDDocument is a JSON-LD document with a prefix context and a flat graph
// of nodes using full IRIs.
type JSONLDDocument struct {
	Context map[string]string `json:"@context"`
	Graph   []map[string]any  `json:"@graph"`
}

// WriteJSONLD writes g as a flattened JSON-LD document.
func WriteJSONLD(w io.Writer, g *Graph) error {
	doc := JSONLDDocument{Context: map[string]string{}}
	for _, p := range Prefixes {
		doc.Context[p.Name] = p.Namespace
	}

	for _, group := range g.bySubject() {
		node := map[string]any{"@id": jsonldID(group.subject)}
		for _, t := range group.triples {
			if t.P == RDFType && !t.O.IsLiteral() {
				types, _ := node["@type"].([]string)
				node["@type"] = append(types, jsonldID(t.O))
				continue
			}
			values, _ := node[t.P.Value].([]map[string]string)
			node[t.P.Value] = append(values, jsonldValue(t.O))
		}
		doc.Graph = append(doc.Graph, node)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

func jsonldID(t Term) string {
	if t.IsBlank() {
		return "_:" + t.Value
	}
	return t.Value
}

func jsonldValue(t Term) map[string]string {
	if !t.IsLiteral() {
		return map[string]string{"@id": jsonldID(t)}
	}
	if t.Datatype == XSD+"string" {
		return map[string]string{"@value": t.Value}
	}
	return map[string]string{"@value": t.Value, "@type": t.Datatype}
}
