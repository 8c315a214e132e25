package shacl

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatRDFXML produces RDF/XML (.rdf) output.
	FormatRDFXML Format = "rdfxml"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// FormatInfo provides metadata about an output format.
type FormatInfo struct {
	Name        Format
	MIMEType    string
	Extension   string
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
	FormatRDFXML: {
		Name:        FormatRDFXML,
		MIMEType:    "application/rdf+xml",
		Extension:   ".rdf",
		Description: "RDF/XML - XML syntax for RDF",
	},
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
	},
}

var formatAliases = map[string]Format{
	"ttl":     FormatTurtle,
	"nt":      FormatNTriples,
	"xml":     FormatRDFXML,
	"rdf":     FormatRDFXML,
	"rdf/xml": FormatRDFXML,
	"json-ld": FormatJSONLD,
	"json":    FormatJSONLD,
}

// ParseFormat resolves a format name or alias. The empty string selects Turtle.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return FormatTurtle, nil
	}
	if _, ok := FormatRegistry[Format(name)]; ok {
		return Format(name), nil
	}
	if f, ok := formatAliases[name]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: <%s>", ErrUnknownFormat, s)
}

// FormatFromExtension guesses the format from an output file name.
func FormatFromExtension(path string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, info := range FormatRegistry {
		if info.Extension == ext {
			return info.Name, true
		}
	}
	return "", false
}

// Write serializes g to w in the given format.
func Write(w io.Writer, g *Graph, format Format) error {
	switch format {
	case FormatTurtle, "":
		return WriteTurtle(w, g)
	case FormatNTriples:
		return WriteNTriples(w, g)
	case FormatRDFXML:
		return WriteRDFXML(w, g)
	case FormatJSONLD:
		return WriteJSONLD(w, g)
	default:
		return fmt.Errorf("%w: <%s>", ErrUnknownFormat, format)
	}
}

// WriteNTriples writes one line per triple in insertion order.
func WriteNTriples(w io.Writer, g *Graph) error {
	var sb strings.Builder
	for _, t := range g.Triples() {
		sb.WriteString(t.String())
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
