// Package sql2shacl rewrites SQL table definitions into SHACL shapes.
//
// Each CREATE TABLE statement becomes a node shape whose property shapes
// carry the datatypes, cardinalities, uniqueness and foreign keys of the
// table. Association tables that only link two other tables become a pair of
// object properties between those tables instead.
//
//	result, err := sql2shacl.Rewrite(ddl, sql2shacl.Options{BaseIRI: "http://example.org/db/"})
//	if err != nil {
//		return err
//	}
//	err = result.Write(os.Stdout, shacl.FormatTurtle)
package sql2shacl

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/sql2shacl/sql2shacl/ddl"
	"github.com/sql2shacl/sql2shacl/diag"
	"github.com/sql2shacl/sql2shacl/iri"
	"github.com/sql2shacl/sql2shacl/rewriter"
	"github.com/sql2shacl/sql2shacl/schema"
	"github.com/sql2shacl/sql2shacl/shacl"
	"github.com/sql2shacl/sql2shacl/source"
)

// Options controls one rewrite.
type Options struct {
	// BaseIRI prefixes every generated IRI. Empty means iri.DefaultBase.
	BaseIRI string
	// Mode is w3c (default), sequeda or thapa.
	Mode string
	// Logger receives progress and diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// Result is the outcome of a successful rewrite.
type Result struct {
	Graph       *shacl.Graph
	Catalog     *schema.Catalog
	Diagnostics []diag.Diagnostic
	// Segments holds the element lists of each CREATE TABLE statement.
	// It is empty when the catalog did not come from SQL text.
	Segments []ddl.Segment
}

// Write serializes the shape graph.
func (r *Result) Write(w io.Writer, format shacl.Format) error {
	return shacl.Write(w, r.Graph, format)
}

// DumpDDL renders the segmented statements, one relation per block.
func (r *Result) DumpDDL() string {
	var buf bytes.Buffer
	for _, seg := range r.Segments {
		buf.WriteString(seg.String())
	}
	return buf.String()
}

// Rewrite parses script and rewrites every table it defines. Fatal
// conditions return an error and no partial result; recoverable ones are
// listed in Result.Diagnostics.
func Rewrite(script string, opts Options) (*Result, error) {
	collector := diag.NewCollector(opts.Logger)

	parsed, err := ddl.Parse(script, collector)
	if err != nil {
		return nil, err
	}

	result, err := rewriteCatalog(parsed.Catalog, opts, collector)
	if err != nil {
		return nil, err
	}
	result.Segments = parsed.Segments
	return result, nil
}

// RewriteCatalog rewrites an already built catalog.
func RewriteCatalog(catalog *schema.Catalog, opts Options) (*Result, error) {
	return rewriteCatalog(catalog, opts, diag.NewCollector(opts.Logger))
}

// RewriteFile reads path (or stdin for "-") and rewrites it according to its
// kind: SQL script, Markdown with sql blocks, or tbls schema.json.
func RewriteFile(path string, stdin io.Reader, opts Options) (*Result, error) {
	data, err := source.ReadFile(path, stdin)
	if err != nil {
		return nil, err
	}

	switch source.DetectKind(path) {
	case source.Markdown:
		script, err := source.ExtractSQL(data)
		if err != nil {
			return nil, err
		}
		return Rewrite(script, opts)

	case source.Tbls:
		collector := diag.NewCollector(opts.Logger)
		catalog, err := source.LoadTbls(bytes.NewReader(data), collector)
		if err != nil {
			return nil, err
		}
		return rewriteCatalog(catalog, opts, collector)

	default:
		return Rewrite(string(data), opts)
	}
}

func rewriteCatalog(catalog *schema.Catalog, opts Options, collector *diag.Collector) (*Result, error) {
	builder, err := iri.NewBuilder(opts.Mode, opts.BaseIRI)
	if err != nil {
		return nil, err
	}

	graph, err := rewriter.NewEngine(builder, collector).Rewrite(catalog)
	if err != nil {
		return nil, err
	}

	return &Result{
		Graph:       graph,
		Catalog:     catalog,
		Diagnostics: collector.Items(),
	}, nil
}
