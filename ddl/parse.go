// Package ddl reads CREATE TABLE statements into a schema.Catalog.
//
// Parsing runs in three steps. The script is tokenized and split into
// statements; each CREATE TABLE statement is cut into element expressions
// (Segments); each segment is then classified into columns and table
// constraints (BuildRelation). Statements and clauses outside the supported
// grammar are reported to the diag.Collector and skipped. A column without a
// recognised type, a key naming an unknown column and unbalanced parentheses
// are fatal.
package ddl

import (
	"fmt"

	"github.com/sql2shacl/sql2shacl/diag"
	"github.com/sql2shacl/sql2shacl/schema"
	tok "github.com/sql2shacl/sql2shacl/tokenizer"
)

// Result holds the parsed catalog together with the segments it was built from.
type Result struct {
	Catalog  *schema.Catalog
	Segments []Segment
}

// Parse reads every CREATE TABLE statement of script.
func Parse(script string, collector *diag.Collector) (*Result, error) {
	tokens, err := tok.NewSqlTokenizer(script, tok.TokenizerOptions{
		SkipWhitespace: true,
		SkipComments:   true,
		PreserveCase:   true,
	}).AllTokens()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}

	segments, err := Segments(tok.SplitStatements(tokens), collector)
	if err != nil {
		return nil, err
	}

	return Build(segments, collector)
}

// Build turns segments into a catalog. A relation defined twice replaces the
// earlier definition and keeps its position.
func Build(segments []Segment, collector *diag.Collector) (*Result, error) {
	catalog := schema.NewCatalog()

	for _, seg := range segments {
		rel, err := BuildRelation(seg, collector)
		if err != nil {
			return nil, err
		}
		if catalog.Add(rel) {
			collector.Warn(rel.Name, &seg.Position, "relation %s is defined more than once; the last definition wins", rel.Name)
		}
	}

	return &Result{Catalog: catalog, Segments: segments}, nil
}
