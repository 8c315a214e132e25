// Package rewriter turns a schema.Catalog into SHACL shapes.
//
// Every relation becomes a node shape whose property shapes carry the
// datatype, cardinality, uniqueness and foreign-key constraints of its
// columns. A binary relation (a pure association table, see
// schema.Catalog.IsBinary) gets no shape of its own: the two relations it
// links receive a pair of mutually inverse object property shapes instead.
package rewriter

import (
	"fmt"

	"github.com/sql2shacl/sql2shacl/diag"
	"github.com/sql2shacl/sql2shacl/iri"
	"github.com/sql2shacl/sql2shacl/schema"
	"github.com/sql2shacl/sql2shacl/shacl"
)

// Engine rewrites relations into one shape graph. It is not safe for
// concurrent use; create one engine per rewrite.
type Engine struct {
	builder   iri.Builder
	shapes    *shacl.Shapes
	collector *diag.Collector

	uniqueComponentAdded bool
}

// NewEngine creates an engine that names shapes with builder.
func NewEngine(builder iri.Builder, collector *diag.Collector) *Engine {
	return &Engine{
		builder:   builder,
		shapes:    shacl.NewShapes(shacl.NewGraph()),
		collector: collector,
	}
}

// Graph returns the shapes written so far.
func (e *Engine) Graph() *shacl.Graph {
	return e.shapes.Graph()
}

// UniqueComponentAdded reports whether the unique-values component has been
// merged into the graph.
func (e *Engine) UniqueComponentAdded() bool {
	return e.uniqueComponentAdded
}

// Rewrite rewrites every relation of catalog in catalog order.
func (e *Engine) Rewrite(catalog *schema.Catalog) (*shacl.Graph, error) {
	for _, rel := range catalog.Relations() {
		if err := e.RewriteRelation(catalog, rel); err != nil {
			return nil, err
		}
	}
	return e.Graph(), nil
}

// RewriteRelation adds the shapes of one relation.
func (e *Engine) RewriteRelation(catalog *schema.Catalog, rel *schema.Relation) error {
	logger := e.collector.Logger()

	binary, failed := catalog.CheckBinary(rel)
	if binary {
		logger.Info("rewriting binary relation", "relation", rel.Name)
		return e.rewriteBinary(rel)
	}
	logger.Debug("rewriting relation", "relation", rel.Name, "not binary", failed.String())

	class := e.builder.ClassIRI(rel.Name)
	e.shapes.NodeShape(class)

	if err := e.rewriteTableConstraints(rel, class); err != nil {
		return err
	}
	return e.rewriteColumns(rel, class)
}

func (e *Engine) rewriteBinary(rel *schema.Relation) error {
	fks, ok := rel.BinaryForeignKeys()
	if !ok {
		e.collector.Warn(rel.Name, nil, "binary relation does not have one single-column foreign key per column; no shapes emitted")
		return nil
	}
	a, b := fks[0], fks[1]

	path := e.builder.BinaryForeignKeyIRI(rel.Name,
		a.ReferencedRelation, b.ReferencedRelation,
		a.ReferencedColumns[0], b.ReferencedColumns[0])
	classA := e.builder.ClassIRI(a.ReferencedRelation)
	classB := e.builder.ClassIRI(b.ReferencedRelation)

	e.shapes.ObjectShape(classA, path, classB, atMostOneIf(a.IsUnique))
	e.shapes.InverseObjectShape(classB, path, classA, atMostOneIf(b.IsUnique))
	return nil
}

func (e *Engine) rewriteTableConstraints(rel *schema.Relation, class string) error {
	for _, c := range rel.Constraints {
		switch c := c.(type) {
		case *schema.TablePrimaryKey:
			for _, name := range c.Columns {
				if err := e.dataShape(rel, class, rel.Column(name), shacl.ExactlyOne); err != nil {
					return err
				}
			}
			if len(c.Columns) > 1 {
				if err := e.uniqueTuple(rel, class, c.Columns); err != nil {
					return err
				}
			}

		case *schema.TableUnique:
			// a single column is handled with the column's unique flag
			if len(c.Columns) > 1 {
				if err := e.uniqueTuple(rel, class, c.Columns); err != nil {
					return err
				}
			}

		case *schema.TableForeignKey:
			if len(c.Columns) != 1 {
				e.collector.Warn(rel.Name, nil, "skipping composite foreign key (%v) referencing %s: not supported", c.Columns, c.ReferencedRelation)
				continue
			}
			e.foreignKey(rel, class, schema.ForeignKey{
				Columns:            c.Columns,
				ReferencedRelation: c.ReferencedRelation,
				ReferencedColumns:  c.ReferencedColumns,
				IsNotNull:          c.IsNotNull,
				IsUnique:           c.IsUnique,
			})
		}
	}
	return nil
}

func (e *Engine) rewriteColumns(rel *schema.Relation, class string) error {
	for _, col := range rel.Columns {
		if !rel.InPrimaryKeyConstraint(col.Name) {
			if err := e.dataShape(rel, class, col, exactlyOneIf(col.IsNotNull)); err != nil {
				return err
			}
		}

		if col.IsUnique {
			if err := e.uniqueTuple(rel, class, []string{col.Name}); err != nil {
				return err
			}
		}

		if ref := col.Reference; ref != nil {
			e.foreignKey(rel, class, schema.ForeignKey{
				Columns:            []string{col.Name},
				ReferencedRelation: ref.RelationName,
				ReferencedColumns:  []string{ref.ColumnName},
				IsNotNull:          col.IsNotNull,
				IsUnique:           col.IsUnique,
				Inline:             true,
			})
		}
	}
	return nil
}

func (e *Engine) dataShape(rel *schema.Relation, class string, col *schema.Column, card shacl.Cardinality) error {
	if col == nil {
		return nil
	}
	datatype, err := e.builder.DatatypeIRI(col.DataType)
	if err != nil {
		return fmt.Errorf("%w: column <%s> of relation <%s>", err, col.Name, rel.Name)
	}
	e.shapes.DataShape(class, e.builder.AttributeIRI(rel.Name, col.Name), datatype, card)
	return nil
}

func (e *Engine) foreignKey(rel *schema.Relation, class string, fk schema.ForeignKey) {
	path := e.builder.ForeignKeyIRI(rel.Name, fk.ReferencedRelation, fk.Columns, fk.ReferencedColumns)
	target := e.builder.ClassIRI(fk.ReferencedRelation)

	e.shapes.ObjectShape(class, path, target, exactlyOneIf(fk.IsNotNull))
	e.shapes.InverseObjectShape(target, path, class, atMostOneIf(fk.IsUnique))
}

func (e *Engine) uniqueTuple(rel *schema.Relation, class string, columns []string) error {
	if err := e.ensureUniqueComponent(); err != nil {
		return err
	}

	props := make([]string, len(columns))
	for i, name := range columns {
		props[i] = e.builder.AttributeIRI(rel.Name, name)
	}
	e.shapes.UniqueTuple(class, props...)
	return nil
}

func (e *Engine) ensureUniqueComponent() error {
	if e.uniqueComponentAdded {
		return nil
	}
	component, err := shacl.UniqueComponent()
	if err != nil {
		return err
	}
	e.Graph().Merge(component)
	e.uniqueComponentAdded = true
	return nil
}

// exactlyOneIf is the cardinality of a forward property: required when not null.
func exactlyOneIf(notNull bool) shacl.Cardinality {
	if notNull {
		return shacl.ExactlyOne
	}
	return shacl.AtMostOne
}

func atMostOneIf(unique bool) shacl.Cardinality {
	if unique {
		return shacl.AtMostOne
	}
	return shacl.Unbounded
}
