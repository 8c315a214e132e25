package schema

import (
	"fmt"
	"slices"
)

// Column is one column definition. Relation names the owning relation; lookups go through the Catalog.
type Column struct {
	Relation  string           `json:"-" yaml:"-"`
	Name      string           `json:"name" yaml:"name"`
	DataType  string           `json:"dataType" yaml:"dataType"`
	IsUnique  bool             `json:"isUnique" yaml:"isUnique"`
	IsNotNull bool             `json:"isNotNull" yaml:"isNotNull"`
	Reference *ColumnReference `json:"reference,omitempty" yaml:"reference,omitempty"`
}

// MarkUnique upgrades the column to unique. Flags are never downgraded.
func (c *Column) MarkUnique() { c.IsUnique = true }

// MarkNotNull upgrades the column to not-null. Flags are never downgraded.
func (c *Column) MarkNotNull() { c.IsNotNull = true }

// MarkPrimaryKey applies an inline PRIMARY KEY: unique and not-null.
func (c *Column) MarkPrimaryKey() {
	c.MarkUnique()
	c.MarkNotNull()
}

// Relation is one table.
type Relation struct {
	Name        string            `json:"name" yaml:"name"`
	Columns     []*Column         `json:"columns" yaml:"columns"`
	Constraints []TableConstraint `json:"-" yaml:"-"`
}

// NewRelation creates an empty relation.
func NewRelation(name string) *Relation {
	return &Relation{Name: name}
}

// AddColumn appends a column, rejecting a second column with the same name.
func (r *Relation) AddColumn(col *Column) error {
	if r.Column(col.Name) != nil {
		return fmt.Errorf("%w: <%s> in relation <%s>", ErrDuplicateColumn, col.Name, r.Name)
	}
	col.Relation = r.Name
	r.Columns = append(r.Columns, col)
	return nil
}

// AddConstraint appends a table constraint.
func (r *Relation) AddConstraint(c TableConstraint) {
	r.Constraints = append(r.Constraints, c)
}

// Column returns the named column or nil.
func (r *Relation) Column(name string) *Column {
	for _, col := range r.Columns {
		if col.Name == name {
			return col
		}
	}
	return nil
}

// ColumnNames returns the column names in declaration order.
func (r *Relation) ColumnNames() []string {
	names := make([]string, len(r.Columns))
	for i, col := range r.Columns {
		names[i] = col.Name
	}
	return names
}

// PrimaryKey returns the first PRIMARY KEY table constraint or nil.
func (r *Relation) PrimaryKey() *TablePrimaryKey {
	for _, c := range r.Constraints {
		if pk, ok := c.(*TablePrimaryKey); ok {
			return pk
		}
	}
	return nil
}

// TableForeignKeys returns the FOREIGN KEY table constraints in declaration order.
func (r *Relation) TableForeignKeys() []*TableForeignKey {
	var fks []*TableForeignKey
	for _, c := range r.Constraints {
		if fk, ok := c.(*TableForeignKey); ok {
			fks = append(fks, fk)
		}
	}
	return fks
}

// ForeignKeys returns inline references (in column order) followed by table
// foreign keys (in declaration order).
func (r *Relation) ForeignKeys() []ForeignKey {
	var fks []ForeignKey
	for _, col := range r.Columns {
		if col.Reference == nil {
			continue
		}
		fks = append(fks, ForeignKey{
			Columns:            []string{col.Name},
			ReferencedRelation: col.Reference.RelationName,
			ReferencedColumns:  []string{col.Reference.ColumnName},
			IsNotNull:          col.IsNotNull,
			IsUnique:           col.IsUnique,
			Inline:             true,
		})
	}
	for _, fk := range r.TableForeignKeys() {
		fks = append(fks, ForeignKey{
			Columns:            fk.Columns,
			ReferencedRelation: fk.ReferencedRelation,
			ReferencedColumns:  fk.ReferencedColumns,
			IsNotNull:          fk.IsNotNull,
			IsUnique:           fk.IsUnique,
		})
	}
	return fks
}

// ReferencedRelationNames returns the distinct relations this relation points at, first mention first.
func (r *Relation) ReferencedRelationNames() []string {
	var names []string
	for _, fk := range r.ForeignKeys() {
		if !slices.Contains(names, fk.ReferencedRelation) {
			names = append(names, fk.ReferencedRelation)
		}
	}
	return names
}

// ReferencesItself reports whether any foreign key of the relation points back at it.
func (r *Relation) ReferencesItself() bool {
	return slices.Contains(r.ReferencedRelationNames(), r.Name)
}

// InPrimaryKeyConstraint reports whether the column is named by a PRIMARY KEY table constraint.
func (r *Relation) InPrimaryKeyConstraint(column string) bool {
	for _, c := range r.Constraints {
		if pk, ok := c.(*TablePrimaryKey); ok && slices.Contains(pk.Columns, column) {
			return true
		}
	}
	return false
}

// Propagate applies table constraints to the column flags and derives the
// foreign-key flags. It runs once after every element has been added.
//
// PRIMARY KEY marks each named column not-null; a single-column PRIMARY KEY or
// UNIQUE also marks its column unique. Uniqueness of several columns together
// stays a relation-level fact.
func (r *Relation) Propagate() error {
	for _, c := range r.Constraints {
		cols, ok := UniqueColumns(c)
		if !ok {
			continue
		}

		for _, name := range cols {
			col := r.Column(name)
			if col == nil {
				return fmt.Errorf("%w: <%s> in %s table constraint of relation <%s>", ErrColumnNotFound, name, c.Kind(), r.Name)
			}
			if c.Kind() == PrimaryKeyKind {
				col.MarkNotNull()
			}
			if len(cols) == 1 {
				col.MarkUnique()
			}
		}
	}

	for _, fk := range r.TableForeignKeys() {
		fk.IsNotNull = fk.IsNotNull || r.allNotNull(fk.Columns)
		fk.IsUnique = fk.IsUnique || r.isUniqueSet(fk.Columns)
	}

	return nil
}

func (r *Relation) allNotNull(columns []string) bool {
	if len(columns) == 0 {
		return false
	}
	for _, name := range columns {
		col := r.Column(name)
		if col == nil || !col.IsNotNull {
			return false
		}
	}
	return true
}

func (r *Relation) isUniqueSet(columns []string) bool {
	if len(columns) == 1 {
		if col := r.Column(columns[0]); col != nil && col.IsUnique {
			return true
		}
	}
	for _, c := range r.Constraints {
		if cols, ok := UniqueColumns(c); ok && sameSet(cols, columns) {
			return true
		}
	}
	return false
}
