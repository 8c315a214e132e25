package schema

import "slices"

// ConstraintKind identifies the variant of a TableConstraint.
type ConstraintKind int

const (
	UniqueKind ConstraintKind = iota
	PrimaryKeyKind
	ForeignKeyKind
)

func (k ConstraintKind) String() string {
	switch k {
	case UniqueKind:
		return "UNIQUE"
	case PrimaryKeyKind:
		return "PRIMARY KEY"
	case ForeignKeyKind:
		return "FOREIGN KEY"
	default:
		return "UNKNOWN"
	}
}

// TableConstraint is the closed set of table-level constraints:
// *TableUnique, *TablePrimaryKey and *TableForeignKey.
type TableConstraint interface {
	Kind() ConstraintKind
	ConstraintName() string
	ColumnNames() []string
	tableConstraint()
}

// TableUnique is UNIQUE (a, b, ...).
type TableUnique struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Columns []string `json:"columns" yaml:"columns"`
}

func (c *TableUnique) Kind() ConstraintKind   { return UniqueKind }
func (c *TableUnique) ConstraintName() string { return c.Name }
func (c *TableUnique) ColumnNames() []string  { return c.Columns }
func (c *TableUnique) tableConstraint()       {}

// TablePrimaryKey is PRIMARY KEY (a, b, ...). A primary key is also a uniqueness constraint.
type TablePrimaryKey struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Columns []string `json:"columns" yaml:"columns"`
}

func (c *TablePrimaryKey) Kind() ConstraintKind   { return PrimaryKeyKind }
func (c *TablePrimaryKey) ConstraintName() string { return c.Name }
func (c *TablePrimaryKey) ColumnNames() []string  { return c.Columns }
func (c *TablePrimaryKey) tableConstraint()       {}

// TableForeignKey is FOREIGN KEY (a, ...) REFERENCES t (x, ...).
// IsNotNull and IsUnique are derived by Relation.Propagate.
type TableForeignKey struct {
	Name               string   `json:"name,omitempty" yaml:"name,omitempty"`
	Columns            []string `json:"columns" yaml:"columns"`
	ReferencedRelation string   `json:"referencedRelation" yaml:"referencedRelation"`
	ReferencedColumns  []string `json:"referencedColumns" yaml:"referencedColumns"`
	IsNotNull          bool     `json:"isNotNull" yaml:"isNotNull"`
	IsUnique           bool     `json:"isUnique" yaml:"isUnique"`
}

func (c *TableForeignKey) Kind() ConstraintKind   { return ForeignKeyKind }
func (c *TableForeignKey) ConstraintName() string { return c.Name }
func (c *TableForeignKey) ColumnNames() []string  { return c.Columns }
func (c *TableForeignKey) tableConstraint()       {}

// UniqueColumns returns the column list of a uniqueness constraint
// (UNIQUE or PRIMARY KEY) and false for anything else.
func UniqueColumns(c TableConstraint) ([]string, bool) {
	switch c := c.(type) {
	case *TableUnique:
		return c.Columns, true
	case *TablePrimaryKey:
		return c.Columns, true
	default:
		return nil, false
	}
}

// ColumnReference is an inline REFERENCES clause attached to a column.
type ColumnReference struct {
	RelationName string `json:"relation" yaml:"relation"`
	ColumnName   string `json:"column" yaml:"column"`
}

// ForeignKey is the common view over inline references and single-column
// table foreign keys, in declaration order.
type ForeignKey struct {
	Columns            []string
	ReferencedRelation string
	ReferencedColumns  []string
	IsNotNull          bool
	IsUnique           bool
	Inline             bool
}

// sameSet reports whether a and b hold the same names, ignoring order and repeats.
func sameSet(a, b []string) bool {
	for _, s := range a {
		if !slices.Contains(b, s) {
			return false
		}
	}
	for _, s := range b {
		if !slices.Contains(a, s) {
			return false
		}
	}
	return true
}
