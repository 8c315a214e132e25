package schema

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func mustColumn(t *testing.T, r *Relation, col *Column) {
	t.Helper()
	assert.NoError(t, r.AddColumn(col))
}

// empPrjAsg builds the classic employee/project/assignment schema.
func empPrjAsg(t *testing.T) (*Catalog, *Relation) {
	t.Helper()

	emp := NewRelation("Emp")
	eid := &Column{Name: "E_id", DataType: "integer"}
	eid.MarkPrimaryKey()
	mustColumn(t, emp, eid)
	mustColumn(t, emp, &Column{Name: "Name", DataType: "text", IsNotNull: true})

	prj := NewRelation("Prj")
	pid := &Column{Name: "P_id", DataType: "integer"}
	pid.MarkPrimaryKey()
	mustColumn(t, prj, pid)

	asg := NewRelation("Asg")
	mustColumn(t, asg, &Column{Name: "ToEmp", DataType: "integer", Reference: &ColumnReference{RelationName: "Emp", ColumnName: "E_id"}})
	mustColumn(t, asg, &Column{Name: "ToPrj", DataType: "integer", Reference: &ColumnReference{RelationName: "Prj", ColumnName: "P_id"}})
	asg.AddConstraint(&TablePrimaryKey{Columns: []string{"ToEmp", "ToPrj"}})

	catalog := NewCatalog()
	for _, r := range []*Relation{emp, prj, asg} {
		assert.NoError(t, r.Propagate())
		catalog.Add(r)
	}
	return catalog, asg
}

func TestCatalogOrderAndReplace(t *testing.T) {
	catalog := NewCatalog()
	assert.False(t, catalog.Add(NewRelation("a")))
	assert.False(t, catalog.Add(NewRelation("b")))

	replacement := NewRelation("a")
	mustColumn(t, replacement, &Column{Name: "x", DataType: "int"})
	assert.True(t, catalog.Add(replacement))

	assert.Equal(t, []string{"a", "b"}, catalog.Names())
	assert.Equal(t, 2, catalog.Len())
	assert.Equal(t, 1, len(catalog.Relation("a").Columns))
	assert.Zero(t, catalog.Relation("missing"))
}

func TestDuplicateColumn(t *testing.T) {
	r := NewRelation("t")
	mustColumn(t, r, &Column{Name: "a", DataType: "int"})
	err := r.AddColumn(&Column{Name: "a", DataType: "text"})
	assert.IsError(t, err, ErrDuplicateColumn)
	assert.Equal(t, "t", r.Columns[0].Relation)
}

func TestPropagate(t *testing.T) {
	r := NewRelation("t")
	mustColumn(t, r, &Column{Name: "a", DataType: "int"})
	mustColumn(t, r, &Column{Name: "b", DataType: "int"})
	mustColumn(t, r, &Column{Name: "c", DataType: "int", IsUnique: true})
	mustColumn(t, r, &Column{Name: "d", DataType: "int"})
	r.AddConstraint(&TablePrimaryKey{Columns: []string{"a", "b"}})
	r.AddConstraint(&TableUnique{Columns: []string{"d"}})
	r.AddConstraint(&TableUnique{Columns: []string{"b", "c"}})

	assert.NoError(t, r.Propagate())

	assert.True(t, r.Column("a").IsNotNull)
	assert.True(t, r.Column("b").IsNotNull)
	assert.False(t, r.Column("a").IsUnique)
	assert.False(t, r.Column("b").IsUnique)
	assert.True(t, r.Column("c").IsUnique)
	assert.False(t, r.Column("c").IsNotNull)
	assert.True(t, r.Column("d").IsUnique)

	assert.True(t, r.InPrimaryKeyConstraint("a"))
	assert.False(t, r.InPrimaryKeyConstraint("c"))
}

func TestPropagateIsMonotonic(t *testing.T) {
	r := NewRelation("t")
	mustColumn(t, r, &Column{Name: "a", DataType: "int", IsUnique: true, IsNotNull: true})
	r.AddConstraint(&TableUnique{Columns: []string{"a"}})

	assert.NoError(t, r.Propagate())
	assert.NoError(t, r.Propagate())

	assert.True(t, r.Column("a").IsUnique)
	assert.True(t, r.Column("a").IsNotNull)
}

func TestPropagateColumnNotFound(t *testing.T) {
	for _, c := range []TableConstraint{
		&TablePrimaryKey{Columns: []string{"missing"}},
		&TableUnique{Columns: []string{"a", "missing"}},
	} {
		t.Run(c.Kind().String(), func(t *testing.T) {
			r := NewRelation("t")
			mustColumn(t, r, &Column{Name: "a", DataType: "int"})
			r.AddConstraint(c)
			assert.IsError(t, r.Propagate(), ErrColumnNotFound)
		})
	}
}

func TestForeignKeyFlags(t *testing.T) {
	r := NewRelation("t")
	mustColumn(t, r, &Column{Name: "a", DataType: "int", IsNotNull: true})
	mustColumn(t, r, &Column{Name: "b", DataType: "int", IsNotNull: true})
	mustColumn(t, r, &Column{Name: "c", DataType: "int"})
	mustColumn(t, r, &Column{Name: "d", DataType: "int", IsUnique: true})
	r.AddConstraint(&TableUnique{Columns: []string{"b", "a"}})

	ab := &TableForeignKey{Columns: []string{"a", "b"}, ReferencedRelation: "o", ReferencedColumns: []string{"x", "y"}}
	c := &TableForeignKey{Columns: []string{"c"}, ReferencedRelation: "o", ReferencedColumns: []string{"z"}}
	d := &TableForeignKey{Columns: []string{"d"}, ReferencedRelation: "o", ReferencedColumns: []string{"w"}}
	r.AddConstraint(ab)
	r.AddConstraint(c)
	r.AddConstraint(d)

	assert.NoError(t, r.Propagate())

	assert.True(t, ab.IsNotNull)
	assert.True(t, ab.IsUnique)
	assert.False(t, c.IsNotNull)
	assert.False(t, c.IsUnique)
	assert.False(t, d.IsNotNull)
	assert.True(t, d.IsUnique)
}

func TestForeignKeysOrder(t *testing.T) {
	r := NewRelation("t")
	r.AddConstraint(&TableForeignKey{Columns: []string{"b"}, ReferencedRelation: "y", ReferencedColumns: []string{"id"}})
	mustColumn(t, r, &Column{Name: "a", DataType: "int", Reference: &ColumnReference{RelationName: "x", ColumnName: "id"}})
	mustColumn(t, r, &Column{Name: "b", DataType: "int"})

	fks := r.ForeignKeys()
	assert.Equal(t, 2, len(fks))
	assert.True(t, fks[0].Inline)
	assert.Equal(t, "x", fks[0].ReferencedRelation)
	assert.Equal(t, "y", fks[1].ReferencedRelation)
	assert.Equal(t, []string{"x", "y"}, r.ReferencedRelationNames())
}

func TestIsBinary(t *testing.T) {
	catalog, asg := empPrjAsg(t)
	assert.True(t, catalog.IsBinary(asg))
	assert.False(t, catalog.IsBinary(catalog.Relation("Emp")))

	fks, ok := asg.BinaryForeignKeys()
	assert.True(t, ok)
	assert.Equal(t, "Emp", fks[0].ReferencedRelation)
	assert.Equal(t, "Prj", fks[1].ReferencedRelation)
	assert.False(t, fks[0].IsUnique)
}

func TestIsBinaryTableForeignKeys(t *testing.T) {
	catalog, asg := empPrjAsg(t)
	for _, col := range asg.Columns {
		col.Reference = nil
	}
	asg.AddConstraint(&TableForeignKey{Columns: []string{"ToPrj"}, ReferencedRelation: "Prj", ReferencedColumns: []string{"P_id"}})
	asg.AddConstraint(&TableForeignKey{Columns: []string{"ToEmp"}, ReferencedRelation: "Emp", ReferencedColumns: []string{"E_id"}})

	assert.True(t, catalog.IsBinary(asg))

	fks, ok := asg.BinaryForeignKeys()
	assert.True(t, ok)
	assert.Equal(t, "Emp", fks[0].ReferencedRelation)
	assert.Equal(t, "Prj", fks[1].ReferencedRelation)
}

func TestIsBinaryMutations(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(t *testing.T, catalog *Catalog, asg *Relation)
		expected BinaryCondition
	}{
		{
			name: "self reference",
			mutate: func(t *testing.T, catalog *Catalog, asg *Relation) {
				asg.Column("ToPrj").Reference = &ColumnReference{RelationName: "Asg", ColumnName: "ToEmp"}
			},
			expected: NoSelfReference,
		},
		{
			name: "third column",
			mutate: func(t *testing.T, catalog *Catalog, asg *Relation) {
				mustColumn(t, asg, &Column{Name: "Since", DataType: "date"})
			},
			expected: ExactlyTwoColumns,
		},
		{
			name: "primary key on one column",
			mutate: func(t *testing.T, catalog *Catalog, asg *Relation) {
				asg.Constraints = []TableConstraint{&TablePrimaryKey{Columns: []string{"ToEmp"}}}
			},
			expected: ColumnsFormPrimaryKey,
		},
		{
			name: "no primary key",
			mutate: func(t *testing.T, catalog *Catalog, asg *Relation) {
				asg.Constraints = nil
			},
			expected: ColumnsFormPrimaryKey,
		},
		{
			name: "column without reference",
			mutate: func(t *testing.T, catalog *Catalog, asg *Relation) {
				asg.Column("ToPrj").Reference = nil
			},
			expected: AllColumnsReference,
		},
		{
			name: "column referencing two relations",
			mutate: func(t *testing.T, catalog *Catalog, asg *Relation) {
				asg.AddConstraint(&TableForeignKey{Columns: []string{"ToEmp"}, ReferencedRelation: "Prj", ReferencedColumns: []string{"E_id"}})
			},
			expected: NoDuplicateReferences,
		},
		{
			name: "column referencing two columns",
			mutate: func(t *testing.T, catalog *Catalog, asg *Relation) {
				asg.AddConstraint(&TableForeignKey{Columns: []string{"ToEmp"}, ReferencedRelation: "Emp", ReferencedColumns: []string{"Name"}})
			},
			expected: NoDuplicateReferences,
		},
		{
			name: "composite foreign key",
			mutate: func(t *testing.T, catalog *Catalog, asg *Relation) {
				asg.AddConstraint(&TableForeignKey{Columns: []string{"ToEmp", "ToPrj"}, ReferencedRelation: "Emp", ReferencedColumns: []string{"E_id", "Name"}})
			},
			expected: NoCompositeForeignKey,
		},
		{
			name: "incoming reference",
			mutate: func(t *testing.T, catalog *Catalog, asg *Relation) {
				audit := NewRelation("Audit")
				mustColumn(t, audit, &Column{Name: "asg", DataType: "integer", Reference: &ColumnReference{RelationName: "Asg", ColumnName: "ToEmp"}})
				catalog.Add(audit)
			},
			expected: NoIncomingReferences,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			catalog, asg := empPrjAsg(t)
			test.mutate(t, catalog, asg)

			ok, failed := catalog.CheckBinary(asg)
			assert.False(t, ok)
			assert.Equal(t, test.expected, failed)
			assert.False(t, catalog.IsBinary(asg))
		})
	}
}

func TestBinaryForeignKeysMissing(t *testing.T) {
	r := NewRelation("t")
	mustColumn(t, r, &Column{Name: "a", DataType: "int", Reference: &ColumnReference{RelationName: "x", ColumnName: "id"}})
	mustColumn(t, r, &Column{Name: "b", DataType: "int"})

	_, ok := r.BinaryForeignKeys()
	assert.False(t, ok)
}
