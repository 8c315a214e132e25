package schema

import "slices"

// BinaryCondition names one of the structural tests a binary relation must pass.
type BinaryCondition int

const (
	NoSelfReference BinaryCondition = iota + 1
	ExactlyTwoColumns
	ColumnsFormPrimaryKey
	AllColumnsReference
	NoDuplicateReferences
	NoCompositeForeignKey
	NoIncomingReferences
)

func (b BinaryCondition) String() string {
	switch b {
	case NoSelfReference:
		return "no self reference"
	case ExactlyTwoColumns:
		return "exactly two columns"
	case ColumnsFormPrimaryKey:
		return "columns form the primary key"
	case AllColumnsReference:
		return "every column references another relation"
	case NoDuplicateReferences:
		return "no column in two distinct foreign keys"
	case NoCompositeForeignKey:
		return "no composite foreign key over all columns"
	case NoIncomingReferences:
		return "no incoming references"
	default:
		return "unknown"
	}
}

// IsBinary reports whether r is a pure association table between two other
// relations (Sequeda et al., 2012).
func (c *Catalog) IsBinary(r *Relation) bool {
	ok, _ := c.CheckBinary(r)
	return ok
}

// CheckBinary evaluates the binary-relation conditions in order and returns
// the first one that fails.
func (c *Catalog) CheckBinary(r *Relation) (bool, BinaryCondition) {
	columns := r.ColumnNames()

	if r.ReferencesItself() {
		return false, NoSelfReference
	}
	if len(columns) != 2 {
		return false, ExactlyTwoColumns
	}
	if pk := r.PrimaryKey(); pk == nil || !sameSet(pk.Columns, columns) {
		return false, ColumnsFormPrimaryKey
	}

	var referencing []string
	for _, fk := range r.ForeignKeys() {
		referencing = append(referencing, fk.Columns...)
	}
	if !sameSet(referencing, columns) {
		return false, AllColumnsReference
	}

	if hasDuplicateReferences(r) {
		return false, NoDuplicateReferences
	}

	for _, fk := range r.TableForeignKeys() {
		if sameSet(fk.Columns, columns) {
			return false, NoCompositeForeignKey
		}
	}

	if c.IsReferencedByOther(r) {
		return false, NoIncomingReferences
	}

	return true, 0
}

// hasDuplicateReferences groups single-column references by column and reports
// whether one column points at more than one relation or more than one column.
func hasDuplicateReferences(r *Relation) bool {
	type target struct{ relations, columns []string }
	targets := map[string]*target{}

	for _, fk := range r.ForeignKeys() {
		if len(fk.Columns) != 1 || len(fk.ReferencedColumns) != 1 {
			continue
		}
		t, ok := targets[fk.Columns[0]]
		if !ok {
			t = &target{}
			targets[fk.Columns[0]] = t
		}
		if !slices.Contains(t.relations, fk.ReferencedRelation) {
			t.relations = append(t.relations, fk.ReferencedRelation)
		}
		if !slices.Contains(t.columns, fk.ReferencedColumns[0]) {
			t.columns = append(t.columns, fk.ReferencedColumns[0])
		}
	}

	for _, t := range targets {
		if len(t.relations) > 1 || len(t.columns) > 1 {
			return true
		}
	}
	return false
}

// BinaryForeignKeys returns the two single-column foreign keys of a binary
// relation, ordered by the position of the column they constrain. ok is false
// when the relation does not yield exactly one usable key per column.
func (r *Relation) BinaryForeignKeys() (fks []ForeignKey, ok bool) {
	if len(r.Columns) != 2 {
		return nil, false
	}

	all := r.ForeignKeys()
	for _, col := range r.Columns {
		i := slices.IndexFunc(all, func(fk ForeignKey) bool {
			return len(fk.Columns) == 1 && fk.Columns[0] == col.Name && len(fk.ReferencedColumns) == 1
		})
		if i < 0 {
			return nil, false
		}
		fks = append(fks, all[i])
	}
	return fks, true
}
