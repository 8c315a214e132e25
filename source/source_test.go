package source

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	tblsschema "github.com/k1LoW/tbls/schema"

	"github.com/sql2shacl/sql2shacl/diag"
	"github.com/sql2shacl/sql2shacl/schema"
)

func newCollector() *diag.Collector {
	return diag.NewCollector(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		path     string
		expected Kind
	}{
		{"schema.sql", SQL},
		{"schema.ddl", SQL},
		{"-", SQL},
		{"README.md", Markdown},
		{"doc.Markdown", Markdown},
		{"schema.json", Tbls},
		{"dir/SCHEMA.JSON", Tbls},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectKind(tt.path))
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.sql")
	assert.NoError(t, os.WriteFile(path, []byte("CREATE TABLE t (a int);"), 0o644))

	data, err := ReadFile(path, nil)
	assert.NoError(t, err)
	assert.Equal(t, "CREATE TABLE t (a int);", string(data))

	data, err = ReadFile(Stdin, strings.NewReader("from stdin"))
	assert.NoError(t, err)
	assert.Equal(t, "from stdin", string(data))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.sql"), nil)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestExtractSQL(t *testing.T) {
	doc := "# Schema\n\nEmployees:\n\n```sql\nCREATE TABLE Emp (E_id integer PRIMARY KEY);\n```\n\n" +
		"Not DDL:\n\n```go\nfunc main() {}\n```\n\n" +
		"Projects:\n\n```SQL\nCREATE TABLE Prj (P_id integer PRIMARY KEY);\n```\n"

	sql, err := ExtractSQL([]byte(doc))
	assert.NoError(t, err)
	assert.Contains(t, sql, "CREATE TABLE Emp (E_id integer PRIMARY KEY);")
	assert.Contains(t, sql, "CREATE TABLE Prj (P_id integer PRIMARY KEY);")
	assert.NotContains(t, sql, "func main")
	assert.True(t, strings.Index(sql, "Emp") < strings.Index(sql, "Prj"))
}

func TestExtractSQLWithoutBlock(t *testing.T) {
	_, err := ExtractSQL([]byte("# Nothing here\n\n```\nplain\n```\n"))
	assert.IsError(t, err, ErrNoSQLBlock)
}

func TestLoadTbls(t *testing.T) {
	doc := `{"driver":{"name":"postgres","database":"app","database_version":"16"},"tables":[` +
		`{"name":"public.users","type":"TABLE","columns":[{"name":"id","type":"integer","nullable":false},{"name":"email","type":"character varying(255)","nullable":true}],` +
		`"constraints":[{"name":"users_pkey","type":"PRIMARY KEY","columns":["id"]}]},` +
		`{"name":"public.active_users","type":"VIEW","columns":[{"name":"id","type":"integer","nullable":true}]}]}`

	collector := newCollector()
	catalog, err := LoadTbls(strings.NewReader(doc), collector)
	assert.NoError(t, err)
	assert.Equal(t, []string{"users"}, catalog.Names())
	assert.Equal(t, 1, collector.Count(diag.WARNING))

	users := catalog.Relation("users")
	id := users.Column("id")
	assert.True(t, id.IsNotNull)
	assert.True(t, id.IsUnique)
	assert.Equal(t, "integer", id.DataType)

	email := users.Column("email")
	assert.False(t, email.IsNotNull)
	assert.Equal(t, "character varying", email.DataType)
}

func TestLoadTblsInvalid(t *testing.T) {
	_, err := LoadTbls(strings.NewReader("{not json"), newCollector())
	assert.IsError(t, err, ErrInvalidTblsSchema)
}

func TestConvertTblsForeignKeys(t *testing.T) {
	emp, prj := "public.Emp", "public.Prj"
	s := &tblsschema.Schema{
		Tables: []*tblsschema.Table{
			{
				Name: "public.Emp", Type: "TABLE",
				Columns:     []*tblsschema.Column{{Name: "E_id", Type: "integer"}},
				Constraints: []*tblsschema.Constraint{{Name: "emp_pkey", Type: "PRIMARY KEY", Columns: []string{"E_id"}}},
			},
			{
				Name: "public.Prj", Type: "TABLE",
				Columns:     []*tblsschema.Column{{Name: "P_id", Type: "integer"}},
				Constraints: []*tblsschema.Constraint{{Name: "prj_pkey", Type: "PRIMARY KEY", Columns: []string{"P_id"}}},
			},
			{
				Name: "public.Asg", Type: "BASE TABLE",
				Columns: []*tblsschema.Column{
					{Name: "ToEmp", Type: "integer"},
					{Name: "ToPrj", Type: "integer"},
				},
				Constraints: []*tblsschema.Constraint{
					{Name: "asg_pkey", Type: "PRIMARY KEY", Columns: []string{"ToEmp", "ToPrj"}},
					{Name: "asg_emp_fkey", Type: "FOREIGN KEY", Columns: []string{"ToEmp"}, ReferencedTable: &emp, ReferencedColumns: []string{"E_id"}},
					{Name: "asg_prj_fkey", Type: "FOREIGN KEY", Columns: []string{"ToPrj"}, ReferencedTable: &prj, ReferencedColumns: []string{"P_id"}},
					{Name: "asg_check", Type: "CHECK", Columns: []string{"ToEmp"}},
				},
			},
		},
	}

	collector := newCollector()
	catalog, err := ConvertTbls(s, collector)
	assert.NoError(t, err)
	assert.Equal(t, 0, collector.Count(diag.WARNING))
	assert.Equal(t, []string{"Emp", "Prj", "Asg"}, catalog.Names())

	asg := catalog.Relation("Asg")
	assert.Equal(t, 3, len(asg.Constraints))
	fks := asg.TableForeignKeys()
	assert.Equal(t, 2, len(fks))
	assert.Equal(t, "Emp", fks[0].ReferencedRelation)
	assert.True(t, fks[0].IsNotNull)
	assert.False(t, fks[0].IsUnique)
	assert.True(t, catalog.IsBinary(asg))
}

func TestConvertTblsUnknownColumn(t *testing.T) {
	s := &tblsschema.Schema{
		Tables: []*tblsschema.Table{{
			Name: "t", Type: "TABLE",
			Columns:     []*tblsschema.Column{{Name: "a", Type: "int"}},
			Constraints: []*tblsschema.Constraint{{Name: "t_unique", Type: "UNIQUE", Columns: []string{"b"}}},
		}},
	}
	_, err := ConvertTbls(s, newCollector())
	assert.IsError(t, err, schema.ErrColumnNotFound)
}

func TestColumnType(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"integer", "integer"},
		{"varchar(255)", "varchar"},
		{"numeric(10, 2)", "numeric"},
		{"timestamp(6) without time zone", "timestamp without time zone"},
		{"int(11)", "int"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, columnType(tt.input))
		})
	}
}
