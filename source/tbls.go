package source

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	tblsschema "github.com/k1LoW/tbls/schema"

	"github.com/sql2shacl/sql2shacl/diag"
	"github.com/sql2shacl/sql2shacl/schema"
)

var typeArguments = regexp.MustCompile(`\s*\([^)]*\)`)

// LoadTbls decodes a tbls schema.json document and converts it.
func LoadTbls(r io.Reader, collector *diag.Collector) (*schema.Catalog, error) {
	dec := json.NewDecoder(r)

	var s tblsschema.Schema
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTblsSchema, err)
	}

	return ConvertTbls(&s, collector)
}

// ConvertTbls turns the tables of a tbls schema into a catalog. Views are
// skipped with a warning; CHECK and other constraint kinds are ignored.
func ConvertTbls(s *tblsschema.Schema, collector *diag.Collector) (*schema.Catalog, error) {
	logger := collector.Logger()
	catalog := schema.NewCatalog()

	driver := ""
	if s.Driver != nil {
		driver = s.Driver.Name
	}
	logger.Info("converting tbls schema", "driver", driver, "tables", len(s.Tables))

	for _, tbl := range s.Tables {
		if tbl == nil {
			continue
		}

		name := unqualified(tbl.Name)
		if strings.Contains(strings.ToUpper(tbl.Type), "VIEW") {
			collector.Warn(name, nil, "skipping %s %s: only tables are rewritten", strings.ToLower(tbl.Type), tbl.Name)
			continue
		}

		rel, err := convertTable(name, tbl, collector)
		if err != nil {
			return nil, err
		}
		if catalog.Add(rel) {
			collector.Warn(name, nil, "relation %s is defined more than once; the last definition wins", name)
		}
	}

	return catalog, nil
}

func convertTable(name string, tbl *tblsschema.Table, collector *diag.Collector) (*schema.Relation, error) {
	logger := collector.Logger()
	logger.Info("identified relation", "relation", name)

	rel := schema.NewRelation(name)
	for _, col := range tbl.Columns {
		if col == nil {
			continue
		}
		column := &schema.Column{
			Name:      col.Name,
			DataType:  columnType(col.Type),
			IsNotNull: !col.Nullable,
		}
		if err := rel.AddColumn(column); err != nil {
			return nil, err
		}
		logger.Info("with column", "relation", name, "column", column.Name, "type", column.DataType)
	}

	for _, c := range tbl.Constraints {
		if c == nil {
			continue
		}

		columns := append([]string(nil), c.Columns...)
		switch strings.ToUpper(c.Type) {
		case "PRIMARY KEY":
			rel.AddConstraint(&schema.TablePrimaryKey{Name: c.Name, Columns: columns})
		case "UNIQUE":
			rel.AddConstraint(&schema.TableUnique{Name: c.Name, Columns: columns})
		case "FOREIGN KEY":
			if c.ReferencedTable == nil {
				collector.Warn(name, nil, "skipping foreign key %s: no referenced table", c.Name)
				continue
			}
			refColumns := append([]string(nil), c.ReferencedColumns...)
			if len(refColumns) == 0 {
				refColumns = append([]string(nil), columns...)
			}
			rel.AddConstraint(&schema.TableForeignKey{
				Name:               c.Name,
				Columns:            columns,
				ReferencedRelation: unqualified(*c.ReferencedTable),
				ReferencedColumns:  refColumns,
			})
		default:
			logger.Debug("ignoring constraint", "relation", name, "constraint", c.Name, "type", c.Type)
			continue
		}
		logger.Info("with constraint", "relation", name, "constraint", c.Name, "type", c.Type)
	}

	if err := rel.Propagate(); err != nil {
		return nil, err
	}
	return rel, nil
}

// columnType drops length and precision arguments: varchar(255) is varchar.
func columnType(t string) string {
	return strings.Join(strings.Fields(typeArguments.ReplaceAllString(t, "")), " ")
}

// unqualified strips a schema prefix such as public.
func unqualified(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx+1:]
	}
	return name
}
