package iri

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed datatypes.yaml
var datatypesYAML []byte

type datatypeTable struct {
	Namespace string              `yaml:"namespace"`
	Types     map[string][]string `yaml:"types"`
}

var (
	datatypeOnce     sync.Once
	datatypeMap      map[string]string
	datatypeMaxWords int
	datatypeErr      error
)

func loadDatatypes() {
	var table datatypeTable
	if err := yaml.UnmarshalWithOptions(datatypesYAML, &table, yaml.Strict()); err != nil {
		datatypeErr = fmt.Errorf("%w: %w", ErrInvalidDatatypeTable, err)
		return
	}
	if table.Namespace == "" {
		datatypeErr = fmt.Errorf("%w: missing namespace", ErrInvalidDatatypeTable)
		return
	}

	datatypeMap = map[string]string{}
	for local, names := range table.Types {
		for _, name := range names {
			key := NormalizeTypeName(name)
			if previous, ok := datatypeMap[key]; ok {
				datatypeErr = fmt.Errorf("%w: <%s> mapped twice (%s, %s)", ErrInvalidDatatypeTable, key, previous, table.Namespace+local)
				return
			}
			datatypeMap[key] = table.Namespace + local
			datatypeMaxWords = max(datatypeMaxWords, len(strings.Fields(key)))
		}
	}
}

func datatypes() (map[string]string, error) {
	datatypeOnce.Do(loadDatatypes)
	return datatypeMap, datatypeErr
}

// NormalizeTypeName upper-cases a SQL type name and collapses inner whitespace.
func NormalizeTypeName(name string) string {
	return cases.Upper(language.Und).String(strings.Join(strings.Fields(name), " "))
}

// LookupDatatype returns the XML Schema datatype IRI for a SQL type name.
func LookupDatatype(sqlType string) (string, bool) {
	m, err := datatypes()
	if err != nil {
		return "", false
	}
	v, ok := m[NormalizeTypeName(sqlType)]
	return v, ok
}

// IsKnownDatatype reports whether sqlType appears in the datatype table.
func IsKnownDatatype(sqlType string) bool {
	_, ok := LookupDatatype(sqlType)
	return ok
}

// MaxDatatypeWords is the word count of the longest type name in the table.
func MaxDatatypeWords() int {
	if _, err := datatypes(); err != nil {
		return 1
	}
	return datatypeMaxWords
}

// DatatypeNames returns every type name of the table, sorted.
func DatatypeNames() []string {
	m, _ := datatypes()
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// datatypeIRI is shared by both builders.
func datatypeIRI(sqlType string) (string, error) {
	m, err := datatypes()
	if err != nil {
		return "", err
	}
	v, ok := m[NormalizeTypeName(sqlType)]
	if !ok {
		return "", fmt.Errorf("%w: <%s>", ErrUnsupportedSQLDatatype, sqlType)
	}
	return v, nil
}
