// Package iri turns relation, column and constraint names into IRIs.
//
// Two policies are available. Sequeda follows the rewriting rules of
// Sequeda et al. (WWW 2012); DirectMapping follows the reference property
// conventions of the W3C Direct Mapping recommendation. Every interpolated
// name is NFC-normalised and percent-encoded, so equal arguments always give
// equal IRIs.
package iri

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Mode selects an IRI policy.
type Mode string

const (
	ModeW3C     Mode = "w3c"
	ModeSequeda Mode = "sequeda"
	// ModeThapa is the command-line spelling of ModeSequeda.
	ModeThapa Mode = "thapa"
)

// DefaultBase is the base IRI used when none is configured.
const DefaultBase = "http://example.org/base/"

// Builder converts schema names into IRIs.
type Builder interface {
	ClassIRI(relation string) string
	AttributeIRI(relation, column string) string
	DatatypeIRI(sqlType string) (string, error)
	ForeignKeyIRI(relation, referenced string, columns, referencedColumns []string) string
	// BinaryForeignKeyIRI builds the path shared by the two relations an
	// association table links.
	BinaryForeignKeyIRI(association, relationA, relationB, columnA, columnB string) string
	Base() string
}

// ParseMode validates a mode string. The empty string selects ModeW3C.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeW3C:
		return ModeW3C, nil
	case ModeSequeda, ModeThapa:
		return ModeSequeda, nil
	default:
		return "", fmt.Errorf("%w: <%s> (expected %s or %s)", ErrUnknownIRIBuilderMode, s, ModeW3C, ModeSequeda)
	}
}

// NewBuilder creates the builder for mode under base.
func NewBuilder(mode string, base string) (Builder, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	if base == "" {
		base = DefaultBase
	}

	switch m {
	case ModeSequeda:
		return &Sequeda{base: base}, nil
	default:
		return &DirectMapping{base: base}, nil
	}
}

// escape makes one name safe to embed in an IRI.
func escape(s string) string {
	return url.PathEscape(norm.NFC.String(s))
}

func escapeAll(names []string, sep string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = escape(n)
	}
	return strings.Join(parts, sep)
}

// Sequeda builds IRIs as <base>R, <base>R#A and <base>R,S#A,B.
type Sequeda struct {
	base string
}

func (b *Sequeda) Base() string { return b.base }

func (b *Sequeda) ClassIRI(relation string) string {
	return b.base + escape(relation)
}

func (b *Sequeda) AttributeIRI(relation, column string) string {
	return b.base + escape(relation) + "#" + escape(column)
}

func (b *Sequeda) DatatypeIRI(sqlType string) (string, error) {
	return datatypeIRI(sqlType)
}

func (b *Sequeda) ForeignKeyIRI(relation, referenced string, columns, referencedColumns []string) string {
	return b.base + escape(relation) + "," + escape(referenced) +
		"#" + escapeAll(columns, ",") + "," + escapeAll(referencedColumns, ",")
}

func (b *Sequeda) BinaryForeignKeyIRI(association, relationA, relationB, columnA, columnB string) string {
	return b.base + escape(association) +
		"#" + escape(relationA) + "," + escape(relationB) + "," + escape(columnA) + "," + escape(columnB)
}

// DirectMapping builds IRIs as <base>R, <base>R#A and <base>R#ref-A;B,S,X;Y.
type DirectMapping struct {
	base string
}

func (b *DirectMapping) Base() string { return b.base }

func (b *DirectMapping) ClassIRI(relation string) string {
	return b.base + escape(relation)
}

func (b *DirectMapping) AttributeIRI(relation, column string) string {
	return b.base + escape(relation) + "#" + escape(column)
}

func (b *DirectMapping) DatatypeIRI(sqlType string) (string, error) {
	return datatypeIRI(sqlType)
}

func (b *DirectMapping) ForeignKeyIRI(relation, referenced string, columns, referencedColumns []string) string {
	return b.base + escape(relation) +
		"#ref-" + escapeAll(columns, ";") + "," + escape(referenced) + "," + escapeAll(referencedColumns, ";")
}

func (b *DirectMapping) BinaryForeignKeyIRI(association, relationA, relationB, columnA, columnB string) string {
	return b.base + escape(association) +
		"#ref-" + escape(relationA) + ";" + escape(relationB) + "," + escape(columnA) + ";" + escape(columnB)
}
