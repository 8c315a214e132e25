// Package source reads DDL input: plain SQL scripts, Markdown documents with
// fenced sql blocks, and tbls schema.json files.
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Kind is the format of an input document.
type Kind string

const (
	SQL      Kind = "sql"
	Markdown Kind = "markdown"
	Tbls     Kind = "tbls"
)

// Stdin is the file name that reads standard input.
const Stdin = "-"

// DetectKind guesses the input format from the file extension. Anything
// unrecognised, standard input included, is read as SQL.
func DetectKind(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return Markdown
	case ".json":
		return Tbls
	default:
		return SQL
	}
}

// ReadFile reads path, or stdin when path is Stdin.
func ReadFile(path string, stdin io.Reader) ([]byte, error) {
	if path == Stdin {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read standard input: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return data, nil
}
