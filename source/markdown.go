package source

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// ExtractSQL concatenates every fenced code block tagged sql, in document
// order, separated by newlines.
func ExtractSQL(content []byte) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(content))

	var blocks []string
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		codeBlock, ok := n.(*ast.FencedCodeBlock)
		if !ok || !strings.EqualFold(string(codeBlock.Language(content)), "sql") {
			return ast.WalkContinue, nil
		}

		var sql strings.Builder
		lines := codeBlock.Lines()
		for i := range lines.Len() {
			line := lines.At(i)
			value := line.Value(content)
			sql.Write(value)
			if !bytes.HasSuffix(value, []byte("\n")) {
				sql.WriteByte('\n')
			}
		}
		blocks = append(blocks, sql.String())

		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return "", err
	}

	if len(blocks) == 0 {
		return "", ErrNoSQLBlock
	}
	return strings.Join(blocks, "\n"), nil
}
