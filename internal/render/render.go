// Package render turns syntax-tree fragments into the short code excerpts
// embedded in diagnostic messages.
package render

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"golang.org/x/text/unicode/norm"

	"simplint/internal/pytree"
)

// Node renders a subtree as a single-line code excerpt. A nil node renders
// as "None" so callers can splice optional parts without special-casing.
// Normalization happens in a fixed order: whitespace joining, redundant
// paren stripping, triple-double-quote collapse, single-to-double quote
// conversion, then NFC.
func Node(t *pytree.Tree, n *sitter.Node) string {
	if n == nil {
		return "None"
	}
	s := joinLines(t.Text(n))
	s = stripParens(s)
	s = stripTripleQuotes(s)
	s = useDoubleQuotes(s)
	return norm.NFC.String(s)
}

// joinLines folds a multi-line fragment onto one line: backslash
// continuations disappear and any whitespace run containing a newline
// becomes a single space. Spacing within a line is kept as written.
func joinLines(s string) string {
	if !strings.ContainsRune(s, '\n') {
		return strings.TrimSpace(s)
	}
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '\n' {
			j := i
			for j < len(s) && (s[j] == '\n' || s[j] == ' ' || s[j] == '\t' || s[j] == '\r') {
				j++
			}
			// Trailing spaces and line continuations collapse with the newline.
			out := strings.TrimRight(b.String(), " \t\\")
			b.Reset()
			b.WriteString(out)
			if j < len(s) {
				b.WriteByte(' ')
			}
			i = j
			continue
		}
		b.WriteByte(c)
		i++
	}
	return strings.TrimSpace(b.String())
}

// stripParens removes one pair of parentheses when they wrap the whole
// fragment. "(a) or (b)" keeps its parens; "(a or b)" loses them.
func stripParens(s string) string {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return s
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return s
			}
		}
	}
	if depth != 0 {
		return s
	}
	return s[1 : len(s)-1]
}

// stripTripleQuotes collapses a triple-double-quoted string literal down
// to a plain double-quoted one when the content allows it.
func stripTripleQuotes(s string) string {
	const quotes = `"""`
	if len(s) < 6 || !strings.HasPrefix(s, quotes) || !strings.HasSuffix(s, quotes) {
		return s
	}
	inner := s[3 : len(s)-3]
	if strings.Contains(inner, `"`) {
		return s
	}
	return `"` + inner + `"`
}

// useDoubleQuotes rewrites whole single-quoted literals with double
// quotes, matching the house style of the emitted suggestions.
func useDoubleQuotes(s string) string {
	if len(s) >= 6 && strings.HasPrefix(s, "'''") && strings.HasSuffix(s, "'''") {
		return `"""` + s[3:len(s)-3] + `"""`
	}
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return `"` + s[1:len(s)-1] + `"`
	}
	return s
}
