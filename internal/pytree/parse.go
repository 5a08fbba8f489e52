// Package pytree wraps tree-sitter parsing of Python sources and adds the
// navigation metadata the rule engine needs: parent links for every named
// node and prev/next links between statement siblings.
package pytree

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"simplint/internal/source"
)

// Tree is a parsed Python file plus its navigation metadata.
// It is immutable after Parse and safe for concurrent reads.
type Tree struct {
	src    []byte
	ts     *sitter.Tree
	root   *sitter.Node
	kinds  *source.Interner
	meta   map[nodeKey]nodeMeta
	closed bool
}

// Parse parses src as Python and runs the metadata pass. tree-sitter
// produces a tree even for files with syntax errors; unparseable regions
// come back as error nodes that no rule subscribes to.
func Parse(ctx context.Context, src []byte) (*Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	ts, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, err
	}

	t := &Tree{
		src:   src,
		ts:    ts,
		root:  ts.RootNode(),
		kinds: source.NewInterner(),
		meta:  make(map[nodeKey]nodeMeta),
	}
	t.annotate(t.root, nil)
	return t, nil
}

// Root returns the module node.
func (t *Tree) Root() *sitter.Node {
	return t.root
}

// Src returns the raw source bytes the tree was parsed from.
func (t *Tree) Src() []byte {
	return t.src
}

// Text returns the source text covered by n.
func (t *Tree) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(t.src)
}

// Span converts a node's byte range into a source.Span for file.
func (t *Tree) Span(file source.FileID, n *sitter.Node) source.Span {
	return source.Span{File: file, Start: n.StartByte(), End: n.EndByte()}
}

// Line returns the 1-based line of a node's start.
func (t *Tree) Line(n *sitter.Node) uint32 {
	return n.StartPoint().Row + 1
}

// Col returns the 0-based byte column of a node's start.
func (t *Tree) Col(n *sitter.Node) uint32 {
	return n.StartPoint().Column
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	if t.closed {
		return
	}
	t.closed = true
	if t.ts != nil {
		t.ts.Close()
	}
}
