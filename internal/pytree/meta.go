package pytree

import (
	sitter "github.com/smacker/go-tree-sitter"

	"simplint/internal/source"
)

// nodeKey identifies a node by byte range and kind. Two distinct nodes can
// share a byte range only when one wraps the other (expression_statement
// around its expression), and those always differ in kind.
type nodeKey struct {
	start, end uint32
	kind       source.StringID
}

type nodeMeta struct {
	parent *sitter.Node
	prev   *sitter.Node
	next   *sitter.Node
}

func (t *Tree) key(n *sitter.Node) nodeKey {
	return nodeKey{
		start: n.StartByte(),
		end:   n.EndByte(),
		kind:  t.kinds.Intern(n.Type()),
	}
}

// isStmtContainer reports whether named children of this kind are
// statements that should be linked as siblings.
func isStmtContainer(kind string) bool {
	return kind == "module" || kind == "block"
}

// annotate records the parent for every named node and links consecutive
// statements inside module and block nodes, skipping comments.
func (t *Tree) annotate(n, parent *sitter.Node) {
	k := t.key(n)
	m := t.meta[k]
	m.parent = parent
	t.meta[k] = m

	if isStmtContainer(n.Type()) {
		var prev *sitter.Node
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if child.Type() == "comment" {
				continue
			}
			if prev != nil {
				pk := t.key(prev)
				pm := t.meta[pk]
				pm.next = child
				t.meta[pk] = pm

				ck := t.key(child)
				cm := t.meta[ck]
				cm.prev = prev
				t.meta[ck] = cm
			}
			prev = child
		}
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		t.annotate(n.NamedChild(i), n)
	}
}

// Parent returns the nearest named ancestor, or nil for the root.
func (t *Tree) Parent(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	return t.meta[t.key(n)].parent
}

// PrevStmt returns the previous statement sibling (comments skipped),
// or nil when n is the first statement of its suite or not a statement.
func (t *Tree) PrevStmt(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	return t.meta[t.key(n)].prev
}

// NextStmt returns the next statement sibling (comments skipped),
// or nil when n is the last statement of its suite or not a statement.
func (t *Tree) NextStmt(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	return t.meta[t.key(n)].next
}

// Ancestors walks the parent chain from n (exclusive) to the root and calls
// visit for each; traversal stops when visit returns false.
func (t *Tree) Ancestors(n *sitter.Node, visit func(*sitter.Node) bool) {
	for p := t.Parent(n); p != nil; p = t.Parent(p) {
		if !visit(p) {
			return
		}
	}
}

// EnclosingFunction returns the nearest function_definition containing n,
// or nil at module level.
func (t *Tree) EnclosingFunction(n *sitter.Node) *sitter.Node {
	var fn *sitter.Node
	t.Ancestors(n, func(p *sitter.Node) bool {
		if p.Type() == "function_definition" {
			fn = p
			return false
		}
		return true
	})
	return fn
}
