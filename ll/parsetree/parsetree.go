/*
Package parsetree implements parse trees for LL parsers.

A parse tree is stored as an arena of nodes. Nodes are addressed by their ID,
which is their index within the arena. IDs are assigned in order of creation,
starting at 0 for the root. Every node refers to its parent, its first child
and its next sibling by ID (father/sibling representation), with NoNode
marking absent links.

A tree is usually created by a parser, but may as well be reconstructed
from a leftmost derivation with Replay.


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package parsetree

import (
	"fmt"

	"github.com/markurti/lfdc"
	"github.com/markurti/lfdc/ll"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lfdc.ll'.
func tracer() tracing.Trace {
	return tracing.Select("lfdc.ll")
}

// NoNode is the ID of a missing node.
const NoNode = -1

// Node is a node of a parse tree. Terminal nodes matched against an input
// token carry the token's lexeme as their value. The span of a non-terminal
// node covers the spans of all tokens matched below it.
type Node struct {
	ID          int
	Symbol      *ll.Symbol
	Value       string    // lexeme of the matched token, if any
	Span        lfdc.Span // input span covered by the node, if any
	Parent      int
	FirstChild  int
	NextSibling int
	lastChild   int
}

// IsLeaf returns true if a node has no children.
func (n Node) IsLeaf() bool {
	return n.FirstChild == NoNode
}

func (n Node) String() string {
	if n.Value != "" {
		return fmt.Sprintf("%s(%s)", n.Symbol, n.Value)
	}
	return n.Symbol.String()
}

// Tree is a parse tree.
type Tree struct {
	nodes []Node
}

// New creates an empty parse tree.
func New() *Tree {
	return &Tree{nodes: make([]Node, 0, 64)}
}

// Size returns the number of nodes in the tree.
func (t *Tree) Size() int {
	return len(t.nodes)
}

// Root returns the ID of the root node, or NoNode for an empty tree.
func (t *Tree) Root() int {
	if len(t.nodes) == 0 {
		return NoNode
	}
	return 0
}

// Add creates a new node for symbol A as the last child of node parent and
// returns its ID. The first node added has to be the root, with parent NoNode.
func (t *Tree) Add(A *ll.Symbol, parent int) int {
	id := len(t.nodes)
	if parent == NoNode {
		if id != 0 {
			panic("parse tree already has a root node")
		}
	} else {
		t.check(parent)
	}
	t.nodes = append(t.nodes, Node{
		ID:          id,
		Symbol:      A,
		Parent:      parent,
		FirstChild:  NoNode,
		NextSibling: NoNode,
		lastChild:   NoNode,
	})
	if parent != NoNode {
		p := &t.nodes[parent]
		if p.lastChild == NoNode {
			p.FirstChild = id
		} else {
			t.nodes[p.lastChild].NextSibling = id
		}
		p.lastChild = id
	}
	return id
}

// SetValue stores the lexeme and span of an input token at node id. The
// spans of all ancestors of id are extended to cover the token.
func (t *Tree) SetValue(id int, token lfdc.Token) {
	t.check(id)
	span := token.Span()
	t.nodes[id].Value = token.Lexeme
	t.nodes[id].Span = span
	for p := t.nodes[id].Parent; p != NoNode; p = t.nodes[p].Parent {
		if t.nodes[p].Span.IsNull() {
			t.nodes[p].Span = span
		} else {
			t.nodes[p].Span = t.nodes[p].Span.Extend(span)
		}
	}
}

// Node returns the node with ID id. Panics if id is out of range.
func (t *Tree) Node(id int) Node {
	t.check(id)
	return t.nodes[id]
}

// Children returns the IDs of the children of node id, in order.
func (t *Tree) Children(id int) []int {
	t.check(id)
	var ch []int
	for c := t.nodes[id].FirstChild; c != NoNode; c = t.nodes[c].NextSibling {
		ch = append(ch, c)
	}
	return ch
}

// Walk visits the nodes of the tree in pre-order, i.e., in the order of a
// leftmost derivation. If f returns false, the children of a node are skipped.
func (t *Tree) Walk(f func(n Node, depth int) bool) {
	if len(t.nodes) == 0 {
		return
	}
	t.walk(0, 0, f)
}

func (t *Tree) walk(id, depth int, f func(Node, int) bool) {
	if !f(t.nodes[id], depth) {
		return
	}
	for c := t.nodes[id].FirstChild; c != NoNode; c = t.nodes[c].NextSibling {
		t.walk(c, depth+1, f)
	}
}

// Frontier returns the leaves of the tree from left to right, skipping epsilon
// nodes. For a tree created by a successful parse, the frontier symbols
// are the terminals of the input.
func (t *Tree) Frontier() []Node {
	var leaves []Node
	t.Walk(func(n Node, _ int) bool {
		if n.IsLeaf() && !n.Symbol.IsEpsilon() {
			leaves = append(leaves, n)
		}
		return true
	})
	return leaves
}

// Equal checks if two trees have the same shape, symbols, values and spans,
// including node IDs.
func (t *Tree) Equal(other *Tree) bool {
	if other == nil || len(t.nodes) != len(other.nodes) {
		return false
	}
	for i, n := range t.nodes {
		m := other.nodes[i]
		if n.Symbol.Name != m.Symbol.Name || n.Value != m.Value || n.Span != m.Span || n.Parent != m.Parent ||
			n.FirstChild != m.FirstChild || n.NextSibling != m.NextSibling {
			return false
		}
	}
	return true
}

func (t *Tree) check(id int) {
	if id < 0 || id >= len(t.nodes) {
		panic(fmt.Sprintf("parse tree node ID %d out of range [0…%d)", id, len(t.nodes)))
	}
}

// === Father/Sibling Table ==================================================

// Row is a row of the father/sibling table of a tree.
type Row struct {
	ID      int
	Symbol  string
	Value   string
	Father  int
	Sibling int
}

// Rows returns the father/sibling table of the tree, listing nodes in
// breadth-first order.
func (t *Tree) Rows() []Row {
	if len(t.nodes) == 0 {
		return nil
	}
	rows := make([]Row, 0, len(t.nodes))
	queue := []int{0}
	for len(queue) > 0 {
		n := t.nodes[queue[0]]
		queue = queue[1:]
		rows = append(rows, Row{
			ID:      n.ID,
			Symbol:  n.Symbol.Name,
			Value:   n.Value,
			Father:  n.Parent,
			Sibling: n.NextSibling,
		})
		for c := n.FirstChild; c != NoNode; c = t.nodes[c].NextSibling {
			queue = append(queue, c)
		}
	}
	return rows
}

// === Replay ================================================================

// Replay reconstructs a parse tree from a leftmost derivation. Terminal nodes
// receive the lexemes of tokens, which may be nil. The resulting tree is
// equal to the one built by the parser which produced the derivation,
// including node IDs.
func Replay(g *ll.Grammar, derivation []*ll.Rule, tokens []lfdc.Token) (*Tree, error) {
	t := New()
	stack := []int{t.Add(g.Start(), NoNode)} // pending nodes, top at the end
	pos := 0
	// match pops terminal and epsilon nodes until a non-terminal is on top of stack
	match := func() error {
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			A := t.nodes[id].Symbol
			switch A.Kind() {
			case ll.NonTerminalKind:
				return nil
			case ll.EpsilonKind:
			case ll.TerminalKind, ll.EndMarkerKind:
				if tokens != nil {
					if pos >= len(tokens) || tokens[pos].Type != A.TokenType() {
						return fmt.Errorf("replay: token #%d does not match terminal %s", pos, A)
					}
					t.SetValue(id, tokens[pos])
				}
				pos++
			}
			stack = stack[:len(stack)-1]
		}
		return nil
	}
	for i, r := range derivation {
		if err := match(); err != nil {
			return nil, err
		}
		if len(stack) == 0 {
			return nil, fmt.Errorf("replay: derivation step %d (%s) after complete tree", i, r)
		}
		id := stack[len(stack)-1]
		if t.nodes[id].Symbol != r.LHS {
			return nil, fmt.Errorf("replay: derivation step %d expands %s, but leftmost non-terminal is %s",
				i, r.LHS, t.nodes[id].Symbol)
		}
		stack = stack[:len(stack)-1]
		rhs := r.RHS()
		children := make([]int, len(rhs))
		for k, A := range rhs {
			children[k] = t.Add(A, id)
		}
		for k := len(children) - 1; k >= 0; k-- {
			stack = append(stack, children[k])
		}
		tracer().Debugf("replay %d: %s", i, r)
	}
	if err := match(); err != nil {
		return nil, err
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("replay: derivation incomplete, %s left unexpanded",
			t.nodes[stack[len(stack)-1]].Symbol)
	}
	return t, nil
}
